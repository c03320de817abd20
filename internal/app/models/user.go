package models

import "time"

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FirstName      string
	LastName       string
	Role           Role `gorm:"not null;index"`
	IsActive       bool
	IsAnonymized   bool
	BirthDate      *time.Time
	NationalNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
