package models

import "time"

type Provider struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"uniqueIndex;not null"`
	User      User    `gorm:"foreignKey:UserID"`
	ServiceID uint    `gorm:"not null;index"`
	Service   Service `gorm:"foreignKey:ServiceID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContractStatus string

const (
	ContractActive     ContractStatus = "active"
	ContractSuspended  ContractStatus = "suspended"
	ContractTerminated ContractStatus = "terminated"
)

// Contract: at most one per provider may be active at any instant; the
// usecase enforces this before activation.
type Contract struct {
	ID         uint           `gorm:"primaryKey"`
	ProviderID uint           `gorm:"not null;index"`
	Status     ContractStatus `gorm:"not null"`
	StartDate  time.Time
	EndDate    *time.Time
	HoursWeek  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProviderAbsence spans whole days, start through end inclusive.
type ProviderAbsence struct {
	ID         uint      `gorm:"primaryKey"`
	ProviderID uint      `gorm:"not null;index"`
	StartDate  time.Time `gorm:"not null"`
	EndDate    time.Time `gorm:"not null"`
	Type       string
	Reason     string
	CreatedAt  time.Time
}

// ProviderShortAbsence blocks part of a single day. Two short absences for
// the same provider never overlap.
type ProviderShortAbsence struct {
	ID         uint      `gorm:"primaryKey"`
	ProviderID uint      `gorm:"not null;index"`
	Date       time.Time `gorm:"not null;index"`
	StartTime  string    `gorm:"not null"`
	EndTime    string    `gorm:"not null"`
	Type       string
	Reason     string
	CreatedAt  time.Time
}
