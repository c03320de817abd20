package models

import "time"

// OutstandingRefreshToken records every refresh credential issued. Tokens
// survive user deactivation until they expire.
type OutstandingRefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"not null;index"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

type BlacklistedToken struct {
	ID            uint                    `gorm:"primaryKey"`
	TokenID       uint                    `gorm:"uniqueIndex;not null"`
	Token         OutstandingRefreshToken `gorm:"foreignKey:TokenID"`
	BlacklistedAt time.Time               `gorm:"not null"`
}
