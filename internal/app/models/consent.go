package models

import "time"

type ConsentDecision string

const (
	ConsentGranted ConsentDecision = "granted"
	ConsentDenied  ConsentDecision = "denied"
)

func ConsentDecisionFromBool(granted bool) ConsentDecision {
	if granted {
		return ConsentGranted
	}
	return ConsentDenied
}

// CookieConsent records one GDPR cookie decision. Exactly one of UserID and
// AnonymousID is populated. IP addresses are never stored.
type CookieConsent struct {
	ID               uint            `gorm:"primaryKey"`
	UserID           *uint           `gorm:"index"`
	AnonymousID      string          `gorm:"index"`
	PolicyVersion    string          `gorm:"not null"`
	Essential        ConsentDecision `gorm:"not null"`
	Analytics        ConsentDecision `gorm:"not null"`
	Marketing        ConsentDecision `gorm:"not null"`
	Functional       ConsentDecision `gorm:"not null"`
	Method           string
	PageURL          string
	UserAgent        string
	ExpiresAt        time.Time `gorm:"not null"`
	WithdrawnAt      *time.Time
	WithdrawalReason string
	CreatedAt        time.Time `gorm:"index"`
}

func (c *CookieConsent) IsActive(now time.Time) bool {
	return c.WithdrawnAt == nil && now.Before(c.ExpiresAt)
}

// SameDecisions compares only the four category outcomes, not context.
func (c *CookieConsent) SameDecisions(other *CookieConsent) bool {
	return c.Essential == other.Essential &&
		c.Analytics == other.Analytics &&
		c.Marketing == other.Marketing &&
		c.Functional == other.Functional
}
