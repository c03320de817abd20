package models

import "time"

type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "pending"
	PrescriptionAccepted PrescriptionStatus = "accepted"
	PrescriptionRejected PrescriptionStatus = "rejected"
)

type Prescription struct {
	ID           uint               `gorm:"primaryKey"`
	PatientID    uint               `gorm:"not null;index"`
	ServiceID    uint               `gorm:"not null;index"`
	Service      Service            `gorm:"foreignKey:ServiceID"`
	Medication   string             `gorm:"not null"`
	StartDate    time.Time          `gorm:"not null"`
	EndDate      *time.Time
	Status       PrescriptionStatus `gorm:"not null;default:'pending'"`
	Frequency    string
	Instructions string
	// Note carries the "Service Demand #<id>:" prefix when the prescription
	// was converted from a demand. The prefix keys conversion idempotence.
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Prescription) IsAccepted() bool {
	return p.Status == PrescriptionAccepted
}
