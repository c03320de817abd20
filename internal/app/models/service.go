package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PatientServicePrice overrides the hourly rate for one patient on one
// service. Only consulted for housekeeping and family-help services.
type PatientServicePrice struct {
	ID         uint            `gorm:"primaryKey"`
	PatientID  uint            `gorm:"not null;index:idx_patient_service,unique"`
	ServiceID  uint            `gorm:"not null;index:idx_patient_service,unique"`
	HourlyRate decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ServiceDemandStatus string

const (
	ServiceDemandPending   ServiceDemandStatus = "pending"
	ServiceDemandConverted ServiceDemandStatus = "converted"
	ServiceDemandRejected  ServiceDemandStatus = "rejected"
)

type ServiceDemand struct {
	ID          uint                `gorm:"primaryKey"`
	PatientID   uint                `gorm:"not null;index"`
	ServiceID   uint                `gorm:"not null"`
	RequestedBy uint                `gorm:"not null"`
	Status      ServiceDemandStatus `gorm:"not null;default:'pending'"`
	Medication  string
	StartDate   time.Time
	EndDate     *time.Time
	Frequency   string
	Details     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
