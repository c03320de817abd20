package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceInProgress InvoiceStatus = "In Progress"
	InvoiceContested  InvoiceStatus = "Contested"
	InvoicePaid       InvoiceStatus = "Paid"
	InvoiceCancelled  InvoiceStatus = "Cancelled"

	// Legacy alias still present in old rows; normalized on read.
	invoiceLegacyOpen InvoiceStatus = "Open"
)

// NormalizeInvoiceStatus maps the legacy "Open" value onto "In Progress".
func NormalizeInvoiceStatus(status InvoiceStatus) InvoiceStatus {
	if status == invoiceLegacyOpen {
		return InvoiceInProgress
	}
	return status
}

// IsOpen reports whether the invoice blocks account deletion.
func (s InvoiceStatus) IsOpen() bool {
	normalized := NormalizeInvoiceStatus(s)
	return normalized == InvoiceInProgress || normalized == InvoiceContested
}

type Invoice struct {
	ID          uint            `gorm:"primaryKey"`
	PatientID   uint            `gorm:"not null;index:idx_invoice_period,unique"`
	PeriodStart time.Time       `gorm:"not null;index:idx_invoice_period,unique"`
	PeriodEnd   time.Time       `gorm:"not null;index:idx_invoice_period,unique"`
	Status      InvoiceStatus   `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Lines       []InvoiceLine   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type InvoiceLine struct {
	ID             uint            `gorm:"primaryKey"`
	InvoiceID      uint            `gorm:"not null;index"`
	TimeslotID     uint            `gorm:"not null"`
	ServiceID      uint            `gorm:"not null"`
	ProviderID     uint            `gorm:"not null"`
	Date           time.Time       `gorm:"not null"`
	StartTime      string          `gorm:"not null"`
	EndTime        string          `gorm:"not null"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TimeslotStatus TimeslotStatus  `gorm:"not null"`
	CreatedAt      time.Time
}
