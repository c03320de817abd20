package models

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Schedule groups the timeslots of one provider for one patient on one date.
// A blocked-time schedule reserves provider time and has no patient.
type Schedule struct {
	ID         uint       `gorm:"primaryKey"`
	Date       time.Time  `gorm:"not null;index:idx_schedule_day"`
	ProviderID uint       `gorm:"not null;index:idx_schedule_day"`
	PatientID  *uint      `gorm:"index"`
	CreatedBy  uint       `gorm:"not null"`
	Timeslots  []Timeslot `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Schedule) IsBlockedTime() bool {
	return s.PatientID == nil
}

type TimeslotStatus string

const (
	TimeslotScheduled  TimeslotStatus = "scheduled"
	TimeslotConfirmed  TimeslotStatus = "confirmed"
	TimeslotInProgress TimeslotStatus = "in_progress"
	TimeslotCompleted  TimeslotStatus = "completed"
	TimeslotCancelled  TimeslotStatus = "cancelled"
	TimeslotNoShow     TimeslotStatus = "no_show"
)

var timeslotTransitions = map[TimeslotStatus][]TimeslotStatus{
	TimeslotScheduled:  {TimeslotConfirmed, TimeslotCancelled, TimeslotNoShow},
	TimeslotConfirmed:  {TimeslotInProgress, TimeslotCancelled, TimeslotNoShow},
	TimeslotInProgress: {TimeslotCompleted, TimeslotCancelled},
	TimeslotCompleted:  {},
	TimeslotCancelled:  {},
	TimeslotNoShow:     {},
}

func (s TimeslotStatus) Valid() bool {
	_, ok := timeslotTransitions[s]
	return ok
}

func (s TimeslotStatus) CanTransitionTo(next TimeslotStatus) bool {
	for _, allowed := range timeslotTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TimeslotStatus) IsTerminal() bool {
	return len(timeslotTransitions[s]) == 0
}

// Billable reports whether the slot enters invoice generation.
func (s TimeslotStatus) Billable() bool {
	return s == TimeslotCompleted || s == TimeslotConfirmed
}

// Timeslot belongs to exactly one Schedule. PricingInput is an opaque JSON
// document only interpreted by the pricing engine for nursing services.
type Timeslot struct {
	ID             uint           `gorm:"primaryKey"`
	ScheduleID     uint           `gorm:"not null;index"`
	StartTime      string         `gorm:"not null"`
	EndTime        string         `gorm:"not null"`
	ServiceID      *uint          `gorm:"index"`
	PrescriptionID *uint          `gorm:"index"`
	Prescription   *Prescription  `gorm:"foreignKey:PrescriptionID"`
	Status         TimeslotStatus `gorm:"not null;default:'scheduled'"`
	Description    string
	PricingInput   string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PricingFields is the typed view of the pricing-input blob. Amounts decode
// through json.Number so no binary float rounding leaks in.
type PricingFields struct {
	HourlyRate *decimal.Decimal
	Price      *decimal.Decimal
}

func (t *Timeslot) PricingFields() (*PricingFields, error) {
	fields := &PricingFields{}
	if t.PricingInput == "" {
		return fields, nil
	}

	raw := map[string]json.Number{}
	decoder := json.NewDecoder(strings.NewReader(t.PricingInput))
	decoder.UseNumber()

	var blob map[string]interface{}
	if err := decoder.Decode(&blob); err != nil {
		return nil, err
	}
	for key, value := range blob {
		number, ok := value.(json.Number)
		if !ok {
			continue
		}
		raw[key] = number
	}

	if number, ok := raw["hourly_rate"]; ok {
		rate, err := decimal.NewFromString(number.String())
		if err != nil {
			return nil, err
		}
		fields.HourlyRate = &rate
	}
	if number, ok := raw["price"]; ok {
		price, err := decimal.NewFromString(number.String())
		if err != nil {
			return nil, err
		}
		fields.Price = &price
	}
	return fields, nil
}
