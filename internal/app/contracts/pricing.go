package contracts

import (
	"context"

	"carelink-service/internal/app/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceQuote is the pricing engine's verdict for one timeslot. PatientPays
// plus InsuranceCovers always equals TotalBase.
type PriceQuote struct {
	Hours              decimal.Decimal
	HourlyRate         decimal.Decimal
	TotalBase          decimal.Decimal
	PatientPays        decimal.Decimal
	InsuranceCovers    decimal.Decimal
	CoveragePercent    decimal.Decimal
	CoveredByInsurance bool
}

type PricingService interface {
	PriceTimeslot(ctx context.Context, patient *models.Patient, service *models.Service, timeslot *models.Timeslot) (*PriceQuote, error)
}

type PricingRepository interface {
	WithTx(tx *gorm.DB) PricingRepository
	FindServiceByID(ctx context.Context, serviceID uint) (*models.Service, error)
	FindPatientServicePrice(ctx context.Context, patientID, serviceID uint) (*models.PatientServicePrice, error)
}
