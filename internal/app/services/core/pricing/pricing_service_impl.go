package pricing

import (
	"context"
	"fmt"
	"sync"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	hundred = decimal.NewFromInt(100)

	pricingServiceInstance contracts.PricingService
	oncePricingService     sync.Once
)

type pricingService struct {
	PricingRepository contracts.PricingRepository
	NonBimRate        decimal.Decimal
	BimHourly         decimal.Decimal
	BimCeiling        decimal.Decimal
	HousekeepingID    uint
	FamilyHelpID      uint
	NursingID         uint
	Log               *zap.Logger
}

func NewPricingService(repo contracts.PricingRepository, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PricingService {
	oncePricingService.Do(func() {
		instance := &pricingService{
			PricingRepository: repo,
			NonBimRate:        decimal.RequireFromString(internalConfig.Pricing.NonBimCoPaymentRate),
			BimHourly:         decimal.RequireFromString(internalConfig.Pricing.BimHourlyCoPayment),
			BimCeiling:        decimal.RequireFromString(internalConfig.Pricing.BimFullCoverCeiling),
			HousekeepingID:    internalConfig.Pricing.HousekeepingServiceID,
			FamilyHelpID:      internalConfig.Pricing.FamilyHelpServiceID,
			NursingID:         internalConfig.Pricing.NursingServiceID,
			Log:               logger,
		}
		pricingServiceInstance = instance
	})
	return pricingServiceInstance
}

func (s *pricingService) PriceTimeslot(ctx context.Context, patient *models.Patient, service *models.Service, timeslot *models.Timeslot) (*contracts.PriceQuote, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Debug("pricingService.PriceTimeslot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslot.ID),
	)

	startMinutes, err := utils.ParseClock(timeslot.StartTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}
	endMinutes, err := utils.ParseClock(timeslot.EndTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}
	if endMinutes <= startMinutes {
		return nil, exceptions.ErrInvalidTimeRange(fmt.Errorf("start %s end %s", timeslot.StartTime, timeslot.EndTime))
	}
	hours := utils.DurationHours(startMinutes, endMinutes)

	var quote *contracts.PriceQuote
	switch service.ID {
	case s.HousekeepingID, s.FamilyHelpID:
		quote, err = s.priceHourlyService(ctx, patient, service, hours)
	case s.NursingID:
		quote, err = s.priceNursingService(ctx, patient, service, timeslot, hours)
	default:
		quote = s.priceDefaultService(service, hours)
	}
	if err != nil {
		return nil, err
	}

	if quote.PatientPays.IsNegative() || quote.TotalBase.IsNegative() || quote.InsuranceCovers.IsNegative() {
		return nil, exceptions.ErrPricingNegativeAmount(fmt.Errorf("patient_pays=%s total_base=%s", quote.PatientPays, quote.TotalBase))
	}

	s.Log.Debug("pricingService.PriceTimeslot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslot.ID),
		zap.String("patient_pays", quote.PatientPays.StringFixed(2)),
	)
	return quote, nil
}

// priceHourlyService handles housekeeping and family help: the patient
// always pays, at the per-patient override rate when one exists.
func (s *pricingService) priceHourlyService(ctx context.Context, patient *models.Patient, service *models.Service, hours decimal.Decimal) (*contracts.PriceQuote, error) {
	hourly := service.Price
	override, err := s.PricingRepository.FindPatientServicePrice(ctx, patient.ID, service.ID)
	if err != nil {
		return nil, err
	}
	if override != nil {
		hourly = override.HourlyRate
	}

	price := hourly.Mul(hours).Round(2)
	return &contracts.PriceQuote{
		Hours:              hours,
		HourlyRate:         hourly,
		TotalBase:          price,
		PatientPays:        price,
		InsuranceCovers:    decimal.Zero,
		CoveragePercent:    decimal.Zero,
		CoveredByInsurance: false,
	}, nil
}

func (s *pricingService) priceNursingService(ctx context.Context, patient *models.Patient, service *models.Service, timeslot *models.Timeslot, hours decimal.Decimal) (*contracts.PriceQuote, error) {
	fields, err := timeslot.PricingFields()
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	var hourly decimal.Decimal
	switch {
	case fields.HourlyRate != nil:
		hourly = *fields.HourlyRate
	case fields.Price != nil:
		hourly = fields.Price.DivRound(hours, 4)
	default:
		hourly = service.Price
	}
	totalBase := hourly.Mul(hours).Round(2)

	prescribed := timeslot.Prescription != nil &&
		timeslot.ServiceID != nil &&
		timeslot.Prescription.ServiceID == *timeslot.ServiceID &&
		timeslot.Prescription.IsAccepted()
	if prescribed {
		return &contracts.PriceQuote{
			Hours:              hours,
			HourlyRate:         hourly,
			TotalBase:          totalBase,
			PatientPays:        decimal.Zero,
			InsuranceCovers:    totalBase,
			CoveragePercent:    hundred,
			CoveredByInsurance: true,
		}, nil
	}

	var patientPays decimal.Decimal
	if patient.SocialPrice {
		if totalBase.LessThanOrEqual(s.BimCeiling) {
			patientPays = decimal.Zero
		} else {
			patientPays = s.BimHourly.Mul(hours).Round(2)
		}
	} else {
		patientPays = totalBase.Mul(s.NonBimRate).Round(2)
	}

	covers := totalBase.Sub(patientPays)
	coverage := hundred
	if totalBase.IsPositive() {
		coverage = covers.Mul(hundred).DivRound(totalBase, 2)
	}

	return &contracts.PriceQuote{
		Hours:              hours,
		HourlyRate:         hourly,
		TotalBase:          totalBase,
		PatientPays:        patientPays,
		InsuranceCovers:    covers,
		CoveragePercent:    coverage,
		CoveredByInsurance: true,
	}, nil
}

func (s *pricingService) priceDefaultService(service *models.Service, hours decimal.Decimal) *contracts.PriceQuote {
	price := service.Price.Mul(hours).Round(2)
	return &contracts.PriceQuote{
		Hours:              hours,
		HourlyRate:         service.Price,
		TotalBase:          price,
		PatientPays:        price,
		InsuranceCovers:    decimal.Zero,
		CoveragePercent:    decimal.Zero,
		CoveredByInsurance: false,
	}
}
