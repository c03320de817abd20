package pricing

import (
	"context"
	"testing"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubPricingRepository struct {
	override *models.PatientServicePrice
	services map[uint]*models.Service
}

func (r *stubPricingRepository) WithTx(tx *gorm.DB) contracts.PricingRepository { return r }

func (r *stubPricingRepository) FindServiceByID(ctx context.Context, serviceID uint) (*models.Service, error) {
	return r.services[serviceID], nil
}

func (r *stubPricingRepository) FindPatientServicePrice(ctx context.Context, patientID, serviceID uint) (*models.PatientServicePrice, error) {
	return r.override, nil
}

func newTestPricingService(repo contracts.PricingRepository) *pricingService {
	return &pricingService{
		PricingRepository: repo,
		NonBimRate:        decimal.RequireFromString("0.25"),
		BimHourly:         decimal.RequireFromString("0.31"),
		BimCeiling:        decimal.RequireFromString("10.00"),
		HousekeepingID:    1,
		FamilyHelpID:      2,
		NursingID:         3,
		Log:               zap.NewNop(),
	}
}

func housekeepingService(price string) *models.Service {
	return &models.Service{ID: 1, Name: "Housekeeping", Price: decimal.RequireFromString(price)}
}

func nursingService(price string) *models.Service {
	return &models.Service{ID: 3, Name: "Nursing", Price: decimal.RequireFromString(price)}
}

func TestPriceTimeslotHourlyServices(t *testing.T) {
	t.Run("Patient Pays Full Hourly Price", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		slot := &models.Timeslot{StartTime: "09:00", EndTime: "11:00"}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, housekeepingService("30.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "60.00", quote.PatientPays.StringFixed(2))
		assert.Equal(t, "0.00", quote.InsuranceCovers.StringFixed(2))
		assert.False(t, quote.CoveredByInsurance)
		assert.Equal(t, "2", quote.Hours.String())
	})

	t.Run("Per Patient Override Wins", func(t *testing.T) {
		repo := &stubPricingRepository{
			override: &models.PatientServicePrice{PatientID: 5, ServiceID: 1, HourlyRate: decimal.RequireFromString("25.50")},
		}
		svc := newTestPricingService(repo)
		slot := &models.Timeslot{StartTime: "09:00", EndTime: "10:30"}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, housekeepingService("30.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "38.25", quote.PatientPays.StringFixed(2), "25.50 * 1.5h")
		assert.Equal(t, "25.5", quote.HourlyRate.String())
	})
}

func TestPriceTimeslotNursing(t *testing.T) {
	t.Run("Accepted Prescription Covers Fully", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		serviceID := uint(3)
		slot := &models.Timeslot{
			StartTime: "09:00",
			EndTime:   "10:00",
			ServiceID: &serviceID,
			Prescription: &models.Prescription{
				ServiceID: 3,
				Status:    models.PrescriptionAccepted,
			},
		}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, nursingService("40.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "0.00", quote.PatientPays.StringFixed(2))
		assert.Equal(t, "40.00", quote.InsuranceCovers.StringFixed(2))
		assert.Equal(t, "100", quote.CoveragePercent.String())
		assert.True(t, quote.CoveredByInsurance)
	})

	t.Run("Pending Prescription Does Not Cover", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		serviceID := uint(3)
		slot := &models.Timeslot{
			StartTime: "09:00",
			EndTime:   "10:00",
			ServiceID: &serviceID,
			Prescription: &models.Prescription{
				ServiceID: 3,
				Status:    models.PrescriptionPending,
			},
		}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, nursingService("40.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "10.00", quote.PatientPays.StringFixed(2), "non-BIM co-payment of 25%")
	})

	t.Run("BIM Under Ceiling Is Free", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		slot := &models.Timeslot{StartTime: "09:00", EndTime: "10:00"}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5, SocialPrice: true}, nursingService("9.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "0.00", quote.PatientPays.StringFixed(2))
		assert.Equal(t, "9.00", quote.InsuranceCovers.StringFixed(2))
		assert.Equal(t, "100", quote.CoveragePercent.String())
	})

	t.Run("BIM Above Ceiling Pays Hourly Co-Payment", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		slot := &models.Timeslot{StartTime: "09:00", EndTime: "11:00"}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5, SocialPrice: true}, nursingService("40.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "0.62", quote.PatientPays.StringFixed(2), "0.31 per hour for 2 hours")
		assert.Equal(t, "79.38", quote.InsuranceCovers.StringFixed(2))
	})

	t.Run("Non BIM Co-Payment Rounds Half Up", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		slot := &models.Timeslot{
			StartTime:    "09:00",
			EndTime:      "10:00",
			PricingInput: `{"hourly_rate": 42.50}`,
		}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, nursingService("40.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "42.50", quote.TotalBase.StringFixed(2), "hourly rate from pricing input wins over service price")
		assert.Equal(t, "10.63", quote.PatientPays.StringFixed(2), "10.625 rounds up")
		assert.Equal(t, "31.87", quote.InsuranceCovers.StringFixed(2))
		assert.Equal(t, "74.99", quote.CoveragePercent.StringFixed(2))
	})

	t.Run("Price Blob Derives Hourly Rate", func(t *testing.T) {
		svc := newTestPricingService(&stubPricingRepository{})
		slot := &models.Timeslot{
			StartTime:    "09:00",
			EndTime:      "10:15",
			PricingInput: `{"price": 50}`,
		}

		quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, nursingService("40.00"), slot)
		require.NoError(t, err)
		assert.Equal(t, "40", quote.HourlyRate.String(), "50 / 1.25h")
		assert.Equal(t, "50.00", quote.TotalBase.StringFixed(2))
	})
}

func TestPriceTimeslotDefaultService(t *testing.T) {
	svc := newTestPricingService(&stubPricingRepository{})
	other := &models.Service{ID: 9, Name: "Transport", Price: decimal.RequireFromString("12.00")}
	slot := &models.Timeslot{StartTime: "14:00", EndTime: "15:30"}

	quote, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5, SocialPrice: true}, other, slot)
	require.NoError(t, err)
	assert.Equal(t, "18.00", quote.PatientPays.StringFixed(2), "BIM status is ignored outside nursing")
	assert.False(t, quote.CoveredByInsurance)
}

func TestPriceTimeslotRejectsBadRange(t *testing.T) {
	svc := newTestPricingService(&stubPricingRepository{})

	_, err := svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, housekeepingService("30.00"), &models.Timeslot{StartTime: "10:00", EndTime: "10:00"})
	assert.Error(t, err)

	_, err = svc.PriceTimeslot(context.Background(), &models.Patient{ID: 5}, housekeepingService("30.00"), &models.Timeslot{StartTime: "11:00", EndTime: "10:00"})
	assert.Error(t, err)
}
