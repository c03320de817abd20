package invoices

import (
	"context"
	"fmt"
	"testing"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/core/pricing"
	"carelink-service/internal/app/services/core/users"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// flatRatePricing charges service price times duration; the tariff rules
// themselves are covered by the pricing package tests.
type flatRatePricing struct{}

func (s *flatRatePricing) PriceTimeslot(ctx context.Context, patient *models.Patient, service *models.Service, timeslot *models.Timeslot) (*contracts.PriceQuote, error) {
	startMinutes, err := utils.ParseClock(timeslot.StartTime)
	if err != nil {
		return nil, err
	}
	endMinutes, err := utils.ParseClock(timeslot.EndTime)
	if err != nil {
		return nil, err
	}
	hours := utils.DurationHours(startMinutes, endMinutes)
	pays := service.Price.Mul(hours).Round(2)
	return &contracts.PriceQuote{
		Hours:       hours,
		HourlyRate:  service.Price,
		TotalBase:   pays,
		PatientPays: pays,
	}, nil
}

type recordingStorage struct {
	objects []string
}

func (s *recordingStorage) StoreObject(ctx context.Context, objectName, contentType string, data []byte) error {
	s.objects = append(s.objects, objectName)
	return nil
}

type recordingActionLog struct {
	entries []models.ActionLogEntry
}

func (s *recordingActionLog) Record(ctx context.Context, entry *models.ActionLogEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

type invoiceFixture struct {
	db        *gorm.DB
	usecase   *invoiceUsecase
	storage   *recordingStorage
	actionLog *recordingActionLog
	patient   models.Patient
	service   models.Service
	provider  models.Provider
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	patientUser := models.User{Email: "billing@example.com", Password: "x", FirstName: "Rosa", LastName: "Wouters", Role: models.RolePatient, IsActive: true}
	providerUser := models.User{Email: "nurse@example.com", Password: "x", FirstName: "Els", LastName: "De Smet", Role: models.RoleProvider, IsActive: true}
	require.NoError(t, db.Create(&patientUser).Error)
	require.NoError(t, db.Create(&providerUser).Error)

	service := models.Service{Name: "Nursing", Price: decimal.RequireFromString("40.00")}
	require.NoError(t, db.Create(&service).Error)

	patient := models.Patient{UserID: patientUser.ID, IsAlive: true}
	require.NoError(t, db.Create(&patient).Error)
	provider := models.Provider{UserID: providerUser.ID, ServiceID: service.ID}
	require.NoError(t, db.Create(&provider).Error)

	storage := &recordingStorage{}
	actionLog := &recordingActionLog{}
	usecase := &invoiceUsecase{
		DB:                db,
		InvoiceRepository: NewInvoiceGormRepository(db),
		PatientRepository: users.NewPatientGormRepository(db),
		PricingRepository: pricing.NewPricingGormRepository(db),
		PricingService:    &flatRatePricing{},
		StorageService:    storage,
		ActionLogService:  actionLog,
		Log:               zap.NewNop(),
	}

	return &invoiceFixture{
		db:        db,
		usecase:   usecase,
		storage:   storage,
		actionLog: actionLog,
		patient:   patient,
		service:   service,
		provider:  provider,
	}
}

func (f *invoiceFixture) seedSchedule(t *testing.T, date string, slots ...models.Timeslot) {
	t.Helper()
	parsed, err := utils.ParseDate(date)
	require.NoError(t, err)
	schedule := models.Schedule{
		Date:       utils.TruncateToDate(parsed),
		ProviderID: f.provider.ID,
		PatientID:  &f.patient.ID,
		CreatedBy:  1,
		Timeslots:  slots,
	}
	require.NoError(t, f.db.Create(&schedule).Error)
}

func billingActor() contracts.Actor {
	return contracts.Actor{ID: 700, Email: "coordinator@example.com", Role: models.RoleCoordinator}
}

func TestGenerateInvoice(t *testing.T) {
	t.Run("Sums Billable Timeslots Only", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.seedSchedule(t, "2026-03-02",
			models.Timeslot{StartTime: "09:00", EndTime: "11:00", ServiceID: &f.service.ID, Status: models.TimeslotCompleted},
			models.Timeslot{StartTime: "14:00", EndTime: "15:00", ServiceID: &f.service.ID, Status: models.TimeslotConfirmed},
			models.Timeslot{StartTime: "16:00", EndTime: "17:00", ServiceID: &f.service.ID, Status: models.TimeslotScheduled},
			models.Timeslot{StartTime: "17:00", EndTime: "18:00", ServiceID: &f.service.ID, Status: models.TimeslotCancelled},
		)

		response, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})
		require.NoError(t, err)
		assert.Equal(t, "120.00", response.Amount, "2h completed plus 1h confirmed at 40.00")
		assert.Equal(t, string(models.InvoiceInProgress), response.Status)
		require.Len(t, response.Lines, 2)
		assert.Equal(t, "Nursing", response.Lines[0].ServiceName)

		require.Len(t, f.storage.objects, 1)
		assert.Contains(t, f.storage.objects[0], fmt.Sprintf("invoices/%d/", f.patient.ID))
		require.Len(t, f.actionLog.entries, 1)
		assert.Equal(t, constvars.ActionGenerateInvoice, f.actionLog.entries[0].Action)
	})

	t.Run("Skips Timeslots Without A Service", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.seedSchedule(t, "2026-03-02",
			models.Timeslot{StartTime: "09:00", EndTime: "10:00", ServiceID: &f.service.ID, Status: models.TimeslotCompleted},
			models.Timeslot{StartTime: "10:00", EndTime: "11:00", Status: models.TimeslotCompleted},
		)

		response, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})
		require.NoError(t, err)
		assert.Equal(t, "40.00", response.Amount)
		assert.Len(t, response.Lines, 1)

		require.Len(t, f.actionLog.entries, 1)
		assert.Contains(t, f.actionLog.entries[0].AdditionalData, "skipped_timeslots")
	})

	t.Run("Resolves The Service Through The Prescription", func(t *testing.T) {
		f := newInvoiceFixture(t)
		start, err := utils.ParseDate("2026-03-01")
		require.NoError(t, err)
		prescription := models.Prescription{
			PatientID:  f.patient.ID,
			ServiceID:  f.service.ID,
			Medication: "Insulin",
			StartDate:  utils.TruncateToDate(start),
			Status:     models.PrescriptionAccepted,
		}
		require.NoError(t, f.db.Create(&prescription).Error)
		f.seedSchedule(t, "2026-03-02",
			models.Timeslot{StartTime: "09:00", EndTime: "10:00", PrescriptionID: &prescription.ID, Status: models.TimeslotCompleted},
		)

		response, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})
		require.NoError(t, err)
		assert.Equal(t, "40.00", response.Amount)
		require.Len(t, response.Lines, 1)
		assert.Equal(t, "Nursing", response.Lines[0].ServiceName)

		require.Len(t, f.actionLog.entries, 1)
		assert.NotContains(t, f.actionLog.entries[0].AdditionalData, "skipped_timeslots")
	})

	t.Run("Repeat Request Returns The Existing Invoice", func(t *testing.T) {
		f := newInvoiceFixture(t)
		f.seedSchedule(t, "2026-03-02",
			models.Timeslot{StartTime: "09:00", EndTime: "10:00", ServiceID: &f.service.ID, Status: models.TimeslotCompleted},
		)
		request := &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		}

		first, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), request)
		require.NoError(t, err)

		// A new billable slot after generation must not inflate the repeat.
		f.seedSchedule(t, "2026-03-09",
			models.Timeslot{StartTime: "09:00", EndTime: "10:00", ServiceID: &f.service.ID, Status: models.TimeslotCompleted},
		)

		second, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), request)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Amount, second.Amount)

		var count int64
		require.NoError(t, f.db.Model(&models.Invoice{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Empty Period Produces A Zero Invoice", func(t *testing.T) {
		f := newInvoiceFixture(t)

		response, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-07-01",
			PeriodEnd:   "2026-07-31",
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00", response.Amount)
		assert.Empty(t, response.Lines)
	})

	t.Run("Inverted Period Rejected", func(t *testing.T) {
		f := newInvoiceFixture(t)

		_, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-31",
			PeriodEnd:   "2026-03-01",
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeInvalidRange, customErr.ErrorCode)
	})

	t.Run("Role Check", func(t *testing.T) {
		f := newInvoiceFixture(t)

		_, err := f.usecase.GenerateInvoice(context.Background(), contracts.Actor{ID: 1, Role: models.RoleProvider}, &requests.GenerateInvoice{
			PatientID:   f.patient.ID,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})

	t.Run("Unknown Patient", func(t *testing.T) {
		f := newInvoiceFixture(t)

		_, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
			PatientID:   9999,
			PeriodStart: "2026-03-01",
			PeriodEnd:   "2026-03-31",
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})
}

func TestGetInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	f.seedSchedule(t, "2026-03-02",
		models.Timeslot{StartTime: "09:00", EndTime: "10:00", ServiceID: &f.service.ID, Status: models.TimeslotCompleted},
	)
	generated, err := f.usecase.GenerateInvoice(context.Background(), billingActor(), &requests.GenerateInvoice{
		PatientID:   f.patient.ID,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
	})
	require.NoError(t, err)

	t.Run("Owner Can View", func(t *testing.T) {
		actor := contracts.Actor{ID: f.patient.UserID, Role: models.RolePatient}
		response, err := f.usecase.GetInvoice(context.Background(), actor, generated.ID)
		require.NoError(t, err)
		assert.Equal(t, generated.ID, response.ID)
		assert.Len(t, response.Lines, 1)
	})

	t.Run("Staff Can View", func(t *testing.T) {
		_, err := f.usecase.GetInvoice(context.Background(), billingActor(), generated.ID)
		assert.NoError(t, err)
	})

	t.Run("Another Patient Cannot View", func(t *testing.T) {
		otherUser := models.User{Email: "other@example.com", Password: "x", Role: models.RolePatient, IsActive: true}
		require.NoError(t, f.db.Create(&otherUser).Error)
		require.NoError(t, f.db.Create(&models.Patient{UserID: otherUser.ID, IsAlive: true}).Error)

		_, err := f.usecase.GetInvoice(context.Background(), contracts.Actor{ID: otherUser.ID, Role: models.RolePatient}, generated.ID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})

	t.Run("Unknown Invoice", func(t *testing.T) {
		_, err := f.usecase.GetInvoice(context.Background(), billingActor(), 9999)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})
}

func TestUnpaidInvoices(t *testing.T) {
	f := newInvoiceFixture(t)
	seedInvoice := func(start string, status models.InvoiceStatus) {
		parsed, err := utils.ParseDate(start)
		require.NoError(t, err)
		require.NoError(t, f.db.Create(&models.Invoice{
			PatientID:   f.patient.ID,
			PeriodStart: utils.TruncateToDate(parsed),
			PeriodEnd:   utils.TruncateToDate(parsed.AddDate(0, 1, -1)),
			Status:      status,
			Amount:      decimal.RequireFromString("10.00"),
		}).Error)
	}
	seedInvoice("2026-01-01", models.InvoiceInProgress)
	seedInvoice("2026-02-01", models.InvoiceContested)
	seedInvoice("2026-03-01", models.InvoiceStatus("Open"))
	seedInvoice("2026-04-01", models.InvoicePaid)
	seedInvoice("2026-05-01", models.InvoiceCancelled)

	t.Run("Lists Open Statuses Including Legacy Value", func(t *testing.T) {
		actor := contracts.Actor{ID: f.patient.UserID, Role: models.RolePatient}
		invoices, err := f.usecase.UnpaidInvoices(context.Background(), actor, f.patient.UserID)
		require.NoError(t, err)
		require.Len(t, invoices, 3)
		assert.Equal(t, string(models.InvoiceInProgress), invoices[0].Status)
		assert.Equal(t, string(models.InvoiceInProgress), invoices[2].Status, "legacy Open normalizes to In Progress")
	})

	t.Run("Staff Can Query Any User", func(t *testing.T) {
		invoices, err := f.usecase.UnpaidInvoices(context.Background(), billingActor(), f.patient.UserID)
		require.NoError(t, err)
		assert.Len(t, invoices, 3)
	})

	t.Run("Users Cannot Query Each Other", func(t *testing.T) {
		actor := contracts.Actor{ID: f.patient.UserID + 1, Role: models.RolePatient}
		_, err := f.usecase.UnpaidInvoices(context.Background(), actor, f.patient.UserID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})
}
