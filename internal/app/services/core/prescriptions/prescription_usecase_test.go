package prescriptions

import (
	"context"
	"fmt"
	"testing"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/core/schedules"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type prescriptionFixture struct {
	db      *gorm.DB
	usecase *prescriptionUsecase
}

func newPrescriptionFixture(t *testing.T) *prescriptionFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	usecase := &prescriptionUsecase{
		DB:                     db,
		PrescriptionRepository: NewPrescriptionGormRepository(db),
		ScheduleRepository:     schedules.NewScheduleGormRepository(db),
		Log:                    zap.NewNop(),
	}
	return &prescriptionFixture{db: db, usecase: usecase}
}

func coordinatorActor() contracts.Actor {
	return contracts.Actor{ID: 300, Email: "coordinator@example.com", Role: models.RoleCoordinator}
}

func (f *prescriptionFixture) seedDemand(t *testing.T, details string) *models.ServiceDemand {
	t.Helper()
	start, err := utils.ParseDate("2026-02-01")
	require.NoError(t, err)
	demand := &models.ServiceDemand{
		PatientID:   4,
		ServiceID:   3,
		RequestedBy: 9,
		Status:      models.ServiceDemandPending,
		Medication:  "Insulin",
		StartDate:   utils.TruncateToDate(start),
		Frequency:   "daily",
		Details:     details,
	}
	require.NoError(t, f.db.Create(demand).Error)
	return demand
}

func TestConvertServiceDemand(t *testing.T) {
	t.Run("Creates A Pending Prescription", func(t *testing.T) {
		f := newPrescriptionFixture(t)
		demand := f.seedDemand(t, "twice daily after meals")

		prescription, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), demand.ID)
		require.NoError(t, err)
		assert.Equal(t, demand.PatientID, prescription.PatientID)
		assert.Equal(t, demand.ServiceID, prescription.ServiceID)
		assert.Equal(t, "Insulin", prescription.Medication)
		assert.Equal(t, models.PrescriptionPending, prescription.Status)
		assert.Equal(t, fmt.Sprintf("Service Demand #%d: twice daily after meals", demand.ID), prescription.Note)

		var stored models.ServiceDemand
		require.NoError(t, f.db.First(&stored, demand.ID).Error)
		assert.Equal(t, models.ServiceDemandConverted, stored.Status)
	})

	t.Run("Empty Details Leave A Bare Prefix", func(t *testing.T) {
		f := newPrescriptionFixture(t)
		demand := f.seedDemand(t, "   ")

		prescription, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), demand.ID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Service Demand #%d:", demand.ID), prescription.Note)
	})

	t.Run("Repeat Conversion Returns The Same Prescription", func(t *testing.T) {
		f := newPrescriptionFixture(t)
		demand := f.seedDemand(t, "morning dose")

		first, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), demand.ID)
		require.NoError(t, err)
		second, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), demand.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, f.db.Model(&models.Prescription{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Staff Only", func(t *testing.T) {
		f := newPrescriptionFixture(t)
		demand := f.seedDemand(t, "")

		_, err := f.usecase.ConvertServiceDemand(context.Background(), contracts.Actor{ID: 1, Role: models.RolePatient}, demand.ID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})

	t.Run("Unknown Demand", func(t *testing.T) {
		f := newPrescriptionFixture(t)

		_, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), 9999)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})
}

func TestIsScheduled(t *testing.T) {
	f := newPrescriptionFixture(t)
	demand := f.seedDemand(t, "")
	prescription, err := f.usecase.ConvertServiceDemand(context.Background(), coordinatorActor(), demand.ID)
	require.NoError(t, err)

	t.Run("Not Scheduled Yet", func(t *testing.T) {
		scheduled, err := f.usecase.IsScheduled(context.Background(), prescription.ID)
		require.NoError(t, err)
		assert.False(t, scheduled)
	})

	t.Run("Scheduled Once A Timeslot References It", func(t *testing.T) {
		start, err := utils.ParseDate("2026-02-03")
		require.NoError(t, err)
		schedule := models.Schedule{
			Date:       utils.TruncateToDate(start),
			ProviderID: 1,
			PatientID:  &prescription.PatientID,
			CreatedBy:  1,
			Timeslots: []models.Timeslot{{
				StartTime:      "09:00",
				EndTime:        "10:00",
				ServiceID:      &prescription.ServiceID,
				PrescriptionID: &prescription.ID,
				Status:         models.TimeslotScheduled,
			}},
		}
		require.NoError(t, f.db.Create(&schedule).Error)

		scheduled, err := f.usecase.IsScheduled(context.Background(), prescription.ID)
		require.NoError(t, err)
		assert.True(t, scheduled)
	})
}
