package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/core/invoices"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
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

type deletionTicket struct {
	userID   uint
	priority string
}

type stubNotificationUsecase struct {
	deletionTickets []deletionTicket
}

func (s *stubNotificationUsecase) NotifyScheduleChangeRequested(ctx context.Context, requester contracts.Actor, changeRequest *models.ScheduleChangeRequest) (*models.Ticket, error) {
	return &models.Ticket{}, nil
}

func (s *stubNotificationUsecase) NotifyAccountDeletionRequested(ctx context.Context, userID uint, priority, reason string) (*models.Ticket, error) {
	s.deletionTickets = append(s.deletionTickets, deletionTicket{userID: userID, priority: priority})
	return &models.Ticket{}, nil
}

func (s *stubNotificationUsecase) NotifyProfileActivationRequired(ctx context.Context, userID uint, email string) (*models.Ticket, error) {
	return &models.Ticket{}, nil
}

func (s *stubNotificationUsecase) ListNotifications(ctx context.Context, actor contracts.Actor, pagination *requests.Pagination) ([]responses.Notification, int, error) {
	return nil, 0, nil
}

func (s *stubNotificationUsecase) MarkNotificationRead(ctx context.Context, actor contracts.Actor, notificationID uint) error {
	return nil
}

type recordingActionLog struct {
	entries []models.ActionLogEntry
}

func (s *recordingActionLog) Record(ctx context.Context, entry *models.ActionLogEntry) error {
	s.entries = append(s.entries, *entry)
	return nil
}

type userFixture struct {
	db        *gorm.DB
	usecase   *userUsecase
	notifier  *stubNotificationUsecase
	actionLog *recordingActionLog
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	notifier := &stubNotificationUsecase{}
	actionLog := &recordingActionLog{}
	usecase := &userUsecase{
		DB:                  db,
		UserRepository:      NewUserGormRepository(db),
		PatientRepository:   NewPatientGormRepository(db),
		InvoiceRepository:   invoices.NewInvoiceGormRepository(db),
		NotificationUsecase: notifier,
		ActionLogService:    actionLog,
		Log:                 zap.NewNop(),
	}
	return &userFixture{db: db, usecase: usecase, notifier: notifier, actionLog: actionLog}
}

func adminActor() contracts.Actor {
	return contracts.Actor{ID: 800, Email: "admin@example.com", Role: models.RoleAdministrator}
}

func (f *userFixture) seedPatientUser(t *testing.T, email string) (*models.User, *models.Patient) {
	t.Helper()
	user := &models.User{
		Email:          email,
		Password:       "hashed",
		FirstName:      "Marc",
		LastName:       "Janssens",
		Role:           models.RolePatient,
		IsActive:       true,
		NationalNumber: "85.01.01-123.45",
	}
	require.NoError(t, f.db.Create(user).Error)
	patient := &models.Patient{UserID: user.ID, IsAlive: true, DoctorName: "Dr. Maes", DoctorPhone: "02 123 45 67", ClinicalNotes: "diabetic"}
	require.NoError(t, f.db.Create(patient).Error)
	return user, patient
}

func (f *userFixture) seedInvoice(t *testing.T, patientID uint, status models.InvoiceStatus, periodStart string) {
	t.Helper()
	parsed, err := utils.ParseDate(periodStart)
	require.NoError(t, err)
	require.NoError(t, f.db.Create(&models.Invoice{
		PatientID:   patientID,
		PeriodStart: utils.TruncateToDate(parsed),
		PeriodEnd:   utils.TruncateToDate(parsed.AddDate(0, 1, -1)),
		Status:      status,
		Amount:      decimal.RequireFromString("25.00"),
	}).Error)
}

func TestCreateUser(t *testing.T) {
	t.Run("Creates Active Staff User", func(t *testing.T) {
		f := newUserFixture(t)

		response, err := f.usecase.CreateUser(context.Background(), adminActor(), &requests.CreateUser{
			Email:     "nurse@example.com",
			Password:  "Sup3rSecret!",
			FirstName: "Els",
			LastName:  "De Smet",
			Role:      string(models.RoleProvider),
		})
		require.NoError(t, err)
		assert.True(t, response.IsActive)

		var count int64
		require.NoError(t, f.db.Model(&models.Patient{}).Count(&count).Error)
		assert.Equal(t, int64(0), count, "staff accounts get no patient profile")
	})

	t.Run("Patient Role Gets A Patient Profile", func(t *testing.T) {
		f := newUserFixture(t)

		response, err := f.usecase.CreateUser(context.Background(), adminActor(), &requests.CreateUser{
			Email:     "patient@example.com",
			Password:  "Sup3rSecret!",
			FirstName: "An",
			LastName:  "Jacobs",
			Role:      string(models.RolePatient),
		})
		require.NoError(t, err)

		var patient models.Patient
		require.NoError(t, f.db.Where("user_id = ?", response.ID).First(&patient).Error)
		assert.True(t, patient.IsAlive)
	})

	t.Run("Unknown Role Rejected", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.usecase.CreateUser(context.Background(), adminActor(), &requests.CreateUser{
			Email:     "x@example.com",
			Password:  "Sup3rSecret!",
			FirstName: "X",
			LastName:  "Y",
			Role:      "Superuser",
		})
		assert.Error(t, err)
	})

	t.Run("Requires User Management Rights", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.usecase.CreateUser(context.Background(), contracts.Actor{ID: 1, Role: models.RoleCoordinator}, &requests.CreateUser{
			Email:     "x@example.com",
			Password:  "Sup3rSecret!",
			FirstName: "X",
			LastName:  "Y",
			Role:      string(models.RolePatient),
		})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Hard Deletes Accounts Without A Patient Record", func(t *testing.T) {
		f := newUserFixture(t)
		staff := &models.User{Email: "staff@example.com", Password: "x", Role: models.RoleCoordinator, IsActive: true}
		require.NoError(t, f.db.Create(staff).Error)

		response, err := f.usecase.DeleteUser(context.Background(), adminActor(), staff.ID, &requests.DeleteUser{})
		require.NoError(t, err)
		assert.Equal(t, detailHardDeleted, response.Detail)

		var count int64
		require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", staff.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Open Invoices Block Deletion", func(t *testing.T) {
		f := newUserFixture(t)
		user, patient := f.seedPatientUser(t, "blocked@example.com")
		f.seedInvoice(t, patient.ID, models.InvoiceInProgress, "2026-01-01")

		_, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{Reason: "moving abroad"})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeAccountOpenInvoices, customErr.ErrorCode)

		require.Len(t, f.notifier.deletionTickets, 1)
		assert.Equal(t, constvars.TicketPriorityHigh, f.notifier.deletionTickets[0].priority)

		var stored models.User
		require.NoError(t, f.db.First(&stored, user.ID).Error)
		assert.True(t, stored.IsActive, "a blocked deletion leaves the account untouched")
	})

	t.Run("Legacy Open Status Blocks Too", func(t *testing.T) {
		f := newUserFixture(t)
		user, patient := f.seedPatientUser(t, "legacy@example.com")
		f.seedInvoice(t, patient.ID, models.InvoiceStatus("Open"), "2026-01-01")

		_, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeAccountOpenInvoices, customErr.ErrorCode)
	})

	t.Run("Recent Invoice Downgrades To Deactivation", func(t *testing.T) {
		f := newUserFixture(t)
		user, patient := f.seedPatientUser(t, "recent@example.com")
		// Paid, so not open, but created inside the 30 day window.
		f.seedInvoice(t, patient.ID, models.InvoicePaid, "2026-01-01")

		response, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{Reason: "own request"})
		require.NoError(t, err)
		assert.Equal(t, detailRecentGuard, response.Detail)
		assert.False(t, response.Anonymized)

		var stored models.User
		require.NoError(t, f.db.First(&stored, user.ID).Error)
		assert.False(t, stored.IsActive)
		assert.False(t, stored.IsAnonymized)

		require.Len(t, f.notifier.deletionTickets, 1)
		assert.Equal(t, constvars.TicketPriorityMedium, f.notifier.deletionTickets[0].priority)
	})

	t.Run("Deactivates Without Anonymization", func(t *testing.T) {
		f := newUserFixture(t)
		user, _ := f.seedPatientUser(t, "quiet@example.com")

		response, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{})
		require.NoError(t, err)
		assert.Equal(t, detailDeactivated, response.Detail)

		var stored models.User
		require.NoError(t, f.db.First(&stored, user.ID).Error)
		assert.False(t, stored.IsActive)
		assert.Equal(t, "quiet@example.com", stored.Email)
	})

	t.Run("Anonymize Scrubs Identifiers", func(t *testing.T) {
		f := newUserFixture(t)
		user, patient := f.seedPatientUser(t, "gdpr@example.com")
		require.NoError(t, f.db.Create(&models.MedicalFolder{PatientID: patient.ID, Notes: "long history"}).Error)

		response, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{Anonymize: true, Reason: "erasure request"})
		require.NoError(t, err)
		assert.True(t, response.Anonymized)
		assert.Equal(t, detailAnonymized, response.Detail)

		var stored models.User
		require.NoError(t, f.db.First(&stored, user.ID).Error)
		assert.Equal(t, anonymizedPlaceholder, stored.FirstName)
		assert.Equal(t, anonymizedPlaceholder, stored.LastName)
		assert.Equal(t, fmt.Sprintf("anon%d@example.com", user.ID), stored.Email)
		assert.Empty(t, stored.NationalNumber)
		assert.Nil(t, stored.BirthDate)
		assert.True(t, stored.IsAnonymized)
		assert.False(t, stored.IsActive)

		var storedPatient models.Patient
		require.NoError(t, f.db.First(&storedPatient, patient.ID).Error)
		assert.True(t, storedPatient.IsAnonymized)
		assert.Equal(t, anonymizedFolderNotes, storedPatient.ClinicalNotes)
		assert.Equal(t, anonymizedPlaceholder, storedPatient.DoctorName)

		var folder models.MedicalFolder
		require.NoError(t, f.db.Where("patient_id = ?", patient.ID).First(&folder).Error)
		assert.Equal(t, anonymizedFolderNotes, folder.Notes)
	})

	t.Run("Old Invoice Activity Does Not Downgrade", func(t *testing.T) {
		f := newUserFixture(t)
		user, patient := f.seedPatientUser(t, "ancient@example.com")
		f.seedInvoice(t, patient.ID, models.InvoicePaid, "2024-01-01")
		require.NoError(t, f.db.Model(&models.Invoice{}).
			Where("patient_id = ?", patient.ID).
			Update("created_at", time.Now().UTC().AddDate(0, 0, -90)).Error)

		response, err := f.usecase.DeleteUser(context.Background(), adminActor(), user.ID, &requests.DeleteUser{})
		require.NoError(t, err)
		assert.Equal(t, detailDeactivated, response.Detail)
		assert.Empty(t, f.notifier.deletionTickets)
	})

	t.Run("Requires User Management Rights", func(t *testing.T) {
		f := newUserFixture(t)
		user, _ := f.seedPatientUser(t, "guarded@example.com")

		_, err := f.usecase.DeleteUser(context.Background(), contracts.Actor{ID: 1, Role: models.RoleProvider}, user.ID, &requests.DeleteUser{})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})

	t.Run("Unknown User", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.usecase.DeleteUser(context.Background(), adminActor(), 9999, &requests.DeleteUser{})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})
}
