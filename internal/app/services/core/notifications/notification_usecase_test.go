package notifications

import (
	"context"
	"fmt"
	"testing"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/models"
	"carelink-service/internal/app/services/core/users"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type notificationFixture struct {
	db      *gorm.DB
	usecase *notificationUsecase
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	usecase := &notificationUsecase{
		DB:                     db,
		NotificationRepository: NewNotificationGormRepository(db),
		UserRepository:         users.NewUserGormRepository(db),
		Log:                    zap.NewNop(),
	}
	return &notificationFixture{db: db, usecase: usecase}
}

func (f *notificationFixture) seedTeam(t *testing.T, role models.Role, emails ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(emails))
	for _, email := range emails {
		user := models.User{Email: email, Password: "x", Role: role, IsActive: true}
		require.NoError(t, f.db.Create(&user).Error)
		ids = append(ids, user.ID)
	}
	return ids
}

func TestNotifyScheduleChangeRequested(t *testing.T) {
	t.Run("Creates Ticket And One Notification Per Coordinator", func(t *testing.T) {
		f := newNotificationFixture(t)
		coordinators := f.seedTeam(t, models.RoleCoordinator, "coord1@example.com", "coord2@example.com")
		f.seedTeam(t, models.RoleAdministrator, "admin@example.com")

		requester := contracts.Actor{ID: 5, Email: "patient@example.com", Role: models.RolePatient}
		ticket, err := f.usecase.NotifyScheduleChangeRequested(context.Background(), requester, &models.ScheduleChangeRequest{
			ID:          17,
			TimeslotID:  33,
			RequestType: models.ChangeRequestReschedule,
			Reason:      "clashes with dialysis",
		})
		require.NoError(t, err)
		assert.NotZero(t, ticket.ID)
		assert.Equal(t, constvars.TicketCategoryAppointmentIssue, ticket.Category)
		assert.Equal(t, constvars.TicketPriorityMedium, ticket.Priority)
		assert.Equal(t, constvars.TicketTeamCoordinator, ticket.AssignedTeam)
		assert.Equal(t, models.TicketOpen, ticket.Status)

		var notifications []models.Notification
		require.NoError(t, f.db.Order("recipient_id").Find(&notifications).Error)
		require.Len(t, notifications, 2, "only the coordinator team is notified")
		assert.Equal(t, coordinators[0], notifications[0].RecipientID)
		assert.Equal(t, coordinators[1], notifications[1].RecipientID)
		assert.Equal(t, "schedule_change_requested:17", notifications[0].EventKey)
	})

	t.Run("Inactive Team Members Are Skipped", func(t *testing.T) {
		f := newNotificationFixture(t)
		f.seedTeam(t, models.RoleCoordinator, "active@example.com")
		inactive := models.User{Email: "inactive@example.com", Password: "x", Role: models.RoleCoordinator, IsActive: false}
		require.NoError(t, f.db.Create(&inactive).Error)

		_, err := f.usecase.NotifyScheduleChangeRequested(context.Background(), contracts.Actor{ID: 5}, &models.ScheduleChangeRequest{ID: 1, TimeslotID: 2})
		require.NoError(t, err)

		var count int64
		require.NoError(t, f.db.Model(&models.Notification{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Replay Of The Same Event Does Not Duplicate", func(t *testing.T) {
		f := newNotificationFixture(t)
		f.seedTeam(t, models.RoleCoordinator, "coord@example.com")
		changeRequest := &models.ScheduleChangeRequest{ID: 9, TimeslotID: 4, RequestType: models.ChangeRequestCancel}

		_, err := f.usecase.NotifyScheduleChangeRequested(context.Background(), contracts.Actor{ID: 5}, changeRequest)
		require.NoError(t, err)
		_, err = f.usecase.NotifyScheduleChangeRequested(context.Background(), contracts.Actor{ID: 5}, changeRequest)
		require.NoError(t, err)

		var notificationCount int64
		require.NoError(t, f.db.Model(&models.Notification{}).Count(&notificationCount).Error)
		assert.Equal(t, int64(1), notificationCount)

		// Tickets are not keyed by event; the replay files a second one.
		var ticketCount int64
		require.NoError(t, f.db.Model(&models.Ticket{}).Count(&ticketCount).Error)
		assert.Equal(t, int64(2), ticketCount)
	})
}

func TestNotifyAccountDeletionRequested(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedTeam(t, models.RoleAdministrator, "admin@example.com")

	ticket, err := f.usecase.NotifyAccountDeletionRequested(context.Background(), 77, constvars.TicketPriorityHigh, "")
	require.NoError(t, err)
	assert.Equal(t, constvars.TicketCategoryAccountManagement, ticket.Category)
	assert.Equal(t, constvars.TicketPriorityHigh, ticket.Priority)
	assert.Equal(t, constvars.TicketTeamAdministrator, ticket.AssignedTeam)
	assert.Equal(t, "No reason given", ticket.Body)

	var notification models.Notification
	require.NoError(t, f.db.First(&notification).Error)
	assert.Equal(t, "account_deletion_requested:77", notification.EventKey)
}

func TestNotifyProfileActivationRequired(t *testing.T) {
	f := newNotificationFixture(t)
	f.seedTeam(t, models.RoleAdministrator, "admin@example.com")

	ticket, err := f.usecase.NotifyProfileActivationRequired(context.Background(), 12, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, constvars.TicketCategoryProfileActivation, ticket.Category)
	assert.Equal(t, constvars.TicketPriorityLow, ticket.Priority)
	assert.Contains(t, ticket.Subject, "new@example.com")
}

func TestListNotifications(t *testing.T) {
	f := newNotificationFixture(t)
	recipients := f.seedTeam(t, models.RoleCoordinator, "coord@example.com")
	recipientID := recipients[0]

	for i := 0; i < 3; i++ {
		require.NoError(t, f.db.Create(&models.Notification{
			RecipientID: recipientID,
			EventKey:    fmt.Sprintf("event:%d", i),
			Type:        "schedule_change_requested",
			Title:       fmt.Sprintf("title %d", i),
		}).Error)
	}
	require.NoError(t, f.db.Create(&models.Notification{
		RecipientID: recipientID + 1,
		EventKey:    "event:other",
		Type:        "schedule_change_requested",
	}).Error)

	actor := contracts.Actor{ID: recipientID, Role: models.RoleCoordinator}

	t.Run("Only Own Notifications", func(t *testing.T) {
		list, total, err := f.usecase.ListNotifications(context.Background(), actor, &requests.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, list, 3)
	})

	t.Run("Pagination", func(t *testing.T) {
		list, total, err := f.usecase.ListNotifications(context.Background(), actor, &requests.Pagination{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, list, 1)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	f := newNotificationFixture(t)
	recipients := f.seedTeam(t, models.RoleCoordinator, "coord@example.com")
	recipientID := recipients[0]

	notification := models.Notification{RecipientID: recipientID, EventKey: "event:1", Type: "schedule_change_requested"}
	require.NoError(t, f.db.Create(&notification).Error)
	owner := contracts.Actor{ID: recipientID, Role: models.RoleCoordinator}

	t.Run("Owner Marks As Read", func(t *testing.T) {
		require.NoError(t, f.usecase.MarkNotificationRead(context.Background(), owner, notification.ID))

		var stored models.Notification
		require.NoError(t, f.db.First(&stored, notification.ID).Error)
		assert.True(t, stored.IsRead)
	})

	t.Run("Marking Twice Is A No-Op", func(t *testing.T) {
		assert.NoError(t, f.usecase.MarkNotificationRead(context.Background(), owner, notification.ID))
	})

	t.Run("Foreign Notification Is Forbidden", func(t *testing.T) {
		stranger := contracts.Actor{ID: recipientID + 99, Role: models.RoleCoordinator}
		err := f.usecase.MarkNotificationRead(context.Background(), stranger, notification.ID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeForbidden, customErr.ErrorCode)
	})

	t.Run("Unknown Notification", func(t *testing.T) {
		err := f.usecase.MarkNotificationRead(context.Background(), owner, 9999)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, exceptions.CodeNotFound, customErr.ErrorCode)
	})
}
