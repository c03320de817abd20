package contracts

import (
	"context"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

const (
	EventScheduleChangeRequested  = "schedule_change_requested"
	EventAccountDeletionRequested = "account_deletion_requested"
	EventProfileActivation        = "profile_activation_required"
)

type NotificationUsecase interface {
	NotifyScheduleChangeRequested(ctx context.Context, requester Actor, changeRequest *models.ScheduleChangeRequest) (*models.Ticket, error)
	NotifyAccountDeletionRequested(ctx context.Context, userID uint, priority, reason string) (*models.Ticket, error)
	NotifyProfileActivationRequired(ctx context.Context, userID uint, email string) (*models.Ticket, error)
	ListNotifications(ctx context.Context, actor Actor, pagination *requests.Pagination) ([]responses.Notification, int, error)
	MarkNotificationRead(ctx context.Context, actor Actor, notificationID uint) error
}

type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	// CreateIfAbsent inserts unless a notification with the same recipient
	// and event key exists; it reports whether a row was written.
	CreateIfAbsent(ctx context.Context, notification *models.Notification) (bool, error)
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	ListByRecipient(ctx context.Context, recipientID uint, offset, limit int) ([]models.Notification, int64, error)
	FindByID(ctx context.Context, notificationID uint) (*models.Notification, error)
	Update(ctx context.Context, notification *models.Notification) error
}
