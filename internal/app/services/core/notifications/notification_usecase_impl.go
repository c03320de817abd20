package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	notificationUsecaseInstance contracts.NotificationUsecase
	onceNotificationUsecase     sync.Once
)

type notificationUsecase struct {
	DB                     *gorm.DB
	NotificationRepository contracts.NotificationRepository
	UserRepository         contracts.UserRepository
	Log                    *zap.Logger
}

func NewNotificationUsecase(
	db *gorm.DB,
	notificationRepository contracts.NotificationRepository,
	userRepository contracts.UserRepository,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	onceNotificationUsecase.Do(func() {
		instance := &notificationUsecase{
			DB:                     db,
			NotificationRepository: notificationRepository,
			UserRepository:         userRepository,
			Log:                    logger,
		}
		notificationUsecaseInstance = instance
	})
	return notificationUsecaseInstance
}

func (uc *notificationUsecase) NotifyScheduleChangeRequested(ctx context.Context, requester contracts.Actor, changeRequest *models.ScheduleChangeRequest) (*models.Ticket, error) {
	subject := fmt.Sprintf("Schedule change requested for timeslot %d", changeRequest.TimeslotID)
	body := fmt.Sprintf("%s requested to %s timeslot %d: %s",
		requester.Email, changeRequest.RequestType, changeRequest.TimeslotID, changeRequest.Reason)

	ticket := &models.Ticket{
		Category:     constvars.TicketCategoryAppointmentIssue,
		Priority:     constvars.TicketPriorityMedium,
		AssignedTeam: constvars.TicketTeamCoordinator,
		Status:       models.TicketOpen,
		Subject:      subject,
		Body:         body,
		CreatedBy:    requester.ID,
	}
	eventKey := fmt.Sprintf("%s:%d", contracts.EventScheduleChangeRequested, changeRequest.ID)

	err := uc.fanOut(ctx, ticket, models.RoleCoordinator, eventKey, contracts.EventScheduleChangeRequested, subject, body)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (uc *notificationUsecase) NotifyAccountDeletionRequested(ctx context.Context, userID uint, priority, reason string) (*models.Ticket, error) {
	subject := fmt.Sprintf("Account deletion requested for user %d", userID)
	body := reason
	if body == "" {
		body = "No reason given"
	}

	ticket := &models.Ticket{
		Category:     constvars.TicketCategoryAccountManagement,
		Priority:     priority,
		AssignedTeam: constvars.TicketTeamAdministrator,
		Status:       models.TicketOpen,
		Subject:      subject,
		Body:         body,
	}
	eventKey := fmt.Sprintf("%s:%d", contracts.EventAccountDeletionRequested, userID)

	err := uc.fanOut(ctx, ticket, models.RoleAdministrator, eventKey, contracts.EventAccountDeletionRequested, subject, body)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (uc *notificationUsecase) NotifyProfileActivationRequired(ctx context.Context, userID uint, email string) (*models.Ticket, error) {
	subject := fmt.Sprintf("New registration awaiting activation: %s", email)
	body := fmt.Sprintf("User %d registered with %s and needs manual activation.", userID, email)

	ticket := &models.Ticket{
		Category:     constvars.TicketCategoryProfileActivation,
		Priority:     constvars.TicketPriorityLow,
		AssignedTeam: constvars.TicketTeamAdministrator,
		Status:       models.TicketOpen,
		Subject:      subject,
		Body:         body,
	}
	eventKey := fmt.Sprintf("%s:%d", contracts.EventProfileActivation, userID)

	err := uc.fanOut(ctx, ticket, models.RoleAdministrator, eventKey, contracts.EventProfileActivation, subject, body)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// fanOut writes the ticket and one notification per active member of the
// assigned team, all in one transaction. The unique event key keeps a re-run
// from duplicating notifications.
func (uc *notificationUsecase) fanOut(ctx context.Context, ticket *models.Ticket, recipientRole models.Role, eventKey, eventType, title, message string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	recipients, err := uc.UserRepository.ListActiveByRole(ctx, recipientRole)
	if err != nil {
		return err
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		repo := uc.NotificationRepository.WithTx(tx)
		if err := repo.CreateTicket(ctx, ticket); err != nil {
			return err
		}
		for _, recipient := range recipients {
			created, err := repo.CreateIfAbsent(ctx, &models.Notification{
				RecipientID: recipient.ID,
				EventKey:    eventKey,
				Type:        eventType,
				Title:       title,
				Message:     message,
			})
			if err != nil {
				return err
			}
			if !created {
				uc.Log.Debug("notificationUsecase fan-out deduplicated",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Uint(constvars.LoggingUserIDKey, recipient.ID),
					zap.String("event_key", eventKey),
				)
			}
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("notificationUsecase fan-out error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("event_key", eventKey),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("notificationUsecase fan-out succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("event_key", eventKey),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func (uc *notificationUsecase) ListNotifications(ctx context.Context, actor contracts.Actor, pagination *requests.Pagination) ([]responses.Notification, int, error) {
	offset := (pagination.Page - 1) * pagination.PageSize
	notifications, total, err := uc.NotificationRepository.ListByRecipient(ctx, actor.ID, offset, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}

	result := make([]responses.Notification, 0, len(notifications))
	for _, notification := range notifications {
		result = append(result, responses.Notification{
			ID:          notification.ID,
			RecipientID: notification.RecipientID,
			Type:        notification.Type,
			Title:       notification.Title,
			Message:     notification.Message,
			IsRead:      notification.IsRead,
			CreatedAt:   notification.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return result, int(total), nil
}

func (uc *notificationUsecase) MarkNotificationRead(ctx context.Context, actor contracts.Actor, notificationID uint) error {
	notification, err := uc.NotificationRepository.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return exceptions.ErrNotificationNotFound(fmt.Errorf("notification %d not found", notificationID))
	}
	if notification.RecipientID != actor.ID {
		return exceptions.ErrForbiddenRole(fmt.Errorf("notification %d belongs to another user", notificationID))
	}
	if notification.IsRead {
		return nil
	}
	notification.IsRead = true
	return uc.NotificationRepository.Update(ctx, notification)
}
