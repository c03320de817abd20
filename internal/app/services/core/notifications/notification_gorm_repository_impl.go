package notifications

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type notificationGormRepository struct {
	DB *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) contracts.NotificationRepository {
	return &notificationGormRepository{DB: db}
}

func (r *notificationGormRepository) WithTx(tx *gorm.DB) contracts.NotificationRepository {
	return &notificationGormRepository{DB: tx}
}

func (r *notificationGormRepository) CreateIfAbsent(ctx context.Context, notification *models.Notification) (bool, error) {
	err := r.DB.WithContext(ctx).Create(notification).Error
	if err != nil {
		// idx_notification_event dedupes repeated fan-out of one event.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, exceptions.ErrDatabaseOperation(err)
	}
	return true, nil
}

func (r *notificationGormRepository) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := r.DB.WithContext(ctx).Create(ticket).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *notificationGormRepository) ListByRecipient(ctx context.Context, recipientID uint, offset, limit int) ([]models.Notification, int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).
		Count(&total).Error
	if err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}

	var notifications []models.Notification
	err = r.DB.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}
	return notifications, total, nil
}

func (r *notificationGormRepository) FindByID(ctx context.Context, notificationID uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.DB.WithContext(ctx).First(&notification, notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &notification, nil
}

func (r *notificationGormRepository) Update(ctx context.Context, notification *models.Notification) error {
	if err := r.DB.WithContext(ctx).Save(notification).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}
