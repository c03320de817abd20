package consents

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type consentGormRepository struct {
	DB *gorm.DB
}

func NewConsentGormRepository(db *gorm.DB) contracts.ConsentRepository {
	return &consentGormRepository{DB: db}
}

func (r *consentGormRepository) WithTx(tx *gorm.DB) contracts.ConsentRepository {
	return &consentGormRepository{DB: tx}
}

func (r *consentGormRepository) Create(ctx context.Context, consent *models.CookieConsent) error {
	if err := r.DB.WithContext(ctx).Create(consent).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *consentGormRepository) Update(ctx context.Context, consent *models.CookieConsent) error {
	if err := r.DB.WithContext(ctx).Save(consent).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *consentGormRepository) subjectScope(userID *uint, anonymousID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID != nil {
			return db.Where("user_id = ?", *userID)
		}
		return db.Where("user_id IS NULL AND anonymous_id = ?", anonymousID)
	}
}

func (r *consentGormRepository) FindLatestActive(ctx context.Context, userID *uint, anonymousID string, now time.Time) (*models.CookieConsent, error) {
	var consent models.CookieConsent
	err := r.DB.WithContext(ctx).
		Scopes(r.subjectScope(userID, anonymousID)).
		Where("withdrawn_at IS NULL AND expires_at > ?", now).
		Order("created_at DESC").
		First(&consent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &consent, nil
}

func (r *consentGormRepository) ListBySubject(ctx context.Context, userID *uint, anonymousID string, offset, limit int) ([]models.CookieConsent, int64, error) {
	var total int64
	base := r.DB.WithContext(ctx).
		Model(&models.CookieConsent{}).
		Scopes(r.subjectScope(userID, anonymousID))
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}

	var consents []models.CookieConsent
	err := r.DB.WithContext(ctx).
		Scopes(r.subjectScope(userID, anonymousID)).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&consents).Error
	if err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}
	return consents, total, nil
}

func (r *consentGormRepository) ListAll(ctx context.Context, offset, limit int) ([]models.CookieConsent, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.CookieConsent{}).Count(&total).Error; err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}

	var consents []models.CookieConsent
	err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&consents).Error
	if err != nil {
		return nil, 0, exceptions.ErrDatabaseOperation(err)
	}
	return consents, total, nil
}

func (r *consentGormRepository) Stats(ctx context.Context, now time.Time) (*contracts.ConsentStatsRow, error) {
	row := &contracts.ConsentStatsRow{}
	db := r.DB.WithContext(ctx).Model(&models.CookieConsent{})

	type counter struct {
		dest  *int64
		scope func(*gorm.DB) *gorm.DB
	}
	counters := []counter{
		{&row.Total, func(db *gorm.DB) *gorm.DB { return db }},
		{&row.Active, func(db *gorm.DB) *gorm.DB {
			return db.Where("withdrawn_at IS NULL AND expires_at > ?", now)
		}},
		{&row.Withdrawn, func(db *gorm.DB) *gorm.DB {
			return db.Where("withdrawn_at IS NOT NULL")
		}},
		{&row.Expired, func(db *gorm.DB) *gorm.DB {
			return db.Where("withdrawn_at IS NULL AND expires_at <= ?", now)
		}},
		{&row.AnalyticsOptIn, func(db *gorm.DB) *gorm.DB {
			return db.Where("withdrawn_at IS NULL AND expires_at > ? AND analytics = ?", now, models.ConsentGranted)
		}},
		{&row.MarketingOptIn, func(db *gorm.DB) *gorm.DB {
			return db.Where("withdrawn_at IS NULL AND expires_at > ? AND marketing = ?", now, models.ConsentGranted)
		}},
	}
	for _, c := range counters {
		if err := c.scope(db.Session(&gorm.Session{})).Count(c.dest).Error; err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
	}
	return row, nil
}
