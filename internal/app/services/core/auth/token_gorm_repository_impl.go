package auth

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type tokenGormRepository struct {
	DB *gorm.DB
}

func NewTokenGormRepository(db *gorm.DB) contracts.TokenRepository {
	return &tokenGormRepository{DB: db}
}

func (r *tokenGormRepository) WithTx(tx *gorm.DB) contracts.TokenRepository {
	return &tokenGormRepository{DB: tx}
}

func (r *tokenGormRepository) CreateOutstanding(ctx context.Context, token *models.OutstandingRefreshToken) error {
	if err := r.DB.WithContext(ctx).Create(token).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *tokenGormRepository) FindOutstandingByJTI(ctx context.Context, jti string) (*models.OutstandingRefreshToken, error) {
	var token models.OutstandingRefreshToken
	err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &token, nil
}

func (r *tokenGormRepository) IsBlacklisted(ctx context.Context, tokenID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.BlacklistedToken{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	if err != nil {
		return false, exceptions.ErrDatabaseOperation(err)
	}
	return count > 0, nil
}

func (r *tokenGormRepository) Blacklist(ctx context.Context, tokenID uint) error {
	entry := &models.BlacklistedToken{
		TokenID:       tokenID,
		BlacklistedAt: time.Now().UTC(),
	}
	err := r.DB.WithContext(ctx).Create(entry).Error
	if err != nil {
		// The unique index on token_id makes repeat blacklisting a no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *tokenGormRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	blacklist := r.DB.WithContext(ctx).
		Where("token_id IN (?)", r.DB.Model(&models.OutstandingRefreshToken{}).
			Select("id").
			Where("expires_at < ?", before)).
		Delete(&models.BlacklistedToken{})
	if blacklist.Error != nil {
		return 0, exceptions.ErrDatabaseOperation(blacklist.Error)
	}

	result := r.DB.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&models.OutstandingRefreshToken{})
	if result.Error != nil {
		return 0, exceptions.ErrDatabaseOperation(result.Error)
	}
	return result.RowsAffected, nil
}
