package users

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type providerGormRepository struct {
	DB *gorm.DB
}

func NewProviderGormRepository(db *gorm.DB) contracts.ProviderRepository {
	return &providerGormRepository{DB: db}
}

func (r *providerGormRepository) WithTx(tx *gorm.DB) contracts.ProviderRepository {
	return &providerGormRepository{DB: tx}
}

func (r *providerGormRepository) FindByID(ctx context.Context, providerID uint) (*models.Provider, error) {
	var provider models.Provider
	err := r.DB.WithContext(ctx).Preload("User").First(&provider, providerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &provider, nil
}

func (r *providerGormRepository) FindByUserID(ctx context.Context, userID uint) (*models.Provider, error) {
	var provider models.Provider
	err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&provider).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &provider, nil
}

func (r *providerGormRepository) HasActiveContract(ctx context.Context, providerID uint) (bool, error) {
	now := time.Now().UTC()
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Contract{}).
		Where("provider_id = ? AND status = ?", providerID, models.ContractActive).
		Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", now, now).
		Count(&count).Error
	if err != nil {
		return false, exceptions.ErrDatabaseOperation(err)
	}
	return count > 0, nil
}
