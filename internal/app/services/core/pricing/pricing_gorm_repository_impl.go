package pricing

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type PricingGormRepository struct {
	DB *gorm.DB
}

func NewPricingGormRepository(db *gorm.DB) contracts.PricingRepository {
	return &PricingGormRepository{DB: db}
}

func (repo *PricingGormRepository) WithTx(tx *gorm.DB) contracts.PricingRepository {
	return &PricingGormRepository{DB: tx}
}

func (repo *PricingGormRepository) FindServiceByID(ctx context.Context, serviceID uint) (*models.Service, error) {
	var service models.Service
	err := repo.DB.WithContext(ctx).First(&service, serviceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &service, nil
}

func (repo *PricingGormRepository) FindPatientServicePrice(ctx context.Context, patientID, serviceID uint) (*models.PatientServicePrice, error) {
	var override models.PatientServicePrice
	err := repo.DB.WithContext(ctx).
		Where("patient_id = ? AND service_id = ?", patientID, serviceID).
		First(&override).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &override, nil
}
