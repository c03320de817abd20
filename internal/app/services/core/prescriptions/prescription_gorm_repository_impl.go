package prescriptions

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"gorm.io/gorm"
)

type prescriptionGormRepository struct {
	DB *gorm.DB
}

func NewPrescriptionGormRepository(db *gorm.DB) contracts.PrescriptionRepository {
	return &prescriptionGormRepository{DB: db}
}

func (r *prescriptionGormRepository) WithTx(tx *gorm.DB) contracts.PrescriptionRepository {
	return &prescriptionGormRepository{DB: tx}
}

func (r *prescriptionGormRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if err := r.DB.WithContext(ctx).Create(prescription).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *prescriptionGormRepository) FindByID(ctx context.Context, prescriptionID uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.DB.WithContext(ctx).First(&prescription, prescriptionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &prescription, nil
}

func (r *prescriptionGormRepository) FindConversion(ctx context.Context, medication string, startDate time.Time, serviceID uint, notePrefix string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.DB.WithContext(ctx).
		Where("medication = ? AND start_date = ? AND service_id = ? AND note LIKE ?",
			medication, utils.TruncateToDate(startDate), serviceID, notePrefix+"%").
		First(&prescription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &prescription, nil
}

func (r *prescriptionGormRepository) FindServiceDemand(ctx context.Context, demandID uint) (*models.ServiceDemand, error) {
	var demand models.ServiceDemand
	err := r.DB.WithContext(ctx).First(&demand, demandID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &demand, nil
}

func (r *prescriptionGormRepository) UpdateServiceDemand(ctx context.Context, demand *models.ServiceDemand) error {
	if err := r.DB.WithContext(ctx).Save(demand).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}
