package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"

	"gorm.io/gorm"
)

type PrescriptionUsecase interface {
	// ConvertServiceDemand is idempotent: re-running for the same demand
	// returns the prescription created the first time.
	ConvertServiceDemand(ctx context.Context, actor Actor, demandID uint) (*models.Prescription, error)
	IsScheduled(ctx context.Context, prescriptionID uint) (bool, error)
}

type PrescriptionRepository interface {
	WithTx(tx *gorm.DB) PrescriptionRepository
	Create(ctx context.Context, prescription *models.Prescription) error
	FindByID(ctx context.Context, prescriptionID uint) (*models.Prescription, error)
	FindConversion(ctx context.Context, medication string, startDate time.Time, serviceID uint, notePrefix string) (*models.Prescription, error)
	FindServiceDemand(ctx context.Context, demandID uint) (*models.ServiceDemand, error)
	UpdateServiceDemand(ctx context.Context, demand *models.ServiceDemand) error
}
