package prescriptions

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	prescriptionUsecaseInstance contracts.PrescriptionUsecase
	oncePrescriptionUsecase     sync.Once
)

type prescriptionUsecase struct {
	DB                     *gorm.DB
	PrescriptionRepository contracts.PrescriptionRepository
	ScheduleRepository     contracts.ScheduleRepository
	Log                    *zap.Logger
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	prescriptionRepository contracts.PrescriptionRepository,
	scheduleRepository contracts.ScheduleRepository,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	oncePrescriptionUsecase.Do(func() {
		instance := &prescriptionUsecase{
			DB:                     db,
			PrescriptionRepository: prescriptionRepository,
			ScheduleRepository:     scheduleRepository,
			Log:                    logger,
		}
		prescriptionUsecaseInstance = instance
	})
	return prescriptionUsecaseInstance
}

func (uc *prescriptionUsecase) ConvertServiceDemand(ctx context.Context, actor contracts.Actor, demandID uint) (*models.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.ConvertServiceDemand called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint("demand_id", demandID),
	)

	if !actor.Role.IsStaff() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot convert service demands", actor.Role))
	}

	demand, err := uc.PrescriptionRepository.FindServiceDemand(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if demand == nil {
		return nil, exceptions.ErrServiceNotFound(fmt.Errorf("service demand %d not found", demandID))
	}

	notePrefix := fmt.Sprintf(constvars.ServiceDemandNotePrefixFormat, demand.ID)

	var prescription *models.Prescription
	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		repo := uc.PrescriptionRepository.WithTx(tx)

		existing, err := repo.FindConversion(ctx, demand.Medication, demand.StartDate, demand.ServiceID, notePrefix)
		if err != nil {
			return err
		}
		if existing != nil {
			prescription = existing
			return nil
		}

		note := notePrefix
		if details := strings.TrimSpace(demand.Details); details != "" {
			note = notePrefix + " " + details
		}
		prescription = &models.Prescription{
			PatientID:  demand.PatientID,
			ServiceID:  demand.ServiceID,
			Medication: demand.Medication,
			StartDate:  demand.StartDate,
			EndDate:    demand.EndDate,
			Status:     models.PrescriptionPending,
			Frequency:  demand.Frequency,
			Note:       note,
		}
		if err := repo.Create(ctx, prescription); err != nil {
			return err
		}

		demand.Status = models.ServiceDemandConverted
		return repo.UpdateServiceDemand(ctx, demand)
	})
	if err != nil {
		uc.Log.Error("prescriptionUsecase.ConvertServiceDemand error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("prescriptionUsecase.ConvertServiceDemand succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint("prescription_id", prescription.ID),
	)
	return prescription, nil
}

func (uc *prescriptionUsecase) IsScheduled(ctx context.Context, prescriptionID uint) (bool, error) {
	count, err := uc.ScheduleRepository.CountTimeslotsForPrescription(ctx, prescriptionID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
