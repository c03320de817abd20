package users

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type patientGormRepository struct {
	DB *gorm.DB
}

func NewPatientGormRepository(db *gorm.DB) contracts.PatientRepository {
	return &patientGormRepository{DB: db}
}

func (r *patientGormRepository) WithTx(tx *gorm.DB) contracts.PatientRepository {
	return &patientGormRepository{DB: tx}
}

func (r *patientGormRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.DB.WithContext(ctx).Create(patient).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *patientGormRepository) Update(ctx context.Context, patient *models.Patient) error {
	if err := r.DB.WithContext(ctx).Save(patient).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *patientGormRepository) FindByID(ctx context.Context, patientID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.DB.WithContext(ctx).Preload("User").First(&patient, patientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &patient, nil
}

func (r *patientGormRepository) FindByUserID(ctx context.Context, userID uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.DB.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &patient, nil
}

func (r *patientGormRepository) ListFamilyLinks(ctx context.Context, familyUserID uint) ([]models.FamilyPatientLink, error) {
	var links []models.FamilyPatientLink
	err := r.DB.WithContext(ctx).
		Where("family_user_id = ?", familyUserID).
		Find(&links).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return links, nil
}

func (r *patientGormRepository) OverwriteMedicalFolderNotes(ctx context.Context, patientID uint, notes string) error {
	err := r.DB.WithContext(ctx).
		Model(&models.MedicalFolder{}).
		Where("patient_id = ?", patientID).
		Update("notes", notes).Error
	if err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}
