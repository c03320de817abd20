package contracts

import (
	"context"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, actor Actor, request *requests.CreateUser) (*responses.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID uint, request *requests.DeleteUser) (*responses.DeleteUser, error)
}

// Repositories return (nil, nil) when the row is absent; callers decide
// whether absence is an error.
type UserRepository interface {
	WithTx(tx *gorm.DB) UserRepository
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, userID uint) error
	FindByID(ctx context.Context, userID uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListActiveByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

type ProviderRepository interface {
	WithTx(tx *gorm.DB) ProviderRepository
	FindByID(ctx context.Context, providerID uint) (*models.Provider, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Provider, error)
	HasActiveContract(ctx context.Context, providerID uint) (bool, error)
}

type PatientRepository interface {
	WithTx(tx *gorm.DB) PatientRepository
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, patientID uint) (*models.Patient, error)
	FindByUserID(ctx context.Context, userID uint) (*models.Patient, error)
	ListFamilyLinks(ctx context.Context, familyUserID uint) ([]models.FamilyPatientLink, error)
	OverwriteMedicalFolderNotes(ctx context.Context, patientID uint, notes string) error
}
