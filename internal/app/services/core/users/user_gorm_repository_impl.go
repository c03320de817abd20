package users

import (
	"context"
	"errors"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"

	"gorm.io/gorm"
)

type userGormRepository struct {
	DB *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) contracts.UserRepository {
	return &userGormRepository{DB: db}
}

func (r *userGormRepository) WithTx(tx *gorm.DB) contracts.UserRepository {
	return &userGormRepository{DB: tx}
}

func (r *userGormRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return exceptions.ErrEmailAlreadyExist(err)
		}
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *userGormRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Save(user).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *userGormRepository) Delete(ctx context.Context, userID uint) error {
	if err := r.DB.WithContext(ctx).Delete(&models.User{}, userID).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *userGormRepository) FindByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &user, nil
}

func (r *userGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &user, nil
}

func (r *userGormRepository) ListActiveByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return users, nil
}
