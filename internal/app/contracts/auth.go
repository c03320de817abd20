package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.Register) (*responses.Register, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Refresh(ctx context.Context, refreshToken string) (*responses.Refresh, error)
	Logout(ctx context.Context, refreshToken string) (*responses.Logout, error)
	RefreshTokenTTL() time.Duration
}

type TokenRepository interface {
	WithTx(tx *gorm.DB) TokenRepository
	CreateOutstanding(ctx context.Context, token *models.OutstandingRefreshToken) error
	FindOutstandingByJTI(ctx context.Context, jti string) (*models.OutstandingRefreshToken, error)
	IsBlacklisted(ctx context.Context, tokenID uint) (bool, error)
	Blacklist(ctx context.Context, tokenID uint) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
