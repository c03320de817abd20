package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

type ConsentUsecase interface {
	// StoreConsent resolves the subject from the actor when authenticated,
	// otherwise from the anonymous identifier.
	StoreConsent(ctx context.Context, actor *Actor, request *requests.StoreConsent) (*responses.Consent, error)
	WithdrawConsent(ctx context.Context, actor *Actor, request *requests.WithdrawConsent) error
	History(ctx context.Context, actor Actor, pagination *requests.Pagination) ([]responses.Consent, int, error)
	Stats(ctx context.Context) (*responses.ConsentStats, error)
	List(ctx context.Context, actor Actor, pagination *requests.Pagination) ([]responses.Consent, int, error)
}

type ConsentStatsRow struct {
	Total          int64
	Active         int64
	Withdrawn      int64
	Expired        int64
	AnalyticsOptIn int64
	MarketingOptIn int64
}

type ConsentRepository interface {
	WithTx(tx *gorm.DB) ConsentRepository
	Create(ctx context.Context, consent *models.CookieConsent) error
	Update(ctx context.Context, consent *models.CookieConsent) error
	FindLatestActive(ctx context.Context, userID *uint, anonymousID string, now time.Time) (*models.CookieConsent, error)
	ListBySubject(ctx context.Context, userID *uint, anonymousID string, offset, limit int) ([]models.CookieConsent, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]models.CookieConsent, int64, error)
	Stats(ctx context.Context, now time.Time) (*ConsentStatsRow, error)
}
