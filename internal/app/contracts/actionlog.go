package contracts

import (
	"context"

	"carelink-service/internal/app/models"
)

// ActionLogService appends audit entries; the sink is append-only.
type ActionLogService interface {
	Record(ctx context.Context, entry *models.ActionLogEntry) error
}

type ActionLogRepository interface {
	Insert(ctx context.Context, entry *models.ActionLogEntry) error
	FindByActor(ctx context.Context, actorID uint, limit int64) ([]models.ActionLogEntry, error)
}
