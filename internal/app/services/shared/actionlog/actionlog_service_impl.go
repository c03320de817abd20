package actionlog

import (
	"context"
	"fmt"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ForeignKey marks an additional_data value as a reference to another
// entity; it serializes as "ID: <n>".
type ForeignKey uint

// Named marks a value that serializes by its display name.
type Named interface {
	DisplayName() string
}

type actionLogService struct {
	ActionLogRepository contracts.ActionLogRepository
	Log                 *zap.Logger
}

func NewActionLogService(repo contracts.ActionLogRepository, logger *zap.Logger) contracts.ActionLogService {
	return &actionLogService{
		ActionLogRepository: repo,
		Log:                 logger,
	}
}

func (s *actionLogService) Record(ctx context.Context, entry *models.ActionLogEntry) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.AdditionalData = CoerceAdditionalData(entry.AdditionalData, entry.Timestamp)

	err := s.ActionLogRepository.Insert(ctx, entry)
	if err != nil {
		s.Log.Error("actionLogService.Record error inserting entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActionKey, entry.Action),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("actionLogService.Record succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActionKey, entry.Action),
	)
	return nil
}

// CoerceAdditionalData normalizes the blob: a timestamp key is always
// present, foreign keys render as "ID: <n>", named objects render by name,
// and anything that cannot serialize falls back to its string form.
func CoerceAdditionalData(data map[string]interface{}, timestamp time.Time) map[string]interface{} {
	coerced := make(map[string]interface{}, len(data)+1)
	for key, value := range data {
		coerced[key] = coerceValue(value)
	}
	coerced["timestamp"] = timestamp.UTC().Format(time.RFC3339)
	return coerced
}

func coerceValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return typed
	case ForeignKey:
		return fmt.Sprintf("ID: %d", uint(typed))
	case Named:
		return typed.DisplayName()
	case decimal.Decimal:
		return typed.String()
	case time.Time:
		return typed.UTC().Format(time.RFC3339)
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = coerceValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, item := range typed {
			out[key] = coerceValue(item)
		}
		return out
	default:
		if _, err := json.Marshal(typed); err == nil {
			return typed
		}
		return fmt.Sprintf("%v", typed)
	}
}
