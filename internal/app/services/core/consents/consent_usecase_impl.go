package consents

import (
	"context"
	"fmt"
	"sync"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	consentUsecaseInstance contracts.ConsentUsecase
	onceConsentUsecase     sync.Once
)

type consentUsecase struct {
	DB                *gorm.DB
	ConsentRepository contracts.ConsentRepository
	ActionLogService  contracts.ActionLogService
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewConsentUsecase(
	db *gorm.DB,
	consentRepository contracts.ConsentRepository,
	actionLogService contracts.ActionLogService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConsentUsecase {
	onceConsentUsecase.Do(func() {
		instance := &consentUsecase{
			DB:                db,
			ConsentRepository: consentRepository,
			ActionLogService:  actionLogService,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		consentUsecaseInstance = instance
	})
	return consentUsecaseInstance
}

func (uc *consentUsecase) subject(actor *contracts.Actor, anonymousID, ip, userAgent string, now time.Time) (*uint, string) {
	if actor != nil && actor.ID != 0 {
		userID := actor.ID
		return &userID, ""
	}
	if anonymousID == "" {
		anonymousID = utils.AnonymousConsentID(ip, userAgent, now)
	}
	return nil, anonymousID
}

func (uc *consentUsecase) StoreConsent(ctx context.Context, actor *contracts.Actor, request *requests.StoreConsent) (*responses.Consent, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consentUsecase.StoreConsent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := time.Now().UTC()
	userID, anonymousID := uc.subject(actor, request.AnonymousID, request.RemoteIP, request.UserAgent, now)

	method := request.Method
	if method == "" {
		method = constvars.ConsentMethodBanner
	}

	record := &models.CookieConsent{
		UserID:        userID,
		AnonymousID:   anonymousID,
		PolicyVersion: uc.InternalConfig.Consent.PolicyVersion,
		// Essential cookies cannot be refused.
		Essential:  models.ConsentGranted,
		Analytics:  models.ConsentDecisionFromBool(request.Decisions.Analytics),
		Marketing:  models.ConsentDecisionFromBool(request.Decisions.Marketing),
		Functional: models.ConsentDecisionFromBool(request.Decisions.Functional),
		Method:     method,
		PageURL:    request.PageURL,
		UserAgent:  request.UserAgent,
		ExpiresAt:  now.AddDate(0, 0, uc.InternalConfig.Consent.ExpiryInDays),
	}

	debounce := time.Duration(uc.InternalConfig.Consent.DebounceInSeconds) * time.Second

	var stored *models.CookieConsent
	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		repo := uc.ConsentRepository.WithTx(tx)

		latest, err := repo.FindLatestActive(ctx, userID, anonymousID, now)
		if err != nil {
			return err
		}
		if latest != nil {
			// Identical decisions never supersede the active row, however old
			// it is. Within the debounce window the resubmission is banner
			// double-fire noise.
			if latest.SameDecisions(record) {
				if now.Sub(latest.CreatedAt) < debounce {
					uc.Log.Debug("consentUsecase.StoreConsent debounced",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.Uint("consent_id", latest.ID),
					)
				}
				stored = latest
				return nil
			}
			withdrawnAt := now
			latest.WithdrawnAt = &withdrawnAt
			latest.WithdrawalReason = constvars.ConsentWithdrawalSuperseded
			if err := repo.Update(ctx, latest); err != nil {
				return err
			}
		}
		stored = record
		return repo.Create(ctx, record)
	})
	if err != nil {
		uc.Log.Error("consentUsecase.StoreConsent error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if stored == record {
		uc.recordConsentAction(ctx, actor, constvars.ActionConsentRecorded, stored, nil)
	}

	uc.Log.Info("consentUsecase.StoreConsent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint("consent_id", stored.ID),
	)
	response := mapConsentToResponse(stored)
	return &response, nil
}

func (uc *consentUsecase) WithdrawConsent(ctx context.Context, actor *contracts.Actor, request *requests.WithdrawConsent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("consentUsecase.WithdrawConsent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := time.Now().UTC()
	userID, anonymousID := uc.subject(actor, request.AnonymousID, "", "", now)

	latest, err := uc.ConsentRepository.FindLatestActive(ctx, userID, anonymousID, now)
	if err != nil {
		return err
	}
	if latest == nil {
		return exceptions.ErrConsentNotFound(nil)
	}

	withdrawnAt := now
	latest.WithdrawnAt = &withdrawnAt
	latest.WithdrawalReason = request.Reason
	if err := uc.ConsentRepository.Update(ctx, latest); err != nil {
		return err
	}

	uc.recordConsentAction(ctx, actor, constvars.ActionConsentWithdrawn, latest, map[string]interface{}{
		"reason": request.Reason,
	})

	uc.Log.Info("consentUsecase.WithdrawConsent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint("consent_id", latest.ID),
	)
	return nil
}

func (uc *consentUsecase) History(ctx context.Context, actor contracts.Actor, pagination *requests.Pagination) ([]responses.Consent, int, error) {
	userID := actor.ID
	offset := (pagination.Page - 1) * pagination.PageSize
	consents, total, err := uc.ConsentRepository.ListBySubject(ctx, &userID, "", offset, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapConsentsToResponse(consents), int(total), nil
}

func (uc *consentUsecase) List(ctx context.Context, actor contracts.Actor, pagination *requests.Pagination) ([]responses.Consent, int, error) {
	if !actor.Role.IsStaff() {
		return nil, 0, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot list consents", actor.Role))
	}
	offset := (pagination.Page - 1) * pagination.PageSize
	consents, total, err := uc.ConsentRepository.ListAll(ctx, offset, pagination.PageSize)
	if err != nil {
		return nil, 0, err
	}
	return mapConsentsToResponse(consents), int(total), nil
}

func (uc *consentUsecase) Stats(ctx context.Context) (*responses.ConsentStats, error) {
	row, err := uc.ConsentRepository.Stats(ctx, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return &responses.ConsentStats{
		Total:          row.Total,
		Active:         row.Active,
		Withdrawn:      row.Withdrawn,
		Expired:        row.Expired,
		AnalyticsOptIn: row.AnalyticsOptIn,
		MarketingOptIn: row.MarketingOptIn,
	}, nil
}

func mapConsentToResponse(consent *models.CookieConsent) responses.Consent {
	response := responses.Consent{
		ID:          consent.ID,
		AnonymousID: consent.AnonymousID,
		UserID:      consent.UserID,
		Decisions: responses.ConsentDecisions{
			Essential:  consent.Essential == models.ConsentGranted,
			Analytics:  consent.Analytics == models.ConsentGranted,
			Marketing:  consent.Marketing == models.ConsentGranted,
			Functional: consent.Functional == models.ConsentGranted,
		},
		PolicyVersion:    consent.PolicyVersion,
		Method:           consent.Method,
		PageURL:          consent.PageURL,
		CreatedAt:        consent.CreatedAt.UTC().Format(time.RFC3339),
		ExpiresAt:        consent.ExpiresAt.UTC().Format(time.RFC3339),
		WithdrawalReason: consent.WithdrawalReason,
	}
	if consent.WithdrawnAt != nil {
		withdrawn := consent.WithdrawnAt.UTC().Format(time.RFC3339)
		response.WithdrawnAt = &withdrawn
	}
	return response
}

func mapConsentsToResponse(consents []models.CookieConsent) []responses.Consent {
	result := make([]responses.Consent, 0, len(consents))
	for i := range consents {
		result = append(result, mapConsentToResponse(&consents[i]))
	}
	return result
}

func (uc *consentUsecase) recordConsentAction(ctx context.Context, actor *contracts.Actor, action string, consent *models.CookieConsent, additional map[string]interface{}) {
	entry := &models.ActionLogEntry{
		Action:         action,
		TargetKind:     constvars.TargetConsent,
		TargetID:       fmt.Sprintf("%d", consent.ID),
		AdditionalData: additional,
	}
	if actor != nil {
		entry.ActorID = actor.ID
		entry.ActorEmail = actor.Email
	}
	if err := uc.ActionLogService.Record(ctx, entry); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("consentUsecase action log write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActionKey, action),
			zap.Error(err),
		)
	}
}
