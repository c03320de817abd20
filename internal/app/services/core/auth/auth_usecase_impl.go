package auth

import (
	"context"
	"errors"
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
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

type authUsecase struct {
	DB                  *gorm.DB
	UserRepository      contracts.UserRepository
	PatientRepository   contracts.PatientRepository
	TokenRepository     contracts.TokenRepository
	LockerService       contracts.LockerService
	MailerService       contracts.MailerService
	NotificationUsecase contracts.NotificationUsecase
	ActionLogService    contracts.ActionLogService
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewAuthUsecase(
	db *gorm.DB,
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	tokenRepository contracts.TokenRepository,
	lockerService contracts.LockerService,
	mailerService contracts.MailerService,
	notificationUsecase contracts.NotificationUsecase,
	actionLogService contracts.ActionLogService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		instance := &authUsecase{
			DB:                  db,
			UserRepository:      userRepository,
			PatientRepository:   patientRepository,
			TokenRepository:     tokenRepository,
			LockerService:       lockerService,
			MailerService:       mailerService,
			NotificationUsecase: notificationUsecase,
			ActionLogService:    actionLogService,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
		authUsecaseInstance = instance
	})
	return authUsecaseInstance
}

func (uc *authUsecase) accessTokenTTL() time.Duration {
	return time.Duration(uc.InternalConfig.JWT.AccessExpTimeInMinutes) * time.Minute
}

func (uc *authUsecase) RefreshTokenTTL() time.Duration {
	return time.Duration(uc.InternalConfig.JWT.RefreshExpTimeInHours) * time.Hour
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.Register) (*responses.Register, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Register called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existing, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s taken", request.Email))
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:          request.Email,
		Password:       hashed,
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Role:           models.RolePatient,
		IsActive:       false,
		NationalNumber: request.NationalNumber,
	}
	if request.BirthDate != "" {
		birthDate, err := utils.ParseDate(request.BirthDate)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		user.BirthDate = &birthDate
	}

	patient := &models.Patient{IsAlive: true}
	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := uc.UserRepository.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		patient.UserID = user.ID
		return uc.PatientRepository.WithTx(tx).Create(ctx, patient)
	})
	if err != nil {
		uc.Log.Error("authUsecase.Register error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// Activation is manual; the welcome mail and the coordinator ticket are
	// both best-effort.
	if err := uc.MailerService.SendEmail(ctx, &contracts.EmailPayload{
		To:      user.Email,
		Subject: constvars.EmailSubjectVerifyAccount,
		Body:    constvars.EmailBodyVerifyAccount,
	}); err != nil {
		uc.Log.Warn("authUsecase.Register mail enqueue failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if _, err := uc.NotificationUsecase.NotifyProfileActivationRequired(ctx, user.ID, user.Email); err != nil {
		uc.Log.Warn("authUsecase.Register activation ticket failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("authUsecase.Register succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Register{UserID: user.ID, PatientID: patient.ID}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		uc.recordAuthAction(ctx, 0, request.Email, constvars.ActionLoginFailed, nil)
		return nil, exceptions.ErrInvalidEmailOrPassword(errors.New("credential check failed"))
	}
	if !user.IsActive {
		return nil, exceptions.ErrAccountInactive(fmt.Errorf("user %d inactive", user.ID))
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Email, string(user.Role), uc.InternalConfig.JWT.Secret, uc.accessTokenTTL())
	if err != nil {
		return nil, err
	}
	refresh, jti, expiresAt, err := utils.GenerateRefreshToken(user.ID, user.Email, string(user.Role), uc.InternalConfig.JWT.Secret, uc.RefreshTokenTTL())
	if err != nil {
		return nil, err
	}

	if err := uc.TokenRepository.CreateOutstanding(ctx, &models.OutstandingRefreshToken{
		JTI:       jti,
		UserID:    user.ID,
		IssuedAt:  time.Now().UTC(),
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Login{
		Access:  access,
		Refresh: refresh,
		UserInfo: responses.UserInfo{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      string(user.Role),
			IsActive:  user.IsActive,
		},
	}, nil
}

func (uc *authUsecase) Refresh(ctx context.Context, refreshToken string) (*responses.Refresh, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claims, err := utils.ParseToken(refreshToken, uc.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != utils.TokenTypeRefresh || claims.ID == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("not a refresh credential"))
	}

	// One rotation per raw credential at a time; concurrent holders get 429
	// rather than racing the blacklist write.
	lockKey := utils.RefreshLockKey(refreshToken)
	lockTTL := time.Duration(uc.InternalConfig.Locker.RefreshLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrRefreshInProgress(fmt.Errorf("lock %s held", lockKey))
	}
	defer func() {
		if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("authUsecase.Refresh unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	outstanding, err := uc.TokenRepository.FindOutstandingByJTI(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if outstanding == nil {
		return nil, exceptions.ErrTokenNotOutstanding(fmt.Errorf("jti %s unknown", claims.ID))
	}
	blacklisted, err := uc.TokenRepository.IsBlacklisted(ctx, outstanding.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		uc.recordAuthAction(ctx, claims.UserID, claims.Email, constvars.ActionRefreshRejected, map[string]interface{}{
			"jti": claims.ID,
		})
		return nil, exceptions.ErrTokenBlacklisted(fmt.Errorf("jti %s blacklisted", claims.ID))
	}

	user, err := uc.UserRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotFound(nil)
	}
	if !user.IsActive {
		return nil, exceptions.ErrAccountInactive(fmt.Errorf("user %d inactive", user.ID))
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Email, string(user.Role), uc.InternalConfig.JWT.Secret, uc.accessTokenTTL())
	if err != nil {
		return nil, err
	}
	newRefresh, newJTI, expiresAt, err := utils.GenerateRefreshToken(user.ID, user.Email, string(user.Role), uc.InternalConfig.JWT.Secret, uc.RefreshTokenTTL())
	if err != nil {
		return nil, err
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		tokenRepo := uc.TokenRepository.WithTx(tx)
		if err := tokenRepo.Blacklist(ctx, outstanding.ID); err != nil {
			return err
		}
		return tokenRepo.CreateOutstanding(ctx, &models.OutstandingRefreshToken{
			JTI:       newJTI,
			UserID:    user.ID,
			IssuedAt:  time.Now().UTC(),
			ExpiresAt: expiresAt,
		})
	})
	if err != nil {
		uc.Log.Error("authUsecase.Refresh error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Refresh succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingJTIKey, newJTI),
	)
	return &responses.Refresh{Access: access, Refresh: newRefresh}, nil
}

// Logout is idempotent: unknown, expired, and already-blacklisted credentials
// all produce the same success response.
func (uc *authUsecase) Logout(ctx context.Context, refreshToken string) (*responses.Logout, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	success := &responses.Logout{Detail: constvars.LogoutSuccessDetail}

	claims, err := utils.ParseToken(refreshToken, uc.InternalConfig.JWT.Secret)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh || claims.ID == "" {
		return success, nil
	}

	outstanding, err := uc.TokenRepository.FindOutstandingByJTI(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if outstanding == nil {
		return success, nil
	}
	if err := uc.TokenRepository.Blacklist(ctx, outstanding.ID); err != nil {
		return nil, err
	}

	uc.recordAuthAction(ctx, claims.UserID, claims.Email, constvars.ActionLogout, map[string]interface{}{
		"jti": claims.ID,
	})

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, claims.UserID),
	)
	return success, nil
}

func (uc *authUsecase) recordAuthAction(ctx context.Context, userID uint, email, action string, additional map[string]interface{}) {
	entry := &models.ActionLogEntry{
		ActorID:        userID,
		ActorEmail:     email,
		Action:         action,
		TargetKind:     constvars.TargetUser,
		TargetID:       fmt.Sprintf("%d", userID),
		AdditionalData: additional,
	}
	if err := uc.ActionLogService.Record(ctx, entry); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("authUsecase action log write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActionKey, action),
			zap.Error(err),
		)
	}
}
