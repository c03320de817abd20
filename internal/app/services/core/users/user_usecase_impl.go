package users

import (
	"context"
	"fmt"
	"sync"
	"time"

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

const (
	anonymizedPlaceholder   = "Anonymized"
	anonymizedFolderNotes   = "[ANONYMIZED]"
	recentInvoiceWindowDays = 30

	detailHardDeleted = "User deleted"
	detailDeactivated = "User deactivated"
	detailAnonymized  = "User deactivated and anonymized"
	detailRecentGuard = "User deactivated; recent invoice activity blocks removal"
)

var (
	userUsecaseInstance contracts.UserUsecase
	onceUserUsecase     sync.Once
)

type userUsecase struct {
	DB                  *gorm.DB
	UserRepository      contracts.UserRepository
	PatientRepository   contracts.PatientRepository
	InvoiceRepository   contracts.InvoiceRepository
	NotificationUsecase contracts.NotificationUsecase
	ActionLogService    contracts.ActionLogService
	Log                 *zap.Logger
}

func NewUserUsecase(
	db *gorm.DB,
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	invoiceRepository contracts.InvoiceRepository,
	notificationUsecase contracts.NotificationUsecase,
	actionLogService contracts.ActionLogService,
	logger *zap.Logger,
) contracts.UserUsecase {
	onceUserUsecase.Do(func() {
		instance := &userUsecase{
			DB:                  db,
			UserRepository:      userRepository,
			PatientRepository:   patientRepository,
			InvoiceRepository:   invoiceRepository,
			NotificationUsecase: notificationUsecase,
			ActionLogService:    actionLogService,
			Log:                 logger,
		}
		userUsecaseInstance = instance
	})
	return userUsecaseInstance
}

func (uc *userUsecase) CreateUser(ctx context.Context, actor contracts.Actor, request *requests.CreateUser) (*responses.User, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.CreateUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !actor.Role.CanManageUsers() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot manage users", actor.Role))
	}

	role := models.Role(request.Role)
	if !role.Valid() {
		return nil, exceptions.ErrInputValidation(fmt.Errorf("unknown role %q", request.Role))
	}

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
		Email:     request.Email,
		Password:  hashed,
		FirstName: request.FirstName,
		LastName:  request.LastName,
		Role:      role,
		IsActive:  true,
	}
	if request.BirthDate != "" {
		birthDate, err := utils.ParseDate(request.BirthDate)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		user.BirthDate = &birthDate
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		if err := uc.UserRepository.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		if role == models.RolePatient {
			return uc.PatientRepository.WithTx(tx).Create(ctx, &models.Patient{
				UserID:  user.ID,
				IsAlive: true,
			})
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("userUsecase.CreateUser error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("userUsecase.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.User{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// DeleteUser applies the billing guard. Open invoices block removal outright;
// invoice activity in the last 30 days downgrades removal to deactivation; an
// account with no patient record at all is hard-deleted.
func (uc *userUsecase) DeleteUser(ctx context.Context, actor contracts.Actor, userID uint, request *requests.DeleteUser) (*responses.DeleteUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("userUsecase.DeleteUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, userID),
	)

	if !actor.Role.CanManageUsers() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot manage users", actor.Role))
	}

	user, err := uc.UserRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUserNotFound(nil)
	}

	patient, err := uc.PatientRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patient == nil {
		if err := uc.UserRepository.Delete(ctx, userID); err != nil {
			return nil, err
		}
		uc.recordUserAction(ctx, actor, constvars.ActionDeleteUser, user, map[string]interface{}{
			"outcome": "hard_delete",
		})
		return &responses.DeleteUser{UserID: userID, Detail: detailHardDeleted}, nil
	}

	openInvoices, err := uc.InvoiceRepository.ListOpenByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}
	if len(openInvoices) > 0 {
		if _, err := uc.NotificationUsecase.NotifyAccountDeletionRequested(ctx, userID, constvars.TicketPriorityHigh, request.Reason); err != nil {
			uc.Log.Warn("userUsecase.DeleteUser deletion ticket failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		uc.recordUserAction(ctx, actor, constvars.ActionDeleteUser, user, map[string]interface{}{
			"outcome":       "blocked_open_invoices",
			"open_invoices": len(openInvoices),
		})
		return nil, exceptions.ErrAccountHasOpenInvoices(fmt.Errorf("patient %d has %d open invoices", patient.ID, len(openInvoices)))
	}

	since := time.Now().UTC().AddDate(0, 0, -recentInvoiceWindowDays)
	recentInvoice, err := uc.InvoiceRepository.HasInvoiceCreatedSince(ctx, patient.ID, since)
	if err != nil {
		return nil, err
	}
	if recentInvoice {
		user.IsActive = false
		if err := uc.UserRepository.Update(ctx, user); err != nil {
			return nil, err
		}
		if _, err := uc.NotificationUsecase.NotifyAccountDeletionRequested(ctx, userID, constvars.TicketPriorityMedium, request.Reason); err != nil {
			uc.Log.Warn("userUsecase.DeleteUser deletion ticket failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		uc.recordUserAction(ctx, actor, constvars.ActionDeleteUser, user, map[string]interface{}{
			"outcome": "deactivated_recent_invoice",
		})
		return &responses.DeleteUser{UserID: userID, Detail: detailRecentGuard}, nil
	}

	anonymized := false
	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := uc.UserRepository.WithTx(tx)
		patientRepo := uc.PatientRepository.WithTx(tx)

		user.IsActive = false
		if request.Anonymize {
			uc.anonymizeUser(user)
			patient.IsAnonymized = true
			patient.ClinicalNotes = anonymizedFolderNotes
			patient.DoctorName = anonymizedPlaceholder
			patient.DoctorPhone = ""
			if err := patientRepo.Update(ctx, patient); err != nil {
				return err
			}
			if err := patientRepo.OverwriteMedicalFolderNotes(ctx, patient.ID, anonymizedFolderNotes); err != nil {
				return err
			}
			anonymized = true
		}
		return userRepo.Update(ctx, user)
	})
	if err != nil {
		uc.Log.Error("userUsecase.DeleteUser error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	action := constvars.ActionDeleteUser
	if anonymized {
		action = constvars.ActionProfileAnonymized
	}
	uc.recordUserAction(ctx, actor, action, user, map[string]interface{}{
		"outcome":    "deactivated",
		"anonymized": anonymized,
	})

	detail := detailDeactivated
	if anonymized {
		detail = detailAnonymized
	}
	uc.Log.Info("userUsecase.DeleteUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingUserIDKey, userID),
	)
	return &responses.DeleteUser{UserID: userID, Anonymized: anonymized, Detail: detail}, nil
}

// anonymizeUser scrubs direct identifiers while keeping the row, so invoices
// and audit entries pointing at the id stay resolvable.
func (uc *userUsecase) anonymizeUser(user *models.User) {
	user.FirstName = anonymizedPlaceholder
	user.LastName = anonymizedPlaceholder
	user.Email = fmt.Sprintf("anon%d@example.com", user.ID)
	user.Password = utils.RandomPassword()
	user.BirthDate = nil
	user.NationalNumber = ""
	user.IsAnonymized = true
}

func (uc *userUsecase) recordUserAction(ctx context.Context, actor contracts.Actor, action string, target *models.User, additional map[string]interface{}) {
	entry := &models.ActionLogEntry{
		ActorID:        actor.ID,
		ActorEmail:     actor.Email,
		Action:         action,
		TargetKind:     constvars.TargetUser,
		TargetID:       fmt.Sprintf("%d", target.ID),
		AdditionalData: additional,
	}
	if err := uc.ActionLogService.Record(ctx, entry); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("userUsecase action log write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActionKey, action),
			zap.Error(err),
		)
	}
}
