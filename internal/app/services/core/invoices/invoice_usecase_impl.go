package invoices

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	invoiceUsecaseInstance contracts.InvoiceUsecase
	onceInvoiceUsecase     sync.Once
)

type invoiceUsecase struct {
	DB                *gorm.DB
	InvoiceRepository contracts.InvoiceRepository
	PatientRepository contracts.PatientRepository
	PricingRepository contracts.PricingRepository
	PricingService    contracts.PricingService
	StorageService    contracts.StorageService
	ActionLogService  contracts.ActionLogService
	Log               *zap.Logger
}

func NewInvoiceUsecase(
	db *gorm.DB,
	invoiceRepository contracts.InvoiceRepository,
	patientRepository contracts.PatientRepository,
	pricingRepository contracts.PricingRepository,
	pricingService contracts.PricingService,
	storageService contracts.StorageService,
	actionLogService contracts.ActionLogService,
	logger *zap.Logger,
) contracts.InvoiceUsecase {
	onceInvoiceUsecase.Do(func() {
		instance := &invoiceUsecase{
			DB:                db,
			InvoiceRepository: invoiceRepository,
			PatientRepository: patientRepository,
			PricingRepository: pricingRepository,
			PricingService:    pricingService,
			StorageService:    storageService,
			ActionLogService:  actionLogService,
			Log:               logger,
		}
		invoiceUsecaseInstance = instance
	})
	return invoiceUsecaseInstance
}

// GenerateInvoice is idempotent per patient and period: a repeat request
// returns the existing invoice unchanged.
func (uc *invoiceUsecase) GenerateInvoice(ctx context.Context, actor contracts.Actor, request *requests.GenerateInvoice) (*responses.Invoice, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("invoiceUsecase.GenerateInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingPatientIDKey, request.PatientID),
	)

	if !actor.Role.CanGenerateInvoices() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot generate invoices", actor.Role))
	}

	periodStart, err := utils.ParseDate(request.PeriodStart)
	if err != nil {
		return nil, exceptions.ErrInvoicePeriodInvalid(err)
	}
	periodEnd, err := utils.ParseDate(request.PeriodEnd)
	if err != nil {
		return nil, exceptions.ErrInvoicePeriodInvalid(err)
	}
	if periodEnd.Before(periodStart) {
		return nil, exceptions.ErrInvoicePeriodInvalid(fmt.Errorf("period %s-%s inverted", request.PeriodStart, request.PeriodEnd))
	}

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	var invoice *models.Invoice
	skippedTimeslots := []uint{}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		invoiceRepo := uc.InvoiceRepository.WithTx(tx)
		pricingRepo := uc.PricingRepository.WithTx(tx)

		existing, err := invoiceRepo.FindByPeriod(ctx, patient.ID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		if existing != nil {
			invoice = existing
			return nil
		}

		billable, err := invoiceRepo.ListBillableTimeslots(ctx, patient.ID, periodStart, periodEnd)
		if err != nil {
			return err
		}

		amount := decimal.Zero
		lines := make([]models.InvoiceLine, 0, len(billable))
		for i := range billable {
			timeslot := billable[i].Timeslot
			schedule := billable[i].Schedule

			// The service resolves directly or through the linked prescription.
			serviceID := timeslot.ServiceID
			if serviceID == nil && timeslot.Prescription != nil {
				serviceID = &timeslot.Prescription.ServiceID
			}
			if serviceID == nil {
				skippedTimeslots = append(skippedTimeslots, timeslot.ID)
				continue
			}
			service, err := pricingRepo.FindServiceByID(ctx, *serviceID)
			if err != nil {
				return err
			}
			if service == nil {
				skippedTimeslots = append(skippedTimeslots, timeslot.ID)
				continue
			}

			quote, err := uc.PricingService.PriceTimeslot(ctx, patient, service, &timeslot)
			if err != nil {
				return err
			}

			amount = amount.Add(quote.PatientPays)
			lines = append(lines, models.InvoiceLine{
				TimeslotID:     timeslot.ID,
				ServiceID:      service.ID,
				ProviderID:     schedule.ProviderID,
				Date:           schedule.Date,
				StartTime:      timeslot.StartTime,
				EndTime:        timeslot.EndTime,
				Price:          quote.PatientPays,
				TimeslotStatus: timeslot.Status,
			})
		}

		invoice = &models.Invoice{
			PatientID:   patient.ID,
			PeriodStart: utils.TruncateToDate(periodStart),
			PeriodEnd:   utils.TruncateToDate(periodEnd),
			Status:      models.InvoiceInProgress,
			Amount:      amount,
			Lines:       lines,
		}
		return invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		// A racing generator can win the unique period index between our
		// probe and insert; return its invoice instead of failing.
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.ErrorCode == exceptions.CodeDuplicateInvoice {
			existing, probeErr := uc.InvoiceRepository.FindByPeriod(ctx, patient.ID, periodStart, periodEnd)
			if probeErr == nil && existing != nil {
				return uc.mapInvoiceToResponse(ctx, existing)
			}
		}
		uc.Log.Error("invoiceUsecase.GenerateInvoice error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.recordInvoiceAction(ctx, actor, invoice, patient, skippedTimeslots)
	uc.archiveInvoice(ctx, invoice)

	uc.Log.Info("invoiceUsecase.GenerateInvoice succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingInvoiceIDKey, invoice.ID),
		zap.String("amount", invoice.Amount.StringFixed(2)),
	)
	return uc.mapInvoiceToResponse(ctx, invoice)
}

func (uc *invoiceUsecase) GetInvoice(ctx context.Context, actor contracts.Actor, invoiceID uint) (*responses.Invoice, error) {
	invoice, err := uc.InvoiceRepository.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, exceptions.ErrInvoiceNotFound(nil)
	}
	if !actor.Role.IsStaff() {
		patient, err := uc.PatientRepository.FindByUserID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if patient == nil || patient.ID != invoice.PatientID {
			return nil, exceptions.ErrForbiddenRole(fmt.Errorf("invoice %d belongs to another patient", invoiceID))
		}
	}
	return uc.mapInvoiceToResponse(ctx, invoice)
}

func (uc *invoiceUsecase) UnpaidInvoices(ctx context.Context, actor contracts.Actor, userID uint) ([]responses.Invoice, error) {
	if !actor.Role.IsStaff() && actor.ID != userID {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot view another user's invoices", actor.Role))
	}

	patient, err := uc.PatientRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	invoices, err := uc.InvoiceRepository.ListOpenByPatient(ctx, patient.ID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Invoice, 0, len(invoices))
	for i := range invoices {
		mapped, err := uc.mapInvoiceToResponse(ctx, &invoices[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *mapped)
	}
	return result, nil
}

func (uc *invoiceUsecase) mapInvoiceToResponse(ctx context.Context, invoice *models.Invoice) (*responses.Invoice, error) {
	lines := make([]responses.InvoiceLine, 0, len(invoice.Lines))
	serviceNames := map[uint]string{}
	for i := range invoice.Lines {
		line := invoice.Lines[i]
		name, seen := serviceNames[line.ServiceID]
		if !seen {
			service, err := uc.PricingRepository.FindServiceByID(ctx, line.ServiceID)
			if err != nil {
				return nil, err
			}
			if service != nil {
				name = service.Name
			}
			serviceNames[line.ServiceID] = name
		}
		lines = append(lines, responses.InvoiceLine{
			ID:             line.ID,
			TimeslotID:     line.TimeslotID,
			ServiceID:      line.ServiceID,
			ServiceName:    name,
			ProviderID:     line.ProviderID,
			Date:           line.Date.Format(utils.DateLayout),
			StartTime:      line.StartTime,
			EndTime:        line.EndTime,
			Price:          line.Price.StringFixed(2),
			TimeslotStatus: string(line.TimeslotStatus),
		})
	}

	return &responses.Invoice{
		ID:          invoice.ID,
		PatientID:   invoice.PatientID,
		PeriodStart: invoice.PeriodStart.Format(utils.DateLayout),
		PeriodEnd:   invoice.PeriodEnd.Format(utils.DateLayout),
		Status:      string(models.NormalizeInvoiceStatus(invoice.Status)),
		Amount:      invoice.Amount.StringFixed(2),
		Lines:       lines,
	}, nil
}

// archiveInvoice stores a JSON snapshot in the object store. Failures are
// logged only; the invoice row is the source of truth.
func (uc *invoiceUsecase) archiveInvoice(ctx context.Context, invoice *models.Invoice) {
	data, err := json.Marshal(invoice)
	if err != nil {
		uc.Log.Warn("invoiceUsecase archive marshal failed",
			zap.Uint(constvars.LoggingInvoiceIDKey, invoice.ID),
			zap.Error(err),
		)
		return
	}
	objectName := fmt.Sprintf("invoices/%d/%s_%s.json",
		invoice.PatientID,
		invoice.PeriodStart.Format(utils.DateLayout),
		invoice.PeriodEnd.Format(utils.DateLayout),
	)
	if err := uc.StorageService.StoreObject(ctx, objectName, "application/json", data); err != nil {
		uc.Log.Warn("invoiceUsecase archive upload failed",
			zap.Uint(constvars.LoggingInvoiceIDKey, invoice.ID),
			zap.Error(err),
		)
	}
}

func (uc *invoiceUsecase) recordInvoiceAction(ctx context.Context, actor contracts.Actor, invoice *models.Invoice, patient *models.Patient, skipped []uint) {
	additional := map[string]interface{}{
		"period_start": invoice.PeriodStart.Format(utils.DateLayout),
		"period_end":   invoice.PeriodEnd.Format(utils.DateLayout),
		"amount":       invoice.Amount,
		"line_count":   len(invoice.Lines),
	}
	if len(skipped) > 0 {
		additional["skipped_timeslots"] = skipped
	}
	entry := &models.ActionLogEntry{
		ActorID:             actor.ID,
		ActorEmail:          actor.Email,
		Action:              constvars.ActionGenerateInvoice,
		TargetKind:          constvars.TargetInvoice,
		TargetID:            fmt.Sprintf("%d", invoice.ID),
		AffectedPatientID:   &patient.ID,
		AffectedPatientName: patient.User.FullName(),
		AdditionalData:      additional,
	}
	if err := uc.ActionLogService.Record(ctx, entry); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("invoiceUsecase action log write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
