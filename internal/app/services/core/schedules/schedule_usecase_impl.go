package schedules

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

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	scheduleUsecaseInstance contracts.ScheduleUsecase
	onceScheduleUsecase     sync.Once
)

type scheduleUsecase struct {
	DB                     *gorm.DB
	ScheduleRepository     contracts.ScheduleRepository
	AvailabilityService    contracts.AvailabilityService
	PatientRepository      contracts.PatientRepository
	ProviderRepository     contracts.ProviderRepository
	PrescriptionRepository contracts.PrescriptionRepository
	NotificationUsecase    contracts.NotificationUsecase
	ActionLogService       contracts.ActionLogService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

func NewScheduleUsecase(
	db *gorm.DB,
	scheduleRepository contracts.ScheduleRepository,
	availabilityService contracts.AvailabilityService,
	patientRepository contracts.PatientRepository,
	providerRepository contracts.ProviderRepository,
	prescriptionRepository contracts.PrescriptionRepository,
	notificationUsecase contracts.NotificationUsecase,
	actionLogService contracts.ActionLogService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ScheduleUsecase {
	onceScheduleUsecase.Do(func() {
		instance := &scheduleUsecase{
			DB:                     db,
			ScheduleRepository:     scheduleRepository,
			AvailabilityService:    availabilityService,
			PatientRepository:      patientRepository,
			ProviderRepository:     providerRepository,
			PrescriptionRepository: prescriptionRepository,
			NotificationUsecase:    notificationUsecase,
			ActionLogService:       actionLogService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		scheduleUsecaseInstance = instance
	})
	return scheduleUsecaseInstance
}

func (uc *scheduleUsecase) CreateAppointment(ctx context.Context, actor contracts.Actor, request *requests.CreateAppointment) (*responses.Schedule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingProviderIDKey, request.ProviderID),
		zap.Uint(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if !actor.Role.CanCreateSchedule() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot create schedules", actor.Role))
	}

	schedule, timeslot, err := uc.createForDate(ctx, actor, request, request.Date)
	if err != nil {
		uc.Log.Error("scheduleUsecase.CreateAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	schedule.Timeslots = []models.Timeslot{*timeslot}
	response := mapScheduleToResponse(schedule)

	uc.Log.Info("scheduleUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingScheduleIDKey, schedule.ID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslot.ID),
	)
	return &response, nil
}

// createForDate runs the single-date creation path: validation, the
// in-transaction conflict recheck, schedule reuse, and the audit entry.
func (uc *scheduleUsecase) createForDate(ctx context.Context, actor contracts.Actor, request *requests.CreateAppointment, dateValue string) (*models.Schedule, *models.Timeslot, error) {
	date, err := utils.ParseDate(dateValue)
	if err != nil {
		return nil, nil, exceptions.ErrInvalidTimeRange(err)
	}

	startMinutes, err := utils.ParseClock(request.StartTime)
	if err != nil {
		return nil, nil, exceptions.ErrInvalidTimeRange(err)
	}
	endMinutes, err := utils.ParseClock(request.EndTime)
	if err != nil {
		return nil, nil, exceptions.ErrInvalidTimeRange(err)
	}
	if endMinutes <= startMinutes {
		return nil, nil, exceptions.ErrInvalidTimeRange(fmt.Errorf("start %s end %s", request.StartTime, request.EndTime))
	}
	if err := uc.checkWorkingWindow(startMinutes, endMinutes); err != nil {
		return nil, nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, nil, err
	}
	if patient == nil {
		return nil, nil, exceptions.ErrPatientNotFound(nil)
	}

	provider, err := uc.ProviderRepository.FindByID(ctx, request.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	if provider == nil {
		return nil, nil, exceptions.ErrProviderNotFound(nil)
	}
	contracted, err := uc.ProviderRepository.HasActiveContract(ctx, provider.ID)
	if err != nil {
		return nil, nil, err
	}
	if !contracted {
		return nil, nil, exceptions.ErrProviderNoActiveContract(fmt.Errorf("provider %d", provider.ID))
	}

	if request.PrescriptionID != nil {
		if err := uc.checkPrescription(ctx, *request.PrescriptionID, request.ServiceID, patient.ID); err != nil {
			return nil, nil, err
		}
	}

	pricingInput := ""
	if len(request.PricingInput) > 0 {
		encoded, err := json.Marshal(request.PricingInput)
		if err != nil {
			return nil, nil, exceptions.ErrCannotMarshalJSON(err)
		}
		pricingInput = string(encoded)
	}

	var schedule *models.Schedule
	var timeslot *models.Timeslot

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := uc.ScheduleRepository.WithTx(tx)
		availability := uc.AvailabilityService.WithTx(tx)

		report, err := availability.Check(ctx, request.ProviderID, date, request.StartTime, request.EndTime, 0)
		if err != nil {
			return err
		}
		if report.HasConflict() {
			return exceptions.ErrScheduleConflict(fmt.Errorf("provider %d on %s %s-%s", request.ProviderID, dateValue, request.StartTime, request.EndTime))
		}

		patientID := request.PatientID
		schedule, err = scheduleRepo.FindByTriple(ctx, request.ProviderID, &patientID, date)
		if err != nil {
			return err
		}
		if schedule == nil {
			schedule = &models.Schedule{
				Date:       date,
				ProviderID: request.ProviderID,
				PatientID:  &patientID,
				CreatedBy:  actor.ID,
			}
			if err := scheduleRepo.Create(ctx, schedule); err != nil {
				return err
			}
		}

		timeslot = &models.Timeslot{
			ScheduleID:     schedule.ID,
			StartTime:      request.StartTime,
			EndTime:        request.EndTime,
			ServiceID:      request.ServiceID,
			PrescriptionID: request.PrescriptionID,
			Status:         models.TimeslotScheduled,
			Description:    request.Description,
			PricingInput:   pricingInput,
		}
		return scheduleRepo.CreateTimeslot(ctx, timeslot)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.recordScheduleAction(ctx, actor, constvars.ActionCreateSchedule, schedule, timeslot, patient, provider, map[string]interface{}{
		"start_time": request.StartTime,
		"end_time":   request.EndTime,
	})

	return schedule, timeslot, nil
}

func (uc *scheduleUsecase) CreateRecurringAppointments(ctx context.Context, actor contracts.Actor, request *requests.CreateRecurringAppointment) (*responses.RecurringResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.CreateRecurringAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingProviderIDKey, request.ProviderID),
	)

	if !actor.Role.CanCreateSchedule() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot create schedules", actor.Role))
	}

	dates, err := uc.resolveDates(request)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}

	result := &responses.RecurringResult{
		CreatedScheduleIDs: []uint{},
		CreatedTimeslotIDs: []uint{},
		Skipped:            []responses.SkippedDate{},
	}

	// Best-effort: each date is its own transaction; nothing rolls back on
	// a later failure, and cancellation returns the partial result.
	for _, date := range dates {
		if ctx.Err() != nil {
			break
		}
		dateValue := date.Format(utils.DateLayout)
		schedule, timeslot, err := uc.createForDate(ctx, actor, &request.CreateAppointment, dateValue)
		if err != nil {
			result.Skipped = append(result.Skipped, responses.SkippedDate{
				Date:   dateValue,
				Reason: skipReason(err),
			})
			continue
		}
		result.CreatedScheduleIDs = append(result.CreatedScheduleIDs, schedule.ID)
		result.CreatedTimeslotIDs = append(result.CreatedTimeslotIDs, timeslot.ID)
	}

	uc.Log.Info("scheduleUsecase.CreateRecurringAppointments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("created", len(result.CreatedTimeslotIDs)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (uc *scheduleUsecase) resolveDates(request *requests.CreateRecurringAppointment) ([]time.Time, error) {
	maxDates := uc.InternalConfig.Scheduling.MaxRecurringDates

	if len(request.Dates) > 0 {
		if len(request.Dates) > maxDates {
			return nil, fmt.Errorf("at most %d dates allowed", maxDates)
		}
		dates := make([]time.Time, 0, len(request.Dates))
		for _, value := range request.Dates {
			date, err := utils.ParseDate(value)
			if err != nil {
				return nil, err
			}
			dates = append(dates, date)
		}
		return dates, nil
	}

	if request.Recurrence == nil {
		return nil, errors.New("either dates or a recurrence spec is required")
	}
	base, err := utils.ParseDate(request.Date)
	if err != nil {
		return nil, err
	}
	return expandRecurrence(base, request.Recurrence, maxDates)
}

func skipReason(err error) string {
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) && customErr.ErrorCode != "" {
		return customErr.ErrorCode
	}
	return "ERROR"
}

func (uc *scheduleUsecase) GetAppointment(ctx context.Context, actor contracts.Actor, timeslotID uint) (*responses.Timeslot, error) {
	entry, err := uc.ScheduleRepository.FindTimeslot(ctx, timeslotID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}
	if !actor.Role.IsStaff() {
		if err := uc.checkReadAccess(ctx, actor, &entry.Schedule); err != nil {
			return nil, err
		}
	}
	response := mapTimeslotToResponse(&entry.Timeslot)
	return &response, nil
}

func (uc *scheduleUsecase) UpdateTimeslot(ctx context.Context, actor contracts.Actor, timeslotID uint, request *requests.UpdateTimeslot) (*responses.Timeslot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.UpdateTimeslot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslotID),
	)

	if !actor.Role.CanCreateSchedule() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot update appointments", actor.Role))
	}

	var updated *models.Timeslot
	var schedule *models.Schedule

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := uc.ScheduleRepository.WithTx(tx)
		availability := uc.AvailabilityService.WithTx(tx)

		entry, err := scheduleRepo.FindTimeslot(ctx, timeslotID)
		if err != nil {
			return err
		}
		if entry == nil {
			return exceptions.ErrScheduleNotFound(nil)
		}
		timeslot := entry.Timeslot
		schedule = &entry.Schedule

		if request.Status != nil {
			next := models.TimeslotStatus(*request.Status)
			if !timeslot.Status.CanTransitionTo(next) {
				return exceptions.ErrInvalidStatusTransition(fmt.Errorf("%s -> %s", timeslot.Status, next))
			}
			timeslot.Status = next
		}

		timeChanged := false
		if request.StartTime != nil {
			timeslot.StartTime = *request.StartTime
			timeChanged = true
		}
		if request.EndTime != nil {
			timeslot.EndTime = *request.EndTime
			timeChanged = true
		}
		if request.ServiceID != nil {
			timeslot.ServiceID = request.ServiceID
		}
		if request.PrescriptionID != nil {
			// Attaching a prescription on mutation passes the same gates as
			// at creation time.
			if schedule.PatientID == nil {
				return exceptions.ErrPrescriptionMismatch(fmt.Errorf("blocked time cannot carry prescription %d", *request.PrescriptionID))
			}
			if err := uc.checkPrescription(ctx, *request.PrescriptionID, timeslot.ServiceID, *schedule.PatientID); err != nil {
				return err
			}
			timeslot.PrescriptionID = request.PrescriptionID
		}
		if request.Description != nil {
			timeslot.Description = *request.Description
		}
		if len(request.PricingInput) > 0 {
			encoded, err := json.Marshal(request.PricingInput)
			if err != nil {
				return exceptions.ErrCannotMarshalJSON(err)
			}
			timeslot.PricingInput = string(encoded)
		}

		if timeChanged {
			startMinutes, err := utils.ParseClock(timeslot.StartTime)
			if err != nil {
				return exceptions.ErrInvalidTimeRange(err)
			}
			endMinutes, err := utils.ParseClock(timeslot.EndTime)
			if err != nil {
				return exceptions.ErrInvalidTimeRange(err)
			}
			if endMinutes <= startMinutes {
				return exceptions.ErrInvalidTimeRange(fmt.Errorf("start %s end %s", timeslot.StartTime, timeslot.EndTime))
			}
			if err := uc.checkWorkingWindow(startMinutes, endMinutes); err != nil {
				return err
			}

			report, err := availability.Check(ctx, schedule.ProviderID, schedule.Date, timeslot.StartTime, timeslot.EndTime, timeslot.ID)
			if err != nil {
				return err
			}
			if report.HasConflict() {
				return exceptions.ErrScheduleConflict(fmt.Errorf("timeslot %d move conflicts", timeslot.ID))
			}
		}

		// Prescription is cleared through Preload; persist scalar columns.
		timeslot.Prescription = nil
		if err := scheduleRepo.UpdateTimeslot(ctx, &timeslot); err != nil {
			return err
		}
		updated = &timeslot
		return nil
	})
	if err != nil {
		uc.Log.Error("scheduleUsecase.UpdateTimeslot error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.recordScheduleAction(ctx, actor, constvars.ActionUpdateAppointment, schedule, updated, nil, nil, map[string]interface{}{
		"status": string(updated.Status),
	})

	uc.Log.Info("scheduleUsecase.UpdateTimeslot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, updated.ID),
	)
	response := mapTimeslotToResponse(updated)
	return &response, nil
}

func (uc *scheduleUsecase) DeleteAppointment(ctx context.Context, actor contracts.Actor, timeslotID uint, strategy string) (*responses.DeleteAppointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.DeleteAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslotID),
		zap.String("strategy", strategy),
	)

	if !actor.Role.CanCreateSchedule() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot delete appointments", actor.Role))
	}

	switch strategy {
	case "":
		strategy = contracts.DeleteStrategySmart
	case contracts.DeleteStrategyAggressive, contracts.DeleteStrategyConservative, contracts.DeleteStrategySmart:
	default:
		return nil, exceptions.ErrInputValidation(fmt.Errorf("unknown delete strategy %q", strategy))
	}

	var result *responses.DeleteAppointment
	var schedule *models.Schedule
	var timeslot *models.Timeslot

	err := uc.DB.Transaction(func(tx *gorm.DB) error {
		scheduleRepo := uc.ScheduleRepository.WithTx(tx)

		entry, err := scheduleRepo.FindTimeslot(ctx, timeslotID)
		if err != nil {
			return err
		}
		if entry == nil {
			return exceptions.ErrScheduleNotFound(nil)
		}
		schedule = &entry.Schedule
		timeslot = &entry.Timeslot

		siblings, err := scheduleRepo.CountTimeslots(ctx, schedule.ID)
		if err != nil {
			return err
		}

		switch strategy {
		case contracts.DeleteStrategyAggressive:
			if err := scheduleRepo.Delete(ctx, schedule.ID); err != nil {
				return err
			}
			result = &responses.DeleteAppointment{
				Strategy:         strategy,
				DeletedTimeslots: int(siblings),
				ScheduleDeleted:  true,
			}

		case contracts.DeleteStrategyConservative:
			if err := scheduleRepo.DeleteTimeslot(ctx, timeslotID); err != nil {
				return err
			}
			scheduleDeleted := false
			if siblings == 1 {
				if err := scheduleRepo.Delete(ctx, schedule.ID); err != nil {
					return err
				}
				scheduleDeleted = true
			}
			result = &responses.DeleteAppointment{
				Strategy:         strategy,
				DeletedTimeslots: 1,
				ScheduleDeleted:  scheduleDeleted,
			}

		case contracts.DeleteStrategySmart:
			// The schedule shell always survives as blocked time.
			if err := scheduleRepo.DeleteTimeslot(ctx, timeslotID); err != nil {
				return err
			}
			result = &responses.DeleteAppointment{
				Strategy:         strategy,
				DeletedTimeslots: 1,
				ScheduleDeleted:  false,
			}
		}
		return nil
	})
	if err != nil {
		uc.Log.Error("scheduleUsecase.DeleteAppointment error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.recordScheduleAction(ctx, actor, constvars.ActionDeleteAppointment, schedule, timeslot, nil, nil, map[string]interface{}{
		"strategy":          result.Strategy,
		"deleted_timeslots": result.DeletedTimeslots,
		"schedule_deleted":  result.ScheduleDeleted,
	})

	uc.Log.Info("scheduleUsecase.DeleteAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, timeslotID),
	)
	return result, nil
}

func (uc *scheduleUsecase) Calendar(ctx context.Context, actor contracts.Actor, query *requests.CalendarQuery) ([]responses.Schedule, error) {
	if !actor.Role.IsStaff() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot view the calendar", actor.Role))
	}
	schedules, err := uc.ScheduleRepository.ListSchedules(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapSchedulesToResponse(schedules), nil
}

func (uc *scheduleUsecase) Availability(ctx context.Context, query *requests.AvailabilityQuery) (*responses.Availability, error) {
	date, err := utils.ParseDate(query.Date)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}

	workStart := query.StartTime
	if workStart == "" {
		workStart = uc.InternalConfig.Scheduling.AvailabilityStart
	}
	workEnd := query.EndTime
	if workEnd == "" {
		workEnd = uc.InternalConfig.Scheduling.AvailabilityEnd
	}
	slotMinutes := query.SlotMinutes
	if slotMinutes <= 0 {
		slotMinutes = uc.InternalConfig.Scheduling.DefaultSlotMinutes
	}

	report, err := uc.AvailabilityService.Check(ctx, query.ProviderID, date, workStart, workEnd, 0)
	if err != nil {
		return nil, err
	}

	slots, err := uc.AvailabilityService.AvailableSlots(ctx, query.ProviderID, date, workStart, workEnd, slotMinutes)
	if err != nil {
		return nil, err
	}

	conflicts := make([]responses.Conflict, 0, len(report.Conflicts))
	for _, conflict := range report.Conflicts {
		conflicts = append(conflicts, responses.Conflict{
			ScheduleID: conflict.ScheduleID,
			TimeslotID: conflict.TimeslotID,
			StartTime:  conflict.StartTime,
			EndTime:    conflict.EndTime,
			Kind:       conflict.Kind,
		})
	}

	return &responses.Availability{
		ProviderID:     query.ProviderID,
		Date:           query.Date,
		FullDayAbsence: report.FullDayAbsence,
		Conflicts:      conflicts,
		AvailableSlots: slots,
	}, nil
}

func (uc *scheduleUsecase) PatientSchedule(ctx context.Context, actor contracts.Actor) ([]responses.Schedule, error) {
	if actor.Role != models.RolePatient {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s is not a patient", actor.Role))
	}
	patient, err := uc.PatientRepository.FindByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	from, to := uc.selfViewRange()
	schedules, err := uc.ScheduleRepository.ListSchedulesForPatients(ctx, []uint{patient.ID}, from, to)
	if err != nil {
		return nil, err
	}
	return mapSchedulesToResponse(schedules), nil
}

func (uc *scheduleUsecase) FamilySchedule(ctx context.Context, actor contracts.Actor) ([]responses.Schedule, error) {
	if actor.Role != models.RoleFamilyPatient {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s is not a family patient", actor.Role))
	}
	links, err := uc.PatientRepository.ListFamilyLinks(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	patientIDs := make([]uint, 0, len(links))
	for _, link := range links {
		patientIDs = append(patientIDs, link.PatientID)
	}

	from, to := uc.selfViewRange()
	schedules, err := uc.ScheduleRepository.ListSchedulesForPatients(ctx, patientIDs, from, to)
	if err != nil {
		return nil, err
	}
	return mapSchedulesToResponse(schedules), nil
}

func (uc *scheduleUsecase) RequestScheduleChange(ctx context.Context, actor contracts.Actor, request *requests.ScheduleChangeRequest) (*responses.ScheduleChangeRequest, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("scheduleUsecase.RequestScheduleChange called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, request.TimeslotID),
	)

	if !actor.Role.CanRequestScheduleChange() {
		return nil, exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot request schedule changes", actor.Role))
	}

	entry, err := uc.ScheduleRepository.FindTimeslot(ctx, request.TimeslotID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, exceptions.ErrScheduleNotFound(nil)
	}
	if err := uc.checkReadAccess(ctx, actor, &entry.Schedule); err != nil {
		return nil, err
	}

	changeRequest := &models.ScheduleChangeRequest{
		TimeslotID:  request.TimeslotID,
		RequestedBy: actor.ID,
		RequestType: models.ChangeRequestType(request.RequestType),
		Reason:      request.Reason,
		Status:      models.ChangeRequestPending,
	}
	if request.RequestedDate != "" {
		requestedDate, err := utils.ParseDate(request.RequestedDate)
		if err != nil {
			return nil, exceptions.ErrInvalidTimeRange(err)
		}
		changeRequest.RequestedDate = &requestedDate
	}
	changeRequest.RequestedTime = request.RequestedTime

	if err := uc.ScheduleRepository.CreateChangeRequest(ctx, changeRequest); err != nil {
		return nil, err
	}

	ticket, err := uc.NotificationUsecase.NotifyScheduleChangeRequested(ctx, actor, changeRequest)
	if err != nil {
		return nil, err
	}
	changeRequest.TicketID = ticket.ID
	if err := uc.ScheduleRepository.UpdateChangeRequest(ctx, changeRequest); err != nil {
		return nil, err
	}

	uc.recordScheduleAction(ctx, actor, constvars.ActionScheduleChangeRequest, &entry.Schedule, &entry.Timeslot, nil, nil, map[string]interface{}{
		"request_type": request.RequestType,
		"ticket":       ticket.ID,
	})

	uc.Log.Info("scheduleUsecase.RequestScheduleChange succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint(constvars.LoggingTimeslotIDKey, request.TimeslotID),
	)
	return &responses.ScheduleChangeRequest{
		ID:       changeRequest.ID,
		TicketID: ticket.ID,
	}, nil
}

func (uc *scheduleUsecase) checkWorkingWindow(startMinutes, endMinutes int) error {
	windowStart, err := utils.ParseClock(uc.InternalConfig.Scheduling.WorkingWindowStart)
	if err != nil {
		return exceptions.ErrInvalidTimeRange(err)
	}
	windowEnd, err := utils.ParseClock(uc.InternalConfig.Scheduling.WorkingWindowEnd)
	if err != nil {
		return exceptions.ErrInvalidTimeRange(err)
	}
	if startMinutes < windowStart || endMinutes > windowEnd {
		return exceptions.ErrOutsideWorkingWindow(fmt.Errorf("window %s-%s",
			uc.InternalConfig.Scheduling.WorkingWindowStart,
			uc.InternalConfig.Scheduling.WorkingWindowEnd,
		))
	}
	return nil
}

func (uc *scheduleUsecase) checkPrescription(ctx context.Context, prescriptionID uint, serviceID *uint, patientID uint) error {
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return err
	}
	if prescription == nil {
		return exceptions.ErrPrescriptionMismatch(fmt.Errorf("prescription %d not found", prescriptionID))
	}
	if !prescription.IsAccepted() {
		return exceptions.ErrPrescriptionMismatch(fmt.Errorf("prescription %d status %s", prescription.ID, prescription.Status))
	}
	if serviceID == nil || prescription.ServiceID != *serviceID {
		return exceptions.ErrPrescriptionMismatch(fmt.Errorf("prescription %d service mismatch", prescription.ID))
	}
	if prescription.PatientID != patientID {
		return exceptions.ErrPrescriptionMismatch(fmt.Errorf("prescription %d patient mismatch", prescription.ID))
	}
	return nil
}

// checkReadAccess verifies a patient or family user may see the schedule.
func (uc *scheduleUsecase) checkReadAccess(ctx context.Context, actor contracts.Actor, schedule *models.Schedule) error {
	if schedule.PatientID == nil {
		return exceptions.ErrForbiddenRole(errors.New("blocked time is staff-only"))
	}

	switch actor.Role {
	case models.RolePatient:
		patient, err := uc.PatientRepository.FindByUserID(ctx, actor.ID)
		if err != nil {
			return err
		}
		if patient == nil || patient.ID != *schedule.PatientID {
			return exceptions.ErrForbiddenRole(errors.New("schedule belongs to another patient"))
		}
	case models.RoleFamilyPatient:
		links, err := uc.PatientRepository.ListFamilyLinks(ctx, actor.ID)
		if err != nil {
			return err
		}
		for _, link := range links {
			if link.PatientID == *schedule.PatientID {
				return nil
			}
		}
		return exceptions.ErrForbiddenRole(errors.New("patient is not linked to this family account"))
	default:
		return exceptions.ErrForbiddenRole(fmt.Errorf("role %s cannot view this schedule", actor.Role))
	}
	return nil
}

func (uc *scheduleUsecase) selfViewRange() (time.Time, time.Time) {
	now := utils.TruncateToDate(time.Now().UTC())
	return now.AddDate(0, 0, -30), now.AddDate(0, 0, 180)
}

// recordScheduleAction emits the audit entry; audit failures are logged and
// never surface to the caller.
func (uc *scheduleUsecase) recordScheduleAction(ctx context.Context, actor contracts.Actor, action string, schedule *models.Schedule, timeslot *models.Timeslot, patient *models.Patient, provider *models.Provider, additional map[string]interface{}) {
	entry := &models.ActionLogEntry{
		ActorID:        actor.ID,
		ActorEmail:     actor.Email,
		Action:         action,
		TargetKind:     constvars.TargetTimeslot,
		TargetID:       fmt.Sprintf("%d", timeslot.ID),
		AdditionalData: additional,
	}
	if entry.AdditionalData == nil {
		entry.AdditionalData = map[string]interface{}{}
	}
	if schedule != nil {
		entry.AdditionalData["schedule"] = fmt.Sprintf("ID: %d", schedule.ID)
		entry.AdditionalData["date"] = schedule.Date.Format(utils.DateLayout)
	}
	if patient != nil {
		entry.AffectedPatientID = &patient.ID
		entry.AffectedPatientName = patient.User.FullName()
	}
	if provider != nil {
		entry.AffectedProviderID = &provider.ID
		entry.AffectedProviderName = provider.User.FullName()
	}
	if err := uc.ActionLogService.Record(ctx, entry); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("scheduleUsecase action log write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActionKey, action),
			zap.Error(err),
		)
	}
}
