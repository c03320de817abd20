package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

const (
	DeleteStrategyAggressive   = "aggressive"
	DeleteStrategyConservative = "conservative"
	DeleteStrategySmart        = "smart"
)

type ConflictEntry struct {
	ScheduleID uint
	TimeslotID uint
	StartTime  string
	EndTime    string
	Kind       string
}

const (
	ConflictKindTimeslot     = "timeslot"
	ConflictKindShortAbsence = "short_absence"
	ConflictKindFullDay      = "full_day_absence"
)

type AvailabilityReport struct {
	FullDayAbsence bool
	Conflicts      []ConflictEntry
}

func (r *AvailabilityReport) HasConflict() bool {
	return r.FullDayAbsence || len(r.Conflicts) > 0
}

// AvailabilityService answers conflict questions for one provider-date. The
// conflict check re-runs inside the transaction writing a timeslot, so the
// oracle is transaction-aware.
type AvailabilityService interface {
	WithTx(tx *gorm.DB) AvailabilityService
	Check(ctx context.Context, providerID uint, date time.Time, startTime, endTime string, excludeTimeslotID uint) (*AvailabilityReport, error)
	AvailableSlots(ctx context.Context, providerID uint, date time.Time, workStart, workEnd string, slotMinutes int) ([]responses.Slot, error)
}

type ScheduleUsecase interface {
	CreateAppointment(ctx context.Context, actor Actor, request *requests.CreateAppointment) (*responses.Schedule, error)
	CreateRecurringAppointments(ctx context.Context, actor Actor, request *requests.CreateRecurringAppointment) (*responses.RecurringResult, error)
	GetAppointment(ctx context.Context, actor Actor, timeslotID uint) (*responses.Timeslot, error)
	UpdateTimeslot(ctx context.Context, actor Actor, timeslotID uint, request *requests.UpdateTimeslot) (*responses.Timeslot, error)
	DeleteAppointment(ctx context.Context, actor Actor, timeslotID uint, strategy string) (*responses.DeleteAppointment, error)
	Calendar(ctx context.Context, actor Actor, query *requests.CalendarQuery) ([]responses.Schedule, error)
	Availability(ctx context.Context, query *requests.AvailabilityQuery) (*responses.Availability, error)
	PatientSchedule(ctx context.Context, actor Actor) ([]responses.Schedule, error)
	FamilySchedule(ctx context.Context, actor Actor) ([]responses.Schedule, error)
	RequestScheduleChange(ctx context.Context, actor Actor, request *requests.ScheduleChangeRequest) (*responses.ScheduleChangeRequest, error)
}

// TimeslotWithSchedule denormalizes the owning schedule for conflict checks
// and calendar assembly.
type TimeslotWithSchedule struct {
	Timeslot models.Timeslot
	Schedule models.Schedule
}

type ScheduleRepository interface {
	WithTx(tx *gorm.DB) ScheduleRepository
	FindByTriple(ctx context.Context, providerID uint, patientID *uint, date time.Time) (*models.Schedule, error)
	FindByID(ctx context.Context, scheduleID uint) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, scheduleID uint) error
	CreateTimeslot(ctx context.Context, timeslot *models.Timeslot) error
	UpdateTimeslot(ctx context.Context, timeslot *models.Timeslot) error
	DeleteTimeslot(ctx context.Context, timeslotID uint) error
	FindTimeslot(ctx context.Context, timeslotID uint) (*TimeslotWithSchedule, error)
	CountTimeslots(ctx context.Context, scheduleID uint) (int64, error)
	ListTimeslotsForProviderDate(ctx context.Context, providerID uint, date time.Time) ([]TimeslotWithSchedule, error)
	ListSchedules(ctx context.Context, query *requests.CalendarQuery) ([]models.Schedule, error)
	ListSchedulesForPatients(ctx context.Context, patientIDs []uint, from, to time.Time) ([]models.Schedule, error)
	ListShortAbsences(ctx context.Context, providerID uint, date time.Time) ([]models.ProviderShortAbsence, error)
	HasFullDayAbsence(ctx context.Context, providerID uint, date time.Time) (bool, error)
	CountTimeslotsForPrescription(ctx context.Context, prescriptionID uint) (int64, error)
	CreateChangeRequest(ctx context.Context, request *models.ScheduleChangeRequest) error
	UpdateChangeRequest(ctx context.Context, request *models.ScheduleChangeRequest) error
}
