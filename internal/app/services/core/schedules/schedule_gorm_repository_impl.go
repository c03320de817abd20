package schedules

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"gorm.io/gorm"
)

type ScheduleGormRepository struct {
	DB *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) contracts.ScheduleRepository {
	return &ScheduleGormRepository{DB: db}
}

func (repo *ScheduleGormRepository) WithTx(tx *gorm.DB) contracts.ScheduleRepository {
	return &ScheduleGormRepository{DB: tx}
}

func (repo *ScheduleGormRepository) FindByTriple(ctx context.Context, providerID uint, patientID *uint, date time.Time) (*models.Schedule, error) {
	query := repo.DB.WithContext(ctx).
		Where("provider_id = ? AND date = ?", providerID, utils.TruncateToDate(date))
	if patientID == nil {
		query = query.Where("patient_id IS NULL")
	} else {
		query = query.Where("patient_id = ?", *patientID)
	}

	var schedule models.Schedule
	err := query.First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &schedule, nil
}

func (repo *ScheduleGormRepository) FindByID(ctx context.Context, scheduleID uint) (*models.Schedule, error) {
	var schedule models.Schedule
	err := repo.DB.WithContext(ctx).Preload("Timeslots").First(&schedule, scheduleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &schedule, nil
}

func (repo *ScheduleGormRepository) Create(ctx context.Context, schedule *models.Schedule) error {
	schedule.Date = utils.TruncateToDate(schedule.Date)
	if err := repo.DB.WithContext(ctx).Create(schedule).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) Delete(ctx context.Context, scheduleID uint) error {
	err := repo.DB.WithContext(ctx).
		Select("Timeslots").
		Delete(&models.Schedule{ID: scheduleID}).Error
	if err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) CreateTimeslot(ctx context.Context, timeslot *models.Timeslot) error {
	if err := repo.DB.WithContext(ctx).Create(timeslot).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) UpdateTimeslot(ctx context.Context, timeslot *models.Timeslot) error {
	if err := repo.DB.WithContext(ctx).Save(timeslot).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) DeleteTimeslot(ctx context.Context, timeslotID uint) error {
	err := repo.DB.WithContext(ctx).Delete(&models.Timeslot{}, timeslotID).Error
	if err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) FindTimeslot(ctx context.Context, timeslotID uint) (*contracts.TimeslotWithSchedule, error) {
	var timeslot models.Timeslot
	err := repo.DB.WithContext(ctx).Preload("Prescription").First(&timeslot, timeslotID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, exceptions.ErrDatabaseOperation(err)
	}

	var schedule models.Schedule
	err = repo.DB.WithContext(ctx).First(&schedule, timeslot.ScheduleID).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}

	return &contracts.TimeslotWithSchedule{Timeslot: timeslot, Schedule: schedule}, nil
}

func (repo *ScheduleGormRepository) CountTimeslots(ctx context.Context, scheduleID uint) (int64, error) {
	var count int64
	err := repo.DB.WithContext(ctx).
		Model(&models.Timeslot{}).
		Where("schedule_id = ?", scheduleID).
		Count(&count).Error
	if err != nil {
		return 0, exceptions.ErrDatabaseOperation(err)
	}
	return count, nil
}

func (repo *ScheduleGormRepository) ListTimeslotsForProviderDate(ctx context.Context, providerID uint, date time.Time) ([]contracts.TimeslotWithSchedule, error) {
	var schedules []models.Schedule
	err := repo.DB.WithContext(ctx).
		Preload("Timeslots").
		Where("provider_id = ? AND date = ?", providerID, utils.TruncateToDate(date)).
		Find(&schedules).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}

	var result []contracts.TimeslotWithSchedule
	for _, schedule := range schedules {
		for _, timeslot := range schedule.Timeslots {
			result = append(result, contracts.TimeslotWithSchedule{
				Timeslot: timeslot,
				Schedule: schedule,
			})
		}
	}
	return result, nil
}

func (repo *ScheduleGormRepository) ListSchedules(ctx context.Context, query *requests.CalendarQuery) ([]models.Schedule, error) {
	db := repo.DB.WithContext(ctx).Preload("Timeslots")

	if query.StartDate != "" {
		start, err := utils.ParseDate(query.StartDate)
		if err != nil {
			return nil, exceptions.ErrInvalidTimeRange(err)
		}
		db = db.Where("date >= ?", start)
	}
	if query.EndDate != "" {
		end, err := utils.ParseDate(query.EndDate)
		if err != nil {
			return nil, exceptions.ErrInvalidTimeRange(err)
		}
		db = db.Where("date <= ?", end)
	}
	if query.ProviderID != nil {
		db = db.Where("provider_id = ?", *query.ProviderID)
	}

	var schedules []models.Schedule
	if err := db.Order("date asc").Find(&schedules).Error; err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}

	if query.Status == "" {
		return schedules, nil
	}

	// Status filters timeslots inside each schedule, not the schedules
	// themselves.
	filtered := make([]models.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		var kept []models.Timeslot
		for _, timeslot := range schedule.Timeslots {
			if string(timeslot.Status) == query.Status {
				kept = append(kept, timeslot)
			}
		}
		if len(kept) > 0 {
			schedule.Timeslots = kept
			filtered = append(filtered, schedule)
		}
	}
	return filtered, nil
}

func (repo *ScheduleGormRepository) ListSchedulesForPatients(ctx context.Context, patientIDs []uint, from, to time.Time) ([]models.Schedule, error) {
	if len(patientIDs) == 0 {
		return nil, nil
	}
	var schedules []models.Schedule
	err := repo.DB.WithContext(ctx).
		Preload("Timeslots").
		Where("patient_id IN ? AND date >= ? AND date <= ?", patientIDs, utils.TruncateToDate(from), utils.TruncateToDate(to)).
		Order("date asc").
		Find(&schedules).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return schedules, nil
}

func (repo *ScheduleGormRepository) ListShortAbsences(ctx context.Context, providerID uint, date time.Time) ([]models.ProviderShortAbsence, error) {
	var absences []models.ProviderShortAbsence
	err := repo.DB.WithContext(ctx).
		Where("provider_id = ? AND date = ?", providerID, utils.TruncateToDate(date)).
		Find(&absences).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return absences, nil
}

func (repo *ScheduleGormRepository) HasFullDayAbsence(ctx context.Context, providerID uint, date time.Time) (bool, error) {
	var count int64
	day := utils.TruncateToDate(date)
	err := repo.DB.WithContext(ctx).
		Model(&models.ProviderAbsence{}).
		Where("provider_id = ? AND start_date <= ? AND end_date >= ?", providerID, day, day).
		Count(&count).Error
	if err != nil {
		return false, exceptions.ErrDatabaseOperation(err)
	}
	return count > 0, nil
}

func (repo *ScheduleGormRepository) CountTimeslotsForPrescription(ctx context.Context, prescriptionID uint) (int64, error) {
	var count int64
	err := repo.DB.WithContext(ctx).
		Model(&models.Timeslot{}).
		Where("prescription_id = ?", prescriptionID).
		Count(&count).Error
	if err != nil {
		return 0, exceptions.ErrDatabaseOperation(err)
	}
	return count, nil
}

func (repo *ScheduleGormRepository) CreateChangeRequest(ctx context.Context, request *models.ScheduleChangeRequest) error {
	if err := repo.DB.WithContext(ctx).Create(request).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (repo *ScheduleGormRepository) UpdateChangeRequest(ctx context.Context, request *models.ScheduleChangeRequest) error {
	if err := repo.DB.WithContext(ctx).Save(request).Error; err != nil {
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}
