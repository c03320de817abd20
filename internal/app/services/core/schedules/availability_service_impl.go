package schedules

import (
	"context"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"gorm.io/gorm"
)

// blockingStatuses occupy provider time; cancelled and no_show slots do not.
var blockingStatuses = map[models.TimeslotStatus]bool{
	models.TimeslotScheduled:  true,
	models.TimeslotConfirmed:  true,
	models.TimeslotInProgress: true,
	models.TimeslotCompleted:  true,
}

type availabilityService struct {
	ScheduleRepository contracts.ScheduleRepository
}

func NewAvailabilityService(repo contracts.ScheduleRepository) contracts.AvailabilityService {
	return &availabilityService{ScheduleRepository: repo}
}

func (s *availabilityService) WithTx(tx *gorm.DB) contracts.AvailabilityService {
	return &availabilityService{ScheduleRepository: s.ScheduleRepository.WithTx(tx)}
}

func (s *availabilityService) Check(ctx context.Context, providerID uint, date time.Time, startTime, endTime string, excludeTimeslotID uint) (*contracts.AvailabilityReport, error) {
	startMinutes, err := utils.ParseClock(startTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}
	endMinutes, err := utils.ParseClock(endTime)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}

	report := &contracts.AvailabilityReport{}

	fullDay, err := s.ScheduleRepository.HasFullDayAbsence(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	report.FullDayAbsence = fullDay

	booked, err := s.ScheduleRepository.ListTimeslotsForProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	for _, entry := range booked {
		if entry.Timeslot.ID == excludeTimeslotID {
			continue
		}
		if !blockingStatuses[entry.Timeslot.Status] {
			continue
		}
		bookedStart, err := utils.ParseClock(entry.Timeslot.StartTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		bookedEnd, err := utils.ParseClock(entry.Timeslot.EndTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		if utils.Overlaps(startMinutes, endMinutes, bookedStart, bookedEnd) {
			report.Conflicts = append(report.Conflicts, contracts.ConflictEntry{
				ScheduleID: entry.Schedule.ID,
				TimeslotID: entry.Timeslot.ID,
				StartTime:  entry.Timeslot.StartTime,
				EndTime:    entry.Timeslot.EndTime,
				Kind:       contracts.ConflictKindTimeslot,
			})
		}
	}

	shortAbsences, err := s.ScheduleRepository.ListShortAbsences(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	for _, absence := range shortAbsences {
		absenceStart, err := utils.ParseClock(absence.StartTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		absenceEnd, err := utils.ParseClock(absence.EndTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		if utils.Overlaps(startMinutes, endMinutes, absenceStart, absenceEnd) {
			report.Conflicts = append(report.Conflicts, contracts.ConflictEntry{
				StartTime: absence.StartTime,
				EndTime:   absence.EndTime,
				Kind:      contracts.ConflictKindShortAbsence,
			})
		}
	}

	return report, nil
}

func (s *availabilityService) AvailableSlots(ctx context.Context, providerID uint, date time.Time, workStart, workEnd string, slotMinutes int) ([]responses.Slot, error) {
	startMinutes, err := utils.ParseClock(workStart)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}
	endMinutes, err := utils.ParseClock(workEnd)
	if err != nil {
		return nil, exceptions.ErrInvalidTimeRange(err)
	}

	fullDay, err := s.ScheduleRepository.HasFullDayAbsence(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	if fullDay {
		return nil, nil
	}

	type interval struct{ start, end int }
	var busy []interval

	booked, err := s.ScheduleRepository.ListTimeslotsForProviderDate(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	for _, entry := range booked {
		if !blockingStatuses[entry.Timeslot.Status] {
			continue
		}
		bookedStart, err := utils.ParseClock(entry.Timeslot.StartTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		bookedEnd, err := utils.ParseClock(entry.Timeslot.EndTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		busy = append(busy, interval{bookedStart, bookedEnd})
	}

	shortAbsences, err := s.ScheduleRepository.ListShortAbsences(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	for _, absence := range shortAbsences {
		absenceStart, err := utils.ParseClock(absence.StartTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		absenceEnd, err := utils.ParseClock(absence.EndTime)
		if err != nil {
			return nil, exceptions.ErrDatabaseOperation(err)
		}
		busy = append(busy, interval{absenceStart, absenceEnd})
	}

	var slots []responses.Slot
	for cursor := startMinutes; cursor+slotMinutes <= endMinutes; cursor += slotMinutes {
		free := true
		for _, occupied := range busy {
			if utils.Overlaps(cursor, cursor+slotMinutes, occupied.start, occupied.end) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, responses.Slot{
				StartTime: utils.FormatClock(cursor),
				EndTime:   utils.FormatClock(cursor + slotMinutes),
			})
		}
	}
	return slots, nil
}
