package schedules

import (
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/utils"
)

func mapTimeslotToResponse(timeslot *models.Timeslot) responses.Timeslot {
	return responses.Timeslot{
		ID:             timeslot.ID,
		ScheduleID:     timeslot.ScheduleID,
		StartTime:      timeslot.StartTime,
		EndTime:        timeslot.EndTime,
		ServiceID:      timeslot.ServiceID,
		PrescriptionID: timeslot.PrescriptionID,
		Status:         string(timeslot.Status),
		Description:    timeslot.Description,
	}
}

func mapScheduleToResponse(schedule *models.Schedule) responses.Schedule {
	timeslots := make([]responses.Timeslot, 0, len(schedule.Timeslots))
	for i := range schedule.Timeslots {
		timeslots = append(timeslots, mapTimeslotToResponse(&schedule.Timeslots[i]))
	}
	return responses.Schedule{
		ID:         schedule.ID,
		Date:       schedule.Date.Format(utils.DateLayout),
		ProviderID: schedule.ProviderID,
		PatientID:  schedule.PatientID,
		Timeslots:  timeslots,
	}
}

func mapSchedulesToResponse(schedules []models.Schedule) []responses.Schedule {
	result := make([]responses.Schedule, 0, len(schedules))
	for i := range schedules {
		result = append(result, mapScheduleToResponse(&schedules[i]))
	}
	return result
}
