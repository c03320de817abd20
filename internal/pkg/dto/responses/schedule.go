package responses

type Timeslot struct {
	ID             uint   `json:"id"`
	ScheduleID     uint   `json:"schedule_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ServiceID      *uint  `json:"service_id,omitempty"`
	PrescriptionID *uint  `json:"prescription_id,omitempty"`
	Status         string `json:"status"`
	Description    string `json:"description,omitempty"`
}

type Schedule struct {
	ID         uint       `json:"id"`
	Date       string     `json:"date"`
	ProviderID uint       `json:"provider_id"`
	PatientID  *uint      `json:"patient_id,omitempty"`
	Timeslots  []Timeslot `json:"timeslots"`
}

type Conflict struct {
	ScheduleID uint   `json:"schedule_id,omitempty"`
	TimeslotID uint   `json:"timeslot_id,omitempty"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Kind       string `json:"kind"`
}

type Availability struct {
	ProviderID     uint       `json:"provider_id"`
	Date           string     `json:"date"`
	FullDayAbsence bool       `json:"full_day_absence"`
	Conflicts      []Conflict `json:"conflicts"`
	AvailableSlots []Slot     `json:"available_slots"`
}

type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SkippedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RecurringResult reports the best-effort outcome; created entries are never
// rolled back when a later date fails.
type RecurringResult struct {
	CreatedScheduleIDs []uint        `json:"created_schedule_ids"`
	CreatedTimeslotIDs []uint        `json:"created_timeslot_ids"`
	Skipped            []SkippedDate `json:"skipped"`
}

type DeleteAppointment struct {
	Strategy         string `json:"strategy"`
	DeletedTimeslots int    `json:"deleted_timeslots"`
	ScheduleDeleted  bool   `json:"schedule_deleted"`
}

type ScheduleChangeRequest struct {
	ID       uint `json:"id"`
	TicketID uint `json:"ticket_id"`
}
