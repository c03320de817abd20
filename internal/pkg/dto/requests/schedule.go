package requests

// CreateAppointment is the quick-schedule payload. PricingInput is opaque to
// the scheduler and only interpreted by the pricing engine for nursing
// services.
type CreateAppointment struct {
	ProviderID     uint                   `json:"provider_id" validate:"required"`
	PatientID      uint                   `json:"patient_id" validate:"required"`
	Date           string                 `json:"date" validate:"required,ymd"`
	StartTime      string                 `json:"start_time" validate:"required,hhmm"`
	EndTime        string                 `json:"end_time" validate:"required,hhmm"`
	ServiceID      *uint                  `json:"service_id"`
	PrescriptionID *uint                  `json:"prescription_id"`
	Description    string                 `json:"description"`
	PricingInput   map[string]interface{} `json:"pricing_input"`
}

// Recurrence expands into at most 366 dates. Weekdays use ISO numbering,
// 1=Monday through 7=Sunday.
type Recurrence struct {
	Frequency   string `json:"frequency" validate:"required,oneof=daily weekly biweekly monthly"`
	Weekdays    []int  `json:"weekdays" validate:"dive,min=1,max=7"`
	Interval    int    `json:"interval" validate:"omitempty,min=1"`
	EndType     string `json:"end_type" validate:"required,oneof=date occurrences"`
	EndDate     string `json:"end_date" validate:"omitempty,ymd"`
	Occurrences int    `json:"occurrences" validate:"omitempty,min=1,max=366"`
}

type CreateRecurringAppointment struct {
	CreateAppointment
	Recurrence *Recurrence `json:"recurrence"`
	// Dates, when supplied, bypasses recurrence expansion entirely.
	Dates []string `json:"dates" validate:"omitempty,dive,ymd"`
}

type UpdateTimeslot struct {
	StartTime      *string                `json:"start_time" validate:"omitempty,hhmm"`
	EndTime        *string                `json:"end_time" validate:"omitempty,hhmm"`
	ServiceID      *uint                  `json:"service_id"`
	PrescriptionID *uint                  `json:"prescription_id"`
	Description    *string                `json:"description"`
	Status         *string                `json:"status" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled no_show"`
	PricingInput   map[string]interface{} `json:"pricing_input"`
}

type ScheduleChangeRequest struct {
	TimeslotID    uint   `json:"timeslot_id" validate:"required"`
	RequestType   string `json:"request_type" validate:"required,oneof=reschedule cancel"`
	Reason        string `json:"reason" validate:"required"`
	RequestedDate string `json:"requested_date" validate:"omitempty,ymd"`
	RequestedTime string `json:"requested_time" validate:"omitempty,hhmm"`
}

type CalendarQuery struct {
	StartDate  string
	EndDate    string
	ProviderID *uint
	Status     string
}

type AvailabilityQuery struct {
	ProviderID  uint
	Date        string
	StartTime   string
	EndTime     string
	SlotMinutes int
}
