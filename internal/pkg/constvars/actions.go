package constvars

// Action log kinds. The audit trail stores these verbatim; treat them as a
// stable wire contract.
const (
	ActionCreateSchedule        = "CREATE_SCHEDULE"
	ActionUpdateAppointment     = "UPDATE_APPOINTMENT"
	ActionDeleteAppointment     = "DELETE_APPOINTMENT"
	ActionGenerateInvoice       = "GENERATE_INVOICE"
	ActionScheduleChangeRequest = "SCHEDULE_CHANGE_REQUEST"
	ActionDeleteUser            = "DELETE_USER"
	ActionProfileAnonymized     = "PROFILE_ANONYMIZED"
	ActionLoginFailed           = "LOGIN_FAILED"
	ActionLogout                = "LOGOUT"
	ActionRefreshRejected       = "REFRESH_REJECTED"
	ActionConsentRecorded       = "CONSENT_RECORDED"
	ActionConsentWithdrawn      = "CONSENT_WITHDRAWN"
)

// Target kinds for action log entries.
const (
	TargetSchedule = "Schedule"
	TargetTimeslot = "Timeslot"
	TargetInvoice  = "Invoice"
	TargetUser     = "User"
	TargetConsent  = "CookieConsent"
	TargetTicket   = "Ticket"
)
