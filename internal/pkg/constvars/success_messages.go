package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// User-related messages
	UserCreatedSuccess     = "user created successfully"
	UserUpdatedSuccess     = "user updated successfully"
	UserDeletedSuccess     = "user deleted successfully"
	UserDeactivatedSuccess = "user deactivated successfully"
	UserAnonymizedSuccess  = "user anonymized successfully"
	ProfileGetSuccess      = "get profile successfully"

	// Auth messages
	LoginSuccess    = "successfully login"
	LogoutSuccess   = "successfully logout"
	RefreshSuccess  = "token refreshed successfully"
	RegisterSuccess = "account registered, please verify your email"

	// Schedule messages
	ScheduleCreatedSuccess          = "appointment created successfully"
	ScheduleRecurringCreatedSuccess = "recurring appointments processed"
	ScheduleUpdatedSuccess          = "appointment updated successfully"
	ScheduleDeletedSuccess          = "appointment deleted successfully"
	ScheduleGetSuccess              = "get schedule successfully"
	ScheduleChangeRequestedSuccess  = "schedule change request submitted"
	AvailabilityGetSuccess          = "get availability successfully"

	// Invoice messages
	InvoiceGeneratedSuccess = "invoice generated successfully"
	InvoiceGetSuccess       = "get invoice successfully"

	// Consent messages
	ConsentStoredSuccess    = "consent stored successfully"
	ConsentWithdrawnSuccess = "consent withdrawn successfully"
	ConsentHistorySuccess   = "get consent history successfully"
	ConsentStatsSuccess     = "get consent stats successfully"
)
