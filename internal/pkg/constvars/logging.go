package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingDataKey               = "data"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingUserIDKey             = "user_id"
	LoggingPatientIDKey          = "patient_id"
	LoggingProviderIDKey         = "provider_id"
	LoggingScheduleIDKey         = "schedule_id"
	LoggingTimeslotIDKey         = "timeslot_id"
	LoggingInvoiceIDKey          = "invoice_id"
	LoggingDateKey               = "date"
	LoggingActionKey             = "action"
	LoggingJTIKey                = "jti"
)
