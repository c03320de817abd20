package constvars

// Validation messages keyed by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"eqfield":  "must match %s",
	"oneof":    "must be one of %s",
	"password": "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"hhmm":     "must be a valid HH:MM time",
	"ymd":      "must be a valid YYYY-MM-DD date",
}

// Error messages for clients
const (
	ErrClientPasswordsDoNotMatch           = "passwords do not match"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientAccountInactive               = "your account is not active yet"

	ErrClientScheduleConflict        = "the provider is already booked on that time"
	ErrClientProviderAbsent          = "the provider is absent on that date"
	ErrClientInvalidTimeRange        = "end time must be after start time"
	ErrClientOutsideWorkingWindow    = "appointment falls outside the working window"
	ErrClientPrescriptionMismatch    = "the prescription does not match this appointment"
	ErrClientInvalidStatusTransition = "that appointment status change is not allowed"
	ErrClientScheduleNotFound        = "appointment not found"
	ErrClientUserNotFound            = "user not found"
	ErrClientPatientNotFound         = "patient not found"
	ErrClientProviderNotFound        = "provider not found"
	ErrClientProviderNoContract      = "provider is not available for scheduling"
	ErrClientServiceNotFound         = "service not found"
	ErrClientInvoiceNotFound         = "invoice not found"
	ErrClientConsentNotFound         = "no active consent found"
	ErrClientNotificationNotFound    = "notification not found"

	ErrClientRefreshInProgress   = "a token refresh is already in progress"
	ErrClientTokenBlacklisted    = "this session has been revoked, please login again"
	ErrClientAccountOpenInvoices = "account cannot be deleted while invoices are open"

	ErrClientInvoicePeriodInvalid = "invoice period end must not be before its start"
)

// Error messages for developers
const (
	ErrDevInvalidInput       = "invalid input"
	ErrDevCannotParseJSON    = "cannot parse JSON"
	ErrDevCannotMarshalJSON  = "cannot marshal JSON"
	ErrDevValidationFailed   = "validation failed"
	ErrDevDocumentNotFound   = "document not found"
	ErrDevInvalidCredentials = "invalid credentials"

	ErrDevFailedToCreateUser    = "failed to create user"
	ErrDevFailedToHashPassword  = "failed to hash password"
	ErrDevEmailAlreadyExists    = "email already exists"
	ErrDevPasswordsDoNotMatch   = "passwords do not match"
	ErrDevUserInactive          = "user is not active"
	ErrDevUserHasOpenInvoices   = "user has open invoices blocking deletion"
	ErrDevUserHasRecentInvoices = "user has invoices created in the last 30 days"

	ErrDevAuthSigningMethod      = "unexpected signing method"
	ErrDevAuthTokenInvalid       = "invalid token"
	ErrDevAuthTokenExpired       = "token expired"
	ErrDevAuthTokenMissing       = "token missing"
	ErrDevAuthGenerateToken      = "failed to generate token"
	ErrDevAuthTokenNotRefresh    = "token is not a refresh token"
	ErrDevAuthJTIUnknown         = "refresh jti is not outstanding"
	ErrDevAuthJTIBlacklisted     = "refresh jti is blacklisted"
	ErrDevAuthRefreshLocked      = "concurrent refresh for the same credential"
	ErrDevServerDeadlineExceeded = "server deadline exceeded"

	ErrDevScheduleConflict        = "timeslot overlaps an existing booking or absence"
	ErrDevProviderNoContract      = "provider has no active contract"
	ErrDevInvalidTimeRange        = "end must be after start"
	ErrDevOutsideWorkingWindow    = "outside configured working window"
	ErrDevPrescriptionMismatch    = "prescription service/status/patient mismatch"
	ErrDevInvalidStatusTransition = "timeslot status transition not allowed"
	ErrDevRecurrenceEmpty         = "recurrence expansion produced no dates"

	ErrDevInvoiceDuplicatePeriod = "invoice already exists for patient and period"
	ErrDevPricingNegativeAmount  = "pricing produced a negative amount"
	ErrDevInvoicePeriodInvalid   = "invoice period end before start"

	ErrDevRedisSet          = "failed to set value in redis"
	ErrDevRedisGet          = "failed to get value from redis"
	ErrDevRedisDelete       = "failed to delete value from redis"
	ErrDevRedisIncrement    = "failed to increment value in redis"
	ErrDevRedisUnlock       = "failed to release redis lock"
	ErrDevMongoInsert       = "failed to insert document into mongo"
	ErrDevMongoFind         = "failed to query documents from mongo"
	ErrDevRabbitMQPublish   = "failed to publish message to rabbitmq"
	ErrDevMinioCreateObject = "failed to store object in minio"
	ErrDevDatabaseOperation = "database operation failed"
)
