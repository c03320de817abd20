package exceptions

import (
	"carelink-service/internal/pkg/constvars"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeConflict              = "CONFLICT"
	CodeInvalidRange          = "INVALID_RANGE"
	CodePrescriptionMismatch  = "PRESCRIPTION_MISMATCH"
	CodeForbidden             = "FORBIDDEN"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeTooManyRequests       = "TOO_MANY_REQUESTS"
	CodeTokenBlacklisted      = "TOKEN_BLACKLISTED"
	CodeAccountOpenInvoices   = "ACCOUNT_HAS_OPEN_INVOICES"
	CodeNotFound              = "NOT_FOUND"
	CodeDuplicateInvoice      = "DUPLICATE_INVOICE"
	CodeNegativeAmount        = "NEGATIVE_AMOUNT"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusRequestTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrDatabaseOperation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDatabaseOperation)
	}

	// Auth lifecycle
	ErrInvalidEmailOrPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidEmailOrPassword, constvars.ErrDevInvalidCredentials)
	}
	ErrAccountInactive = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientAccountInactive, constvars.ErrDevUserInactive).WithCode(CodeForbidden)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalid)
	}
	ErrTokenBlacklisted = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientTokenBlacklisted, constvars.ErrDevAuthJTIBlacklisted).WithCode(CodeTokenBlacklisted)
	}
	ErrTokenNotOutstanding = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthJTIUnknown)
	}
	ErrRefreshInProgress = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientRefreshInProgress, constvars.ErrDevAuthRefreshLocked).WithCode(CodeTooManyRequests)
	}
	ErrForbiddenRole = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidCredentials).WithCode(CodeForbidden)
	}

	// Scheduling
	ErrScheduleConflict = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientScheduleConflict, constvars.ErrDevScheduleConflict).WithCode(CodeConflict)
	}
	ErrInvalidTimeRange = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidTimeRange, constvars.ErrDevInvalidTimeRange).WithCode(CodeInvalidRange)
	}
	ErrOutsideWorkingWindow = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientOutsideWorkingWindow, constvars.ErrDevOutsideWorkingWindow).WithCode(CodeInvalidRange)
	}
	ErrPrescriptionMismatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPrescriptionMismatch, constvars.ErrDevPrescriptionMismatch).WithCode(CodePrescriptionMismatch)
	}
	ErrProviderNoActiveContract = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientProviderNoContract, constvars.ErrDevProviderNoContract).WithCode(CodeConflict)
	}
	ErrInvalidStatusTransition = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvalidStatusTransition, constvars.ErrDevInvalidStatusTransition).WithCode(CodeInvalidTransition)
	}

	// Entities
	ErrUserNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientUserNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrPatientNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrProviderNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientProviderNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrServiceNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientServiceNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrScheduleNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientScheduleNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrInvoiceNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientInvoiceNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrConsentNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientConsentNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrNotificationNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientNotificationNotFound, constvars.ErrDevDocumentNotFound).WithCode(CodeNotFound)
	}
	ErrEmailAlreadyExist = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientEmailAlreadyExists, constvars.ErrDevEmailAlreadyExists)
	}
	ErrPasswordDoNotMatch = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPasswordsDoNotMatch, constvars.ErrDevPasswordsDoNotMatch)
	}

	// Invoicing and deletion guard
	ErrInvoicePeriodInvalid = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientInvoicePeriodInvalid, constvars.ErrDevInvoicePeriodInvalid).WithCode(CodeInvalidRange)
	}
	ErrPricingNegativeAmount = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevPricingNegativeAmount).WithCode(CodeNegativeAmount)
	}
	ErrDuplicateInvoice = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevInvoiceDuplicatePeriod).WithCode(CodeDuplicateInvoice)
	}
	ErrAccountHasOpenInvoices = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientAccountOpenInvoices, constvars.ErrDevUserHasOpenInvoices).WithCode(CodeAccountOpenInvoices)
	}

	// Infrastructure
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGetNoData = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGet+": "+key)
	}
	ErrRedisIncrement = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisIncrement)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}
	ErrMongoInsert = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoInsert)
	}
	ErrMongoFind = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoFind)
	}
	ErrRabbitMQPublish = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQPublish).WithCode(CodeDependencyUnavailable)
	}
	ErrMinioCreateObject = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusServiceUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMinioCreateObject+": "+bucket).WithCode(CodeDependencyUnavailable)
	}
)
