package config

import (
	"carelink-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			DbName:   utils.GetEnvString("POSTGRES_DB_NAME", "carelink"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "carelink"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "carelink"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "carelink_audit"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "carelink-invoices"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:        utils.GetEnvString("SMTP_HOST", "localhost"),
			Username:    utils.GetEnvString("SMTP_USERNAME", ""),
			Password:    utils.GetEnvString("SMTP_PASSWORD", ""),
			EmailSender: utils.GetEnvString("SMTP_EMAIL_SENDER", "noreply@carelink.be"),
			Port:        utils.GetEnvInt("SMTP_PORT", 2525),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Europe/Brussels"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			MailerQueue:                utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "carelink.mailer"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		JWT: JWT{
			Secret:                 utils.GetEnvString("JWT_SECRET", "anyjwt"),
			AccessExpTimeInMinutes: utils.GetEnvInt("JWT_ACCESS_EXP_TIME_IN_MINUTES", 15),
			RefreshExpTimeInHours:  utils.GetEnvInt("JWT_REFRESH_EXP_TIME_IN_HOURS", 12),
		},
		Cookie: Cookie{
			RefreshName: utils.GetEnvString("COOKIE_REFRESH_NAME", "carelink_refresh"),
			Domain:      utils.GetEnvString("COOKIE_DOMAIN", ""),
		},
		Scheduling: Scheduling{
			WorkingWindowStart: utils.GetEnvString("SCHEDULING_WORKING_WINDOW_START", "00:00"),
			WorkingWindowEnd:   utils.GetEnvString("SCHEDULING_WORKING_WINDOW_END", "23:59"),
			DefaultSlotMinutes: utils.GetEnvInt("SCHEDULING_DEFAULT_SLOT_MINUTES", 30),
			AvailabilityStart:  utils.GetEnvString("SCHEDULING_AVAILABILITY_START", "08:00"),
			AvailabilityEnd:    utils.GetEnvString("SCHEDULING_AVAILABILITY_END", "17:00"),
			MaxRecurringDates:  utils.GetEnvInt("SCHEDULING_MAX_RECURRING_DATES", 366),
		},
		Pricing: Pricing{
			NonBimCoPaymentRate:   utils.GetEnvString("PRICING_NON_BIM_CO_PAYMENT_RATE", "0.25"),
			BimHourlyCoPayment:    utils.GetEnvString("PRICING_BIM_HOURLY_CO_PAYMENT", "0.31"),
			BimFullCoverCeiling:   utils.GetEnvString("PRICING_BIM_FULL_COVER_CEILING", "10.00"),
			HousekeepingServiceID: uint(utils.GetEnvInt("PRICING_HOUSEKEEPING_SERVICE_ID", 1)),
			FamilyHelpServiceID:   uint(utils.GetEnvInt("PRICING_FAMILY_HELP_SERVICE_ID", 2)),
			NursingServiceID:      uint(utils.GetEnvInt("PRICING_NURSING_SERVICE_ID", 3)),
		},
		Consent: Consent{
			PolicyVersion:     utils.GetEnvString("CONSENT_POLICY_VERSION", "1.0"),
			ExpiryInDays:      utils.GetEnvInt("CONSENT_EXPIRY_IN_DAYS", 365),
			DebounceInSeconds: utils.GetEnvInt("CONSENT_DEBOUNCE_IN_SECONDS", 300),
		},
		Locker: Locker{
			RefreshLockTTLInSeconds: utils.GetEnvInt("LOCKER_REFRESH_LOCK_TTL_IN_SECONDS", 60),
		},
	}
}
