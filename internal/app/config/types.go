package config

type (
	DriverConfig struct {
		Postgres Postgres
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
		Logger   Logger
	}

	Postgres struct {
		Host     string
		Port     string
		DbName   string
		Username string
		Password string
		SSLMode  string
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
	SMTP struct {
		Host        string
		Username    string
		Password    string
		EmailSender string
		Port        int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type (
	InternalConfig struct {
		App        App
		JWT        JWT
		Cookie     Cookie
		Scheduling Scheduling
		Pricing    Pricing
		Consent    Consent
		Locker     Locker
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Address                    string
		Timezone                   string
		EndpointPrefix             string
		MailerQueue                string
		MaxRequests                int
		ShutdownTimeoutInSeconds   int
		MaxTimeRequestsPerSeconds  int
		RequestBodyLimitInMegabyte int
	}

	JWT struct {
		Secret                 string
		AccessExpTimeInMinutes int
		RefreshExpTimeInHours  int
	}

	Cookie struct {
		RefreshName string
		Domain      string
	}

	Scheduling struct {
		WorkingWindowStart string
		WorkingWindowEnd   string
		DefaultSlotMinutes int
		AvailabilityStart  string
		AvailabilityEnd    string
		MaxRecurringDates  int
	}

	Pricing struct {
		NonBimCoPaymentRate   string
		BimHourlyCoPayment    string
		BimFullCoverCeiling   string
		HousekeepingServiceID uint
		FamilyHelpServiceID   uint
		NursingServiceID      uint
	}

	Consent struct {
		PolicyVersion     string
		ExpiryInDays      int
		DebounceInSeconds int
	}

	Locker struct {
		RefreshLockTTLInSeconds int
	}
)
