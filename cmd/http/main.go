package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/app/delivery/http/routers"
	"carelink-service/internal/app/drivers/database"
	"carelink-service/internal/app/drivers/logger"
	smtpdriver "carelink-service/internal/app/drivers/mailer"
	"carelink-service/internal/app/drivers/messaging"
	miniodriver "carelink-service/internal/app/drivers/storage"
	"carelink-service/internal/app/services/core/auth"
	"carelink-service/internal/app/services/core/consents"
	"carelink-service/internal/app/services/core/invoices"
	"carelink-service/internal/app/services/core/notifications"
	"carelink-service/internal/app/services/core/prescriptions"
	"carelink-service/internal/app/services/core/pricing"
	"carelink-service/internal/app/services/core/schedules"
	"carelink-service/internal/app/services/core/users"
	"carelink-service/internal/app/services/shared/actionlog"
	"carelink-service/internal/app/services/shared/locker"
	"carelink-service/internal/app/services/shared/mailer"
	"carelink-service/internal/app/services/shared/redis"
	"carelink-service/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	postgresDB := database.NewPostgresDB(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := miniodriver.NewMinio(driverConfig)
	smtpClient := smtpdriver.NewSMTPClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		DB:             postgresDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQConnection,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapTheApp(bootstrap, mongoDB, minioClient, smtpClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests already received by the server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error closing application resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(
	bootstrap config.Bootstrap,
	mongoDB *mongo.Client,
	minioClient *minio.Client,
	smtpClient *smtpdriver.SMTPClient,
) {
	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	actionLogRepository := actionlog.NewActionLogMongoRepository(mongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	actionLogService := actionlog.NewActionLogService(actionLogRepository, bootstrap.Logger)
	storageService := storage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	mailerService, err := mailer.NewMailerService(smtpClient, bootstrap.RabbitMQ, bootstrap.InternalConfig.App.MailerQueue)
	if err != nil {
		log.Fatalf("Failed to initialize mailer service: %v", err)
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Repositories
	userRepository := users.NewUserGormRepository(bootstrap.DB)
	patientRepository := users.NewPatientGormRepository(bootstrap.DB)
	providerRepository := users.NewProviderGormRepository(bootstrap.DB)
	tokenRepository := auth.NewTokenGormRepository(bootstrap.DB)
	scheduleRepository := schedules.NewScheduleGormRepository(bootstrap.DB)
	pricingRepository := pricing.NewPricingGormRepository(bootstrap.DB)
	invoiceRepository := invoices.NewInvoiceGormRepository(bootstrap.DB)
	prescriptionRepository := prescriptions.NewPrescriptionGormRepository(bootstrap.DB)
	consentRepository := consents.NewConsentGormRepository(bootstrap.DB)
	notificationRepository := notifications.NewNotificationGormRepository(bootstrap.DB)

	// Notification
	notificationUsecase := notifications.NewNotificationUsecase(
		bootstrap.DB,
		notificationRepository,
		userRepository,
		bootstrap.Logger,
	)
	notificationController := controllers.NewNotificationController(bootstrap.Logger, notificationUsecase)

	// Auth
	authUsecase := auth.NewAuthUsecase(
		bootstrap.DB,
		userRepository,
		patientRepository,
		tokenRepository,
		lockerService,
		mailerService,
		notificationUsecase,
		actionLogService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase, bootstrap.InternalConfig)

	// Pricing
	pricingService := pricing.NewPricingService(pricingRepository, bootstrap.InternalConfig, bootstrap.Logger)

	// Invoice
	invoiceUsecase := invoices.NewInvoiceUsecase(
		bootstrap.DB,
		invoiceRepository,
		patientRepository,
		pricingRepository,
		pricingService,
		storageService,
		actionLogService,
		bootstrap.Logger,
	)
	invoiceController := controllers.NewInvoiceController(bootstrap.Logger, invoiceUsecase)

	// User
	userUsecase := users.NewUserUsecase(
		bootstrap.DB,
		userRepository,
		patientRepository,
		invoiceRepository,
		notificationUsecase,
		actionLogService,
		bootstrap.Logger,
	)
	userController := controllers.NewUserController(bootstrap.Logger, userUsecase, invoiceUsecase)

	// Schedule
	availabilityService := schedules.NewAvailabilityService(scheduleRepository)
	scheduleUsecase := schedules.NewScheduleUsecase(
		bootstrap.DB,
		scheduleRepository,
		availabilityService,
		patientRepository,
		providerRepository,
		prescriptionRepository,
		notificationUsecase,
		actionLogService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)

	// Prescription
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(
		bootstrap.DB,
		prescriptionRepository,
		scheduleRepository,
		bootstrap.Logger,
	)
	prescriptionController := controllers.NewPrescriptionController(bootstrap.Logger, prescriptionUsecase)

	// Consent
	consentUsecase := consents.NewConsentUsecase(
		bootstrap.DB,
		consentRepository,
		actionLogService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	consentController := controllers.NewConsentController(bootstrap.Logger, consentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		authController,
		userController,
		scheduleController,
		invoiceController,
		consentController,
		notificationController,
		prescriptionController,
	)
}
