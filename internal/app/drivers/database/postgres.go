package database

import (
	"fmt"
	"log"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewPostgresDB(driverConfig *config.DriverConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		driverConfig.Postgres.Host,
		driverConfig.Postgres.Port,
		driverConfig.Postgres.Username,
		driverConfig.Postgres.Password,
		driverConfig.Postgres.DbName,
		driverConfig.Postgres.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to open postgres database connection: %s", err.Error())
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate postgres database: %s", err.Error())
	}

	log.Println("Successfully connected to postgres database")

	return db
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.FamilyPatientLink{},
		&models.MedicalFolder{},
		&models.Provider{},
		&models.Contract{},
		&models.ProviderAbsence{},
		&models.ProviderShortAbsence{},
		&models.Service{},
		&models.PatientServicePrice{},
		&models.ServiceDemand{},
		&models.Prescription{},
		&models.Schedule{},
		&models.Timeslot{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.OutstandingRefreshToken{},
		&models.BlacklistedToken{},
		&models.CookieConsent{},
		&models.Notification{},
		&models.Ticket{},
		&models.ScheduleChangeRequest{},
	)
}
