package models

import "time"

type Patient struct {
	ID            uint `gorm:"primaryKey"`
	UserID        uint `gorm:"uniqueIndex;not null"`
	User          User `gorm:"foreignKey:UserID"`
	Gender        string
	BloodType     string
	SocialPrice   bool `gorm:"index"`
	IsAlive       bool
	IsAnonymized  bool
	ClinicalNotes string
	DoctorName    string
	DoctorPhone   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FamilyPatientLink grants a FamilyPatient user read access to one patient's
// schedules and the right to file service demands for them.
type FamilyPatientLink struct {
	ID           uint    `gorm:"primaryKey"`
	FamilyUserID uint    `gorm:"not null;index:idx_family_patient,unique"`
	PatientID    uint    `gorm:"not null;index:idx_family_patient,unique"`
	Patient      Patient `gorm:"foreignKey:PatientID"`
	Relationship string
	CreatedAt    time.Time
}

type MedicalFolder struct {
	ID        uint    `gorm:"primaryKey"`
	PatientID uint    `gorm:"not null;index"`
	Patient   Patient `gorm:"foreignKey:PatientID"`
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
