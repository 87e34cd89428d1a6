package repository

import (
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	Save(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	// Search returns profiles of approved, active doctors matching the
	// optional specialty/city/state filters (case-insensitive substring).
	Search(db *gorm.DB, specialty, city, state string) ([]entity.DoctorProfile, error)
	DeleteByUserID(db *gorm.DB, userID uuid.UUID) error
}

type PatientProfileRepository interface {
	Create(db *gorm.DB, profile *entity.PatientProfile) error
	Save(db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindAll(db *gorm.DB) ([]entity.PatientProfile, error)
	DeleteByUserID(db *gorm.DB, userID uuid.UUID) error
}
