package repository

import (
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorAvailability, error)
	// ReplaceForDoctor swaps the doctor's whole weekly template in one shot;
	// callers run it inside a transaction.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.DoctorAvailability) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
