package repository

import (
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Save(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	// FindActiveSlot returns the non-cancelled appointment occupying
	// (doctor, date, time), if any.
	FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)
	// FindActiveProposal narrows the slot check to one patient, used by the
	// doctor-initiated propose path.
	FindActiveProposal(db *gorm.DB, doctorID, patientID uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)
	Count(db *gorm.DB) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
