package repository

import (
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	Save(db *gorm.DB, payment *entity.Payment) error
	FindByStripePaymentID(db *gorm.DB, stripePaymentID string) (*entity.Payment, error)
	FindCompletedByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Payment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Payment, error)
	FindAll(db *gorm.DB) ([]entity.Payment, error)
	FindCompleted(db *gorm.DB) ([]entity.Payment, error)
	SumCompletedAmount(db *gorm.DB) (int64, error)
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error
}
