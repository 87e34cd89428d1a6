package repository

import (
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type paymentRepository struct{}

func NewPaymentRepository() domainRepo.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *paymentRepository) Save(db *gorm.DB, payment *entity.Payment) error {
	return db.Save(payment).Error
}

func (r *paymentRepository) FindByStripePaymentID(db *gorm.DB, stripePaymentID string) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Where("stripe_payment_id = ?", stripePaymentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindCompletedByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := db.Where("appointment_id = ? AND status = ?", appointmentID, entity.PaymentStatusCompleted).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Appointment").Preload("Patient").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Appointment").Preload("Patient").Preload("Doctor").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindAll(db *gorm.DB) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Appointment").Preload("Patient").Preload("Doctor").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) FindCompleted(db *gorm.DB) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Preload("Patient").Preload("Doctor").
		Where("status = ?", entity.PaymentStatusCompleted).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) SumCompletedAmount(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.Payment{}).
		Where("status = ?", entity.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *paymentRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return db.Where("patient_id = ?", patientID).Delete(&entity.Payment{}).Error
}

func (r *paymentRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) error {
	return db.Where("doctor_id = ?", doctorID).Delete(&entity.Payment{}).Error
}
