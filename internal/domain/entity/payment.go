package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the settlement outcome of a payment record
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records one settled consultation fee. Amount is in minor currency
// units (cents). StripePaymentID is the processor's payment-intent id and is
// unique, which keeps settlement idempotent under client retries.
type Payment struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"appointment_id"`
	PatientID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Amount          int64         `gorm:"not null" json:"amount"`
	StripePaymentID string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"stripe_payment_id"`
	Status          PaymentStatus `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     User        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      User        `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Payment) TableName() string {
	return "payments"
}
