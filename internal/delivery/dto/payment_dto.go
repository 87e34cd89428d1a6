package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePaymentIntentRequest struct {
	AppointmentID uuid.UUID `json:"appointmentId" validate:"required"`
	// Amount is accepted for backward compatibility but the charge amount
	// is always re-read from the appointment record.
	Amount int64 `json:"amount" validate:"omitempty,gte=0"`
}

type ConfirmCheckoutRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"paymentIntentId" validate:"required"`
	AppointmentID   uuid.UUID `json:"appointmentId" validate:"required"`
}

type RefundRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// Response DTOs

type CheckoutSessionResponse struct {
	SessionURL string `json:"sessionUrl"`
	SessionID  string `json:"sessionId"`
}

type PaymentResponse struct {
	ID              uuid.UUID     `json:"id"`
	AppointmentID   uuid.UUID     `json:"appointmentId"`
	PatientID       uuid.UUID     `json:"patientId"`
	DoctorID        uuid.UUID     `json:"doctorId"`
	Patient         *PartySummary `json:"patient,omitempty"`
	Doctor          *PartySummary `json:"doctor,omitempty"`
	Amount          int64         `json:"amount"`
	StripePaymentID string        `json:"stripePaymentId"`
	Status          string        `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type SettlementResponse struct {
	Payment     PaymentResponse     `json:"payment"`
	Appointment AppointmentResponse `json:"appointment"`
}

type RefundDetail struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type RefundResponse struct {
	Refund      RefundDetail        `json:"refund"`
	Appointment AppointmentResponse `json:"appointment"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}
