package dto

import (
	"time"

	"github.com/google/uuid"
)

// The appointment wire format keeps the camelCase field names external
// dashboards already depend on.

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctorId" validate:"required"`
	AppointmentDate string    `json:"appointmentDate" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	AppointmentTime string    `json:"appointmentTime" validate:"required,datetime=15:04"`      // Format: HH:MM
	ConsultationFee int64     `json:"consultationFee" validate:"required,gte=0"`
	Notes           string    `json:"notes" validate:"omitempty"`
}

type ProposeAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patientId" validate:"required"`
	AppointmentDate string    `json:"appointmentDate" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	AppointmentTime string    `json:"appointmentTime" validate:"required,datetime=15:04"`      // Format: HH:MM
	ConsultationFee int64     `json:"consultationFee" validate:"required,gte=0"`
	Notes           string    `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

// Response DTOs

type PartySummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email,omitempty"`
}

type AppointmentResponse struct {
	ID              uuid.UUID     `json:"id"`
	PatientID       uuid.UUID     `json:"patientId"`
	DoctorID        uuid.UUID     `json:"doctorId"`
	Patient         *PartySummary `json:"patient,omitempty"`
	Doctor          *PartySummary `json:"doctor,omitempty"`
	AppointmentDate string        `json:"appointmentDate"` // Format: YYYY-MM-DD
	AppointmentTime string        `json:"appointmentTime"` // Format: HH:MM
	DurationMinutes int           `json:"duration"`
	ConsultationFee int64         `json:"consultationFee"`
	Status          string        `json:"status"`
	PaymentStatus   string        `json:"paymentStatus"`
	PaymentID       string        `json:"paymentId,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type CancelAppointmentResponse struct {
	Message     string              `json:"message"`
	Appointment AppointmentResponse `json:"appointment"`
}
