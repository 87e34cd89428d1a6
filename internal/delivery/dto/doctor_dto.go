package dto

import "github.com/google/uuid"

// Request DTOs

// UpsertDoctorProfileRequest creates or replaces the caller's professional
// profile. ConsultationFee is in minor currency units (cents).
type UpsertDoctorProfileRequest struct {
	Specialty       string `json:"specialty" validate:"required"`
	LicenseNumber   string `json:"license_number" validate:"required"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
	ConsultationFee int64  `json:"consultation_fee" validate:"required,gte=0"`
	Address         string `json:"address" validate:"omitempty"`
	City            string `json:"city" validate:"omitempty"`
	State           string `json:"state" validate:"omitempty"`
	Bio             string `json:"bio" validate:"omitempty"`
}

type AvailabilityEntry struct {
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime     string `json:"end_time" validate:"required"`   // Format: HH:MM
	IsAvailable bool   `json:"is_available"`
}

// UpdateAvailabilityRequest replaces the doctor's whole weekly template.
type UpdateAvailabilityRequest struct {
	Availability []AvailabilityEntry `json:"availability" validate:"required,dive"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID           `json:"id"`
	Email           string              `json:"email"`
	FullName        string              `json:"full_name"`
	Phone           string              `json:"phone,omitempty"`
	IsApproved      bool                `json:"is_approved"`
	IsActive        bool                `json:"is_active"`
	Specialty       string              `json:"specialty"`
	LicenseNumber   string              `json:"license_number"`
	ExperienceYears int                 `json:"experience_years"`
	ConsultationFee int64               `json:"consultation_fee"`
	Address         string              `json:"address,omitempty"`
	City            string              `json:"city,omitempty"`
	State           string              `json:"state,omitempty"`
	Bio             string              `json:"bio,omitempty"`
	Availability    []AvailabilityEntry `json:"availability,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
