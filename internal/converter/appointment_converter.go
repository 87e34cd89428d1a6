package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Patient and Doctor summaries are included when the relations are preloaded.
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		Patient:         partySummary(&a.Patient),
		Doctor:          partySummary(&a.Doctor),
		AppointmentDate: a.AppointmentDate.Format("2006-01-02"),
		AppointmentTime: a.AppointmentTime,
		DurationMinutes: a.DurationMinutes,
		ConsultationFee: a.ConsultationFee,
		Status:          string(a.Status),
		PaymentStatus:   string(a.PaymentStatus),
		PaymentID:       a.PaymentID,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

func partySummary(user *entity.User) *dto.PartySummary {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	return &dto.PartySummary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
	}
}
