package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// PaymentToResponse converts a Payment entity to its DTO
func PaymentToResponse(p *entity.Payment) *dto.PaymentResponse {
	if p == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:              p.ID,
		AppointmentID:   p.AppointmentID,
		PatientID:       p.PatientID,
		DoctorID:        p.DoctorID,
		Patient:         partySummary(&p.Patient),
		Doctor:          partySummary(&p.Doctor),
		Amount:          p.Amount,
		StripePaymentID: p.StripePaymentID,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
	}
}

// PaymentsToResponses converts a slice of Payment entities to DTOs
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *PaymentToResponse(&payments[i])
	}
	return responses
}
