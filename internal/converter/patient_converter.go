package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// PatientToResponse flattens a patient account and its profile into one DTO
func PatientToResponse(user *entity.User) *dto.PatientResponse {
	if user == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
	}

	if user.PatientProfile != nil {
		p := user.PatientProfile
		if p.DateOfBirth != nil {
			response.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
		}
		response.Gender = p.Gender
		response.Address = p.Address
		response.City = p.City
		response.State = p.State
		response.EmergencyContact = p.EmergencyContact
		response.EmergencyPhone = p.EmergencyPhone
	}

	return response
}

// PatientsToResponses converts a slice of patient accounts to DTOs
func PatientsToResponses(users []entity.User) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(users))
	for i := range users {
		responses[i] = *PatientToResponse(&users[i])
	}
	return responses
}
