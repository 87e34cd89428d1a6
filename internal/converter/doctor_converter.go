package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// DoctorToResponse flattens a doctor account and its professional profile
// into one DTO. Availability is included when preloaded.
func DoctorToResponse(user *entity.User) *dto.DoctorResponse {
	if user == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:         user.ID,
		Email:      user.Email,
		FullName:   user.FullName,
		Phone:      user.Phone,
		IsApproved: user.IsApproved,
		IsActive:   user.IsActive,
	}

	if user.DoctorProfile != nil {
		response.Specialty = user.DoctorProfile.Specialty
		response.LicenseNumber = user.DoctorProfile.LicenseNumber
		response.ExperienceYears = user.DoctorProfile.ExperienceYears
		response.ConsultationFee = user.DoctorProfile.ConsultationFee
		response.Address = user.DoctorProfile.Address
		response.City = user.DoctorProfile.City
		response.State = user.DoctorProfile.State
		response.Bio = user.DoctorProfile.Bio
		response.Availability = AvailabilityToEntries(user.DoctorProfile.Availability)
	}

	return response
}

// DoctorsToResponses converts a slice of doctor accounts to DTOs
func DoctorsToResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i := range users {
		responses[i] = *DoctorToResponse(&users[i])
	}
	return responses
}

// AvailabilityToEntries converts availability entities to DTO entries
func AvailabilityToEntries(availability []entity.DoctorAvailability) []dto.AvailabilityEntry {
	if len(availability) == 0 {
		return nil
	}
	entries := make([]dto.AvailabilityEntry, len(availability))
	for i, a := range availability {
		entries[i] = dto.AvailabilityEntry{
			Day:         a.Day,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			IsAvailable: a.IsAvailable,
		}
	}
	return entries
}
