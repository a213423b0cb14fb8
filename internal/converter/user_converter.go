package converter

import (
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The linked
// patient or doctor id is included when one exists.
func UserToResponse(user *entity.User, patient *entity.Patient, doctor *entity.Doctor) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if patient != nil {
		id := patient.ID
		response.PatientID = &id
	}
	if doctor != nil {
		id := doctor.ID
		response.DoctorID = &id
	}

	return response
}
