package dto

// Request DTOs

// PatientRequest is used for both create and update; an update replaces
// every editable field.
type PatientRequest struct {
	Name           string `json:"name" validate:"required"`
	Age            string `json:"age" validate:"required,number"`
	Gender         string `json:"gender" validate:"required"`
	Contact        string `json:"contact" validate:"required"`
	MedicalHistory string `json:"medical_history"`
}

// Response DTOs

type PatientResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Contact        string `json:"contact"`
	MedicalHistory string `json:"medical_history"`
	UserID         *int   `json:"user_id"`
}
