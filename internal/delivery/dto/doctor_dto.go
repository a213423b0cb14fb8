package dto

// Request DTOs

type DoctorRequest struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Schedule       string `json:"schedule"`
	// Available defaults to true on create and is left unchanged on update
	// when omitted.
	Available *bool `json:"available"`
}

// Response DTOs

type DoctorResponse struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Schedule       string `json:"schedule"`
	Available      bool   `json:"available"`
	UserID         *int   `json:"user_id"`
}
