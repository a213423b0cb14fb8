package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest registers a doctor or patient account. Role-specific fields
// are ignored for the other role.
type SignupRequest struct {
	Username        string `json:"username" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role" validate:"required,oneof=doctor patient"`
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`

	// Doctor
	Specialization string `json:"specialization"`
	Schedule       string `json:"schedule"`

	// Patient; age is parsed only for patient signups
	Age     string `json:"age"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
}

type ResetPasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

// Response DTOs

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PatientID *int      `json:"patient_id,omitempty"`
	DoctorID  *int      `json:"doctor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
