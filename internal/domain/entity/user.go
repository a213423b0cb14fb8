package entity

import "time"

// User is a login account. The role-specific fields mirror whatever was
// entered at signup; the linked Patient or Doctor record is authoritative.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`

	// Doctor accounts
	Specialization string `json:"specialization,omitempty"`
	Schedule       string `json:"schedule,omitempty"`

	// Patient accounts
	Age            int    `json:"age,omitempty"`
	Gender         string `json:"gender,omitempty"`
	Contact        string `json:"contact,omitempty"`
	MedicalHistory string `json:"medical_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
