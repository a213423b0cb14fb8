package entity

// Role determines which authorization rules apply to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// CanSignup reports whether accounts of this role may be self-registered.
func (r Role) CanSignup() bool {
	return r == RoleDoctor || r == RolePatient
}
