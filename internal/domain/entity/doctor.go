package entity

// Doctor is a practitioner record; patients book appointments against it.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Schedule       string `json:"schedule"`
	Available      bool   `json:"available"`
	UserID         *int   `json:"user_id"`
}

func (d *Doctor) OwnedBy(userID int) bool {
	return d.UserID != nil && *d.UserID == userID
}

// ToggleAvailability flips the available flag and returns the new value.
func (d *Doctor) ToggleAvailability() bool {
	d.Available = !d.Available
	return d.Available
}
