package entity

// Patient is a clinical patient record. UserID, when set, links the record
// to the account that may view and edit it.
type Patient struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Contact        string `json:"contact"`
	MedicalHistory string `json:"medical_history"`
	UserID         *int   `json:"user_id"`
}

// OwnedBy reports whether the record is linked to the given user.
func (p *Patient) OwnedBy(userID int) bool {
	return p.UserID != nil && *p.UserID == userID
}
