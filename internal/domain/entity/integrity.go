package entity

// DanglingReference describes a stored foreign key whose target is gone.
type DanglingReference struct {
	Kind      string `json:"kind"`
	RecordID  int    `json:"record_id"`
	Field     string `json:"field"`
	MissingID int    `json:"missing_id"`
}
