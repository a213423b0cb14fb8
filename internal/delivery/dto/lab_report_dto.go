package dto

// Request DTOs

type LabReportRequest struct {
	PatientID     int               `json:"patient_id" validate:"required,gt=0"`
	TestType      string            `json:"test_type" validate:"required"`
	TestName      string            `json:"test_name" validate:"required"`
	TestDate      string            `json:"test_date" validate:"required,datetime=2006-01-02"`
	ResultDate    string            `json:"result_date" validate:"omitempty,datetime=2006-01-02"`
	Status        string            `json:"status" validate:"omitempty,oneof=Pending Completed Cancelled"`
	Priority      string            `json:"priority" validate:"omitempty,oneof=Normal Medium High"`
	Results       map[string]string `json:"results"`
	NormalRanges  map[string]string `json:"normal_ranges"`
	DoctorNotes   string            `json:"doctor_notes"`
	LabTechnician string            `json:"lab_technician"`
	IsAbnormal    bool              `json:"is_abnormal"`
}

// Response DTOs

type LabReportResponse struct {
	ID            int               `json:"id"`
	PatientID     int               `json:"patient_id"`
	PatientName   string            `json:"patient_name"`
	TestType      string            `json:"test_type"`
	TestName      string            `json:"test_name"`
	TestDate      string            `json:"test_date"`
	ResultDate    string            `json:"result_date"`
	Status        string            `json:"status"`
	Priority      string            `json:"priority"`
	Results       map[string]string `json:"results"`
	NormalRanges  map[string]string `json:"normal_ranges"`
	DoctorNotes   string            `json:"doctor_notes"`
	LabTechnician string            `json:"lab_technician"`
	IsAbnormal    bool              `json:"is_abnormal"`
}
