package entity

import "maps"

// LabReportStatus represents the processing status of a lab report
type LabReportStatus string

const (
	LabReportStatusPending   LabReportStatus = "Pending"
	LabReportStatusCompleted LabReportStatus = "Completed"
	LabReportStatusCancelled LabReportStatus = "Cancelled"
)

func (s LabReportStatus) IsValid() bool {
	switch s {
	case LabReportStatusPending, LabReportStatusCompleted, LabReportStatusCancelled:
		return true
	}
	return false
}

// Priority values offered by the lab report form.
const (
	LabPriorityNormal = "Normal"
	LabPriorityMedium = "Medium"
	LabPriorityHigh   = "High"
)

// LabReport holds test results for a patient. PatientName is a snapshot of
// the patient's name taken when the report was last saved.
type LabReport struct {
	ID            int               `json:"id"`
	PatientID     int               `json:"patient_id"`
	PatientName   string            `json:"patient_name"`
	TestType      string            `json:"test_type"`
	TestName      string            `json:"test_name"`
	TestDate      string            `json:"test_date"`
	ResultDate    string            `json:"result_date"`
	Status        LabReportStatus   `json:"status"`
	Priority      string            `json:"priority"`
	Results       map[string]string `json:"results"`
	NormalRanges  map[string]string `json:"normal_ranges"`
	DoctorNotes   string            `json:"doctor_notes"`
	LabTechnician string            `json:"lab_technician"`
	IsAbnormal    bool              `json:"is_abnormal"`
}

func (r *LabReport) IsPending() bool {
	return r.Status == LabReportStatusPending
}

// Clone returns a deep copy so the result maps are not shared.
func (r LabReport) Clone() LabReport {
	r.Results = cloneOrEmpty(r.Results)
	r.NormalRanges = cloneOrEmpty(r.NormalRanges)
	return r
}

func cloneOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
