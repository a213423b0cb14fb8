package dto

// Request DTOs

// CreateAppointmentRequest books an appointment. Patients may omit
// PatientID; it defaults to their linked patient record.
type CreateAppointmentRequest struct {
	PatientID int    `json:"patient_id" validate:"gte=0"`
	DoctorID  int    `json:"doctor_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason"`
}

// UpdateAppointmentRequest edits the booking details. Status only changes
// through complete and cancel.
type UpdateAppointmentRequest struct {
	PatientID int    `json:"patient_id" validate:"required,gt=0"`
	DoctorID  int    `json:"doctor_id" validate:"required,gt=0"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int    `json:"id"`
	PatientID   int    `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DoctorID    int    `json:"doctor_id"`
	DoctorName  string `json:"doctor_name"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Reason      string `json:"reason"`
	Status      string `json:"status"`
}
