package entity

import "time"

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Metadata  JSON      `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JSON is free-form audit metadata.
type JSON map[string]interface{}

// Common audit actions
const (
	AuditActionUserLogin          = "user.login"
	AuditActionUserLogout         = "user.logout"
	AuditActionUserRegister       = "user.register"
	AuditActionPasswordReset      = "user.password_reset"
	AuditActionPatientCreate      = "patient.create"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
	AuditActionDoctorCreate       = "doctor.create"
	AuditActionDoctorUpdate       = "doctor.update"
	AuditActionDoctorDelete       = "doctor.delete"
	AuditActionDoctorAvailability = "doctor.availability"
	AuditActionAppointmentCreate  = "appointment.create"
	AuditActionAppointmentUpdate  = "appointment.update"
	AuditActionAppointmentDelete  = "appointment.delete"
	AuditActionAppointmentStatus  = "appointment.status"
	AuditActionBillCreate         = "bill.create"
	AuditActionBillUpdate         = "bill.update"
	AuditActionBillDelete         = "bill.delete"
	AuditActionBillPaid           = "bill.paid"
	AuditActionMedicineCreate     = "medicine.create"
	AuditActionMedicineUpdate     = "medicine.update"
	AuditActionMedicineDelete     = "medicine.delete"
	AuditActionLabReportCreate    = "lab_report.create"
	AuditActionLabReportUpdate    = "lab_report.update"
	AuditActionLabReportDelete    = "lab_report.delete"
)
