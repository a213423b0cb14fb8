package entity

import "hospital-records/pkg/apperror"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"

	// AppointmentStatusRescheduled is part of the status vocabulary but no
	// operation ever sets it. Rescheduling keeps the appointment scheduled.
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// IsValid reports whether s is a status an appointment can actually hold.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Appointment is a booking of a patient with a doctor.
type Appointment struct {
	ID        int               `json:"id"`
	PatientID int               `json:"patient_id"`
	DoctorID  int               `json:"doctor_id"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Reason    string            `json:"reason"`
	Status    AppointmentStatus `json:"status"`
}

// IsScheduled checks if appointment is still open
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// Complete moves a scheduled appointment to completed.
func (a *Appointment) Complete() error {
	return a.transition(AppointmentStatusCompleted)
}

// Cancel moves a scheduled appointment to cancelled.
func (a *Appointment) Cancel() error {
	return a.transition(AppointmentStatusCancelled)
}

// Reschedule changes date and time of a scheduled appointment. The status
// stays scheduled.
func (a *Appointment) Reschedule(date, time string) error {
	if !a.IsScheduled() {
		return apperror.NewTransitionError("appointment", string(a.Status), "rescheduled")
	}
	a.Date = date
	a.Time = time
	return nil
}

func (a *Appointment) transition(to AppointmentStatus) error {
	if !a.IsScheduled() {
		return apperror.NewTransitionError("appointment", string(a.Status), string(to))
	}
	a.Status = to
	return nil
}
