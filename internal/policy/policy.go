// Package policy decides which role may read or mutate which record.
// Every rule returns nil when allowed and an error matching
// apperror.ErrUnauthorized otherwise. A nil target means a list query.
package policy

import (
	"fmt"

	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/apperror"
)

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// AppointmentAction names a status-changing appointment operation.
type AppointmentAction string

const (
	ActionComplete   AppointmentAction = "complete"
	ActionCancel     AppointmentAction = "cancel"
	ActionReschedule AppointmentAction = "reschedule"
)

// Actor is the caller together with the records linked to its account.
// PatientID and DoctorID are zero when no linked record exists.
type Actor struct {
	UserID    int
	Role      entity.Role
	PatientID int
	DoctorID  int
}

func (a Actor) IsAdmin() bool   { return a.Role == entity.RoleAdmin }
func (a Actor) IsDoctor() bool  { return a.Role == entity.RoleDoctor }
func (a Actor) IsPatient() bool { return a.Role == entity.RolePatient }

// OwnsPatient reports whether patientID is the caller's linked patient.
func (a Actor) OwnsPatient(patientID int) bool {
	return a.PatientID != 0 && a.PatientID == patientID
}

// OwnsDoctor reports whether doctorID is the caller's linked doctor.
func (a Actor) OwnsDoctor(doctorID int) bool {
	return a.DoctorID != 0 && a.DoctorID == doctorID
}

func deny(a Actor, op any, kind string) error {
	return fmt.Errorf("%w: %s may not %v %s", apperror.ErrUnauthorized, a.Role, op, kind)
}

func AuthorizePatient(a Actor, op Operation, target *entity.Patient) error {
	switch a.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleDoctor:
		if op == OpRead {
			return nil
		}
	case entity.RolePatient:
		if op == OpRead && target == nil {
			return nil
		}
		if (op == OpRead || op == OpUpdate) && target != nil && target.OwnedBy(a.UserID) {
			return nil
		}
	}
	return deny(a, op, "patient")
}

func AuthorizeDoctor(a Actor, op Operation, target *entity.Doctor) error {
	if a.IsAdmin() || op == OpRead {
		return nil
	}
	return deny(a, op, "doctor")
}

func AuthorizeDoctorAvailability(a Actor) error {
	if a.IsAdmin() {
		return nil
	}
	return deny(a, "toggle availability of", "doctor")
}

func AuthorizeAppointment(a Actor, op Operation, target *entity.Appointment) error {
	switch a.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleDoctor:
		if op == OpRead && (target == nil || a.OwnsDoctor(target.DoctorID)) {
			return nil
		}
	case entity.RolePatient:
		if op == OpRead && (target == nil || a.OwnsPatient(target.PatientID)) {
			return nil
		}
		if op == OpCreate && target != nil && a.OwnsPatient(target.PatientID) {
			return nil
		}
	}
	return deny(a, op, "appointment")
}

func AuthorizeAppointmentAction(a Actor, action AppointmentAction, target *entity.Appointment) error {
	switch action {
	case ActionComplete:
		if a.IsDoctor() && a.OwnsDoctor(target.DoctorID) {
			return nil
		}
	case ActionCancel, ActionReschedule:
		if a.IsAdmin() || (a.IsPatient() && a.OwnsPatient(target.PatientID)) {
			return nil
		}
	}
	return deny(a, action, "appointment")
}

func AuthorizeBill(a Actor, op Operation, target *entity.Bill) error {
	switch a.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RolePatient:
		if op == OpRead && (target == nil || a.OwnsPatient(target.PatientID)) {
			return nil
		}
	}
	return deny(a, op, "bill")
}

// AuthorizeMarkPaid allows only admins to settle a bill.
func AuthorizeMarkPaid(a Actor) error {
	if a.IsAdmin() {
		return nil
	}
	return deny(a, "mark paid", "bill")
}

// AuthorizePay allows a patient to trigger the pay action on their own bill.
func AuthorizePay(a Actor, target *entity.Bill) error {
	if a.IsPatient() && a.OwnsPatient(target.PatientID) {
		return nil
	}
	return deny(a, "pay", "bill")
}

func AuthorizeMedicine(a Actor, op Operation) error {
	if a.IsAdmin() || op == OpRead {
		return nil
	}
	return deny(a, op, "medicine")
}

// AuthorizeLabReport lets admins do anything, doctors read and create any
// report but edit or delete only pending ones, and patients read their own.
func AuthorizeLabReport(a Actor, op Operation, target *entity.LabReport) error {
	switch a.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleDoctor:
		switch op {
		case OpRead, OpCreate:
			return nil
		case OpUpdate, OpDelete:
			if target != nil && target.IsPending() {
				return nil
			}
		}
	case entity.RolePatient:
		if op == OpRead && (target == nil || a.OwnsPatient(target.PatientID)) {
			return nil
		}
	}
	return deny(a, op, "lab report")
}

// AuthorizeAdmin guards admin-only views such as the audit trail and the
// integrity report.
func AuthorizeAdmin(a Actor, what string) error {
	if a.IsAdmin() {
		return nil
	}
	return deny(a, "read", what)
}
