package policy

import (
	"context"
	"testing"

	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

var (
	admin   = Actor{UserID: 1, Role: entity.RoleAdmin}
	doctor  = Actor{UserID: 2, Role: entity.RoleDoctor, DoctorID: 1}
	patient = Actor{UserID: 3, Role: entity.RolePatient, PatientID: 1}
)

func assertAllowed(t *testing.T, err error, allowed bool) {
	t.Helper()
	if allowed {
		assert.NoError(t, err)
		return
	}
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestPrincipalRoundTripsThroughContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Principal{UserID: 3, Role: entity.RolePatient, TokenID: "abc"})
	p, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 3, p.UserID)
	assert.Equal(t, entity.RolePatient, p.Role)
}

func TestAuthorizePatient(t *testing.T) {
	own := &entity.Patient{ID: 1, UserID: intPtr(3)}
	other := &entity.Patient{ID: 2, UserID: intPtr(9)}
	unlinked := &entity.Patient{ID: 3}

	tests := []struct {
		name    string
		actor   Actor
		op      Operation
		target  *entity.Patient
		allowed bool
	}{
		{"admin deletes any", admin, OpDelete, other, true},
		{"admin creates", admin, OpCreate, nil, true},
		{"doctor reads any", doctor, OpRead, other, true},
		{"doctor lists", doctor, OpRead, nil, true},
		{"doctor cannot update", doctor, OpUpdate, other, false},
		{"doctor cannot create", doctor, OpCreate, nil, false},
		{"patient reads own", patient, OpRead, own, true},
		{"patient updates own", patient, OpUpdate, own, true},
		{"patient cannot read other", patient, OpRead, other, false},
		{"patient cannot read unlinked", patient, OpRead, unlinked, false},
		{"patient cannot update other", patient, OpUpdate, other, false},
		{"patient cannot delete own", patient, OpDelete, own, false},
		{"patient cannot create", patient, OpCreate, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, AuthorizePatient(tt.actor, tt.op, tt.target), tt.allowed)
		})
	}
}

func TestAuthorizeDoctor(t *testing.T) {
	d := &entity.Doctor{ID: 1, UserID: intPtr(2)}
	for _, a := range []Actor{admin, doctor, patient} {
		assert.NoError(t, AuthorizeDoctor(a, OpRead, d))
	}
	assert.NoError(t, AuthorizeDoctor(admin, OpUpdate, d))
	assertAllowed(t, AuthorizeDoctor(doctor, OpUpdate, d), false)
	assertAllowed(t, AuthorizeDoctor(patient, OpDelete, d), false)

	assert.NoError(t, AuthorizeDoctorAvailability(admin))
	assertAllowed(t, AuthorizeDoctorAvailability(doctor), false)
}

func TestAuthorizeAppointment(t *testing.T) {
	own := &entity.Appointment{ID: 1, PatientID: 1, DoctorID: 1}
	foreign := &entity.Appointment{ID: 2, PatientID: 2, DoctorID: 2}

	tests := []struct {
		name    string
		actor   Actor
		op      Operation
		target  *entity.Appointment
		allowed bool
	}{
		{"admin updates any", admin, OpUpdate, foreign, true},
		{"doctor reads own", doctor, OpRead, own, true},
		{"doctor cannot read foreign", doctor, OpRead, foreign, false},
		{"doctor cannot create", doctor, OpCreate, own, false},
		{"patient books for self", patient, OpCreate, own, true},
		{"patient cannot book for other", patient, OpCreate, foreign, false},
		{"patient reads own", patient, OpRead, own, true},
		{"patient cannot read foreign", patient, OpRead, foreign, false},
		{"patient cannot delete", patient, OpDelete, own, false},
		{"patient cannot edit", patient, OpUpdate, own, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, AuthorizeAppointment(tt.actor, tt.op, tt.target), tt.allowed)
		})
	}
}

func TestAuthorizeAppointmentAction(t *testing.T) {
	own := &entity.Appointment{ID: 1, PatientID: 1, DoctorID: 1}
	foreign := &entity.Appointment{ID: 2, PatientID: 2, DoctorID: 2}

	tests := []struct {
		name    string
		actor   Actor
		action  AppointmentAction
		target  *entity.Appointment
		allowed bool
	}{
		{"doctor completes own", doctor, ActionComplete, own, true},
		{"doctor cannot complete foreign", doctor, ActionComplete, foreign, false},
		{"admin cannot complete", admin, ActionComplete, own, false},
		{"patient cannot complete", patient, ActionComplete, own, false},
		{"patient cancels own", patient, ActionCancel, own, true},
		{"patient cannot cancel foreign", patient, ActionCancel, foreign, false},
		{"admin cancels any", admin, ActionCancel, foreign, true},
		{"doctor cannot cancel", doctor, ActionCancel, own, false},
		{"patient reschedules own", patient, ActionReschedule, own, true},
		{"admin reschedules", admin, ActionReschedule, foreign, true},
		{"doctor cannot reschedule", doctor, ActionReschedule, own, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, AuthorizeAppointmentAction(tt.actor, tt.action, tt.target), tt.allowed)
		})
	}
}

func TestAuthorizeBill(t *testing.T) {
	own := &entity.Bill{ID: 1, PatientID: 1}
	foreign := &entity.Bill{ID: 2, PatientID: 2}

	assert.NoError(t, AuthorizeBill(admin, OpCreate, nil))
	assert.NoError(t, AuthorizeBill(patient, OpRead, own))
	assert.NoError(t, AuthorizeBill(patient, OpRead, nil))
	assertAllowed(t, AuthorizeBill(patient, OpRead, foreign), false)
	assertAllowed(t, AuthorizeBill(patient, OpUpdate, own), false)
	assertAllowed(t, AuthorizeBill(doctor, OpRead, nil), false)
	assertAllowed(t, AuthorizeBill(doctor, OpRead, own), false)

	assert.NoError(t, AuthorizeMarkPaid(admin))
	assertAllowed(t, AuthorizeMarkPaid(patient), false)

	assert.NoError(t, AuthorizePay(patient, own))
	assertAllowed(t, AuthorizePay(patient, foreign), false)
	assertAllowed(t, AuthorizePay(admin, own), false)
}

func TestAuthorizeMedicine(t *testing.T) {
	assert.NoError(t, AuthorizeMedicine(admin, OpDelete))
	assert.NoError(t, AuthorizeMedicine(doctor, OpRead))
	assert.NoError(t, AuthorizeMedicine(patient, OpRead))
	assertAllowed(t, AuthorizeMedicine(doctor, OpCreate), false)
	assertAllowed(t, AuthorizeMedicine(patient, OpUpdate), false)
}

func TestAuthorizeLabReport(t *testing.T) {
	pending := &entity.LabReport{ID: 1, PatientID: 1, Status: entity.LabReportStatusPending}
	completed := &entity.LabReport{ID: 2, PatientID: 1, Status: entity.LabReportStatusCompleted}
	foreign := &entity.LabReport{ID: 3, PatientID: 2, Status: entity.LabReportStatusCancelled}

	tests := []struct {
		name    string
		actor   Actor
		op      Operation
		target  *entity.LabReport
		allowed bool
	}{
		{"admin edits completed", admin, OpUpdate, completed, true},
		{"admin deletes cancelled", admin, OpDelete, foreign, true},
		{"doctor creates", doctor, OpCreate, nil, true},
		{"doctor reads any", doctor, OpRead, foreign, true},
		{"doctor edits pending", doctor, OpUpdate, pending, true},
		{"doctor deletes pending", doctor, OpDelete, pending, true},
		{"doctor cannot edit completed", doctor, OpUpdate, completed, false},
		{"doctor cannot delete cancelled", doctor, OpDelete, foreign, false},
		{"patient reads own", patient, OpRead, completed, true},
		{"patient cannot read foreign", patient, OpRead, foreign, false},
		{"patient cannot create", patient, OpCreate, nil, false},
		{"patient cannot edit own pending", patient, OpUpdate, pending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertAllowed(t, AuthorizeLabReport(tt.actor, tt.op, tt.target), tt.allowed)
		})
	}
}

func TestActorWithoutLinkedRecordOwnsNothing(t *testing.T) {
	orphan := Actor{UserID: 7, Role: entity.RolePatient}
	assert.False(t, orphan.OwnsPatient(0))
	assertAllowed(t, AuthorizeAppointment(orphan, OpCreate, &entity.Appointment{PatientID: 0}), false)
}
