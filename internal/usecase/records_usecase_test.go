package usecase

import (
	"testing"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientLifecycleAsAdmin(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)

	created, err := env.patients.Create(adminCtx, &dto.PatientRequest{Name: "Jane Roe", Age: "28", Gender: "Female", Contact: "+15550100", MedicalHistory: "Asthma"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	assert.Equal(t, 28, created.Age)
	assert.Nil(t, created.UserID)

	_, err = env.patients.Create(adminCtx, &dto.PatientRequest{Name: "Bad Age", Age: "twenty", Gender: "Male", Contact: "+15550101"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.patients.Create(adminCtx, &dto.PatientRequest{Name: "No Contact", Age: "30"})
	var invalid *apperror.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Fields, "gender")
	assert.Contains(t, invalid.Fields, "contact")

	_, err = env.patients.Update(adminCtx, created.ID, &dto.PatientRequest{Name: "Jane Roe", Age: "29", Gender: "Female"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	updated, err := env.patients.Update(adminCtx, created.ID, &dto.PatientRequest{Name: "Jane Roe", Age: "29", Gender: "Female", Contact: "+15550100", MedicalHistory: "Asthma, allergies"})
	require.NoError(t, err)
	assert.Equal(t, 29, updated.Age)
	assert.Equal(t, "Asthma, allergies", updated.MedicalHistory)

	found, err := env.patients.List(adminCtx, &entity.PatientFilter{Search: "jane"})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, env.patients.Delete(adminCtx, created.ID))
	_, err = env.patients.Get(adminCtx, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	again, err := env.patients.Create(adminCtx, &dto.PatientRequest{Name: "Reused", Age: "50", Gender: "Male", Contact: "+15550102"})
	require.NoError(t, err)
	assert.Equal(t, 2, again.ID)
}

func TestPatientSeesAndEditsOnlyOwnRecord(t *testing.T) {
	env := newTestEnv(t)
	other := env.addPatient(t, "Jane Roe")
	patientCtx := env.patient(t)

	own, err := env.patients.List(patientCtx, nil)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, 1, own[0].ID)

	_, err = env.patients.Get(patientCtx, other.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	updated, err := env.patients.Update(patientCtx, 1, &dto.PatientRequest{Name: "John Doe", Age: "35", Gender: "Male", Contact: "+1999"})
	require.NoError(t, err)
	assert.Equal(t, "+1999", updated.Contact)

	_, err = env.patients.Update(patientCtx, other.ID, &dto.PatientRequest{Name: "x", Age: "1", Gender: "Male", Contact: "+1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = env.patients.Create(patientCtx, &dto.PatientRequest{Name: "x", Age: "1", Gender: "Male", Contact: "+1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	assert.ErrorIs(t, env.patients.Delete(patientCtx, 1), apperror.ErrUnauthorized)

	all, err := env.patients.List(env.doctor(t), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDoctorManagement(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)

	off, err := env.doctors.ToggleAvailability(adminCtx, 1)
	require.NoError(t, err)
	assert.False(t, off.Available)

	available, err := env.doctors.List(env.patient(t), &entity.DoctorFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Empty(t, available)

	on, err := env.doctors.ToggleAvailability(adminCtx, 1)
	require.NoError(t, err)
	assert.True(t, on.Available)

	_, err = env.doctors.ToggleAvailability(env.doctor(t), 1)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = env.doctors.Create(env.doctor(t), &dto.DoctorRequest{Name: "Dr. X", Specialization: "X"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	unavailable := false
	created, err := env.doctors.Create(adminCtx, &dto.DoctorRequest{Name: "Dr. Lee", Specialization: "Neurology", Available: &unavailable})
	require.NoError(t, err)
	assert.False(t, created.Available)
	assert.Nil(t, created.UserID)

	byField, err := env.doctors.List(env.patient(t), &entity.DoctorFilter{Search: "neuro"})
	require.NoError(t, err)
	require.Len(t, byField, 1)
	assert.Equal(t, "Dr. Lee", byField[0].Name)

	_, err = env.doctors.ToggleAvailability(adminCtx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMedicineInventory(t *testing.T) {
	env := newTestEnv(t)

	meds, err := env.medicines.List(env.patient(t), nil)
	require.NoError(t, err)
	require.Len(t, meds, 5)

	status := map[string]string{}
	for _, m := range meds {
		status[m.Name] = m.StockStatus
	}
	assert.Equal(t, string(entity.StockStatusIn), status["Paracetamol 500mg"])
	assert.Equal(t, string(entity.StockStatusLow), status["Amoxicillin 250mg"])
	assert.Equal(t, string(entity.StockStatusOut), status["Lisinopril 10mg"])

	adminCtx := env.admin(t)
	created, err := env.medicines.Create(adminCtx, &dto.MedicineRequest{Name: "Ibuprofen 200mg", Category: "Pain Relief", Price: "9.99", Quantity: "10"})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)
	assert.Equal(t, string(entity.StockStatusLow), created.StockStatus)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("9.99")))

	_, err = env.medicines.Create(adminCtx, &dto.MedicineRequest{Name: "x", Category: "y", Price: "cheap", Quantity: "1"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	_, err = env.medicines.Create(adminCtx, &dto.MedicineRequest{Name: "x", Category: "y", Price: "1", Quantity: "1.5"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = env.medicines.Create(env.doctor(t), &dto.MedicineRequest{Name: "x", Category: "y", Price: "1", Quantity: "1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	restocked, err := env.medicines.Update(adminCtx, 4, &dto.MedicineRequest{Name: "Lisinopril 10mg", Category: "Cardiovascular", Price: "28.75", Quantity: "40"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StockStatusIn), restocked.StockStatus)

	diabetes, err := env.medicines.List(adminCtx, &entity.MedicineFilter{Category: "Diabetes"})
	require.NoError(t, err)
	assert.Len(t, diabetes, 2)

	require.NoError(t, env.medicines.Delete(adminCtx, 6))
	_, err = env.medicines.Get(adminCtx, 6)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAuditLogRecordsMutations(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)
	env.addPatient(t, "Jane Roe")

	logs, err := env.auditLogs.List(adminCtx)
	require.NoError(t, err)
	require.NotEmpty(t, logs.Logs)
	assert.Equal(t, len(logs.Logs), logs.Total)

	var create *dto.AuditLogResponse
	for i := range logs.Logs {
		if logs.Logs[i].Action == entity.AuditActionPatientCreate {
			create = &logs.Logs[i]
		}
	}
	require.NotNil(t, create)
	require.NotNil(t, create.UserID)
	assert.Equal(t, 1, *create.UserID)

	got, err := env.auditLogs.Get(adminCtx, create.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionPatientCreate, got.Action)

	logs.Logs[0].Metadata["tampered"] = true
	got.Metadata["tampered"] = true
	first, err := env.auditLogs.Get(adminCtx, logs.Logs[0].ID)
	require.NoError(t, err)
	assert.NotContains(t, first.Metadata, "tampered")
	again, err := env.auditLogs.Get(adminCtx, create.ID)
	require.NoError(t, err)
	assert.NotContains(t, again.Metadata, "tampered")

	_, err = env.auditLogs.List(env.patient(t))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
