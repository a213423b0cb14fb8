package usecase

import (
	"testing"

	"hospital-records/config"
	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labReportRequest(patientID int) *dto.LabReportRequest {
	return &dto.LabReportRequest{
		PatientID: patientID,
		TestType:  "Blood Test",
		TestName:  "Lipid Panel",
		TestDate:  "2025-01-20",
		Results:   map[string]string{"Total Cholesterol": "190 mg/dL"},
		NormalRanges: map[string]string{
			"Total Cholesterol": "< 200 mg/dL",
		},
	}
}

func TestCreateLabReportDefaults(t *testing.T) {
	env := newTestEnv(t)

	report, err := env.labReports.Create(env.doctor(t), labReportRequest(1))
	require.NoError(t, err)
	assert.Equal(t, 4, report.ID)
	assert.Equal(t, "John Doe", report.PatientName)
	assert.Equal(t, string(entity.LabReportStatusPending), report.Status)
	assert.Equal(t, entity.LabPriorityNormal, report.Priority)
	assert.Equal(t, "2025-01-20", report.ResultDate)
	assert.Equal(t, "190 mg/dL", report.Results["Total Cholesterol"])

	bare := labReportRequest(1)
	bare.Results = nil
	bare.NormalRanges = nil
	empty, err := env.labReports.Create(env.admin(t), bare)
	require.NoError(t, err)
	assert.NotNil(t, empty.Results)
	assert.NotNil(t, empty.NormalRanges)
}

func TestLabReportRejectsMissingPatientByDefault(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.labReports.Create(env.admin(t), labReportRequest(99))
	assert.ErrorIs(t, err, apperror.ErrDanglingReference)

	reports, err := env.labReports.List(env.admin(t), nil)
	require.NoError(t, err)
	assert.Len(t, reports, 3)
}

func TestLenientLabReportsStoreEmptyPatientName(t *testing.T) {
	env := newTestEnvWith(t, config.IntegrityConfig{StrictLabReports: false})

	report, err := env.labReports.Create(env.admin(t), labReportRequest(99))
	require.NoError(t, err)
	assert.Equal(t, 99, report.PatientID)
	assert.Empty(t, report.PatientName)
}

func TestPatientsOnlySeeTheirOwnLabReports(t *testing.T) {
	env := newTestEnv(t)
	other := env.addPatient(t, "Jane Roe")
	foreign, err := env.labReports.Create(env.admin(t), labReportRequest(other.ID))
	require.NoError(t, err)

	patientCtx := env.patient(t)
	own, err := env.labReports.List(patientCtx, nil)
	require.NoError(t, err)
	require.Len(t, own, 3)
	for _, r := range own {
		assert.Equal(t, 1, r.PatientID)
	}

	_, err = env.labReports.Get(patientCtx, foreign.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = env.labReports.Create(patientCtx, labReportRequest(1))
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	everything, err := env.labReports.List(env.doctor(t), nil)
	require.NoError(t, err)
	assert.Len(t, everything, 4)
}

func TestDoctorsEditOnlyPendingLabReports(t *testing.T) {
	env := newTestEnv(t)
	doctorCtx := env.doctor(t)

	// report 3 is the seeded pending chest X-ray
	req := &dto.LabReportRequest{
		PatientID:     1,
		TestType:      "Imaging",
		TestName:      "Chest X-Ray",
		TestDate:      "2024-01-25",
		Status:        string(entity.LabReportStatusCompleted),
		DoctorNotes:   "Clear lung fields.",
		LabTechnician: "Dr. Lisa Rodriguez",
	}
	updated, err := env.labReports.Update(doctorCtx, 3, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.LabReportStatusCompleted), updated.Status)
	assert.Equal(t, "Clear lung fields.", updated.DoctorNotes)

	req.DoctorNotes = "Second opinion"
	_, err = env.labReports.Update(doctorCtx, 3, req)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	assert.ErrorIs(t, env.labReports.Delete(doctorCtx, 1), apperror.ErrUnauthorized)

	adminUpdated, err := env.labReports.Update(env.admin(t), 3, req)
	require.NoError(t, err)
	assert.Equal(t, "Second opinion", adminUpdated.DoctorNotes)

	require.NoError(t, env.labReports.Delete(env.admin(t), 1))
	_, err = env.labReports.Get(env.admin(t), 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLabReportUpdateRefreshesPatientName(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)

	_, err := env.patients.Update(adminCtx, 1, &dto.PatientRequest{Name: "John A. Doe", Age: "36", Gender: "Male", Contact: "+1234567890"})
	require.NoError(t, err)

	stale, err := env.labReports.Get(adminCtx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", stale.PatientName)

	req := labReportRequest(1)
	req.Status = string(entity.LabReportStatusCompleted)
	fresh, err := env.labReports.Update(adminCtx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "John A. Doe", fresh.PatientName)
}

func TestLabReportFilters(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)

	pending, err := env.labReports.List(adminCtx, &entity.LabReportFilter{Status: entity.LabReportStatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Chest X-Ray", pending[0].TestName)

	urine, err := env.labReports.List(adminCtx, &entity.LabReportFilter{Search: "urin"})
	require.NoError(t, err)
	assert.Len(t, urine, 1)
}

func TestLabReportValidation(t *testing.T) {
	env := newTestEnv(t)

	req := labReportRequest(1)
	req.Priority = "Urgent"
	_, err := env.labReports.Create(env.admin(t), req)
	assert.ErrorIs(t, err, apperror.ErrValidation)

	req = labReportRequest(1)
	req.TestDate = ""
	_, err = env.labReports.Create(env.admin(t), req)
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
