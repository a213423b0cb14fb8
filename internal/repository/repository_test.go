package repository

import (
	"context"
	"testing"

	"hospital-records/internal/domain/entity"
	"hospital-records/internal/infrastructure/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestIDsAreSequentialPerCollection(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	patients := NewPatientRepository()
	bills := NewBillRepository()

	tx := db.Begin()
	defer tx.Rollback()

	for want := 1; want <= 3; want++ {
		p := &entity.Patient{Name: "p"}
		require.NoError(t, patients.Create(ctx, tx, p))
		assert.Equal(t, want, p.ID)
	}

	b := &entity.Bill{PatientID: 1, Amount: decimal.NewFromInt(5), Status: entity.BillStatusPending}
	require.NoError(t, bills.Create(ctx, tx, b))
	assert.Equal(t, 1, b.ID)
	require.NoError(t, tx.Commit())

	read := db.BeginRead()
	defer read.Rollback()
	all, err := patients.FindAll(ctx, read, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, i+1, p.ID)
	}
}

func TestDeleteMaxThenCreateReusesID(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	repo := NewMedicineRepository()

	tx := db.Begin()
	defer tx.Rollback()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, tx, &entity.Medicine{Name: "m"}))
	}

	n, err := repo.Delete(ctx, tx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	m := &entity.Medicine{Name: "again"}
	require.NoError(t, repo.Create(ctx, tx, m))
	assert.Equal(t, 3, m.ID)
}

func TestFindByIDReturnsNilWhenMissing(t *testing.T) {
	ctx := context.Background()
	tx := memory.New().BeginRead()
	defer tx.Rollback()

	p, err := NewPatientRepository().FindByID(ctx, tx, 42)
	require.NoError(t, err)
	assert.Nil(t, p)

	u, err := NewUserRepository().FindByUsername(ctx, tx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestFindByUserIDResolvesLinkedRecord(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	patients := NewPatientRepository()
	doctors := NewDoctorRepository()

	tx := db.Begin()
	defer tx.Rollback()
	require.NoError(t, patients.Create(ctx, tx, &entity.Patient{Name: "walk-in"}))
	require.NoError(t, patients.Create(ctx, tx, &entity.Patient{Name: "John Doe", UserID: intPtr(3)}))
	require.NoError(t, doctors.Create(ctx, tx, &entity.Doctor{Name: "Dr. Sarah Johnson", UserID: intPtr(2)}))

	p, err := patients.FindByUserID(ctx, tx, 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 2, p.ID)

	d, err := doctors.FindByUserID(ctx, tx, 2)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 1, d.ID)

	none, err := doctors.FindByUserID(ctx, tx, 3)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	repo := NewLabReportRepository()

	tx := db.Begin()
	defer tx.Rollback()
	report := &entity.LabReport{PatientID: 1, Results: map[string]string{"Glucose": "Negative"}}
	require.NoError(t, repo.Create(ctx, tx, report))
	report.Results["Glucose"] = "mutated by caller"

	got, err := repo.FindByID(ctx, tx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Negative", got.Results["Glucose"])

	got.Results["Glucose"] = "mutated again"
	again, err := repo.FindByID(ctx, tx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Negative", again.Results["Glucose"])

	patients := NewPatientRepository()
	p := &entity.Patient{Name: "x", UserID: intPtr(9)}
	require.NoError(t, patients.Create(ctx, tx, p))
	*p.UserID = 10
	stored, err := patients.FindByID(ctx, tx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, *stored.UserID)
}

func TestAuditMetadataIsCopiedOnRead(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	repo := NewAuditLogRepository()

	tx := db.Begin()
	defer tx.Rollback()
	require.NoError(t, repo.Create(ctx, tx, &entity.AuditLog{Action: entity.AuditActionPatientCreate, Metadata: entity.JSON{"entity_id": 1}}))

	all, err := repo.FindAll(ctx, tx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Metadata["tampered"] = true

	one, err := repo.FindByID(ctx, tx, all[0].ID)
	require.NoError(t, err)
	assert.NotContains(t, one.Metadata, "tampered")
	one.Metadata["tampered"] = true

	again, err := repo.FindByID(ctx, tx, all[0].ID)
	require.NoError(t, err)
	assert.NotContains(t, again.Metadata, "tampered")
	assert.Equal(t, 1, again.Metadata["entity_id"])
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	db := memory.New()
	tx := db.Begin()
	defer tx.Rollback()

	meds := NewMedicineRepository()
	require.NoError(t, meds.Create(ctx, tx, &entity.Medicine{Name: "Insulin Glargine", Category: "Diabetes", Manufacturer: "MediCorp"}))
	require.NoError(t, meds.Create(ctx, tx, &entity.Medicine{Name: "Metformin 500mg", Category: "Diabetes", Manufacturer: "PharmaLife"}))
	require.NoError(t, meds.Create(ctx, tx, &entity.Medicine{Name: "Paracetamol 500mg", Category: "Pain Relief", Manufacturer: "ABC Pharma"}))

	diabetes, err := meds.FindAll(ctx, tx, &entity.MedicineFilter{Category: "Diabetes"})
	require.NoError(t, err)
	assert.Len(t, diabetes, 2)

	pharma, err := meds.FindAll(ctx, tx, &entity.MedicineFilter{Search: "pharma"})
	require.NoError(t, err)
	assert.Len(t, pharma, 2)

	appts := NewAppointmentRepository()
	require.NoError(t, appts.Create(ctx, tx, &entity.Appointment{PatientID: 1, DoctorID: 1, Status: entity.AppointmentStatusScheduled}))
	require.NoError(t, appts.Create(ctx, tx, &entity.Appointment{PatientID: 2, DoctorID: 1, Status: entity.AppointmentStatusCancelled}))
	require.NoError(t, appts.Create(ctx, tx, &entity.Appointment{PatientID: 1, DoctorID: 2, Status: entity.AppointmentStatusCancelled}))

	mine, err := appts.FindByPatientID(ctx, tx, 1, &entity.AppointmentFilter{Status: entity.AppointmentStatusCancelled})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 3, mine[0].ID)

	byDoctor, err := appts.FindByDoctorID(ctx, tx, 1, nil)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 2)

	reports := NewLabReportRepository()
	require.NoError(t, reports.Create(ctx, tx, &entity.LabReport{PatientID: 1, PatientName: "John Doe", TestType: "Imaging", TestName: "Chest X-Ray", Status: entity.LabReportStatusPending}))
	require.NoError(t, reports.Create(ctx, tx, &entity.LabReport{PatientID: 2, PatientName: "Jane Roe", TestType: "Blood Test", TestName: "CBC", Status: entity.LabReportStatusCompleted}))

	xray, err := reports.FindAll(ctx, tx, &entity.LabReportFilter{Search: "x-ray"})
	require.NoError(t, err)
	require.Len(t, xray, 1)
	assert.Equal(t, "Chest X-Ray", xray[0].TestName)

	janes, err := reports.FindByPatientID(ctx, tx, 2, &entity.LabReportFilter{Status: entity.LabReportStatusCompleted, TestType: "Blood Test"})
	require.NoError(t, err)
	assert.Len(t, janes, 1)
}
