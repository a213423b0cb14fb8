package usecase

import (
	"context"
	"testing"

	"hospital-records/internal/delivery/dto"
	"hospital-records/internal/domain/entity"
	"hospital-records/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) issueBill(t *testing.T, ctx context.Context, patientID int, amount, status string) *dto.BillResponse {
	t.Helper()
	b, err := e.bills.Create(ctx, &dto.CreateBillRequest{
		PatientID:   patientID,
		Description: "Consultation",
		Amount:      amount,
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func TestCreateBillDefaults(t *testing.T) {
	env := newTestEnv(t)

	bill := env.issueBill(t, env.admin(t), 1, "150.50", "")
	assert.Equal(t, 1, bill.ID)
	assert.Equal(t, string(entity.BillStatusPending), bill.Status)
	assert.Equal(t, today(), bill.Date)
	assert.Equal(t, "John Doe", bill.PatientName)
	assert.True(t, bill.Amount.Equal(decimal.RequireFromString("150.50")))
}

func TestCreateBillRejections(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)

	tests := []struct {
		name string
		req  dto.CreateBillRequest
		want error
	}{
		{"amount not numeric", dto.CreateBillRequest{PatientID: 1, Description: "x", Amount: "abc"}, apperror.ErrValidation},
		{"negative amount", dto.CreateBillRequest{PatientID: 1, Description: "x", Amount: "-5"}, apperror.ErrValidation},
		{"unknown status", dto.CreateBillRequest{PatientID: 1, Description: "x", Amount: "5", Status: "refunded"}, apperror.ErrValidation},
		{"unknown patient", dto.CreateBillRequest{PatientID: 99, Description: "x", Amount: "5"}, apperror.ErrDanglingReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.bills.Create(adminCtx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := env.bills.Create(env.patient(t), &dto.CreateBillRequest{PatientID: 1, Description: "x", Amount: "5"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	bills, err := env.bills.List(adminCtx, nil)
	require.NoError(t, err)
	assert.Empty(t, bills)
}

func TestMarkPaid(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)
	pending := env.issueBill(t, adminCtx, 1, "80", "")
	overdue := env.issueBill(t, adminCtx, 1, "40", "overdue")

	_, err := env.bills.MarkPaid(env.patient(t), pending.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	paid, err := env.bills.MarkPaid(adminCtx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusPaid), paid.Status)

	before := env.auditCount(t, adminCtx)
	again, err := env.bills.MarkPaid(adminCtx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusPaid), again.Status)
	assert.Equal(t, before, env.auditCount(t, adminCtx))

	_, err = env.bills.MarkPaid(adminCtx, overdue.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidTransition)

	_, err = env.bills.MarkPaid(adminCtx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateBillLeavesStatusAlone(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)
	bill := env.issueBill(t, adminCtx, 1, "80", "paid")

	updated, err := env.bills.Update(adminCtx, bill.ID, &dto.UpdateBillRequest{PatientID: 1, Description: "Lab work", Amount: "95.25", Date: "2025-01-15"})
	require.NoError(t, err)
	assert.Equal(t, "Lab work", updated.Description)
	assert.Equal(t, "2025-01-15", updated.Date)
	assert.Equal(t, string(entity.BillStatusPaid), updated.Status)
	assert.True(t, updated.Amount.Equal(decimal.RequireFromString("95.25")))

	_, err = env.bills.Update(adminCtx, bill.ID, &dto.UpdateBillRequest{PatientID: 1, Description: "Lab work", Amount: "ten", Date: "2025-01-15"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestPatientSeesOnlyOwnBills(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)
	other := env.addPatient(t, "Jane Roe")
	own := env.issueBill(t, adminCtx, 1, "10", "")
	foreign := env.issueBill(t, adminCtx, other.ID, "20", "")

	patientCtx := env.patient(t)
	bills, err := env.bills.List(patientCtx, nil)
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, own.ID, bills[0].ID)

	_, err = env.bills.Get(patientCtx, foreign.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	paid, err := env.bills.Pay(patientCtx, own.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BillStatusPending), paid.Status)

	_, err = env.bills.Pay(patientCtx, foreign.ID)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = env.bills.List(env.doctor(t), nil)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestBillSummary(t *testing.T) {
	env := newTestEnv(t)
	adminCtx := env.admin(t)
	other := env.addPatient(t, "Jane Roe")
	env.issueBill(t, adminCtx, 1, "100", "paid")
	env.issueBill(t, adminCtx, 1, "50", "pending")
	env.issueBill(t, adminCtx, 1, "25", "overdue")
	env.issueBill(t, adminCtx, other.ID, "300", "paid")

	all, err := env.bills.Summary(adminCtx)
	require.NoError(t, err)
	assert.Equal(t, 4, all.Total)
	assert.True(t, all.Revenue.Equal(decimal.NewFromInt(400)))
	assert.True(t, all.PendingAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, all.OverdueAmount.Equal(decimal.NewFromInt(25)))

	mine, err := env.bills.Summary(env.patient(t))
	require.NoError(t, err)
	assert.Equal(t, 3, mine.Total)
	assert.True(t, mine.Revenue.Equal(decimal.NewFromInt(100)))

	paidOnly, err := env.bills.List(adminCtx, &entity.BillFilter{Status: entity.BillStatusPaid})
	require.NoError(t, err)
	assert.Len(t, paidOnly, 2)
}
