package entity

import (
	"hospital-records/pkg/apperror"

	"github.com/shopspring/decimal"
)

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

type Bill struct {
	ID          int             `json:"id"`
	PatientID   int             `json:"patient_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Status      BillStatus      `json:"status"`
}

func (b *Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}

// MarkPaid moves a pending bill to paid. It reports whether anything
// changed; a bill that is already paid is left untouched. Overdue is
// terminal.
func (b *Bill) MarkPaid() (bool, error) {
	switch b.Status {
	case BillStatusPaid:
		return false, nil
	case BillStatusPending:
		b.Status = BillStatusPaid
		return true, nil
	}
	return false, apperror.NewTransitionError("bill", string(b.Status), string(BillStatusPaid))
}

// SumAmounts totals the amount of every bill in the given status.
func SumAmounts(bills []Bill, status BillStatus) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Status == status {
			total = total.Add(b.Amount)
		}
	}
	return total
}
