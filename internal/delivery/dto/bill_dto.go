package dto

import "github.com/shopspring/decimal"

// Request DTOs

type CreateBillRequest struct {
	PatientID   int    `json:"patient_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required,numeric"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"omitempty,oneof=pending paid overdue"`
}

// UpdateBillRequest edits a bill's details. Status changes go through
// mark paid.
type UpdateBillRequest struct {
	PatientID   int    `json:"patient_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Amount      string `json:"amount" validate:"required,numeric"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Response DTOs

type BillResponse struct {
	ID          int             `json:"id"`
	PatientID   int             `json:"patient_id"`
	PatientName string          `json:"patient_name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
}

type BillSummaryResponse struct {
	Revenue       decimal.Decimal `json:"revenue"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	OverdueAmount decimal.Decimal `json:"overdue_amount"`
	Total         int             `json:"total"`
}
