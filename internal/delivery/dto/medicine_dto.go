package dto

import "github.com/shopspring/decimal"

// Request DTOs

type MedicineRequest struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category" validate:"required"`
	Price        string `json:"price" validate:"required,numeric"`
	Quantity     string `json:"quantity" validate:"required,number"`
	Expiry       string `json:"expiry" validate:"omitempty,datetime=2006-01-02"`
	Description  string `json:"description"`
	Manufacturer string `json:"manufacturer"`
}

// Response DTOs

type MedicineResponse struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	StockStatus  string          `json:"stock_status"`
	Expiry       string          `json:"expiry"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
}
