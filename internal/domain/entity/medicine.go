package entity

import "github.com/shopspring/decimal"

// StockStatus is derived from quantity on hand.
type StockStatus string

const (
	StockStatusOut StockStatus = "Out of Stock"
	StockStatusLow StockStatus = "Low Stock"
	StockStatusIn  StockStatus = "In Stock"

	LowStockThreshold = 10
)

// StockStatusFor classifies a quantity: 0 is out, 1..10 is low, above is in stock.
func StockStatusFor(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity <= LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

type Medicine struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Expiry       string          `json:"expiry"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
}

func (m *Medicine) StockStatus() StockStatus {
	return StockStatusFor(m.Quantity)
}
