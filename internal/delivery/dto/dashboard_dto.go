package dto

import (
	"hospital-records/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Response DTOs

// DashboardResponse holds the headline counts for the caller. Revenue is
// nil for doctors.
type DashboardResponse struct {
	Role              string           `json:"role"`
	TotalPatients     int              `json:"total_patients"`
	TotalDoctors      int              `json:"total_doctors"`
	TotalAppointments int              `json:"total_appointments"`
	Revenue           *decimal.Decimal `json:"revenue,omitempty"`
}

type IntegrityReportResponse struct {
	Dangling []entity.DanglingReference `json:"dangling"`
	Total    int                        `json:"total"`
}
