package repository

import (
	"strings"

	"hospital-records/internal/infrastructure/memory"
)

const (
	usersTable        memory.Table = "users"
	patientsTable     memory.Table = "patients"
	doctorsTable      memory.Table = "doctors"
	appointmentsTable memory.Table = "appointments"
	billsTable        memory.Table = "bills"
	medicinesTable    memory.Table = "medicines"
	labReportsTable   memory.Table = "lab_reports"
	auditLogsTable    memory.Table = "audit_logs"
)

// containsFold reports whether any of fields contains query, ignoring case.
// An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
