package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hospital-records/internal/converter"
	"hospital-records/internal/domain/repository"
	"hospital-records/internal/infrastructure/memory"
	"hospital-records/pkg/apperror"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// parseAmount parses a money field entered as text.
func parseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, apperror.NewValidationError(field, field+" must be numeric")
	}
	if amount.IsNegative() {
		return decimal.Zero, apperror.NewValidationError(field, field+" must not be negative")
	}
	return amount, nil
}

// parseCount parses a non-negative whole number entered as text. An empty
// value is zero when optional is set.
func parseCount(field, value string, optional bool) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" && optional {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperror.NewValidationError(field, field+" must be a whole number")
	}
	if n < 0 {
		return 0, apperror.NewValidationError(field, field+" must not be negative")
	}
	return n, nil
}

func today() string {
	return time.Now().Format(dateLayout)
}

// loadNames builds display-name lookups for patients and doctors.
func loadNames(ctx context.Context, tx *memory.Tx, patientRepo repository.PatientRepository, doctorRepo repository.DoctorRepository) (converter.NameLookup, error) {
	names := converter.NameLookup{
		Patients: map[int]string{},
		Doctors:  map[int]string{},
	}

	patients, err := patientRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return names, err
	}
	for _, p := range patients {
		names.Patients[p.ID] = p.Name
	}

	if doctorRepo == nil {
		return names, nil
	}
	doctors, err := doctorRepo.FindAll(ctx, tx, nil)
	if err != nil {
		return names, err
	}
	for _, d := range doctors {
		names.Doctors[d.ID] = d.Name
	}
	return names, nil
}
