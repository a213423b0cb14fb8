package usecase

import (
	"fmt"
	"unicode/utf8"

	"hospital-records/pkg/apperror"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// validateNewPassword checks a password being set at signup or reset.
// A mismatch is reported before the length rule.
func validateNewPassword(password, confirm string, minLength int) error {
	return validation.Validate(password,
		validation.By(matchesConfirmation(confirm)),
		validation.By(hasMinLength(minLength)),
	)
}

func matchesConfirmation(confirm string) validation.RuleFunc {
	return func(value interface{}) error {
		password, _ := value.(string)
		if password != confirm {
			return apperror.ErrPasswordMismatch
		}
		return nil
	}
}

func hasMinLength(minLength int) validation.RuleFunc {
	return func(value interface{}) error {
		password, _ := value.(string)
		if utf8.RuneCountInString(password) < minLength {
			return fmt.Errorf("%w: must be at least %d characters", apperror.ErrWeakPassword, minLength)
		}
		return nil
	}
}
