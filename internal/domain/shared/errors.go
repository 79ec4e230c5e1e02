package shared

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or invalid field before anything is sent
// to the backend. Callers render Message next to the offending control.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors collects every failed field of a form so all of them can be
// shown at once.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return v[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(v))
	for _, e := range v {
		msg += "\n  " + e.Error()
	}
	return msg
}

// ErrOrNil returns nil when nothing failed.
func (v ValidationErrors) ErrOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// FieldError returns the validation message for field, if any.
func FieldError(err error, field string) (string, bool) {
	var many ValidationErrors
	if errors.As(err, &many) {
		for _, e := range many {
			if e.Field == field {
				return e.Message, true
			}
		}
		return "", false
	}
	var one *ValidationError
	if errors.As(err, &one) && one.Field == field {
		return one.Message, true
	}
	return "", false
}

// IsValidationError reports whether err came from client-side validation.
func IsValidationError(err error) bool {
	var many ValidationErrors
	var one *ValidationError
	return errors.As(err, &many) || errors.As(err, &one)
}
