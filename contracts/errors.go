package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredField is matched by every MissingRequiredFieldError
var ErrMissingRequiredField = errors.New("missing required field")

// MissingRequiredFieldError reports a mandatory field that was not provided
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

func (e *MissingRequiredFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// FieldError attaches the name of the field to a validation failure
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError collects every defect found while parsing a Source
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return "invalid contracts configuration:\n\t- " + strings.Join(msgs, "\n\t- ")
}

func (e *ValidationError) Unwrap() []error {
	return e.Errors
}

// MissingFields returns the names of the required fields that were absent
func (e *ValidationError) MissingFields() []string {
	var fields []string
	for _, err := range e.Errors {
		var missing *MissingRequiredFieldError
		if errors.As(err, &missing) {
			fields = append(fields, missing.Field)
		}
	}
	return fields
}

// InvalidFields returns the names of the fields whose value was malformed
func (e *ValidationError) InvalidFields() []string {
	var fields []string
	for _, err := range e.Errors {
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			fields = append(fields, fieldErr.Field)
		}
	}
	return fields
}
