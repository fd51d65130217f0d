package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator collects field errors of a request body.
type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{
		Errors: make([]ValidationError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// NotBlank fails when value is empty after trimming.
func (v *Validator) NotBlank(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, field+" must not be empty")
}

// Required fails when a decimal field was absent from the body.
func (v *Validator) Required(field string, value *decimal.Decimal) bool {
	v.Check(value != nil, field, field+" is required")
	return value != nil
}

// Message returns the first error message, or "" when valid.
func (v *Validator) Message() string {
	if v.Valid() {
		return ""
	}
	return v.Errors[0].Message
}
