// ================== pkg/errors/errors.go =================
package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrDuplicate    = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")
)

// Reason identifies why a single field was rejected.
type Reason string

const (
	ReasonRequired              Reason = "REQUIRED_FIELD"
	ReasonOutOfRange            Reason = "OUT_OF_RANGE"
	ReasonNotInteger            Reason = "NOT_AN_INTEGER"
	ReasonNotNumber             Reason = "NOT_A_NUMBER"
	ReasonInvalidPrecision      Reason = "INVALID_PRECISION"
	ReasonInvalidDate           Reason = "INVALID_DATE"
	ReasonInvalidImageExtension Reason = "INVALID_IMAGE_EXTENSION"
	ReasonTooShort              Reason = "TOO_SHORT"
	ReasonInvalidFormat         Reason = "INVALID_FORMAT"
)

// FieldError is a validation failure on one field.
type FieldError struct {
	Field   string `json:"field"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors collects every field failure found in one record.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Reason returns the reason of the first failure.
func (v ValidationErrors) Reason() Reason {
	if len(v) == 0 {
		return ""
	}
	return v[0].Reason
}

// OrNil returns nil when nothing was collected so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewFieldError builds a FieldError.
func NewFieldError(field string, reason Reason, message string) *FieldError {
	return &FieldError{Field: field, Reason: reason, Message: message}
}
