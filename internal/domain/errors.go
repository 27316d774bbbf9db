package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrDuplicateInvoice    = errors.New("invoice number already exists for this vendor")
	ErrDuplicateVendor     = errors.New("vendor already exists")
	ErrRegisterNotFound    = errors.New("register period not initialized")
	ErrDuplicatePeriod     = errors.New("register period already exists")
	ErrPeriodClosed        = errors.New("register period is closed")
	ErrInsufficientBalance = errors.New("utilization exceeds available ITC balance")
	ErrInvalidPeriodKey    = errors.New("period key must be MM-YYYY")
	ErrNegativeOpening     = errors.New("opening balance cannot be negative")
	ErrUnknownCategory     = errors.New("unknown blocked credit category")
)

// ValidationError is a fatal pre-computation rejection. Field names the
// offending field; Code is machine-readable and stable.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
