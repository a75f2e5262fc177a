package catalog

import "errors"

type ErrorCode string

const (
	ErrorSourceNotFound  ErrorCode = "source_not_found"
	ErrorInvalidWeight   ErrorCode = "invalid_weight"
	ErrorDuplicateID     ErrorCode = "duplicate_id"
	ErrorUnknownCategory ErrorCode = "unknown_category"
	ErrorEmptyField      ErrorCode = "empty_field"
)

// ConfigError reports a malformed or missing criteria catalog. It is never
// repaired silently; loading fails eagerly so scoring can assume a valid
// catalog.
type ConfigError struct {
	Code    ErrorCode
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

func NewSourceNotFoundError(msg string) error {
	return &ConfigError{Code: ErrorSourceNotFound, Message: msg}
}

func NewInvalidWeightError(msg string) error {
	return &ConfigError{Code: ErrorInvalidWeight, Message: msg}
}

func NewDuplicateIDError(msg string) error {
	return &ConfigError{Code: ErrorDuplicateID, Message: msg}
}

func NewUnknownCategoryError(msg string) error {
	return &ConfigError{Code: ErrorUnknownCategory, Message: msg}
}

func NewEmptyFieldError(msg string) error {
	return &ConfigError{Code: ErrorEmptyField, Message: msg}
}

func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
