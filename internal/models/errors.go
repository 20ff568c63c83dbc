package models

// ValidationError represents a request validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is a request validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
