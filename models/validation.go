package models

// ValidationError reports required-field failures for an inbound payload.
// The dispatcher converts it into a 422 response whose data is the Fields
// map, so callers see one message per offending field.
type ValidationError struct {
	// Fields maps a field name to its human-readable failure message,
	// e.g. {"email": "The email field is required"}.
	Fields map[string]string
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
