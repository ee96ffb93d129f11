package core

import "github.com/pkg/errors"

// FieldError describes a problem with one request field. Field uses the JSON name.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned for requests that are well formed but semantically wrong,
// eg. a date range that ends before it starts.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	if err == nil {
		err = errors.New("invalid request")
	}
	return &ValidationError{Err: err, Fields: flds}
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// FieldMap returns the field errors keyed by field, or nil when there are none.
// The first error reported for a field wins.
func (e *ValidationError) FieldMap() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, seen := fields[f.Field]; !seen {
			fields[f.Field] = f.Error
		}
	}
	return fields
}

// shutdownError signals that the process can no longer serve requests.
type shutdownError struct {
	reason string
}

func NewShutdownError(reason string) error {
	return &shutdownError{reason: reason}
}

func (e *shutdownError) Error() string { return "shutdown requested: " + e.reason }

// IsShutdown reports whether err, or any error it wraps, asks for a shutdown.
func IsShutdown(err error) bool {
	var sErr *shutdownError
	return errors.As(err, &sErr)
}
