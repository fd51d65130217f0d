package errors

import "fmt"

// DomainError is a business error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Wrap replaces the message of a domain error with a formatted one. The result still
// matches err with errors.Is and errors.As.
func Wrap(err *DomainError, format string, args ...any) error {
	return &detailedError{err: err, msg: fmt.Sprintf(format, args...)}
}

type detailedError struct {
	err *DomainError
	msg string
}

func (e *detailedError) Error() string { return e.msg }

func (e *detailedError) Unwrap() error { return e.err }
