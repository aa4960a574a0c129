// Package errors defines coded domain errors shared across services and
// mapped to HTTP statuses at the transport boundary.
package errors

// DomainError is a business-rule failure with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }
