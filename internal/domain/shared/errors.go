package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes for the order/inventory transaction core
const (
	CodeInvalidOrder            = "INVALID_ORDER"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeInvalidPayment          = "INVALID_PAYMENT"
	CodeDuplicateDocumentNumber = "DUPLICATE_DOCUMENT_NUMBER"
	CodeConcurrencyConflict     = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrDuplicateSubmission = NewDomainError("DUPLICATE_SUBMISSION", "Request with this idempotency key was already processed")

	// ErrDuplicateDocumentNumber signals a violated numbering invariant. It must
	// never be retried with a fresh number: a duplicate means the numbering
	// service itself is broken and order creation has to halt.
	ErrDuplicateDocumentNumber = NewDomainError(CodeDuplicateDocumentNumber, "Document number already exists")
)

// CodeOf extracts the domain error code from an error chain.
// Returns an empty string for non-domain errors.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsConcurrencyConflict reports whether the error is a lock/serialization
// conflict that is safe to retry a bounded number of times.
func IsConcurrencyConflict(err error) bool {
	return CodeOf(err) == CodeConcurrencyConflict
}
