package dto

import (
	"net/http"

	"github.com/bizsuite/backend/internal/domain/shared"
)

// Transport-level error codes
const (
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// DUPLICATE_DOCUMENT_NUMBER deliberately maps to 500: a duplicate means
// the numbering service itself misbehaved, not that the client did
// anything wrong.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":  http.StatusConflict,
	"INVALID_INPUT":   http.StatusBadRequest,
	"INVALID_STATE":   http.StatusUnprocessableEntity,
	ErrCodeBadRequest: http.StatusBadRequest,

	shared.CodeInvalidOrder:      http.StatusUnprocessableEntity,
	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeInvalidPayment:    http.StatusUnprocessableEntity,

	shared.CodeConcurrencyConflict:     http.StatusConflict,
	"DUPLICATE_SUBMISSION":             http.StatusConflict,
	shared.CodeDuplicateDocumentNumber: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes that look like validation failures default to 422;
// everything else is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
