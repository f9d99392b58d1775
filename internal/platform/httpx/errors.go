// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/odyssey-erp/supplydesk/internal/shared"
)

var statusByCode = map[shared.ErrorCode]int{
	shared.CodeValidation:   http.StatusBadRequest,
	shared.CodeNotFound:     http.StatusNotFound,
	shared.CodeUnauthorized: http.StatusUnauthorized,
	shared.CodeForbidden:    http.StatusForbidden,
	shared.CodeInternal:     http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a classified error.
func StatusFor(err error) int {
	if status, ok := statusByCode[shared.CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RespondError maps domain errors to HTTP responses using RFC7807.
// Internal errors never expose their cause.
func RespondError(w http.ResponseWriter, err error) {
	code := shared.CodeOf(err)
	status := StatusFor(err)
	problem := ProblemDetail{
		Title:  http.StatusText(status),
		Status: status,
		Code:   string(code),
	}
	if code != shared.CodeInternal {
		var classified *shared.Error
		if errors.As(err, &classified) {
			problem.Detail = classified.Message
			problem.Errors = classified.Fields
		} else {
			problem.Detail = err.Error()
		}
	}
	Problem(w, problem)
}
