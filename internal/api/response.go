package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"stockdash/pkg/stockdash"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type errorMessageSetter interface {
	SetErrorMessage(message string)
}

// writeErrorResponse maps err to a status and writes a structured body.
// Errors that did not come from stockdash are reported as a generic 500;
// the detail goes to the request log only.
func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	response := ErrorResponse{
		Message:   "internal server error",
		ErrorCode: string(stockdash.ErrCodeInternal),
		RequestID: middleware.GetReqID(r.Context()),
	}

	var dashErr *stockdash.Error
	if errors.As(err, &dashErr) {
		status = mapErrorCodeToHTTPStatus(dashErr.Code)
		response.Message = dashErr.Message
		response.ErrorCode = string(dashErr.Code)
	}

	if setter, ok := w.(errorMessageSetter); ok {
		setter.SetErrorMessage(err.Error())
	}
	writeJSON(w, status, response)
}

// writeError writes a body for failures that have no error code, such as
// routing and rate limiting.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if setter, ok := w.(errorMessageSetter); ok {
		setter.SetErrorMessage(message)
	}
	writeJSON(w, status, ErrorResponse{
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// mapErrorCodeToHTTPStatus maps business error codes to HTTP status codes.
func mapErrorCodeToHTTPStatus(code stockdash.ErrorCode) int {
	switch code {
	case stockdash.ErrCodeInvalidInput, stockdash.ErrCodeValidation:
		return http.StatusBadRequest
	case stockdash.ErrCodeNotFound:
		return http.StatusNotFound
	case stockdash.ErrCodeForbidden:
		return http.StatusForbidden
	case stockdash.ErrCodeDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
