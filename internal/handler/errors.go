package handler

import (
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a message for people.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a caller-correctable domain error.
func validationBody(code string, err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// errorCodes maps each caller-correctable sentinel to its response code.
// Order matters only for errors that wrap more than one sentinel.
var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInvalidRange, "invalid_range"},
	{domain.ErrInvalidDayIndex, "invalid_day_index"},
	{domain.ErrEmptySelection, "empty_selection"},
	{domain.ErrInvalidCategory, "validation_error"},
	{domain.ErrDuplicateItem, "validation_error"},
	{domain.ErrValidation, "validation_error"},
}

// writeError maps a service error to an HTTP response. what names the
// resource for 404 messages ("trip"). Unexpected errors are logged and
// reported as 500 without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, notFoundBody(what+" not found"))
		return
	}
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(e.code, err))
			return
		}
	}

	s.log.ErrorContext(r.Context(), "request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{
		Code: "internal_error", Message: "internal server error",
	}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, e := range errorCodes {
		if !errors.Is(err, e.err) {
			continue
		}
		sentinel := e.err.Error()
		if i := strings.LastIndex(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
		return sentinel
	}
	return msg
}

// isTooLarge reports whether err came from an http.MaxBytesReader limit.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
