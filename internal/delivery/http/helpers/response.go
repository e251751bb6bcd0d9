package helpers

import (
	"encoding/json"
	"net/http"
)

// Error codes for API error responses. Each code has one HTTP status, see StatusForCode.
const (
	ErrCodeBadRequest      = "bad_request"       // empty or malformed email, bad JSON
	ErrCodeUnauthorized    = "unauthorized"      // admin routes without a valid token
	ErrCodeNotFound        = "not_found"         // admin delete of an unknown email
	ErrCodeConflict        = "conflict"          // email already on the waitlist
	ErrCodeTooManyRequests = "too_many_requests" // signup rate limit
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnavailable     = "unavailable" // health check with the store down
)

var codeStatus = map[string]int{
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
	ErrCodeInternalError:   http.StatusInternalServerError,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// StatusForCode returns the HTTP status paired with an error code.
// Unknown codes are reported as 500.
func StatusForCode(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope for every JSON response: Data on success, Error otherwise.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and an envelope carrying data.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes statusCode and an envelope carrying the error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeEnvelope(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteError is WriteJSONError with the status taken from StatusForCode.
func WriteError(w http.ResponseWriter, code, message string) {
	WriteJSONError(w, StatusForCode(code), code, message)
}

func writeEnvelope(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
