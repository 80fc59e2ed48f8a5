package adminrpc

import "fmt"

// APIError represents an error response from the admin API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// IsAuthError reports whether the response was 401/403.
func (e *APIError) IsAuthError() bool {
	return e.Code == "UNAUTHORIZED" || e.Code == "FORBIDDEN"
}

// IsNotFound reports whether the response was 404.
func (e *APIError) IsNotFound() bool {
	return e.Code == "NOT_FOUND"
}

// IsConflict reports whether the response was 409.
func (e *APIError) IsConflict() bool {
	return e.Code == "CONFLICT"
}

// IsValidationError reports whether the response was a 422 validation failure.
func (e *APIError) IsValidationError() bool {
	return e.Code == "VALIDATION_ERROR"
}
