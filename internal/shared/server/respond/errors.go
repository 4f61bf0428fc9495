package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// StatusError carries an HTTP status and error code through service layers.
type StatusError struct {
	Status  int
	Code    string
	Message string
	Details interface{}
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error { return e.Err }

// NewStatusError builds a StatusError wrapping err.
func NewStatusError(status int, code, message string, err error) *StatusError {
	return &StatusError{Status: status, Code: code, Message: message, Err: err}
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError writes err as a standardized response, defaulting to 500.
func FromError(c *gin.Context, err error) {
	var se *StatusError
	if errors.As(err, &se) {
		Error(c, se.Status, se.Code, se.Message, se.Details)
		return
	}
	telemetry.Error("http.unhandled_error", map[string]any{
		"request_id": c.GetString("requestId"),
		"error":      err,
	})
	Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
}
