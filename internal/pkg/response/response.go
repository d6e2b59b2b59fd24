// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "backdesk-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// CRITICAL: Abort FIRST before writing response
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
		response.ErrorKind = xerrors.KindOf(err)
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// FromError maps a taxonomy error to its HTTP status and sends it. Handlers
// call this with whatever the service returned; unknown errors come out as
// 500 with the Internal kind.
func FromError(c *gin.Context, message string, err error) {
	Error(c, StatusOf(err), message, err)
}

// StatusOf resolves the HTTP status for a taxonomy error.
func StatusOf(err error) int {
	switch xerrors.KindOf(err) {
	case xerrors.KindNotFound:
		return http.StatusNotFound
	case xerrors.KindForbidden:
		return http.StatusForbidden
	case xerrors.KindInvalidTransition, xerrors.KindConflict:
		return http.StatusConflict
	case xerrors.KindCapacityExceeded, xerrors.KindRecipientInactive, xerrors.KindValidation:
		return http.StatusBadRequest
	case xerrors.KindStoreUnavailable:
		return http.StatusServiceUnavailable
	case xerrors.KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 Not Found response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}
