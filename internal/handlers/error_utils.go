// Package handlers implements the HTTP API of the tutor gateway.
package handlers

import (
	"net/http"

	contextutils "aitutor/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every error the API returns
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError sends a flat error response with the given status code
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// HandleAppError maps an error to an HTTP status and sends the flat error shape.
// The structured AppError stays in logs and spans; the caller only sees the message.
func HandleAppError(c *gin.Context, err error) {
	_ = c.Error(err)

	if appErr, ok := err.(*contextutils.AppError); ok {
		RespondWithError(c, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Message)
		return
	}

	RespondWithError(c, http.StatusInternalServerError, "Internal server error")
}

// mapErrorCodeToHTTPStatus maps AppError codes to appropriate HTTP status codes
func mapErrorCodeToHTTPStatus(code contextutils.ErrorCode) int {
	switch code {
	// 4xx Client Errors
	case contextutils.ErrorCodeInvalidInput, contextutils.ErrorCodeMissingRequired,
		contextutils.ErrorCodeValidationFailed:
		return http.StatusBadRequest

	case contextutils.ErrorCodeRecordNotFound:
		return http.StatusNotFound

	case contextutils.ErrorCodeTimeout:
		return http.StatusRequestTimeout

	case contextutils.ErrorCodeServiceUnavailable, contextutils.ErrorCodeDatabaseConnection:
		return http.StatusServiceUnavailable

	// Failed quiz generation has no fallback, so an unconfigured or failing
	// provider surfaces as a plain 500 rather than 503
	case contextutils.ErrorCodeInternalError, contextutils.ErrorCodeAIProviderUnavailable,
		contextutils.ErrorCodeAIRequestFailed, contextutils.ErrorCodeAIResponseInvalid,
		contextutils.ErrorCodeAIConfigInvalid, contextutils.ErrorCodeDatabaseQuery:
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
