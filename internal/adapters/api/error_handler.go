package api

import (
	"errors"
	"net/http"

	"catalogapi.app/internal/ports"
	errorspkg "catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, message := errorStatus(err)
	if statusCode >= http.StatusInternalServerError && s.logger != nil {
		s.logger.Error("Request failed",
			ports.F("path", c.Request.URL.Path),
			ports.F("status", statusCode),
			ports.F("error", err))
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

func errorStatus(err error) (int, string) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Type {
	case errorspkg.ErrorTypeValidation:
		return http.StatusBadRequest, appErr.Message
	case errorspkg.ErrorTypeUnauthorized, errorspkg.ErrorTypeToken:
		return http.StatusUnauthorized, appErr.Message
	case errorspkg.ErrorTypeForbidden:
		return http.StatusForbidden, appErr.Message
	case errorspkg.ErrorTypeNotFound:
		return http.StatusNotFound, appErr.Message
	case errorspkg.ErrorTypeAlreadyExists:
		return http.StatusConflict, appErr.Message
	case errorspkg.ErrorTypeExternalAPI:
		return http.StatusServiceUnavailable, "External service unavailable"
	case errorspkg.ErrorTypeEmail:
		return http.StatusServiceUnavailable, "Unable to send email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
