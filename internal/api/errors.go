package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cephas20k/secops/internal/httputil"
	"github.com/cephas20k/secops/internal/metrics"
	"github.com/cephas20k/secops/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeInternalError  = "internal_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeRateLimited    = "rate_limited"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondEngineError maps engine errors onto HTTP status codes.
func respondEngineError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrValidation) {
		respondError(c, 400, ErrCodeInvalidRequest, err.Error())
		return
	}
	respondError(c, 500, ErrCodeInternalError, "internal error")
}
