package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quantprep/internal/evaluation"
	"github.com/abhisek/quantprep/internal/llm"
)

// statusFor maps pipeline errors onto HTTP status classes. Caller input
// problems are 4xx; exhausted validation retries are this service's
// fault (500); transport-level upstream failures are gateway errors.
func statusFor(err error) int {
	var badInput *evaluation.BadInputError
	if errors.As(err, &badInput) {
		return http.StatusBadRequest
	}

	var rateLimited *llm.ErrRateLimit
	if errors.As(err, &rateLimited) {
		return http.StatusServiceUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return http.StatusBadGateway
	}

	var exhausted *llm.ErrValidationExhausted
	if errors.As(err, &exhausted) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
