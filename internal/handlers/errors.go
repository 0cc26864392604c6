package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin context
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// statusFor maps a mutation error to a status code and a fallback message.
// Backend failures match the sentinels through upstream.APIError.Is.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, mutation.ErrInFlight):
		return http.StatusConflict, "This action is already in progress"
	case errors.Is(err, services.ErrAlreadyApplied):
		return http.StatusConflict, "You have already applied to this tuition"
	case errors.Is(err, mutation.ErrConfirmationNotFound):
		return http.StatusNotFound, "Confirmation expired or already used"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrAccessDenied):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusServiceUnavailable, "Service unavailable"
	}
}

// respondMutation writes the outcome of a write. Failures carry the notice
// the client should show when the service produced one.
func respondMutation(c *gin.Context, notice mutation.Notice, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"notice": notice})
		return
	}

	status, message := statusFor(err)
	attachError(c, err)
	if notice.Message == "" {
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(status, gin.H{"error": notice.Message, "notice": notice})
}

// bindJSON binds the request body, answering 400 with field details on failure
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return false
	}
	return true
}
