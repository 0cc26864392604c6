package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
)

// Confirmer settles parked destructive actions
type Confirmer interface {
	Confirm(ctx context.Context, scope, token string) (mutation.Notice, error)
	Dismiss(scope, token string) error
}

// ConfirmationHandler confirms or dismisses destructive actions
type ConfirmationHandler struct {
	confirmations Confirmer
}

func NewConfirmationHandler(confirmations Confirmer) *ConfirmationHandler {
	return &ConfirmationHandler{confirmations: confirmations}
}

func scopeOf(c *gin.Context) string {
	return session.Resolve(middleware.GetSession(c)).ScopeID()
}

// Confirm handles POST /web/v1/confirmations/:token
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	notice, err := h.confirmations.Confirm(c.Request.Context(), scopeOf(c), c.Param("token"))
	respondMutation(c, notice, err)
}

// Dismiss handles DELETE /web/v1/confirmations/:token
func (h *ConfirmationHandler) Dismiss(c *gin.Context) {
	if err := h.confirmations.Dismiss(scopeOf(c), c.Param("token")); err != nil {
		status, message := statusFor(err)
		respondError(c, status, message, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dismissed": true})
}
