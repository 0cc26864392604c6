package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"go.uber.org/zap"
)

// AuthHandler manages the gateway session
type AuthHandler struct {
	service services.AuthServiceInterface
	store   session.Store
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface, store session.Store) *AuthHandler {
	return &AuthHandler{service: service, store: store}
}

// Login handles POST /web/v1/session
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		if errors.Is(err, apperrors.ErrInvalidInput) {
			respondError(c, http.StatusBadRequest, "Captcha verification failed", err)
			return
		}
		respondError(c, http.StatusServiceUnavailable, "Login is temporarily unavailable", err)
		return
	}

	if err := h.store.Set(c, sess); err != nil {
		logger.Error("Failed to store session", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	c.JSON(http.StatusOK, h.service.Current(&sess))
}

// Logout handles DELETE /web/v1/session
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(middleware.GetSession(c))
	if err := h.store.Clear(c); err != nil {
		// The cookie is gone either way; a leftover server record expires on its own
		logger.Warn("Failed to clear session", zap.Error(err))
		attachError(c, err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Current handles GET /web/v1/session
func (h *AuthHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Current(middleware.GetSession(c)))
}
