package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// AdminHandler serves the admin pages
type AdminHandler struct {
	service services.AdminServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(service services.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// Dashboard handles GET /web/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	view.Render(c, "admin.dashboard", h.service.Dashboard(c.Request.Context(), middleware.GetSession(c)))
}

// Transactions handles GET /web/v1/admin/transactions
func (h *AdminHandler) Transactions(c *gin.Context) {
	in := listInputs(c, "status")
	view.Render(c, "admin.transactions", h.service.Transactions(c.Request.Context(), middleware.GetSession(c), in))
}

// Users handles GET /web/v1/admin/users
func (h *AdminHandler) Users(c *gin.Context) {
	in := listInputs(c, "role", "status")
	view.Render(c, "admin.users", h.service.Users(c.Request.Context(), middleware.GetSession(c), in))
}

// ToggleStatus handles POST /web/v1/admin/users/:id/status. The body is
// optional; without a status the user's current status is flipped.
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	var req models.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}
	notice, err := h.service.ToggleUserStatus(c.Request.Context(), middleware.GetSession(c), c.Param("id"), req.Status)
	respondMutation(c, notice, err)
}

// RequestDeleteUser handles POST /web/v1/admin/users/:id/delete
func (h *AdminHandler) RequestDeleteUser(c *gin.Context) {
	prompt, err := h.service.RequestDeleteUser(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		status, message := statusFor(err)
		respondError(c, status, message, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": prompt})
}

// UserLogs handles GET /web/v1/admin/users/:id/logs
func (h *AdminHandler) UserLogs(c *gin.Context) {
	view.Render(c, "admin.user_logs", h.service.UserLogs(c.Request.Context(), middleware.GetSession(c), c.Param("id"), pageParam(c)))
}
