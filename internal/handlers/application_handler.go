package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// ApplicationHandler serves the application pages
type ApplicationHandler struct {
	service services.ApplicationServiceInterface
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(service services.ApplicationServiceInterface) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Mine handles GET /web/v1/my/applications
func (h *ApplicationHandler) Mine(c *gin.Context) {
	view.Render(c, "applications.mine", h.service.Mine(c.Request.Context(), middleware.GetSession(c)))
}

// Applicants handles GET /web/v1/my/applicants
func (h *ApplicationHandler) Applicants(c *gin.Context) {
	view.Render(c, "applications.student", h.service.StudentView(c.Request.Context(), middleware.GetSession(c)))
}

// Apply handles POST /web/v1/tuitions/:id/apply
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req models.ApplyRequest
	if !bindJSON(c, &req) {
		return
	}
	notice, err := h.service.Apply(c.Request.Context(), middleware.GetSession(c), c.Param("id"), req)
	respondMutation(c, notice, err)
}
