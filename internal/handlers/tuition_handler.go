package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// TuitionHandler serves the tuition pages
type TuitionHandler struct {
	service services.TuitionServiceInterface
}

// NewTuitionHandler creates a new TuitionHandler
func NewTuitionHandler(service services.TuitionServiceInterface) *TuitionHandler {
	return &TuitionHandler{service: service}
}

// Browse handles GET /web/v1/tuitions
func (h *TuitionHandler) Browse(c *gin.Context) {
	in := listInputs(c, "subject", "class", "medium", "location")
	view.Render(c, "tuitions.browse", h.service.Browse(c.Request.Context(), middleware.GetSession(c), in))
}

// Detail handles GET /web/v1/tuitions/:slug
func (h *TuitionHandler) Detail(c *gin.Context) {
	view.Render(c, "tuitions.detail", h.service.Detail(c.Request.Context(), middleware.GetSession(c), c.Param("slug")))
}

// Mine handles GET /web/v1/my/tuitions
func (h *TuitionHandler) Mine(c *gin.Context) {
	view.Render(c, "tuitions.mine", h.service.Mine(c.Request.Context(), middleware.GetSession(c)))
}

// Create handles POST /web/v1/my/tuitions
func (h *TuitionHandler) Create(c *gin.Context) {
	var req models.CreateTuitionRequest
	if !bindJSON(c, &req) {
		return
	}
	notice, err := h.service.Create(c.Request.Context(), middleware.GetSession(c), req)
	respondMutation(c, notice, err)
}

// RequestDelete handles POST /web/v1/my/tuitions/:id/delete. Nothing is
// deleted until the returned confirmation is confirmed.
func (h *TuitionHandler) RequestDelete(c *gin.Context) {
	prompt, err := h.service.RequestDelete(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		status, message := statusFor(err)
		respondError(c, status, message, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": prompt})
}
