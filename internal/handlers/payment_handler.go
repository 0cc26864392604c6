package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// PaymentHandler serves payment history and revenue
type PaymentHandler struct {
	service services.PaymentServiceInterface
}

func NewPaymentHandler(service services.PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// MyPayments handles GET /web/v1/my/payments
func (h *PaymentHandler) MyPayments(c *gin.Context) {
	view.Render(c, "payments.mine", h.service.MyPayments(c.Request.Context(), middleware.GetSession(c)))
}

// Revenue handles GET /web/v1/my/revenue
func (h *PaymentHandler) Revenue(c *gin.Context) {
	view.Render(c, "payments.revenue", h.service.Revenue(c.Request.Context(), middleware.GetSession(c)))
}

// ProfileHandler serves public profiles
type ProfileHandler struct {
	service services.ProfileServiceInterface
}

func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get handles GET /web/v1/profile/:slug
func (h *ProfileHandler) Get(c *gin.Context) {
	view.Render(c, "profile", h.service.Get(c.Request.Context(), middleware.GetSession(c), c.Param("slug")))
}
