package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/pkg/jwt"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"go.uber.org/zap"
)

// MetricsTokenHeader carries the scrape token for operational endpoints
const MetricsTokenHeader = "x-metrics-auth-token"

// OpsAuthMiddleware guards operational endpoints with a static token taken
// from MetricsTokenHeader or a bearer Authorization header. An empty token
// leaves the endpoint open.
func OpsAuthMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validToken == "" {
			c.Next()
			return
		}

		token := c.GetHeader(MetricsTokenHeader)
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		if token == "" || !jwt.TimingSafeCompare(token, validToken) {
			logger.Warn("Invalid operations token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing operations token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
