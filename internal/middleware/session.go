package middleware

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"go.uber.org/zap"
)

// SessionContextKey is the key the loaded session is stored under
const SessionContextKey = "session"

// SessionMiddleware loads the caller's session from store. A missing or
// broken session leaves the request anonymous and each view decides what
// that means. Only an unreachable store aborts, with an unavailable document.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c)
		if errors.Is(err, session.ErrStoreUnavailable) {
			logger.Warn("Session store unavailable",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			view.Render(c, "session", view.Unavailable{Err: err})
			c.Abort()
			return
		}
		if err != nil {
			_ = c.Error(fmt.Errorf("session rejected: %w", err)) //nolint:errcheck
			logger.Debug("Discarding invalid session",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
		}
		if sess != nil {
			c.Set(SessionContextKey, sess)
		}
		c.Next()
	}
}

// GetSession returns the session loaded for this request, or nil
func GetSession(c *gin.Context) *session.Session {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}
	sess, _ := val.(*session.Session)
	return sess
}
