package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
	"github.com/tuitionhub/tuitionhub-web/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCookieStore() (*session.CookieStore, *jwt.TokenManager) {
	tokens := jwt.NewTokenManager("test-secret", "test", time.Hour)
	return session.NewCookieStore(tokens, session.CookieOptions{}), tokens
}

func TestSessionMiddleware(t *testing.T) {
	store, tokens := newCookieStore()
	valid, _, err := tokens.GenerateToken("a@example.com", "tutor", "cred")
	require.NoError(t, err)

	tests := []struct {
		name      string
		cookie    string
		wantEmail string
		cleared   bool
	}{
		{name: "no cookie"},
		{name: "valid cookie", cookie: valid, wantEmail: "a@example.com"},
		{name: "tampered cookie", cookie: valid + "x", cleared: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(SessionMiddleware(store))

			var got *session.Session
			called := false
			router.GET("/test", func(c *gin.Context) {
				called = true
				got = GetSession(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: tt.cookie})
			}
			router.ServeHTTP(w, req)

			assert.True(t, called, "anonymous requests still reach the handler")
			assert.Equal(t, http.StatusOK, w.Code)
			if tt.wantEmail == "" {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantEmail, got.Identity)
				assert.Equal(t, models.RoleTutor, got.Role)
			}
			if tt.cleared {
				assert.Contains(t, w.Header().Get("Set-Cookie"), session.DefaultCookieName+"=;")
			}
		})
	}
}

type unreachableStore struct{ session.Store }

func (unreachableStore) Get(*gin.Context) (*session.Session, error) {
	return nil, fmt.Errorf("%w: dial tcp: connection refused", session.ErrStoreUnavailable)
}

func TestSessionMiddleware_StoreOutage(t *testing.T) {
	router := gin.New()
	router.Use(SessionMiddleware(unreachableStore{}))
	called := false
	router.GET("/test", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unavailable", w.Header().Get(view.StateHeader))
}

func TestOpsAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		header map[string]string
		want   int
	}{
		{name: "open when unset", want: http.StatusOK},
		{name: "missing", token: "s3cret", want: http.StatusUnauthorized},
		{name: "wrong", token: "s3cret", header: map[string]string{MetricsTokenHeader: "nope"}, want: http.StatusUnauthorized},
		{name: "header", token: "s3cret", header: map[string]string{MetricsTokenHeader: "s3cret"}, want: http.StatusOK},
		{name: "bearer", token: "s3cret", header: map[string]string{"Authorization": "Bearer s3cret"}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/metrics", OpsAuthMiddleware(tt.token), func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := gin.New()
	router.Use(NewRateLimiter(ctx, 0.001, 2).Middleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes[i] = w.Code
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(BodySizeLimitMiddleware(16))
	router.POST("/test", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store, private", w.Header().Get("Cache-Control"))
	assert.Equal(t, "Cookie", w.Header().Get("Vary"))
}

func TestObservabilityMiddleware_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(ObservabilityMiddleware())
	router.GET("/items/:id", func(c *gin.Context) {
		c.Header(view.StateHeader, "ready")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42?token=secret", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
