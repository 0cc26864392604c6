package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCookieName is the cookie both stores use unless configured otherwise
const DefaultCookieName = "th_session"

// CookieOptions control the session cookie attributes
type CookieOptions struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
}

func (o CookieOptions) name() string {
	if o.Name == "" {
		return DefaultCookieName
	}
	return o.Name
}

func setCookie(c *gin.Context, opts CookieOptions, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		opts.name(),
		value,
		int(opts.TTL.Seconds()),
		"/",
		opts.Domain,
		opts.Secure,
		true, // HttpOnly
	)
}

func clearCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		opts.name(),
		"",
		-1,
		"/",
		opts.Domain,
		opts.Secure,
		true, // HttpOnly
	)
}
