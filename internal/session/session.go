package session

import (
	"errors"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

// ErrInvalidSession is returned by a Store when the stored data cannot be
// read back. An absent session is not an error.
var ErrInvalidSession = errors.New("invalid session")

// ErrStoreUnavailable is returned by a Store that could not reach its backing
// storage. The session may well be valid.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Session is the identity / role / credential tuple a browser holds
type Session struct {
	Identity   string      `json:"identity"`
	Role       models.Role `json:"role"`
	Credential string      `json:"credential"`
	IssuedAt   time.Time   `json:"issuedAt"`
	ExpiresAt  time.Time   `json:"expiresAt"`
}

// Reason explains why a Resolution is not valid
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoSession    Reason = "no_session"
	ReasonNoCredential Reason = "no_credential"
	ReasonRoleMismatch Reason = "role_mismatch"
	ReasonUnknownRole  Reason = "unknown_role"
)

const anonymousScope = "anonymous"

// Resolution is what a view controller works with
type Resolution struct {
	Identity   string
	Role       models.Role
	Credential string
	IsValid    bool
	Reason     Reason
}

// Resolve turns an optional session into a Resolution. With required roles
// the session's role must be one of them.
func Resolve(s *Session, required ...models.Role) Resolution {
	if s == nil {
		return Resolution{Reason: ReasonNoSession}
	}

	r := Resolution{
		Identity:   s.Identity,
		Role:       s.Role,
		Credential: s.Credential,
	}

	switch {
	case s.Credential == "":
		r.Reason = ReasonNoCredential
	case !s.Role.IsValid():
		r.Reason = ReasonUnknownRole
	case len(required) > 0 && !slices.Contains(required, s.Role):
		r.Reason = ReasonRoleMismatch
	default:
		r.IsValid = true
	}

	return r
}

// HasRole reports whether the resolution is valid and carries one of roles
func (r Resolution) HasRole(roles ...models.Role) bool {
	return r.IsValid && slices.Contains(roles, r.Role)
}

// ScopeID names the per-session cache namespace
func (r Resolution) ScopeID() string {
	if r.Identity == "" || r.Credential == "" {
		return anonymousScope
	}
	return r.Identity
}

// Store is the session provider: get, set and clear the tuple for a request
type Store interface {
	Get(c *gin.Context) (*Session, error)
	Set(c *gin.Context, s Session) error
	Clear(c *gin.Context) error
}
