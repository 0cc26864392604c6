package session

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/pkg/jwt"
)

// CookieStore keeps the whole session tuple in a signed JWT cookie
type CookieStore struct {
	tokens *jwt.TokenManager
	cookie CookieOptions
}

var _ Store = (*CookieStore)(nil)

// NewCookieStore creates a cookie-backed store. The cookie lives as long as
// the tokens it carries.
func NewCookieStore(tokens *jwt.TokenManager, cookie CookieOptions) *CookieStore {
	cookie.TTL = tokens.TTL()
	return &CookieStore{tokens: tokens, cookie: cookie}
}

func (s *CookieStore) Get(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(s.cookie.name())
	if err != nil || raw == "" {
		return nil, nil
	}

	claims, err := s.tokens.ValidateToken(raw)
	if err != nil {
		clearCookie(c, s.cookie)
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return &Session{
		Identity:   claims.Email,
		Role:       models.Role(claims.Role),
		Credential: claims.Credential,
		IssuedAt:   claims.IssuedAt.Time,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}

func (s *CookieStore) Set(c *gin.Context, sess Session) error {
	token, _, err := s.tokens.GenerateToken(sess.Identity, string(sess.Role), sess.Credential)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	setCookie(c, s.cookie, token)
	return nil
}

func (s *CookieStore) Clear(c *gin.Context) error {
	clearCookie(c, s.cookie)
	return nil
}
