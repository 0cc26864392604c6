package services

import (
	"context"
	"fmt"

	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
)

// CaptchaVerifier checks a client captcha token
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) error
}

// AuthService exchanges credentials for a session and tears sessions down
type AuthService struct {
	d       Deps
	captcha CaptchaVerifier
}

// NewAuthService creates a new AuthService. A nil captcha disables the check.
func NewAuthService(d Deps, captcha CaptchaVerifier) *AuthService {
	return &AuthService{d: d, captcha: captcha}
}

// Login asks the backend for a credential. The caller stores the returned
// session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (session.Session, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.RecaptchaToken); err != nil {
			metrics.Mutations.WithLabelValues("auth.login", "captcha_failed").Inc()
			logger.Warn("Login captcha rejected", zap.Error(err))
			return session.Session{}, apperrors.InvalidInputError("recaptchaToken", "captcha verification failed")
		}
	}

	result, err := s.d.Backend.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch upstream.KindOf(err) {
		case upstream.KindUnauthorized, upstream.KindValidation, upstream.KindNotFound:
			metrics.Mutations.WithLabelValues("auth.login", "rejected").Inc()
			return session.Session{}, fmt.Errorf("invalid email or password: %w", apperrors.ErrUnauthorized)
		default:
			metrics.Mutations.WithLabelValues("auth.login", "error").Inc()
			logger.Error("Login failed", zap.Error(err))
			return session.Session{}, fmt.Errorf("login: %w", apperrors.ErrUnavailable)
		}
	}

	metrics.Mutations.WithLabelValues("auth.login", "success").Inc()
	logger.Info("User logged in",
		zap.String("email", result.User.Email),
		zap.String("role", string(result.User.Role)))

	return session.Session{
		Identity:   result.User.Email,
		Role:       result.User.Role,
		Credential: result.Token,
	}, nil
}

// Logout forgets everything cached for the session
func (s *AuthService) Logout(sess *session.Session) {
	if sess == nil || sess.Identity == "" {
		return
	}
	s.d.Queries.Drop(session.Resolve(sess).ScopeID())
}

// Current describes the caller's session
func (s *AuthService) Current(sess *session.Session) models.SessionResponse {
	res := session.Resolve(sess)
	if !res.IsValid {
		return models.SessionResponse{}
	}
	out := models.SessionResponse{
		Authenticated: true,
		Email:         res.Identity,
		Role:          res.Role,
	}
	if !sess.ExpiresAt.IsZero() {
		out.ExpiresAt = sess.ExpiresAt.Unix()
	}
	return out
}
