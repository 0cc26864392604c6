package mutation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
)

// DefaultConfirmationTTL is how long a destructive action waits for a decision
const DefaultConfirmationTTL = 5 * time.Minute

// ErrConfirmationNotFound is returned for unknown, expired, used or foreign tokens
var ErrConfirmationNotFound = errors.New("confirmation not found or expired")

// Prompt is what the client shows in the confirmation dialog
type Prompt struct {
	Token     string    `json:"token"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type pending struct {
	scope string
	spec  Spec
}

// Confirmations holds destructive mutations until the user confirms them
type Confirmations struct {
	runner *Runner
	cache  *cache.Cache
	ttl    time.Duration
	mu     sync.Mutex
}

// NewConfirmations creates a confirmation registry
func NewConfirmations(runner *Runner, ttl time.Duration) *Confirmations {
	if ttl <= 0 {
		ttl = DefaultConfirmationTTL
	}
	return &Confirmations{
		runner: runner,
		cache:  cache.New(ttl, ttl),
		ttl:    ttl,
	}
}

// Request parks spec behind a new token. No backend call is made.
func (c *Confirmations) Request(scope string, spec Spec, message string) Prompt {
	token := uuid.NewString()
	c.cache.Set(token, pending{scope: scope, spec: spec}, c.ttl)
	metrics.Confirmations.WithLabelValues(spec.Action, "requested").Inc()

	return Prompt{
		Token:     token,
		Action:    spec.Action,
		Entity:    spec.Entity,
		Message:   message,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// take removes and returns the pending mutation if it belongs to scope
func (c *Confirmations) take(scope, token string) (pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.cache.Get(token)
	if !ok {
		return pending{}, false
	}
	p, ok := raw.(pending)
	if !ok || p.scope != scope {
		return pending{}, false
	}
	c.cache.Delete(token)
	return p, true
}

// Confirm runs the parked mutation exactly once
func (c *Confirmations) Confirm(ctx context.Context, scope, token string) (Notice, error) {
	p, ok := c.take(scope, token)
	if !ok {
		metrics.Confirmations.WithLabelValues("unknown", "missing").Inc()
		return Notice{}, ErrConfirmationNotFound
	}

	metrics.Confirmations.WithLabelValues(p.spec.Action, "confirmed").Inc()
	return c.runner.Run(ctx, p.spec)
}

// Dismiss drops the parked mutation without running it
func (c *Confirmations) Dismiss(scope, token string) error {
	p, ok := c.take(scope, token)
	if !ok {
		return ErrConfirmationNotFound
	}
	metrics.Confirmations.WithLabelValues(p.spec.Action, "dismissed").Inc()
	return nil
}
