package mutation

import (
	"context"
	"errors"
	"time"

	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
)

// AutoDismiss is how long a success notice stays visible
const AutoDismiss = 3 * time.Second

// DefaultFailureMessage is shown when the backend gives no message
const DefaultFailureMessage = "Something went wrong. Please try again."

// Level is the severity of a Notice
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is the user-facing outcome of a mutation
type Notice struct {
	Level         Level  `json:"level"`
	Message       string `json:"message"`
	AutoDismissMS int64  `json:"autoDismissMs,omitempty"`
	Blocking      bool   `json:"blocking"`
}

// Spec describes one write
type Spec struct {
	Action string
	Entity string
	Scope  *query.Scope

	// Invalidate lists exact keys the write may change
	Invalidate []query.Key
	// InvalidateResources lists resources whose every key may change
	InvalidateResources []string

	Success string
	Failure string
	Do      func(ctx context.Context) error
}

// Runner executes mutations under a Guard
type Runner struct {
	guard *Guard
}

// NewRunner creates a runner
func NewRunner(guard *Guard) *Runner {
	return &Runner{guard: guard}
}

// Run performs the write. On success the affected reads are invalidated and
// a transient notice is returned. On failure a blocking notice carries the
// backend message or a fallback; nothing is rolled back because nothing was
// applied locally.
func (r *Runner) Run(ctx context.Context, spec Spec) (Notice, error) {
	scopeID := ""
	if spec.Scope != nil {
		scopeID = spec.Scope.ID()
	}

	release, err := r.guard.Acquire(InstanceKey(scopeID, spec.Action, spec.Entity))
	if err != nil {
		metrics.Mutations.WithLabelValues(spec.Action, "in_flight").Inc()
		return Notice{}, err
	}
	defer release()

	if err := spec.Do(ctx); err != nil {
		metrics.Mutations.WithLabelValues(spec.Action, "error").Inc()
		logger.Warn("Mutation failed",
			zap.String("action", spec.Action),
			zap.String("entity", spec.Entity),
			zap.String("kind", upstream.KindOf(err).String()),
			zap.Error(err))
		return FailureNotice(err, spec.Failure), err
	}

	if spec.Scope != nil {
		spec.Scope.Invalidate(spec.Invalidate...)
		spec.Scope.InvalidateResource(spec.InvalidateResources...)
	}

	metrics.Mutations.WithLabelValues(spec.Action, "success").Inc()
	logger.Info("Mutation succeeded",
		zap.String("action", spec.Action),
		zap.String("entity", spec.Entity))

	return Notice{
		Level:         LevelSuccess,
		Message:       spec.Success,
		AutoDismissMS: AutoDismiss.Milliseconds(),
	}, nil
}

// FailureNotice builds the blocking notice for err
func FailureNotice(err error, fallback string) Notice {
	msg := upstream.MessageOf(err)
	if msg == "" {
		msg = fallback
	}
	if msg == "" || errors.Is(err, context.DeadlineExceeded) {
		msg = DefaultFailureMessage
	}
	return Notice{Level: LevelError, Message: msg, Blocking: true}
}
