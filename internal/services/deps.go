package services

import (
	"context"
	"time"

	"github.com/tuitionhub/tuitionhub-web/config"
	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
)

// Backend is the part of the marketplace client the services use
type Backend interface {
	AllTuitions(ctx context.Context, credential string) ([]models.Tuition, error)
	TuitionBySlug(ctx context.Context, credential, slug string) (models.Tuition, error)
	MyTuitions(ctx context.Context, credential, email string) ([]models.Tuition, error)
	CreateTuition(ctx context.Context, credential string, payload models.NewTuition) error
	DeleteTuition(ctx context.Context, credential, id string) error

	MyApplications(ctx context.Context, credential string) ([]models.Application, error)
	StudentApplications(ctx context.Context, credential string) ([]models.Application, error)
	Apply(ctx context.Context, credential string, payload models.NewApplication) error

	Users(ctx context.Context, credential string) ([]models.User, error)
	SetUserStatus(ctx context.Context, credential, id string, status models.UserStatus) error
	DeleteUser(ctx context.Context, credential, id string) error
	UserLogs(ctx context.Context, credential, id string) ([]models.UserLog, error)

	DashboardStats(ctx context.Context, credential string) (models.DashboardStats, error)
	Transactions(ctx context.Context, credential string) ([]models.Payment, error)
	MyPayments(ctx context.Context, credential string) ([]models.Payment, error)
	Revenue(ctx context.Context, credential, userID string) ([]models.Payment, error)

	Profile(ctx context.Context, credential, slug string) (models.Profile, error)
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
}

// Settings are the view parameters shared by every controller
type Settings struct {
	RenderDeadline time.Duration
	PageSize       int
	ChartMonths    int
	Now            func() time.Time
}

// SettingsFromConfig reads view settings from configuration
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		RenderDeadline: cfg.RenderDeadline(),
		PageSize:       cfg.View.PageSize,
		ChartMonths:    cfg.View.ChartMonths,
		Now:            time.Now,
	}
}

// Deps is what every view controller is built from
type Deps struct {
	Backend       Backend
	Queries       *query.Client
	Memo          *query.Memo
	Runner        *mutation.Runner
	Confirmations *mutation.Confirmations
	Settings      Settings
}

func (d Deps) scope(res session.Resolution) *query.Scope {
	return d.Queries.Scope(res.ScopeID())
}

func (d Deps) group(res session.Resolution) *query.Group {
	return query.NewGroup(d.scope(res), d.Settings.RenderDeadline)
}

func (d Deps) list(enabled bool) query.Options {
	opts := d.Queries.Options()
	opts.Enabled = enabled
	return opts
}

func (d Deps) single(enabled bool) query.Options {
	opts := d.list(enabled)
	opts.Single = true
	return opts
}

func (d Deps) now() time.Time {
	if d.Settings.Now == nil {
		return time.Now()
	}
	return d.Settings.Now()
}

// authorize checks a session before a write. A missing session is
// unauthorized; a session with the wrong role is denied.
func authorize(sess *session.Session, roles ...models.Role) (session.Resolution, error) {
	res := session.Resolve(sess, roles...)
	switch res.Reason {
	case session.ReasonNone:
		return res, nil
	case session.ReasonNoSession, session.ReasonNoCredential:
		return res, apperrors.ErrUnauthorized
	default:
		return res, apperrors.AccessDeniedError(string(res.Reason))
	}
}

func monthTotals(buckets []derive.Bucket) []models.MonthTotal {
	out := make([]models.MonthTotal, len(buckets))
	for i, b := range buckets {
		out[i] = models.MonthTotal{
			Month: b.Start.Format("2006-01"),
			Label: b.Start.Format("Jan"),
			Total: b.Total,
		}
	}
	return out
}
