package services

import (
	"context"
	"time"

	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"go.uber.org/zap"
)

// ErrAlreadyApplied is returned when a tutor applies twice to one tuition
var ErrAlreadyApplied = apperrors.ConflictError("already applied to this tuition")

// ApplicationService drives the application pages
type ApplicationService struct {
	d Deps
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(d Deps) *ApplicationService {
	return &ApplicationService{d: d}
}

func applicationCreated(a models.Application) time.Time { return a.CreatedAt }

func (s *ApplicationService) mineKey(res session.Resolution) query.Key {
	return query.NewKey(ResApplicationsMine, "email", res.Identity)
}

func (s *ApplicationService) fetchMine(res session.Resolution) query.Fetcher[[]models.Application] {
	return func(ctx context.Context) ([]models.Application, error) {
		return s.d.Backend.MyApplications(ctx, res.Credential)
	}
}

// Mine lists the tutor's applications, newest first
func (s *ApplicationService) Mine(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleTutor)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	mine := query.Add(g, s.mineKey(res), s.d.list(res.Identity != ""), s.fetchMine(res))

	return view.FromComposite(g.Wait(ctx), "applications", func() ([]models.Application, bool) {
		list := derive.SortBy(mine.Result().Data, derive.ByTime(applicationCreated, derive.Desc))
		return list, len(list) == 0
	})
}

// StudentView groups the applications a student received per tuition
func (s *ApplicationService) StudentView(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleStudent)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	apps := query.Add(g, query.NewKey(ResApplicationsStudent, "email", res.Identity), s.d.list(res.Identity != ""),
		func(ctx context.Context) ([]models.Application, error) {
			return s.d.Backend.StudentApplications(ctx, res.Credential)
		})
	tuitions := query.Add(g, query.NewKey(ResTuitionsMine, "email", res.Identity), s.d.list(res.Identity != ""),
		func(ctx context.Context) ([]models.Tuition, error) {
			return s.d.Backend.MyTuitions(ctx, res.Credential, res.Identity)
		})

	return view.FromComposite(g.Wait(ctx), "applicants", func() ([]models.ApplicantGroup, bool) {
		subjects := make(map[string]string)
		for _, t := range tuitions.Result().Data {
			subjects[t.ID] = t.Subject
		}

		sorted := derive.SortBy(apps.Result().Data, derive.ByTime(applicationCreated, derive.Desc))
		order, groups := derive.GroupBy(sorted, func(a models.Application) string { return a.TuitionID })

		out := make([]models.ApplicantGroup, 0, len(order))
		for _, id := range order {
			members := groups[id]
			subject := subjects[id]
			if subject == "" {
				subject = members[0].Subject
			}
			out = append(out, models.ApplicantGroup{
				TuitionID:    id,
				Subject:      subject,
				Count:        len(members),
				Applications: members,
			})
		}
		return out, len(out) == 0
	})
}

// Apply submits the tutor's application. A tuition already in the tutor's
// applications is rejected before any write reaches the backend.
func (s *ApplicationService) Apply(ctx context.Context, sess *session.Session, tuitionID string, req models.ApplyRequest) (mutation.Notice, error) {
	res, err := authorize(sess, models.RoleTutor)
	if err != nil {
		return mutation.Notice{}, err
	}
	scope := s.d.scope(res)

	mine := query.Fetch(ctx, scope, s.mineKey(res), s.d.list(true), s.fetchMine(res))
	switch {
	case mine.Status == query.StatusSuccess && derive.AppliedSet(mine.Data).Has(tuitionID):
		metrics.Mutations.WithLabelValues("application.apply", "duplicate").Inc()
		return mutation.Notice{
			Level:    mutation.LevelError,
			Message:  "You have already applied to this tuition",
			Blocking: true,
		}, ErrAlreadyApplied
	case mine.Status == query.StatusError:
		logger.Warn("Could not check existing applications, deferring to backend",
			zap.String("tutor", res.Identity), zap.Error(mine.Err))
	}

	payload := models.NewApplication{
		TuitionID:      tuitionID,
		TutorEmail:     res.Identity,
		ExpectedSalary: req.ExpectedSalary,
		Message:        req.Message,
	}

	return s.d.Runner.Run(ctx, mutation.Spec{
		Action:              "application.apply",
		Entity:              tuitionID,
		Scope:               scope,
		InvalidateResources: []string{ResApplicationsMine},
		Success:             "Application submitted",
		Failure:             "Could not submit the application",
		Do: func(ctx context.Context) error {
			return s.d.Backend.Apply(ctx, res.Credential, payload)
		},
	})
}
