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
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"go.uber.org/zap"
)

// Sort options for list views
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortSalaryAsc  = "salary_asc"
	SortSalaryDesc = "salary_desc"
	SortAmountAsc  = "amount_asc"
	SortAmountDesc = "amount_desc"
)

// BrowseView is the tuition listing page
type BrowseView struct {
	Page        derive.Page[models.TuitionCard] `json:"page"`
	Fingerprint string                          `json:"fingerprint"`
}

// TuitionService drives the tuition pages
type TuitionService struct {
	d Deps
}

// NewTuitionService creates a new TuitionService
func NewTuitionService(d Deps) *TuitionService {
	return &TuitionService{d: d}
}

func tuitionSubject(t models.Tuition) string  { return t.Subject }
func tuitionClass(t models.Tuition) string    { return t.Class }
func tuitionMedium(t models.Tuition) string   { return t.Medium }
func tuitionLocation(t models.Tuition) string { return t.Location }
func tuitionCreated(t models.Tuition) time.Time {
	return t.CreatedAt
}
func tuitionSalary(t models.Tuition) float64 { return t.Salary }

func tuitionSort(name string) derive.SortKey[models.Tuition] {
	switch name {
	case SortOldest:
		return derive.ByTime(tuitionCreated, derive.Asc)
	case SortSalaryAsc:
		return derive.ByNumber(tuitionSalary, derive.Asc)
	case SortSalaryDesc:
		return derive.ByNumber(tuitionSalary, derive.Desc)
	default:
		return derive.ByTime(tuitionCreated, derive.Desc)
	}
}

// deriveTuitions applies search, filters and sort. Subject and location
// filters match substrings; class and medium match exactly.
func deriveTuitions(all []models.Tuition, in derive.Inputs) []models.Tuition {
	out := derive.Search(all, in.Search, tuitionSubject, tuitionLocation, tuitionClass)
	out = derive.Filter(out,
		derive.Contains(in.Filter("subject"), tuitionSubject),
		derive.Exact(in.Filter("class"), tuitionClass),
		derive.Exact(in.Filter("medium"), tuitionMedium),
		derive.Contains(in.Filter("location"), tuitionLocation),
	)
	return derive.SortBy(out, tuitionSort(in.Sort))
}

// Browse lists every tuition. Tutors additionally see which ones they
// already applied to.
func (s *TuitionService) Browse(ctx context.Context, sess *session.Session, in derive.Inputs) view.State {
	res := session.Resolve(sess)
	isTutor := res.HasRole(models.RoleTutor)

	g := s.d.group(res)
	all := query.Add(g, query.NewKey(ResTuitionsAll), s.d.list(true), func(ctx context.Context) ([]models.Tuition, error) {
		return s.d.Backend.AllTuitions(ctx, res.Credential)
	})
	mine := query.Add(g, query.NewKey(ResApplicationsMine, "email", res.Identity), s.d.list(isTutor && res.Identity != ""),
		func(ctx context.Context) ([]models.Application, error) {
			return s.d.Backend.MyApplications(ctx, res.Credential)
		})

	fingerprint := in.Fingerprint()
	return view.FromComposite(g.Wait(ctx), "tuitions", func() (BrowseView, bool) {
		list := query.Derive(s.d.Memo, all.Result(), "tuitions.browse", fingerprint, func(items []models.Tuition) []models.Tuition {
			return deriveTuitions(items, in)
		})
		page := derive.Paginate(list, in.ResolvePage(), s.d.Settings.PageSize)

		applied := derive.AppliedSet(mine.Result().Data)
		cards := make([]models.TuitionCard, len(page.Items))
		for i, t := range page.Items {
			cards[i] = models.TuitionCard{Tuition: t, Applied: applied.Has(t.ID)}
		}

		return BrowseView{
			Page: derive.Page[models.TuitionCard]{
				Items:     cards,
				Page:      page.Page,
				PageCount: page.PageCount,
				PageSize:  page.PageSize,
				Total:     page.Total,
			},
			Fingerprint: fingerprint,
		}, page.Total == 0
	})
}

// Detail shows one tuition by slug
func (s *TuitionService) Detail(ctx context.Context, sess *session.Session, slug string) view.State {
	if slug == "" {
		return view.NotFound{Resource: "tuition"}
	}

	res := session.Resolve(sess)
	isTutor := res.HasRole(models.RoleTutor)

	g := s.d.group(res)
	tuition := query.Add(g, query.NewKey(ResTuition, "slug", slug), s.d.single(true), func(ctx context.Context) (models.Tuition, error) {
		return s.d.Backend.TuitionBySlug(ctx, res.Credential, slug)
	})
	mine := query.Add(g, query.NewKey(ResApplicationsMine, "email", res.Identity), s.d.list(isTutor && res.Identity != ""),
		func(ctx context.Context) ([]models.Application, error) {
			return s.d.Backend.MyApplications(ctx, res.Credential)
		})

	return view.FromComposite(g.Wait(ctx), "tuition", func() (models.TuitionDetail, bool) {
		t := tuition.Result().Data
		applied := derive.AppliedSet(mine.Result().Data).Has(t.ID)
		return models.TuitionDetail{
			Tuition:        t,
			AlreadyApplied: applied,
			CanApply:       isTutor && !applied,
		}, false
	})
}

// Mine lists the student's own tuitions, newest first
func (s *TuitionService) Mine(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleStudent)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	mine := query.Add(g, query.NewKey(ResTuitionsMine, "email", res.Identity), s.d.list(res.Identity != ""),
		func(ctx context.Context) ([]models.Tuition, error) {
			return s.d.Backend.MyTuitions(ctx, res.Credential, res.Identity)
		})

	return view.FromComposite(g.Wait(ctx), "tuitions", func() ([]models.Tuition, bool) {
		list := derive.SortBy(mine.Result().Data, tuitionSort(SortNewest))
		return list, len(list) == 0
	})
}

// Create posts a new tuition for the student
func (s *TuitionService) Create(ctx context.Context, sess *session.Session, req models.CreateTuitionRequest) (mutation.Notice, error) {
	res, err := authorize(sess, models.RoleStudent)
	if err != nil {
		return mutation.Notice{}, err
	}

	payload := models.NewTuition{
		CreateTuitionRequest: req,
		StudentEmail:         res.Identity,
		Status:               models.TuitionPending,
	}

	return s.d.Runner.Run(ctx, mutation.Spec{
		Action:              "tuition.create",
		Scope:               s.d.scope(res),
		InvalidateResources: []string{ResTuitionsAll, ResTuitionsMine},
		Success:             "Tuition posted successfully",
		Failure:             "Could not post the tuition",
		Do: func(ctx context.Context) error {
			return s.d.Backend.CreateTuition(ctx, res.Credential, payload)
		},
	})
}

// RequestDelete parks a tuition deletion until the student confirms it
func (s *TuitionService) RequestDelete(_ context.Context, sess *session.Session, id string) (mutation.Prompt, error) {
	res, err := authorize(sess, models.RoleStudent)
	if err != nil {
		return mutation.Prompt{}, err
	}

	spec := mutation.Spec{
		Action:              "tuition.delete",
		Entity:              id,
		Scope:               s.d.scope(res),
		InvalidateResources: []string{ResTuitionsAll, ResTuitionsMine, ResTuition, ResApplicationsStudent},
		Success:             "Tuition deleted",
		Failure:             "Could not delete the tuition",
		Do: func(ctx context.Context) error {
			return s.d.Backend.DeleteTuition(ctx, res.Credential, id)
		},
	}

	logger.Debug("Tuition deletion requested", zap.String("tuition_id", id), zap.String("student", res.Identity))
	return s.d.Confirmations.Request(res.ScopeID(), spec, "Delete this tuition? This cannot be undone."), nil
}
