package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
	apperrors "github.com/tuitionhub/tuitionhub-web/pkg/errors"
)

const recentTransactions = 5

// UsersView is the admin user table
type UsersView struct {
	Page        derive.Page[models.User] `json:"page"`
	Fingerprint string                   `json:"fingerprint"`
}

// TransactionsView is the admin transaction table
type TransactionsView struct {
	Page        derive.Page[models.Payment] `json:"page"`
	Fingerprint string                      `json:"fingerprint"`
	// Settled is the sum of successful payments in the filtered result
	Settled float64 `json:"settled"`
}

// UserLogsView is one user's activity log
type UserLogsView struct {
	UserID string                      `json:"userId"`
	Page   derive.Page[models.UserLog] `json:"page"`
}

// AdminService drives the admin pages
type AdminService struct {
	d Deps
}

// NewAdminService creates a new AdminService
func NewAdminService(d Deps) *AdminService {
	return &AdminService{d: d}
}

func paymentDate(p models.Payment) time.Time { return p.Date }
func paymentAmount(p models.Payment) float64 { return p.Amount }
func paymentStatus(p models.Payment) string  { return string(p.Status) }
func paymentRef(p models.Payment) string     { return p.TransactionID }
func paymentStudent(p models.Payment) string { return p.StudentEmail }
func paymentTutor(p models.Payment) string   { return p.TutorEmail }
func userName(u models.User) string          { return u.Name }
func userEmail(u models.User) string         { return u.Email }
func userRole(u models.User) string          { return string(u.Role) }
func userStatus(u models.User) string        { return string(u.Status) }
func userCreated(u models.User) time.Time    { return u.CreatedAt }
func logCreated(l models.UserLog) time.Time  { return l.CreatedAt }
func isSuccess(p models.Payment) bool        { return p.Status == models.PaymentSuccess }
func successful(ps []models.Payment) []models.Payment {
	out := make([]models.Payment, 0, len(ps))
	for _, p := range ps {
		if isSuccess(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *AdminService) usersFetcher(res session.Resolution) query.Fetcher[[]models.User] {
	return func(ctx context.Context) ([]models.User, error) {
		return s.d.Backend.Users(ctx, res.Credential)
	}
}

// Dashboard shows platform stats with revenue figures derived from the
// transaction list
func (s *AdminService) Dashboard(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleAdmin)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	stats := query.Add(g, query.NewKey(ResDashboardStats), s.d.list(true), func(ctx context.Context) (models.DashboardStats, error) {
		return s.d.Backend.DashboardStats(ctx, res.Credential)
	})
	txs := query.Add(g, query.NewKey(ResTransactions), s.d.list(true), func(ctx context.Context) ([]models.Payment, error) {
		return s.d.Backend.Transactions(ctx, res.Credential)
	})

	now := s.d.now()
	return view.FromComposite(g.Wait(ctx), "dashboard", func() (models.AdminDashboard, bool) {
		all := txs.Result().Data
		settled := successful(all)
		recent := derive.SortBy(all, derive.ByTime(paymentDate, derive.Desc))
		recent = derive.Paginate(recent, 1, recentTransactions).Items

		return models.AdminDashboard{
			Stats:              stats.Result().Data,
			TotalRevenue:       derive.Sum(settled, paymentAmount),
			Monthly:            monthTotals(derive.MonthlyBuckets(settled, now, s.d.Settings.ChartMonths, paymentDate, paymentAmount)),
			StatusBreakdown:    derive.CountBy(all, func(p models.Payment) models.PaymentStatus { return p.Status }),
			RecentTransactions: recent,
		}, false
	})
}

func userSort(name string) derive.SortKey[models.User] {
	if name == SortOldest {
		return derive.ByTime(userCreated, derive.Asc)
	}
	return derive.ByTime(userCreated, derive.Desc)
}

// Users lists accounts with search over name and email and role / status filters
func (s *AdminService) Users(ctx context.Context, sess *session.Session, in derive.Inputs) view.State {
	res := session.Resolve(sess, models.RoleAdmin)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	users := query.Add(g, query.NewKey(ResUsers), s.d.list(true), s.usersFetcher(res))

	fingerprint := in.Fingerprint()
	return view.FromComposite(g.Wait(ctx), "users", func() (UsersView, bool) {
		list := query.Derive(s.d.Memo, users.Result(), "admin.users", fingerprint, func(items []models.User) []models.User {
			out := derive.Search(items, in.Search, userName, userEmail)
			out = derive.Filter(out,
				derive.Exact(in.Filter("role"), userRole),
				derive.Exact(in.Filter("status"), userStatus),
			)
			return derive.SortBy(out, userSort(in.Sort))
		})
		page := derive.Paginate(list, in.ResolvePage(), s.d.Settings.PageSize)
		return UsersView{Page: page, Fingerprint: fingerprint}, page.Total == 0
	})
}

// ToggleUserStatus switches a user between Active and Blocked. Without an
// explicit target the current status is read from the user list.
func (s *AdminService) ToggleUserStatus(ctx context.Context, sess *session.Session, id string, target models.UserStatus) (mutation.Notice, error) {
	res, err := authorize(sess, models.RoleAdmin)
	if err != nil {
		return mutation.Notice{}, err
	}
	scope := s.d.scope(res)

	if target == "" {
		users := query.Fetch(ctx, scope, query.NewKey(ResUsers), s.d.list(true), s.usersFetcher(res))
		if users.Status != query.StatusSuccess {
			return mutation.FailureNotice(users.Err, "Could not load the user"), users.Err
		}
		found := false
		for _, u := range users.Data {
			if u.ID == id {
				target = u.Status.Toggled()
				found = true
				break
			}
		}
		if !found {
			return mutation.Notice{}, apperrors.NotFoundError("user")
		}
	}
	if target != models.UserActive && target != models.UserBlocked {
		return mutation.Notice{}, apperrors.InvalidInputError("status", fmt.Sprintf("unsupported value %q", target))
	}

	success := "User activated"
	if target == models.UserBlocked {
		success = "User blocked"
	}

	return s.d.Runner.Run(ctx, mutation.Spec{
		Action:              "user.status",
		Entity:              id,
		Scope:               scope,
		Invalidate:          []query.Key{query.NewKey(ResUsers), query.NewKey(ResDashboardStats)},
		InvalidateResources: []string{ResUserLogs},
		Success:             success,
		Failure:             "Could not update the user",
		Do: func(ctx context.Context) error {
			return s.d.Backend.SetUserStatus(ctx, res.Credential, id, target)
		},
	})
}

// RequestDeleteUser parks a user deletion until the admin confirms it
func (s *AdminService) RequestDeleteUser(_ context.Context, sess *session.Session, id string) (mutation.Prompt, error) {
	res, err := authorize(sess, models.RoleAdmin)
	if err != nil {
		return mutation.Prompt{}, err
	}

	spec := mutation.Spec{
		Action:     "user.delete",
		Entity:     id,
		Scope:      s.d.scope(res),
		Invalidate: []query.Key{query.NewKey(ResUsers), query.NewKey(ResDashboardStats)},
		Success:    "User deleted",
		Failure:    "Could not delete the user",
		Do: func(ctx context.Context) error {
			return s.d.Backend.DeleteUser(ctx, res.Credential, id)
		},
	}
	return s.d.Confirmations.Request(res.ScopeID(), spec, "Delete this user? This cannot be undone."), nil
}

// UserLogs shows one user's activity, newest first
func (s *AdminService) UserLogs(ctx context.Context, sess *session.Session, id string, page int) view.State {
	res := session.Resolve(sess, models.RoleAdmin)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	logs := query.Add(g, query.NewKey(ResUserLogs, "id", id), s.d.list(id != ""), func(ctx context.Context) ([]models.UserLog, error) {
		return s.d.Backend.UserLogs(ctx, res.Credential, id)
	})

	return view.FromComposite(g.Wait(ctx), "user_logs", func() (UserLogsView, bool) {
		sorted := derive.SortBy(logs.Result().Data, derive.ByTime(logCreated, derive.Desc))
		p := derive.Paginate(sorted, page, s.d.Settings.PageSize)
		return UserLogsView{UserID: id, Page: p}, p.Total == 0
	})
}

func transactionSort(name string) derive.SortKey[models.Payment] {
	switch name {
	case SortOldest:
		return derive.ByTime(paymentDate, derive.Asc)
	case SortAmountAsc:
		return derive.ByNumber(paymentAmount, derive.Asc)
	case SortAmountDesc:
		return derive.ByNumber(paymentAmount, derive.Desc)
	default:
		return derive.ByTime(paymentDate, derive.Desc)
	}
}

// Transactions lists every payment with search, a status filter and sorting
func (s *AdminService) Transactions(ctx context.Context, sess *session.Session, in derive.Inputs) view.State {
	res := session.Resolve(sess, models.RoleAdmin)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	txs := query.Add(g, query.NewKey(ResTransactions), s.d.list(true), func(ctx context.Context) ([]models.Payment, error) {
		return s.d.Backend.Transactions(ctx, res.Credential)
	})

	fingerprint := in.Fingerprint()
	return view.FromComposite(g.Wait(ctx), "transactions", func() (TransactionsView, bool) {
		list := query.Derive(s.d.Memo, txs.Result(), "admin.transactions", fingerprint, func(items []models.Payment) []models.Payment {
			out := derive.Search(items, in.Search, paymentRef, paymentStudent, paymentTutor)
			out = derive.Filter(out, derive.Exact(in.Filter("status"), paymentStatus))
			return derive.SortBy(out, transactionSort(in.Sort))
		})
		page := derive.Paginate(list, in.ResolvePage(), s.d.Settings.PageSize)
		return TransactionsView{
			Page:        page,
			Fingerprint: fingerprint,
			Settled:     derive.Sum(successful(list), paymentAmount),
		}, page.Total == 0
	})
}
