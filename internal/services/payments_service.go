package services

import (
	"context"

	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// PaymentService drives the payment history and revenue pages
type PaymentService struct {
	d Deps
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(d Deps) *PaymentService {
	return &PaymentService{d: d}
}

// summarize totals successful payments and charts them over the trailing
// window; the list keeps every payment, newest first
func (s *PaymentService) summarize(payments []models.Payment) (models.PaymentSummary, bool) {
	settled := successful(payments)
	return models.PaymentSummary{
		Total:    derive.Sum(settled, paymentAmount),
		Count:    len(settled),
		Monthly:  monthTotals(derive.MonthlyBuckets(settled, s.d.now(), s.d.Settings.ChartMonths, paymentDate, paymentAmount)),
		Payments: derive.SortBy(payments, derive.ByTime(paymentDate, derive.Desc)),
	}, len(payments) == 0
}

// MyPayments shows what a student has spent
func (s *PaymentService) MyPayments(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleStudent)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	payments := query.Add(g, query.NewKey(ResPaymentsMine, "email", res.Identity), s.d.list(res.Identity != ""),
		func(ctx context.Context) ([]models.Payment, error) {
			return s.d.Backend.MyPayments(ctx, res.Credential)
		})

	return view.FromComposite(g.Wait(ctx), "payments", func() (models.PaymentSummary, bool) {
		return s.summarize(payments.Result().Data)
	})
}

// Revenue shows what a tutor has earned
func (s *PaymentService) Revenue(ctx context.Context, sess *session.Session) view.State {
	res := session.Resolve(sess, models.RoleTutor)
	if !res.IsValid {
		return view.Unauthorized{Reason: string(res.Reason)}
	}

	g := s.d.group(res)
	revenue := query.Add(g, query.NewKey(ResRevenue, "user", res.Identity), s.d.list(res.Identity != ""),
		func(ctx context.Context) ([]models.Payment, error) {
			return s.d.Backend.Revenue(ctx, res.Credential, res.Identity)
		})

	return view.FromComposite(g.Wait(ctx), "revenue", func() (models.PaymentSummary, bool) {
		return s.summarize(revenue.Result().Data)
	})
}
