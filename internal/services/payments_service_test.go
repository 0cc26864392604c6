package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

func TestPaymentService_MyPayments(t *testing.T) {
	backend := new(MockBackend)
	student := sessionFor(models.RoleStudent, "student@example.com")
	backend.On("MyPayments", mock.Anything, student.Credential).Return([]models.Payment{
		payment("p1", 100, models.PaymentSuccess, 4),
		payment("p2", 200, models.PaymentPending, 3),
		payment("p3", 300, models.PaymentSuccess, 1),
		payment("p4", 300, models.PaymentSuccess, 9),
	}, nil)
	svc := services.NewPaymentService(newTestDeps(backend))

	state := svc.MyPayments(context.Background(), student)
	ready, ok := state.(view.Ready[models.PaymentSummary])
	require.True(t, ok)

	s := ready.Data
	assert.InDelta(t, 700, s.Total, 0.001)
	assert.Equal(t, 3, s.Count)
	require.Len(t, s.Monthly, 6)

	var charted float64
	for _, m := range s.Monthly {
		charted += m.Total
	}
	assert.InDelta(t, 400, charted, 0.001, "payments outside the window are not charted")

	require.Len(t, s.Payments, 4)
	assert.Equal(t, "p3", s.Payments[0].ID)
}

func TestPaymentService_Revenue_UsesTutorIdentity(t *testing.T) {
	backend := new(MockBackend)
	tutor := sessionFor(models.RoleTutor, "tutor@example.com")
	backend.On("Revenue", mock.Anything, tutor.Credential, tutor.Identity).Return([]models.Payment{}, nil).Once()
	svc := services.NewPaymentService(newTestDeps(backend))

	state := svc.Revenue(context.Background(), tutor)
	ready, ok := state.(view.Ready[models.PaymentSummary])
	require.True(t, ok)
	assert.True(t, ready.Empty)
	assert.Zero(t, ready.Data.Total)
	backend.AssertExpectations(t)
}

func TestPaymentService_WrongRole(t *testing.T) {
	backend := new(MockBackend)
	svc := services.NewPaymentService(newTestDeps(backend))

	_, ok := svc.Revenue(context.Background(), sessionFor(models.RoleStudent, "s@example.com")).(view.Unauthorized)
	assert.True(t, ok)
	_, ok = svc.MyPayments(context.Background(), sessionFor(models.RoleTutor, "t@example.com")).(view.Unauthorized)
	assert.True(t, ok)
	assert.Empty(t, backend.Calls)
}
