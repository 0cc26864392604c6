package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

type MockTuitionService struct {
	mock.Mock
}

func (m *MockTuitionService) Browse(ctx context.Context, sess *session.Session, in derive.Inputs) view.State {
	return m.Called(ctx, sess, in).Get(0).(view.State)
}

func (m *MockTuitionService) Detail(ctx context.Context, sess *session.Session, slug string) view.State {
	return m.Called(ctx, sess, slug).Get(0).(view.State)
}

func (m *MockTuitionService) Mine(ctx context.Context, sess *session.Session) view.State {
	return m.Called(ctx, sess).Get(0).(view.State)
}

func (m *MockTuitionService) Create(ctx context.Context, sess *session.Session, req models.CreateTuitionRequest) (mutation.Notice, error) {
	args := m.Called(ctx, sess, req)
	return args.Get(0).(mutation.Notice), args.Error(1)
}

func (m *MockTuitionService) RequestDelete(ctx context.Context, sess *session.Session, id string) (mutation.Prompt, error) {
	args := m.Called(ctx, sess, id)
	return args.Get(0).(mutation.Prompt), args.Error(1)
}

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Mine(ctx context.Context, sess *session.Session) view.State {
	return m.Called(ctx, sess).Get(0).(view.State)
}

func (m *MockApplicationService) StudentView(ctx context.Context, sess *session.Session) view.State {
	return m.Called(ctx, sess).Get(0).(view.State)
}

func (m *MockApplicationService) Apply(ctx context.Context, sess *session.Session, tuitionID string, req models.ApplyRequest) (mutation.Notice, error) {
	args := m.Called(ctx, sess, tuitionID, req)
	return args.Get(0).(mutation.Notice), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (session.Session, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockAuthService) Logout(sess *session.Session) {
	m.Called(sess)
}

func (m *MockAuthService) Current(sess *session.Session) models.SessionResponse {
	return m.Called(sess).Get(0).(models.SessionResponse)
}

type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, scope, token string) (mutation.Notice, error) {
	args := m.Called(ctx, scope, token)
	return args.Get(0).(mutation.Notice), args.Error(1)
}

func (m *MockConfirmer) Dismiss(scope, token string) error {
	return m.Called(scope, token).Error(0)
}
