package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

// MockBackend is a mock implementation of services.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) AllTuitions(ctx context.Context, credential string) ([]models.Tuition, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tuition), args.Error(1)
}

func (m *MockBackend) TuitionBySlug(ctx context.Context, credential, slug string) (models.Tuition, error) {
	args := m.Called(ctx, credential, slug)
	return args.Get(0).(models.Tuition), args.Error(1)
}

func (m *MockBackend) MyTuitions(ctx context.Context, credential, email string) ([]models.Tuition, error) {
	args := m.Called(ctx, credential, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tuition), args.Error(1)
}

func (m *MockBackend) CreateTuition(ctx context.Context, credential string, payload models.NewTuition) error {
	args := m.Called(ctx, credential, payload)
	return args.Error(0)
}

func (m *MockBackend) DeleteTuition(ctx context.Context, credential, id string) error {
	args := m.Called(ctx, credential, id)
	return args.Error(0)
}

func (m *MockBackend) MyApplications(ctx context.Context, credential string) ([]models.Application, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockBackend) StudentApplications(ctx context.Context, credential string) ([]models.Application, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockBackend) Apply(ctx context.Context, credential string, payload models.NewApplication) error {
	args := m.Called(ctx, credential, payload)
	return args.Error(0)
}

func (m *MockBackend) Users(ctx context.Context, credential string) ([]models.User, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockBackend) SetUserStatus(ctx context.Context, credential, id string, status models.UserStatus) error {
	args := m.Called(ctx, credential, id, status)
	return args.Error(0)
}

func (m *MockBackend) DeleteUser(ctx context.Context, credential, id string) error {
	args := m.Called(ctx, credential, id)
	return args.Error(0)
}

func (m *MockBackend) UserLogs(ctx context.Context, credential, id string) ([]models.UserLog, error) {
	args := m.Called(ctx, credential, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserLog), args.Error(1)
}

func (m *MockBackend) DashboardStats(ctx context.Context, credential string) (models.DashboardStats, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(models.DashboardStats), args.Error(1)
}

func (m *MockBackend) Transactions(ctx context.Context, credential string) ([]models.Payment, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockBackend) MyPayments(ctx context.Context, credential string) ([]models.Payment, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockBackend) Revenue(ctx context.Context, credential, userID string) ([]models.Payment, error) {
	args := m.Called(ctx, credential, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockBackend) Profile(ctx context.Context, credential, slug string) (models.Profile, error) {
	args := m.Called(ctx, credential, slug)
	return args.Get(0).(models.Profile), args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.LoginResult), args.Error(1)
}
