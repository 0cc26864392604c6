package services

import (
	"context"

	"github.com/tuitionhub/tuitionhub-web/internal/derive"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// TuitionServiceInterface defines the tuition page operations
type TuitionServiceInterface interface {
	Browse(ctx context.Context, sess *session.Session, in derive.Inputs) view.State
	Detail(ctx context.Context, sess *session.Session, slug string) view.State
	Mine(ctx context.Context, sess *session.Session) view.State
	Create(ctx context.Context, sess *session.Session, req models.CreateTuitionRequest) (mutation.Notice, error)
	RequestDelete(ctx context.Context, sess *session.Session, id string) (mutation.Prompt, error)
}

// ApplicationServiceInterface defines the application page operations
type ApplicationServiceInterface interface {
	Mine(ctx context.Context, sess *session.Session) view.State
	StudentView(ctx context.Context, sess *session.Session) view.State
	Apply(ctx context.Context, sess *session.Session, tuitionID string, req models.ApplyRequest) (mutation.Notice, error)
}

// AdminServiceInterface defines the admin page operations
type AdminServiceInterface interface {
	Dashboard(ctx context.Context, sess *session.Session) view.State
	Users(ctx context.Context, sess *session.Session, in derive.Inputs) view.State
	ToggleUserStatus(ctx context.Context, sess *session.Session, id string, target models.UserStatus) (mutation.Notice, error)
	RequestDeleteUser(ctx context.Context, sess *session.Session, id string) (mutation.Prompt, error)
	UserLogs(ctx context.Context, sess *session.Session, id string, page int) view.State
	Transactions(ctx context.Context, sess *session.Session, in derive.Inputs) view.State
}

// PaymentServiceInterface defines the payment page operations
type PaymentServiceInterface interface {
	MyPayments(ctx context.Context, sess *session.Session) view.State
	Revenue(ctx context.Context, sess *session.Session) view.State
}

// ProfileServiceInterface defines the profile page operations
type ProfileServiceInterface interface {
	Get(ctx context.Context, sess *session.Session, slug string) view.State
}

// AuthServiceInterface defines login and logout
type AuthServiceInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (session.Session, error)
	Logout(sess *session.Session)
	Current(sess *session.Session) models.SessionResponse
}

var (
	_ TuitionServiceInterface     = (*TuitionService)(nil)
	_ ApplicationServiceInterface = (*ApplicationService)(nil)
	_ AdminServiceInterface       = (*AdminService)(nil)
	_ PaymentServiceInterface     = (*PaymentService)(nil)
	_ ProfileServiceInterface     = (*ProfileService)(nil)
	_ AuthServiceInterface        = (*AuthService)(nil)

	_ Backend = (*upstream.Client)(nil)
)
