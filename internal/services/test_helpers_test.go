package services_test

import (
	"time"

	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestDeps(backend services.Backend) services.Deps {
	runner := mutation.NewRunner(mutation.NewGuard())
	return services.Deps{
		Backend:       backend,
		Queries:       query.NewClient(time.Minute, 0),
		Memo:          query.NewMemo(time.Minute),
		Runner:        runner,
		Confirmations: mutation.NewConfirmations(runner, time.Minute),
		Settings: services.Settings{
			RenderDeadline: 2 * time.Second,
			PageSize:       2,
			ChartMonths:    6,
			Now:            func() time.Time { return testNow },
		},
	}
}

func sessionFor(role models.Role, email string) *session.Session {
	return &session.Session{
		Identity:   email,
		Role:       role,
		Credential: "token-" + email,
	}
}

func tuition(id, subject string, salary float64, daysAgo int) models.Tuition {
	return models.Tuition{
		ID:           id,
		Slug:         id,
		Subject:      subject,
		Class:        "8",
		Medium:       "English",
		Salary:       salary,
		Location:     "Dhaka",
		StudentEmail: "student@example.com",
		Status:       models.TuitionApproved,
		CreatedAt:    testNow.AddDate(0, 0, -daysAgo),
	}
}
