package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

// Tuitions

func (c *Client) AllTuitions(ctx context.Context, credential string) ([]models.Tuition, error) {
	body, err := c.call(ctx, "tuitions.all", http.MethodGet, "/api/tuitions/all", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Tuition](c, "tuitions.all", body)
}

func (c *Client) TuitionBySlug(ctx context.Context, credential, slug string) (models.Tuition, error) {
	body, err := c.call(ctx, "tuitions.get", http.MethodGet, "/api/tuitions/"+url.PathEscape(slug), credential, nil)
	if err != nil {
		return models.Tuition{}, err
	}
	return decodeOne[models.Tuition](c, "tuitions.get", body)
}

func (c *Client) MyTuitions(ctx context.Context, credential, email string) ([]models.Tuition, error) {
	path := "/api/tuitions/my-tuitions?" + url.Values{"email": {email}}.Encode()
	body, err := c.call(ctx, "tuitions.mine", http.MethodGet, path, credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Tuition](c, "tuitions.mine", body)
}

func (c *Client) CreateTuition(ctx context.Context, credential string, payload models.NewTuition) error {
	_, err := c.call(ctx, "tuitions.create", http.MethodPost, "/api/tuitions/create", credential, payload)
	return err
}

func (c *Client) DeleteTuition(ctx context.Context, credential, id string) error {
	_, err := c.call(ctx, "tuitions.delete", http.MethodDelete, "/api/tuitions/delete/"+url.PathEscape(id), credential, nil)
	return err
}

// Applications

func (c *Client) MyApplications(ctx context.Context, credential string) ([]models.Application, error) {
	body, err := c.call(ctx, "applications.mine", http.MethodGet, "/api/applications/my-applications", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Application](c, "applications.mine", body)
}

func (c *Client) StudentApplications(ctx context.Context, credential string) ([]models.Application, error) {
	body, err := c.call(ctx, "applications.student_view", http.MethodGet, "/api/applications/student-view", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Application](c, "applications.student_view", body)
}

func (c *Client) Apply(ctx context.Context, credential string, payload models.NewApplication) error {
	_, err := c.call(ctx, "applications.apply", http.MethodPost, "/api/applications/apply", credential, payload)
	return err
}

// Users

func (c *Client) Users(ctx context.Context, credential string) ([]models.User, error) {
	body, err := c.call(ctx, "users.list", http.MethodGet, "/api/users", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.User](c, "users.list", body)
}

func (c *Client) SetUserStatus(ctx context.Context, credential, id string, status models.UserStatus) error {
	path := "/api/users/" + url.PathEscape(id) + "/status"
	_, err := c.call(ctx, "users.status", http.MethodPut, path, credential, models.UserStatusRequest{Status: status})
	return err
}

func (c *Client) DeleteUser(ctx context.Context, credential, id string) error {
	_, err := c.call(ctx, "users.delete", http.MethodDelete, "/api/users/"+url.PathEscape(id), credential, nil)
	return err
}

func (c *Client) UserLogs(ctx context.Context, credential, id string) ([]models.UserLog, error) {
	path := "/api/admin/users/" + url.PathEscape(id) + "/logs"
	body, err := c.call(ctx, "users.logs", http.MethodGet, path, credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.UserLog](c, "users.logs", body)
}

// Admin and payments

func (c *Client) DashboardStats(ctx context.Context, credential string) (models.DashboardStats, error) {
	body, err := c.call(ctx, "admin.stats", http.MethodGet, "/api/admin/dashboard-stats", credential, nil)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return decodeOne[models.DashboardStats](c, "admin.stats", body)
}

func (c *Client) Transactions(ctx context.Context, credential string) ([]models.Payment, error) {
	body, err := c.call(ctx, "admin.transactions", http.MethodGet, "/api/admin/transactions", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Payment](c, "admin.transactions", body)
}

func (c *Client) MyPayments(ctx context.Context, credential string) ([]models.Payment, error) {
	body, err := c.call(ctx, "payments.mine", http.MethodGet, "/api/payment/my-payments", credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Payment](c, "payments.mine", body)
}

func (c *Client) Revenue(ctx context.Context, credential, userID string) ([]models.Payment, error) {
	body, err := c.call(ctx, "payments.revenue", http.MethodGet, "/api/revenue/"+url.PathEscape(userID), credential, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Payment](c, "payments.revenue", body)
}

// Profile and auth

func (c *Client) Profile(ctx context.Context, credential, slug string) (models.Profile, error) {
	body, err := c.call(ctx, "profile.get", http.MethodGet, "/api/profile/"+url.PathEscape(slug), credential, nil)
	if err != nil {
		return models.Profile{}, err
	}
	return decodeOne[models.Profile](c, "profile.get", body)
}

// Login exchanges an email and password for a backend credential
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	payload := models.LoginRequest{Email: email, Password: password}
	body, err := c.call(ctx, "auth.login", http.MethodPost, "/api/auth/login", "", payload)
	if err != nil {
		return models.LoginResult{}, err
	}
	return decodeOne[models.LoginResult](c, "auth.login", body)
}
