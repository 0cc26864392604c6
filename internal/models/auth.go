package models

// LoginRequest is the credential exchange form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=128"`
	// RecaptchaToken is required only when captcha checks are enabled
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// LoginResult is what the backend returns for POST /api/auth/login
type LoginResult struct {
	Token string        `json:"token" validate:"required"`
	User  LoginIdentity `json:"user"`
}

// LoginIdentity is the account the credential belongs to
type LoginIdentity struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Role  Role   `json:"role" validate:"required,oneof=admin tutor student"`
}

// SessionResponse describes the caller's session without exposing the credential
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Role          Role   `json:"role,omitempty"`
	ExpiresAt     int64  `json:"exp,omitempty"`
}
