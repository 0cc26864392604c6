package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tuitionhub/tuitionhub-web/internal/models"
)

func TestResolve(t *testing.T) {
	tutor := &Session{Identity: "t@example.com", Role: models.RoleTutor, Credential: "tok"}

	tests := []struct {
		name     string
		session  *Session
		required []models.Role
		valid    bool
		reason   Reason
	}{
		{name: "absent session", session: nil, reason: ReasonNoSession},
		{name: "no credential", session: &Session{Identity: "a@b.c", Role: models.RoleStudent}, reason: ReasonNoCredential},
		{name: "unknown role", session: &Session{Identity: "a@b.c", Role: "guest", Credential: "tok"}, reason: ReasonUnknownRole},
		{name: "any role accepted", session: tutor, valid: true},
		{name: "matching role", session: tutor, required: []models.Role{models.RoleTutor}, valid: true},
		{name: "one of several roles", session: tutor, required: []models.Role{models.RoleAdmin, models.RoleTutor}, valid: true},
		{name: "role mismatch", session: tutor, required: []models.Role{models.RoleAdmin}, reason: ReasonRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.session, tt.required...)
			assert.Equal(t, tt.valid, r.IsValid)
			assert.Equal(t, tt.reason, r.Reason)
		})
	}
}

func TestResolve_KeepsIdentityOnRoleMismatch(t *testing.T) {
	r := Resolve(&Session{Identity: "s@example.com", Role: models.RoleStudent, Credential: "tok"}, models.RoleAdmin)

	assert.False(t, r.IsValid)
	assert.Equal(t, "s@example.com", r.Identity)
	assert.False(t, r.HasRole(models.RoleStudent))
}

func TestResolution_ScopeID(t *testing.T) {
	assert.Equal(t, "anonymous", Resolve(nil).ScopeID())
	assert.Equal(t, "a@example.com",
		Resolve(&Session{Identity: "a@example.com", Role: models.RoleAdmin, Credential: "x"}).ScopeID())
}
