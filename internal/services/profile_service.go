package services

import (
	"context"

	"github.com/tuitionhub/tuitionhub-web/internal/models"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/view"
)

// ProfileService drives the public profile page
type ProfileService struct {
	d Deps
}

// NewProfileService creates a new ProfileService
func NewProfileService(d Deps) *ProfileService {
	return &ProfileService{d: d}
}

// Get shows a profile by slug; anyone may view it
func (s *ProfileService) Get(ctx context.Context, sess *session.Session, slug string) view.State {
	if slug == "" {
		return view.NotFound{Resource: "profile"}
	}
	res := session.Resolve(sess)

	g := s.d.group(res)
	profile := query.Add(g, query.NewKey(ResProfile, "slug", slug), s.d.single(true), func(ctx context.Context) (models.Profile, error) {
		return s.d.Backend.Profile(ctx, res.Credential, slug)
	})

	return view.FromComposite(g.Wait(ctx), "profile", func() (models.Profile, bool) {
		return profile.Result().Data, false
	})
}
