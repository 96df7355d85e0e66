package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// ProfileAPI is the profile part of *client.API.
type ProfileAPI interface {
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.Profile) error
	DeleteProfile(ctx context.Context) error
}

// ProfileService manages the singleton profile of the signed-in user.
type ProfileService struct {
	api  ProfileAPI
	auth *AuthService
}

func NewProfileService(api ProfileAPI, auth *AuthService) *ProfileService {
	return &ProfileService{api: api, auth: auth}
}

func (s *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	p, err := s.api.Profile(ctx)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update sends the edited profile. The email is not editable and is kept
// from current.
func (s *ProfileService) Update(ctx context.Context, current models.Profile, form Form) (models.Profile, error) {
	if err := ProfileSchema.Validate(form); err != nil {
		return current, err
	}
	p := profileFromForm(form)
	p.Email = current.Email
	if err := s.api.UpdateProfile(ctx, p); err != nil {
		return current, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// Delete removes the account and signs out.
func (s *ProfileService) Delete(ctx context.Context) error {
	if err := s.api.DeleteProfile(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return s.auth.Logout(ctx)
}
