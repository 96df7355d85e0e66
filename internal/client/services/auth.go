package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
)

// Authenticator exchanges credentials for a backend-issued token.
// *client.API implements it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (session.Credential, error)
	Signup(ctx context.Context, reg models.Registration) (session.Credential, error)
}

// SessionWriter is the mutating side of the session context.
type SessionWriter interface {
	Establish(ctx context.Context, cred session.Credential) error
	Clear(ctx context.Context) error
}

// AuthService signs the user in and out.
//
// Contract:
//   - Login/Register: validate the form, call the backend, and establish
//     the session exactly once with the issued token.
//   - Logout: clear the session.
//
// A token that could not be persisted still signs the user in for this run;
// the failure is logged.
type AuthService struct {
	api     Authenticator
	session SessionWriter
	logger  logging.Logger
}

func NewAuthService(api Authenticator, sess SessionWriter, logger logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &AuthService{api: api, session: sess, logger: logger}
}

func (a *AuthService) Login(ctx context.Context, form Form) error {
	if err := LoginSchema.Validate(form); err != nil {
		return err
	}
	cred, err := a.api.Login(ctx, form.Get("email"), form["password"])
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.establish(ctx, cred)
}

func (a *AuthService) Register(ctx context.Context, form Form) error {
	if err := RegistrationSchema.Validate(form); err != nil {
		return err
	}
	reg := models.Registration{
		Profile:  profileFromForm(form),
		Password: form["password"],
	}
	reg.Email = form.Get("email")

	cred, err := a.api.Signup(ctx, reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return a.establish(ctx, cred)
}

func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *AuthService) establish(ctx context.Context, cred session.Credential) error {
	err := a.session.Establish(ctx, cred)
	if err == nil {
		return nil
	}
	if errors.Is(err, session.ErrEmptyCredential) {
		return fmt.Errorf("establish session: %w", err)
	}
	a.logger.Warn(ctx, "signed in without persisting the credential", "error", err)
	return nil
}

func profileFromForm(form Form) models.Profile {
	return models.Profile{
		FirstName:       form.Get("frstname"),
		LastName:        form.Get("lastname"),
		Phone:           form.Get("phone"),
		Skills:          form.Get("skills"),
		CurrentLocation: form.Get("current_location"),
		Experience:      form.Get("experience"),
		PortfolioURL:    form.Get("portfolio_url"),
		CareerGoals:     form.Get("career_goals"),
	}
}

// ProfileForm is the inverse of profileFromForm, used to prefill edits.
func ProfileForm(p models.Profile) Form {
	return Form{
		"frstname":         p.FirstName,
		"lastname":         p.LastName,
		"phone":            p.Phone,
		"skills":           p.Skills,
		"current_location": p.CurrentLocation,
		"experience":       p.Experience,
		"portfolio_url":    p.PortfolioURL,
		"career_goals":     p.CareerGoals,
	}
}
