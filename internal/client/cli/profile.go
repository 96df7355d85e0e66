package cli

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

type profileView struct {
	app     *App
	gen     uint64
	profile models.Profile
	loaded  bool
}

func (v *profileView) commands() []command {
	return []command{
		{name: "edit", help: "update your profile", run: func(ctx context.Context, _ []string) { v.edit(ctx) }},
		{name: "delete", help: "delete your profile", run: func(ctx context.Context, _ []string) { v.delete(ctx) }},
	}
}

func (v *profileView) render(ctx context.Context) {
	a := v.app
	p, err := a.profile.Get(ctx)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "load profile", err)
		return
	}
	v.profile, v.loaded = p, true
	v.print()
}

func (v *profileView) print() {
	a := v.app
	p := v.profile
	a.println(a.ui.title.Render("Your Profile"))
	a.println(a.ui.Fields(
		[2]string{"Email", p.Email},
		[2]string{"First name", p.FirstName},
		[2]string{"Last name", p.LastName},
		[2]string{"Phone", p.Phone},
		[2]string{"Location", p.CurrentLocation},
		[2]string{"Skills", p.Skills},
		[2]string{"Experience", p.Experience},
		[2]string{"Portfolio", p.PortfolioURL},
		[2]string{"Career goals", p.CareerGoals},
	))
}

func (v *profileView) edit(ctx context.Context) {
	a := v.app
	if !v.loaded {
		a.notify(noteFailure, "Profile not loaded; type 'refresh' to retry.")
		return
	}
	form, err := a.promptForm(services.ProfileSchema, services.ProfileForm(v.profile))
	if err != nil {
		return
	}
	updated, err := a.profile.Update(ctx, v.profile, form)
	if !a.isCurrent(v.gen) {
		return
	}
	if err != nil {
		a.fail(ctx, "update profile", err)
		return
	}
	v.profile = updated
	a.notify(noteSuccess, "Profile updated")
	v.print()
}

func (v *profileView) delete(ctx context.Context) {
	a := v.app
	if !a.confirm("Your profile will be permanently deleted. Continue?") {
		a.notify(noteInfo, "Cancelled.")
		return
	}
	if err := a.profile.Delete(ctx); err != nil {
		a.fail(ctx, "delete profile", err)
		return
	}
	a.sessionChanged.Store(false)
	a.notify(noteSuccess, "Profile deleted.")
	a.Navigate(ctx, "/")
}
