package cli

import (
	"context"

	"github.com/dmitrijs2005/jobtracker/internal/client/router"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
)

// view is one screen. A view is created fresh on every navigation, so its
// state never outlives the visit.
type view interface {
	render(ctx context.Context)
	commands() []command
}

// submitter is a view whose main action is a form (login, register).
type submitter interface {
	submit(ctx context.Context)
}

// command is a REPL command offered by a view.
type command struct {
	name  string
	usage string
	help  string
	run   func(ctx context.Context, args []string)
}

func (a *App) newView(d router.Decision) view {
	switch d.Route.View {
	case router.ViewLanding:
		return &landingView{app: a}
	case router.ViewLogin:
		return &loginView{app: a}
	case router.ViewRegister:
		return &registerView{app: a}
	case router.ViewDashboard:
		return &dashboardView{app: a, gen: d.Gen}
	case router.ViewApplications:
		return newApplicationsView(a, d.Gen)
	case router.ViewApplicationDetail:
		return newApplicationDetailView(a, d.Gen, d.Param("id"))
	case router.ViewCompanies:
		return newCompaniesView(a, d.Gen)
	case router.ViewSavedJobs:
		return newSavedJobsView(a, d.Gen)
	case router.ViewProfile:
		return &profileView{app: a, gen: d.Gen}
	default:
		return &notFoundView{app: a}
	}
}

type landingView struct {
	app *App
}

func (v *landingView) render(context.Context) {
	a := v.app
	a.println(a.ui.title.Render("Track your job search"))
	a.println("Keep applications, companies, saved jobs and reminders in one place.")
	if a.isLoggedIn() {
		a.println(a.ui.faint.Render("Go to your 'dashboard' or 'applications'."))
		return
	}
	a.println(a.ui.faint.Render("Type 'login' to sign in or 'register' to create an account."))
}

func (v *landingView) commands() []command { return nil }

type notFoundView struct {
	app *App
}

func (v *notFoundView) render(context.Context) {
	a := v.app
	a.println(a.ui.title.Render("404 - Page not found"))
	a.println("The page you're looking for doesn't exist or has been moved.")
	a.println(a.ui.faint.Render("Type 'dashboard' to go back."))
}

func (v *notFoundView) commands() []command { return nil }

type loginView struct {
	app *App
}

func (v *loginView) render(context.Context) {
	a := v.app
	a.println(a.ui.title.Render("Sign in"))
	a.println(a.ui.faint.Render("Type 'login' to enter your email and password, or 'register' to create an account."))
}

func (v *loginView) commands() []command { return nil }

func (v *loginView) submit(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(services.LoginSchema, nil)
	if err != nil {
		return
	}
	if err := a.auth.Login(ctx, form); err != nil {
		a.fail(ctx, "log in", err)
		return
	}
	a.notify(noteSuccess, "Login successful!")
	a.Navigate(ctx, router.DashboardPath)
}

type registerView struct {
	app *App
}

func (v *registerView) render(context.Context) {
	a := v.app
	a.println(a.ui.title.Render("Create your account"))
	a.println(a.ui.faint.Render("Type 'register' to fill in the form."))
}

func (v *registerView) commands() []command { return nil }

func (v *registerView) submit(ctx context.Context) {
	a := v.app
	form, err := a.promptForm(services.RegistrationSchema, nil)
	if err != nil {
		return
	}
	if err := a.auth.Register(ctx, form); err != nil {
		a.fail(ctx, "register", err)
		return
	}
	a.notify(noteSuccess, "Registration successful!")
	a.Navigate(ctx, router.DashboardPath)
}
