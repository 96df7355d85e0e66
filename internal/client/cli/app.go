package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/config"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/router"
	"github.com/dmitrijs2005/jobtracker/internal/client/services"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"
	"github.com/dmitrijs2005/jobtracker/internal/client/tokenstore"
	"github.com/dmitrijs2005/jobtracker/internal/filex"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/dmitrijs2005/jobtracker/internal/shared"
)

// App is the interactive jobtracker client: one session, one current view.
type App struct {
	logger  logging.Logger
	session *session.Context
	guard   *router.Guard
	api     *client.API

	auth         *services.AuthService
	profile      *services.ProfileService
	dashboard    *services.DashboardService
	applications *services.Resource[models.Application]
	companies    *services.Resource[models.Company]
	savedJobs    *services.Resource[models.SavedJob]

	in  *bufio.Reader
	out io.Writer
	ui  *theme

	current router.Decision
	view    view

	sessionChanged atomic.Bool
	unsubscribe    func()
	closers        []func() error
}

// NewApp wires the client from configuration: data directory, token
// store, session, HTTP adapter and services. The session is hydrated from
// the token store before NewApp returns.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	store, closeStore, err := openTokenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New(store)
	if err := sess.Initialize(ctx); err != nil {
		// an unreadable store means starting signed out, not failing
		logger.Warn(ctx, "could not restore session", "error", err)
	}

	httpClient, err := client.NewHTTPClient(client.Config{
		BaseURL:   cfg.ServerURL,
		Session:   sess,
		Logger:    logger,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
	})
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	a := newApp(sess, httpClient, logger, in, out)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

func openTokenStore(ctx context.Context, cfg *config.Config) (tokenstore.Store, func() error, error) {
	noop := func() error { return nil }

	kind, err := tokenstore.ParseKind(cfg.TokenStore)
	if err != nil {
		return nil, nil, err
	}
	switch kind {
	case tokenstore.KindFile:
		return tokenstore.NewFileStore(cfg.DataDir), noop, nil
	case tokenstore.KindKeyring:
		return tokenstore.NewKeyringStore(""), noop, nil
	default:
		var db *sql.DB
		db, err = client.InitDatabase(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, nil, fmt.Errorf("error initializing database: %w", err)
		}
		return tokenstore.NewSQLiteStore(db), db.Close, nil
	}
}

// newApp builds an App around an initialized session and a request
// executor.
func newApp(sess *session.Context, d client.Doer, logger logging.Logger, in io.Reader, out io.Writer) *App {
	api := client.NewAPI(d)
	auth := services.NewAuthService(api, sess, logger)

	a := &App{
		logger:       logger,
		session:      sess,
		guard:        router.NewGuard(router.MustTable(router.DefaultRoutes), sess),
		api:          api,
		auth:         auth,
		profile:      services.NewProfileService(api, auth),
		dashboard:    services.NewDashboardService(api),
		applications: services.NewApplications(d),
		companies:    services.NewCompanies(d),
		savedJobs:    services.NewSavedJobs(d),
		in:           bufio.NewReader(in),
		out:          out,
		ui:           newTheme(out),
	}
	a.unsubscribe = sess.Subscribe(func(session.Session) {
		a.sessionChanged.Store(true)
	})
	return a
}

// Close releases the local database, if any.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Run shows the start path and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context, start string) {
	a.println(a.ui.title.Render("Job Application Tracker") + a.ui.faint.Render("  (type 'help' for commands)"))
	a.Navigate(ctx, start)
	a.afterCommand(ctx)
	runREPL(ctx, a)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated
}

// Navigate asks the guard about path and renders the resulting view with
// fresh state.
func (a *App) Navigate(ctx context.Context, path string) {
	d := a.guard.Navigate(path)
	if d.Kind == router.Redirect {
		a.logger.Debug(ctx, "redirect", "from", router.Clean(path), "to", d.RedirectTo)
		a.notify(noteInfo, "Please sign in to continue.")
	}
	a.current = d
	a.view = a.newView(d)
	a.println("")
	a.view.render(ctx)
}

// showNotFound replaces the current view with the not-found view without
// changing the path.
func (a *App) showNotFound(ctx context.Context) {
	a.view = &notFoundView{app: a}
	a.view.render(ctx)
}

// afterCommand re-evaluates the guard when the session changed under the
// current view, e.g. a backend rejection cleared it.
func (a *App) afterCommand(ctx context.Context) {
	if !a.sessionChanged.Swap(false) {
		return
	}
	if !a.isLoggedIn() && a.current.Route.Protected {
		a.notify(noteFailure, "Your session has expired.")
		a.Navigate(ctx, a.current.Path)
	}
}

// isCurrent reports whether a view created for gen is still on screen.
func (a *App) isCurrent(gen uint64) bool {
	return a.guard.IsCurrent(gen)
}

// Logout clears the session and returns to the landing page.
func (a *App) Logout(ctx context.Context) {
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "logout", "error", err)
	}
	a.sessionChanged.Store(false)
	a.notify(noteSuccess, "Logged out.")
	a.Navigate(ctx, "/")
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

type noteKind int

const (
	noteInfo noteKind = iota
	noteSuccess
	noteFailure
)

// notify prints a one-line transient notification.
func (a *App) notify(kind noteKind, msg string) {
	switch kind {
	case noteSuccess:
		a.println(a.ui.success.Render("✓ " + msg))
	case noteFailure:
		a.println(a.ui.failure.Render("✗ " + msg))
	default:
		a.println(a.ui.info.Render("• " + msg))
	}
}

// fail reports err to the user; what names the failed action for the
// fallback text ("Failed to load companies").
func (a *App) fail(ctx context.Context, what string, err error) {
	a.logger.Debug(ctx, "command failed", "action", what, "error", err)

	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		parts := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			parts = append(parts, f.Field+" "+f.Message)
		}
		a.notify(noteFailure, "Please check: "+strings.Join(parts, ", "))
	case errors.Is(err, client.ErrUnauthorized):
		// the session is already cleared; afterCommand redirects
		a.notify(noteFailure, client.Message(err, "Not authorized."))
	case errors.Is(err, client.ErrUnavailable):
		a.notify(noteFailure, "Cannot reach the server. Failed to "+what+".")
	default:
		a.notify(noteFailure, client.Message(err, "Failed to "+what+"."))
	}
}

// promptForm asks for every field of schema. An empty answer keeps the
// current value; "-" clears it.
func (a *App) promptForm(schema services.Schema, current services.Form) (services.Form, error) {
	form := services.Form{}
	for k, v := range current {
		form[k] = v
	}

	for _, f := range schema {
		if f.Kind == services.KindPassword {
			pw, err := GetPassword(a.in, a.out)
			if err != nil {
				return nil, err
			}
			form[f.Name] = string(pw)
			shared.WipeByteArray(pw)
			continue
		}

		prompt := f.Label
		if len(f.Options) > 0 {
			prompt += " (" + strings.Join(f.Options, "/") + ")"
		}
		switch f.Kind {
		case services.KindDate:
			prompt += " [YYYY-MM-DD]"
		case services.KindDateTime:
			prompt += " [YYYY-MM-DDTHH:MM]"
		}
		if !f.Required {
			prompt += a.ui.faint.Render(" optional")
		}
		if cur := current[f.Name]; cur != "" {
			prompt += a.ui.faint.Render(" [" + cur + "]")
		}

		v, err := GetSimpleText(a.in, prompt, a.out)
		if err != nil {
			return nil, err
		}
		switch v {
		case "":
		case "-":
			form[f.Name] = ""
		default:
			form[f.Name] = v
		}
	}
	return form, nil
}

func (a *App) confirm(prompt string) bool {
	ok, err := Confirm(a.in, prompt, a.out)
	return err == nil && ok
}
