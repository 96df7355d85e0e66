package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/client/router"
)

// globalCommands are always available, whatever the current view.
var globalCommands = []command{
	{name: "help", help: "show available commands"},
	{name: "go", usage: "go <path>", help: "open a path, e.g. go /applications/42"},
	{name: "home", help: "landing page"},
	{name: "login", help: "sign in"},
	{name: "register", help: "create an account"},
	{name: "dashboard", help: "overview and reminders"},
	{name: "applications", help: "your applications"},
	{name: "companies", help: "companies to contact"},
	{name: "saved", help: "saved jobs"},
	{name: "profile", help: "your profile"},
	{name: "refresh", help: "reload the current view"},
	{name: "logout", help: "sign out"},
	{name: "exit", help: "leave the program"},
}

// runREPL reads commands from a.in until EOF or "exit".
//
// The first word of a line selects the command. Commands of the current
// view take precedence over the global ones, so "delete" means delete
// whatever the view shows. After every command the guard is re-checked in
// case the session changed underneath the view.
func runREPL(ctx context.Context, a *App) {
	for {
		fmt.Fprintf(a.out, "jt %s> ", a.current.Path)
		line, err := readLine(a.in)
		if err != nil {
			a.println("")
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		if !a.exec(ctx, parts[0], parts[1:]) {
			return
		}
		a.afterCommand(ctx)

		if ctx.Err() != nil {
			return
		}
	}
}

// exec runs one command and reports whether the loop should continue.
func (a *App) exec(ctx context.Context, name string, args []string) bool {
	for _, c := range a.view.commands() {
		if c.name == name {
			c.run(ctx, args)
			return true
		}
	}

	switch name {
	case "help", "?":
		a.printHelp()

	case "go":
		if len(args) == 0 {
			a.println("Usage: go <path>")
			break
		}
		a.Navigate(ctx, args[0])

	case "home":
		a.Navigate(ctx, "/")

	case "login":
		a.openForm(ctx, router.LoginPath)

	case "register":
		a.openForm(ctx, "/register")

	case "dashboard":
		a.Navigate(ctx, router.DashboardPath)

	case "applications":
		a.Navigate(ctx, "/applications")

	case "companies":
		a.Navigate(ctx, "/companies")

	case "saved", "saved-jobs":
		a.Navigate(ctx, "/saved-jobs")

	case "profile":
		a.Navigate(ctx, "/profile")

	case "refresh":
		a.Navigate(ctx, a.current.Path)

	case "logout":
		if !a.isLoggedIn() {
			a.notify(noteInfo, "You are not logged in.")
			break
		}
		a.Logout(ctx)

	case "exit", "quit":
		a.println("Bye!")
		return false

	default:
		a.println("Unknown command: " + name + " (type 'help')")
	}
	return true
}

// openForm navigates to a form view and, when it is shown, fills it in.
func (a *App) openForm(ctx context.Context, path string) {
	if a.current.Path != router.Clean(path) {
		a.Navigate(ctx, path)
	}
	if s, ok := a.view.(submitter); ok {
		s.submit(ctx)
	}
}

func (a *App) printHelp() {
	if cmds := a.view.commands(); len(cmds) > 0 {
		a.println(a.ui.header.Render("On this page"))
		a.printCommands(cmds)
	}
	a.println(a.ui.header.Render("Everywhere"))
	a.printCommands(globalCommands)
}

func (a *App) printCommands(cmds []command) {
	for _, c := range cmds {
		usage := c.usage
		if usage == "" {
			usage = c.name
		}
		a.println("  " + a.ui.label.Render(usage) + c.help)
	}
}
