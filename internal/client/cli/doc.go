// Package cli is the interactive jobtracker client.
//
// App wires configuration, the token store, the session and the HTTP
// adapter, then serves a REPL. Every screen is a view bound to a route;
// moving between views goes through the navigation guard, so protected
// views are never shown to a signed-out session. A view is rebuilt on each
// navigation and drops results of requests it started once the user has
// moved on.
//
// Global commands (help, go, login, dashboard, logout, ...) work
// everywhere; a view may add its own (add, edit, delete, ...), which take
// precedence. After each command the guard is re-checked, so a session
// cleared by a backend rejection redirects to the login view.
package cli
