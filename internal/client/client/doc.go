// Package client talks to the jobtracker backend.
//
// # Overview
//
// HTTPClient is the single outbound path of the client. For every request
// it reads the current session credential and, if there is one, sends it as
// a bearer token. Responses are normalized so callers only ever see a
// decoded success value or one of the errors below; no raw transport error
// crosses this boundary unclassified.
//
// A 401 or 403 response expires the session centrally (compare-and-clear on
// the credential that was sent), so every view observes one source of truth
// and the navigation guard redirects to the login view on the next render.
// Requests are never retried.
//
// API wraps the endpoints that are not plain resource CRUD (auth, profile,
// search, upload, notes, reminders, dashboard). The generic resource CRUD
// lives in package services on top of GetData and SendData.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) used by the default token store.
//
// # Error Handling
//
// Match with errors.Is:
//   - ErrUnavailable:  no response (network failure, timeout)
//   - ErrUnauthorized: 401/403
//   - ErrNotFound:     404
//   - ErrServer:       any other non-2xx, or a malformed 2xx body
//
// Use errors.As with *APIError for the status code and backend message.
package client
