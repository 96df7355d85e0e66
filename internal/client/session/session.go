// Package session owns the client's authentication state.
//
// The client is optimistic: a credential is trusted until the backend rejects
// it. Nothing here decodes, validates or expiry-checks the credential; it is
// only stored, handed to the HTTP layer and discarded. Invalidation is always
// server-driven and reaches this package through Expire.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyCredential is returned by Establish for an empty credential.
var ErrEmptyCredential = errors.New("empty credential")

// Credential is the opaque bearer token issued by the backend.
type Credential string

// Redacted is safe to log.
func (c Credential) Redacted() string {
	if len(c) <= 8 {
		return "***"
	}
	return string(c[:4]) + "***"
}

// Session is a snapshot of the authentication state.
// Authenticated is true exactly when Credential is non-empty.
type Session struct {
	Authenticated bool
	Credential    Credential
}

func authenticated(c Credential) Session {
	return Session{Authenticated: true, Credential: c}
}

// TokenStore is the durable home of the credential (see package tokenstore).
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Context holds the single Session of the running client. It is the only
// component allowed to change it; everything else reads Current or
// subscribes to changes.
type Context struct {
	store TokenStore

	initOnce sync.Once
	initErr  error

	// mutate serializes Establish/Clear/Expire so subscribers see changes
	// in the order they happened.
	mutate sync.Mutex

	mu      sync.RWMutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

func New(store TokenStore) *Context {
	return &Context{store: store, subs: make(map[int]func(Session))}
}

// Initialize hydrates the session from the token store. Only the first call
// does anything; later calls return the first call's error.
func (c *Context) Initialize(ctx context.Context) error {
	c.initOnce.Do(func() {
		token, err := c.store.Load(ctx)
		if err != nil {
			c.initErr = fmt.Errorf("load credential: %w", err)
			return
		}
		if token == "" {
			return
		}
		c.mu.Lock()
		c.current = authenticated(Credential(token))
		c.mu.Unlock()
	})
	return c.initErr
}

// Current returns the session snapshot. It has no side effects.
func (c *Context) Current() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Establish makes cred the session credential, persists it and notifies
// subscribers before returning. If persisting fails the in-memory session is
// still established and the error is returned.
func (c *Context) Establish(ctx context.Context, cred Credential) error {
	if cred == "" {
		return ErrEmptyCredential
	}

	c.mutate.Lock()
	defer c.mutate.Unlock()

	s := authenticated(cred)
	c.set(s)

	var err error
	if serr := c.store.Save(ctx, string(cred)); serr != nil {
		err = fmt.Errorf("persist credential: %w", serr)
	}
	c.notify(s)
	return err
}

// Clear logs the session out and wipes the token store. Clearing an already
// cleared session only re-clears the store; subscribers are not notified
// again.
func (c *Context) Clear(ctx context.Context) error {
	c.mutate.Lock()
	defer c.mutate.Unlock()

	_, err := c.clearLocked(ctx)
	return err
}

// Expire clears the session only if cred is still the current credential.
// It reports whether this call did the clearing. Many requests rejected for
// the same credential therefore clear exactly once, and a late rejection of
// an old credential never logs out a newer one.
func (c *Context) Expire(ctx context.Context, cred Credential) bool {
	c.mutate.Lock()
	defer c.mutate.Unlock()

	if cred == "" || c.Current().Credential != cred {
		return false
	}
	changed, _ := c.clearLocked(ctx)
	return changed
}

func (c *Context) clearLocked(ctx context.Context) (bool, error) {
	was := c.Current().Authenticated
	c.set(Session{})

	var err error
	if serr := c.store.Clear(ctx); serr != nil {
		err = fmt.Errorf("clear credential: %w", serr)
	}
	if was {
		c.notify(Session{})
	}
	return was, err
}

// Subscribe registers fn to be called synchronously after every session
// change. fn must not call Establish, Clear or Expire. The returned func
// removes the subscription.
func (c *Context) Subscribe(fn func(Session)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Context) set(s Session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}

func (c *Context) notify(s Session) {
	c.mu.RLock()
	fns := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(s)
	}
}
