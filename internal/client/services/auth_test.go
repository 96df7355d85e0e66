package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	loginCred session.Credential
	loginErr  error
	lastEmail string
	lastPass  string

	signupCred session.Credential
	signupErr  error
	lastReg    models.Registration
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (session.Credential, error) {
	f.lastEmail, f.lastPass = email, password
	return f.loginCred, f.loginErr
}

func (f *fakeAuthAPI) Signup(_ context.Context, reg models.Registration) (session.Credential, error) {
	f.lastReg = reg
	return f.signupCred, f.signupErr
}

type fakeSessionWriter struct {
	established  []session.Credential
	establishErr error
	clears       int
	clearErr     error
}

func (f *fakeSessionWriter) Establish(_ context.Context, cred session.Credential) error {
	if cred == "" {
		return session.ErrEmptyCredential
	}
	f.established = append(f.established, cred)
	return f.establishErr
}

func (f *fakeSessionWriter) Clear(context.Context) error {
	f.clears++
	return f.clearErr
}

func TestAuthService_LoginEstablishesOnce(t *testing.T) {
	api := &fakeAuthAPI{loginCred: "tok"}
	sess := &fakeSessionWriter{}
	svc := NewAuthService(api, sess, nil)

	require.NoError(t, svc.Login(context.Background(), Form{"email": " a@b.c ", "password": " pw "}))
	assert.Equal(t, []session.Credential{"tok"}, sess.established)
	assert.Equal(t, "a@b.c", api.lastEmail)
	assert.Equal(t, " pw ", api.lastPass)
}

func TestAuthService_LoginFailureDoesNotEstablish(t *testing.T) {
	api := &fakeAuthAPI{loginErr: &client.APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}}
	sess := &fakeSessionWriter{}
	svc := NewAuthService(api, sess, nil)

	err := svc.Login(context.Background(), Form{"email": "a@b.c", "password": "bad"})
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Invalid credentials", client.Message(err, ""))
	assert.Empty(t, sess.established)
}

func TestAuthService_LoginInvalidFormSendsNothing(t *testing.T) {
	api := &fakeAuthAPI{loginCred: "tok"}
	sess := &fakeSessionWriter{}
	svc := NewAuthService(api, sess, nil)

	err := svc.Login(context.Background(), Form{"email": "a@b.c"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, api.lastEmail)
	assert.Empty(t, sess.established)
}

func TestAuthService_PersistFailureStillSignsIn(t *testing.T) {
	api := &fakeAuthAPI{loginCred: "tok"}
	sess := &fakeSessionWriter{establishErr: errors.New("disk full")}
	svc := NewAuthService(api, sess, nil)

	require.NoError(t, svc.Login(context.Background(), Form{"email": "a@b.c", "password": "pw"}))
	assert.Len(t, sess.established, 1)
}

func TestAuthService_EmptyTokenFails(t *testing.T) {
	api := &fakeAuthAPI{}
	svc := NewAuthService(api, &fakeSessionWriter{}, nil)

	err := svc.Login(context.Background(), Form{"email": "a@b.c", "password": "pw"})
	require.ErrorIs(t, err, session.ErrEmptyCredential)
}

func TestAuthService_Register(t *testing.T) {
	api := &fakeAuthAPI{signupCred: "new"}
	sess := &fakeSessionWriter{}
	svc := NewAuthService(api, sess, nil)

	form := Form{
		"frstname": "Ann", "lastname": "Lee", "email": "ann@example.com", "password": "pw",
		"skills": "go, sql", "portfolio_url": "https://ann.dev",
	}
	require.NoError(t, svc.Register(context.Background(), form))

	assert.Equal(t, []session.Credential{"new"}, sess.established)
	assert.Equal(t, "Ann", api.lastReg.FirstName)
	assert.Equal(t, "ann@example.com", api.lastReg.Email)
	assert.Equal(t, "pw", api.lastReg.Password)
	assert.Equal(t, "https://ann.dev", api.lastReg.PortfolioURL)
}

func TestAuthService_RegisterRequiresNames(t *testing.T) {
	api := &fakeAuthAPI{signupCred: "new"}
	svc := NewAuthService(api, &fakeSessionWriter{}, nil)

	err := svc.Register(context.Background(), Form{"email": "ann@example.com", "password": "pw"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, api.lastReg.Email)
}

func TestAuthService_Logout(t *testing.T) {
	sess := &fakeSessionWriter{}
	svc := NewAuthService(&fakeAuthAPI{}, sess, nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, sess.clears)

	sess.clearErr = errors.New("locked")
	require.Error(t, svc.Logout(context.Background()))
}
