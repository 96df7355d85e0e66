package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validApplication() Form {
	return Form{"company_name": "Acme", "job_title": "Dev", "application_date": "2026-10-01", "status": "applied"}
}

func TestResource_List(t *testing.T) {
	d := &fakeDoer{respond: func(req client.Request) (any, error) {
		return data([]map[string]any{{"id": 1, "company_name": "Acme"}, {"id": 2, "company_name": "Globex"}}), nil
	}}
	apps := NewApplications(d)

	items, err := apps.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.ID("2"), items[1].ID)

	calls := d.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/applications/get", calls[0].Path)
}

func TestResource_Get(t *testing.T) {
	d := &fakeDoer{respond: func(req client.Request) (any, error) {
		return data(map[string]any{"id": 9, "job_title": "Dev"}), nil
	}}

	app, err := NewApplications(d).Get(context.Background(), "9")
	require.NoError(t, err)
	assert.Equal(t, "Dev", app.JobTitle)
	assert.Equal(t, "/applications/getById/9", d.Calls()[0].Path)
}

func TestResource_CreateInvalidSendsNothing(t *testing.T) {
	d := &fakeDoer{}
	form := validApplication()
	delete(form, "job_title")

	_, err := NewApplications(d).Create(context.Background(), form)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, d.Calls())
}

func TestResource_Create(t *testing.T) {
	d := &fakeDoer{respond: func(req client.Request) (any, error) {
		return data(map[string]any{"id": 5, "company_name": "Acme", "job_title": "Dev"}), nil
	}}

	app, err := NewApplications(d).Create(context.Background(), validApplication())
	require.NoError(t, err)
	assert.Equal(t, models.ID("5"), app.ID)

	call := d.Calls()[0]
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/applications/create", call.Path)
	assert.Equal(t, map[string]string{
		"company_name": "Acme", "job_title": "Dev", "application_date": "2026-10-01", "status": "applied", "notes": "",
	}, call.Body)
}

func TestResource_UpdateAndDelete(t *testing.T) {
	d := &fakeDoer{}
	companies := NewCompanies(d)
	ctx := context.Background()

	require.NoError(t, companies.Update(ctx, "3", Form{"company_name": "Acme"}))
	require.NoError(t, companies.Delete(ctx, "3"))

	calls := d.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[0].Method)
	assert.Equal(t, "/companies/3", calls[0].Path)
	assert.Equal(t, http.MethodDelete, calls[1].Method)
	assert.Equal(t, "/companies/3", calls[1].Path)
	assert.Nil(t, calls[1].Body)
}

func TestResource_Unsupported(t *testing.T) {
	d := &fakeDoer{}
	ctx := context.Background()

	_, err := NewCompanies(d).Get(ctx, "1")
	require.ErrorIs(t, err, ErrUnsupported)

	err = NewSavedJobs(d).Update(ctx, "1", Form{"company_id": "1", "job_title": "Dev"})
	require.ErrorIs(t, err, ErrUnsupported)

	assert.Empty(t, d.Calls())
}

func TestResource_BackendErrorIsWrapped(t *testing.T) {
	d := &fakeDoer{respond: func(req client.Request) (any, error) {
		return nil, &client.APIError{Method: req.Method, Path: req.Path, StatusCode: http.StatusNotFound, Message: "Application not found"}
	}}

	_, err := NewApplications(d).Get(context.Background(), "404")
	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Application not found", client.Message(err, ""))
}

func TestResource_CreateWithRuntimeOptions(t *testing.T) {
	d := &fakeDoer{}
	jobs := NewSavedJobs(d)
	schema := jobs.Schema().WithOptions("company_id", []string{"7"})

	_, err := jobs.CreateWith(context.Background(), schema, Form{"company_id": "8", "job_title": "Dev"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, d.Calls())

	_, err = jobs.CreateWith(context.Background(), schema, Form{"company_id": "7", "job_title": "Dev"})
	require.NoError(t, err)
	assert.Equal(t, "/saved-jobs", d.Calls()[0].Path)
	assert.Equal(t, "saved job", jobs.Name())
}
