package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// ErrUnsupported is returned for an operation the resource has no
// endpoint for.
var ErrUnsupported = errors.New("operation not supported")

// Endpoints are the backend paths of a resource. Get, Update and Delete
// are prefixes the escaped ID is appended to. An empty path means the
// backend has no such operation.
type Endpoints struct {
	List   string
	Get    string
	Create string
	Update string
	Delete string
}

// Resource is CRUD over one backend resource. Every write is validated
// against the schema first; an invalid form is never sent.
type Resource[T any] struct {
	name      string
	d         client.Doer
	endpoints Endpoints
	schema    Schema
}

func NewResource[T any](name string, d client.Doer, endpoints Endpoints, schema Schema) *Resource[T] {
	return &Resource[T]{name: name, d: d, endpoints: endpoints, schema: schema}
}

func (r *Resource[T]) Name() string   { return r.name }
func (r *Resource[T]) Schema() Schema { return r.schema }

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	if r.endpoints.List == "" {
		return nil, r.unsupported("list")
	}
	items, err := client.GetData[[]T](ctx, r.d, r.endpoints.List, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id models.ID) (T, error) {
	var zero T
	if r.endpoints.Get == "" {
		return zero, r.unsupported("get")
	}
	item, err := client.GetData[T](ctx, r.d, client.IDPath(r.endpoints.Get, id), nil)
	if err != nil {
		return zero, fmt.Errorf("get %s %s: %w", r.name, id, err)
	}
	return item, nil
}

// Create validates and sends form and returns the created item as the
// backend echoes it. Backends that do not echo leave it zero.
func (r *Resource[T]) Create(ctx context.Context, form Form) (T, error) {
	return r.CreateWith(ctx, r.schema, form)
}

// CreateWith is Create with a per-call schema, e.g. one whose select
// options were filled at runtime.
func (r *Resource[T]) CreateWith(ctx context.Context, schema Schema, form Form) (T, error) {
	var zero T
	if r.endpoints.Create == "" {
		return zero, r.unsupported("create")
	}
	if err := schema.Validate(form); err != nil {
		return zero, err
	}
	item, err := client.SendData[T](ctx, r.d, http.MethodPost, r.endpoints.Create, schema.Body(form))
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", r.name, err)
	}
	return item, nil
}

func (r *Resource[T]) Update(ctx context.Context, id models.ID, form Form) error {
	if r.endpoints.Update == "" {
		return r.unsupported("update")
	}
	if err := r.schema.Validate(form); err != nil {
		return err
	}
	req := client.Request{Method: http.MethodPut, Path: client.IDPath(r.endpoints.Update, id), Body: r.schema.Body(form)}
	if err := r.d.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	return nil
}

func (r *Resource[T]) Delete(ctx context.Context, id models.ID) error {
	if r.endpoints.Delete == "" {
		return r.unsupported("delete")
	}
	req := client.Request{Method: http.MethodDelete, Path: client.IDPath(r.endpoints.Delete, id)}
	if err := r.d.Do(ctx, req, nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	return nil
}

func (r *Resource[T]) unsupported(op string) error {
	return fmt.Errorf("%s %s: %w", op, r.name, ErrUnsupported)
}

func NewApplications(d client.Doer) *Resource[models.Application] {
	return NewResource[models.Application]("application", d, Endpoints{
		List:   "/applications/get",
		Get:    "/applications/getById/",
		Create: "/applications/create",
		Update: "/applications/update/",
		Delete: "/applications/delete/",
	}, ApplicationSchema)
}

func NewCompanies(d client.Doer) *Resource[models.Company] {
	return NewResource[models.Company]("company", d, Endpoints{
		List:   "/companies",
		Create: "/companies",
		Update: "/companies/",
		Delete: "/companies/",
	}, CompanySchema)
}

func NewSavedJobs(d client.Doer) *Resource[models.SavedJob] {
	return NewResource[models.SavedJob]("saved job", d, Endpoints{
		List:   "/saved-jobs",
		Create: "/saved-jobs",
		Delete: "/saved-jobs/",
	}, SavedJobSchema)
}
