package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"
)

// envelope is the {data: ...} wrapper of most backend responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

// GetData performs a GET and unwraps the {data} envelope.
func GetData[T any](ctx context.Context, d Doer, path string, query url.Values) (T, error) {
	var env envelope[T]
	err := d.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, &env)
	return env.Data, err
}

// SendData performs a request with a JSON body and unwraps the {data}
// envelope of the response.
func SendData[T any](ctx context.Context, d Doer, method, path string, body any) (T, error) {
	var env envelope[T]
	err := d.Do(ctx, Request{Method: method, Path: path, Body: body}, &env)
	return env.Data, err
}

// IDPath joins a path prefix with an escaped id, optionally followed by a
// suffix: IDPath("/applications/", id, "/notes").
func IDPath(prefix string, id models.ID, suffix ...string) string {
	p := prefix + url.PathEscape(id.String())
	for _, s := range suffix {
		p += s
	}
	return p
}

// API wraps the backend endpoints that are not plain resource CRUD.
type API struct {
	d Doer
}

func NewAPI(d Doer) *API {
	return &API{d: d}
}

// Doer returns the underlying request executor.
func (a *API) Doer() Doer { return a.d }

func (a *API) Login(ctx context.Context, email, password string) (session.Credential, error) {
	var resp models.TokenResponse
	req := Request{Method: http.MethodPost, Path: "/auth/login", Body: models.LoginRequest{Email: email, Password: password}, Anonymous: true}
	if err := a.d.Do(ctx, req, &resp); err != nil {
		return "", err
	}
	return tokenFrom(req, resp)
}

func (a *API) Signup(ctx context.Context, reg models.Registration) (session.Credential, error) {
	var resp models.TokenResponse
	req := Request{Method: http.MethodPost, Path: "/auth/signup", Body: reg, Anonymous: true}
	if err := a.d.Do(ctx, req, &resp); err != nil {
		return "", err
	}
	return tokenFrom(req, resp)
}

func tokenFrom(req Request, resp models.TokenResponse) (session.Credential, error) {
	if resp.Token == "" {
		return "", &APIError{Method: req.Method, Path: req.Path, StatusCode: http.StatusOK, Message: "no token in response"}
	}
	return session.Credential(resp.Token), nil
}

func (a *API) Profile(ctx context.Context) (models.Profile, error) {
	return GetData[models.Profile](ctx, a.d, "/profile", nil)
}

func (a *API) UpdateProfile(ctx context.Context, p models.Profile) error {
	return a.d.Do(ctx, Request{Method: http.MethodPut, Path: "/profile", Body: p}, nil)
}

func (a *API) DeleteProfile(ctx context.Context) error {
	return a.d.Do(ctx, Request{Method: http.MethodDelete, Path: "/profile"}, nil)
}

// SearchApplications sends every filter parameter, empty ones included.
func (a *API) SearchApplications(ctx context.Context, f models.ApplicationFilter) ([]models.Application, error) {
	q := url.Values{}
	q.Set("keyword", f.Keyword)
	q.Set("status", f.Status)
	q.Set("from", f.From)
	q.Set("to", f.To)
	return GetData[[]models.Application](ctx, a.d, "/applications/search", q)
}

// Attachment is a file to upload with an application.
type Attachment struct {
	FileName string
	Content  io.Reader
}

// UploadFiles sends the resume and/or cover letter of an application as a
// multipart form. Nil attachments are omitted.
func (a *API) UploadFiles(ctx context.Context, id models.ID, resume, coverLetter *Attachment) (models.Upload, error) {
	var files []FilePart
	if resume != nil {
		files = append(files, FilePart{Field: "resume", FileName: resume.FileName, Content: resume.Content})
	}
	if coverLetter != nil {
		files = append(files, FilePart{Field: "cover_letter", FileName: coverLetter.FileName, Content: coverLetter.Content})
	}
	if len(files) == 0 {
		return models.Upload{}, fmt.Errorf("upload: no files")
	}

	var env envelope[models.Upload]
	err := a.d.Do(ctx, Request{Method: http.MethodPost, Path: IDPath("/applications/", id, "/upload"), Files: files}, &env)
	return env.Data, err
}

func (a *API) Notes(ctx context.Context, appID models.ID) ([]models.Note, error) {
	return GetData[[]models.Note](ctx, a.d, IDPath("/applications/", appID, "/notes"), nil)
}

func (a *API) AddNote(ctx context.Context, appID models.ID, content string) (models.Note, error) {
	body := struct {
		Content string `json:"content"`
	}{content}
	return SendData[models.Note](ctx, a.d, http.MethodPost, IDPath("/applications/", appID, "/notes"), body)
}

func (a *API) CreateReminder(ctx context.Context, r models.Reminder) error {
	return a.d.Do(ctx, Request{Method: http.MethodPost, Path: "/reminders/create", Body: r}, nil)
}

func (a *API) Reminders(ctx context.Context) ([]models.Reminder, error) {
	return GetData[[]models.Reminder](ctx, a.d, "/reminders/get", nil)
}

// Overview is the only endpoint whose payload is not wrapped in {data}.
func (a *API) Overview(ctx context.Context) (models.Overview, error) {
	var o models.Overview
	err := a.d.Do(ctx, Request{Method: http.MethodGet, Path: "/dashboard/overview"}, &o)
	return o, err
}
