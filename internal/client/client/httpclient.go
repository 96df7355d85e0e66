package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/dmitrijs2005/jobtracker/internal/client/session"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// RequestIDHeader correlates client log lines with backend logs.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 10 << 20
	maxMessageLen    = 200
)

// SessionSource is the part of the session context the adapter needs.
type SessionSource interface {
	Current() session.Session
	Expire(ctx context.Context, cred session.Credential) bool
}

// Doer executes a backend request and decodes a 2xx body into out.
type Doer interface {
	Do(ctx context.Context, req Request, out any) error
}

// Request describes one backend call. Body is JSON-encoded; when Files is
// set the request is multipart instead and Body must be nil.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Files  []FilePart
	// Anonymous requests (login, signup) never carry the credential, so a
	// rejection of one leaves the session alone.
	Anonymous bool
}

// FilePart is one file field of a multipart request.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// Config holds the settings of an HTTPClient.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "http://localhost:5000/api".
	BaseURL string
	// Session supplies the credential and is expired on 401/403. Required.
	Session SessionSource
	// HTTPClient is the transport. If nil, a new http.Client is used.
	HTTPClient *http.Client
	// Logger receives request logs. If nil, logs are discarded.
	Logger logging.Logger
	// Timeout bounds each request; zero leaves it to the transport.
	Timeout time.Duration
	// RateLimit caps requests per second; zero disables the limiter.
	RateLimit float64
}

// HTTPClient is the credential-injecting adapter in front of the backend.
// It is safe for concurrent use.
type HTTPClient struct {
	baseURL    string
	session    SessionSource
	httpClient *http.Client
	logger     logging.Logger
	timeout    time.Duration
	limiter    *rate.Limiter
}

func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: BaseURL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("client: invalid BaseURL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Session == nil {
		return nil, fmt.Errorf("client: Session is required")
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		session:    cfg.Session,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		timeout:    cfg.Timeout,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

func (c *HTTPClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *HTTPClient) PostMultipart(ctx context.Context, path string, files []FilePart, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Files: files}, out)
}

// Do sends req and decodes a 2xx body into out (skipped when out is nil or
// the body is empty). See the package doc for the error contract.
func (c *HTTPClient) Do(ctx context.Context, req Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return fmt.Errorf("client: encode %s %s: %w", req.Method, req.Path, err)
	}

	requestURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		requestURL += "?" + req.Query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, requestURL, body)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", req.Method, req.Path, err)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Read once: every header of this request carries the same credential,
	// and that is the one expired if the backend rejects it.
	var cred session.Credential
	if !req.Anonymous {
		cred = c.session.Current().Credential
	}
	if cred != "" {
		httpReq.Header.Set("Authorization", "Bearer "+string(cred))
	}

	log := c.logger.With("method", req.Method, "path", req.Path, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Warn(ctx, "response read failed", "status", resp.StatusCode, "error", err)
		return fmt.Errorf("%w: %s %s: read body: %w", ErrUnavailable, req.Method, req.Path, err)
	}
	log.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
			return nil
		}
		if err := json.Unmarshal(respBody, out); err != nil {
			log.Warn(ctx, "malformed response", "error", err)
			return &APIError{Method: req.Method, Path: req.Path, StatusCode: resp.StatusCode, Message: "malformed response from server"}
		}
		return nil
	}

	apiErr := &APIError{
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: resp.StatusCode,
		Message:    extractMessage(resp.Header.Get("Content-Type"), respBody, resp.StatusCode),
	}

	if isUnauthorized(resp.StatusCode) && cred != "" {
		if c.session.Expire(ctx, cred) {
			log.Warn(ctx, "credential rejected, session cleared", "status", resp.StatusCode, "credential", cred.Redacted())
		}
	}
	return apiErr
}

func encodeBody(req Request) (io.Reader, string, error) {
	if len(req.Files) > 0 {
		if req.Body != nil {
			return nil, "", fmt.Errorf("body and files are mutually exclusive")
		}
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for _, f := range req.Files {
			part, err := w.CreateFormFile(f.Field, f.FileName)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, "", fmt.Errorf("copy %s: %w", f.Field, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		// the writer picked the boundary, so it also names the content type
		return &buf, w.FormDataContentType(), nil
	}

	if req.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// extractMessage pulls a human message out of an error response: the JSON
// "message" (or "error") field, the title of an HTML error page, or the
// start of a plain-text body. It falls back to the status text.
func extractMessage(contentType string, body []byte, status int) string {
	trimmed := bytes.TrimSpace(body)
	fallback := http.StatusText(status)
	if len(trimmed) == 0 {
		return fallback
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(trimmed, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return fallback
	}

	if strings.Contains(contentType, "html") || trimmed[0] == '<' {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed))
		if err != nil {
			return fallback
		}
		for _, sel := range []string{"title", "h1"} {
			if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
				return truncate(text)
			}
		}
		return fallback
	}

	return truncate(string(trimmed))
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxMessageLen {
		return s
	}
	n := maxMessageLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
