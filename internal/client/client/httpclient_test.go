package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/jobtracker/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu    sync.Mutex
	token string
}

func (m *memStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func newSession(t *testing.T, cred session.Credential) (*session.Context, *memStore) {
	t.Helper()
	store := &memStore{token: string(cred)}
	s := session.New(store)
	require.NoError(t, s.Initialize(context.Background()))
	return s, store
}

func newTestClient(t *testing.T, srv *httptest.Server, sess SessionSource) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(Config{BaseURL: srv.URL + "/api", Session: sess, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_Validation(t *testing.T) {
	sess, _ := newSession(t, "")

	_, err := NewHTTPClient(Config{Session: sess})
	require.Error(t, err)

	_, err = NewHTTPClient(Config{BaseURL: "http://localhost"})
	require.Error(t, err)

	c, err := NewHTTPClient(Config{BaseURL: "http://localhost/api/", Session: sess, RateLimit: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/api", c.baseURL)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}

func TestDo_InjectsBearerWhenAuthenticated(t *testing.T) {
	var gotAuth, gotReqID, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(RequestIDHeader)
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"data":{"id":1}}`)
	}))
	defer srv.Close()

	sess, _ := newSession(t, "tok-123456789")
	c := newTestClient(t, srv, sess)

	var out struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, c.Get(context.Background(), "/applications/get", nil, &out))
	assert.Equal(t, "Bearer tok-123456789", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "/api/applications/get", gotPath)
	assert.Equal(t, 1, out.Data.ID)
}

func TestDo_NoCredentialSendsUnauthenticated(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sess, _ := newSession(t, "")
	c := newTestClient(t, srv, sess)

	require.NoError(t, c.Post(context.Background(), "/auth/login", map[string]string{"email": "a@b.c"}, nil))
	assert.False(t, hasAuth)
}

func TestDo_AnonymousRejectionKeepsSession(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
	}))
	defer srv.Close()

	sess, store := newSession(t, "tok-abcdefghij")
	c := newTestClient(t, srv, sess)

	req := Request{Method: http.MethodPost, Path: "/auth/login", Body: map[string]string{"email": "a@b.c"}, Anonymous: true}
	err := c.Do(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, hasAuth)

	assert.Equal(t, session.Credential("tok-abcdefghij"), sess.Current().Credential)
	tok, _ := store.Load(context.Background())
	assert.Equal(t, "tok-abcdefghij", tok)
}

func TestDo_JSONBody(t *testing.T) {
	var ct, body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}))
	defer srv.Close()

	sess, _ := newSession(t, "")
	c := newTestClient(t, srv, sess)

	require.NoError(t, c.Put(context.Background(), "/profile", map[string]string{"frstname": "Ann"}, nil))
	assert.Equal(t, "application/json", ct)
	assert.JSONEq(t, `{"frstname":"Ann"}`, body)
}

func TestDo_UnauthorizedClearsSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = io.WriteString(w, `{"message":"token expired"}`)
			}))
			defer srv.Close()

			sess, store := newSession(t, "tok-abcdefghij")
			c := newTestClient(t, srv, sess)

			err := c.Get(context.Background(), "/applications/get", nil, nil)
			require.ErrorIs(t, err, ErrUnauthorized)
			assert.NotErrorIs(t, err, ErrServer)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, status, apiErr.StatusCode)
			assert.Equal(t, "token expired", apiErr.Message)

			assert.False(t, sess.Current().Authenticated)
			tok, _ := store.Load(context.Background())
			assert.Empty(t, tok)
		})
	}
}

func TestDo_ConcurrentUnauthorizedClearsOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sess, _ := newSession(t, "tok-abcdefghij")
	var clears atomic.Int32
	unsub := sess.Subscribe(func(s session.Session) {
		if !s.Authenticated {
			clears.Add(1)
		}
	})
	defer unsub()

	c := newTestClient(t, srv, sess)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Get(context.Background(), "/applications/get", nil, nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	assert.Equal(t, int32(1), clears.Load())
	assert.False(t, sess.Current().Authenticated)
}

func TestDo_StaleRejectionKeepsNewCredential(t *testing.T) {
	sess, _ := newSession(t, "old-credential")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the user signs in again while the old request is in flight
		_ = sess.Establish(context.Background(), "new-credential")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, sess)
	err := c.Get(context.Background(), "/profile", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)

	cur := sess.Current()
	assert.True(t, cur.Authenticated)
	assert.Equal(t, session.Credential("new-credential"), cur.Credential)
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantIs      error
		wantMessage string
	}{
		{"not found", http.StatusNotFound, "application/json", `{"message":"Application not found"}`, ErrNotFound, "Application not found"},
		{"server json", http.StatusInternalServerError, "application/json", `{"message":"db down"}`, ErrServer, "db down"},
		{"error field", http.StatusBadRequest, "application/json", `{"error":"email taken"}`, ErrServer, "email taken"},
		{"html page", http.StatusBadGateway, "text/html", `<html><head><title>502 Bad Gateway</title></head><body><h1>nginx</h1></body></html>`, ErrServer, "502 Bad Gateway"},
		{"html h1 only", http.StatusServiceUnavailable, "text/html", `<html><body><h1> Maintenance </h1></body></html>`, ErrServer, "Maintenance"},
		{"plain text", http.StatusInternalServerError, "text/plain", "  something\n broke  ", ErrServer, "something broke"},
		{"empty body", http.StatusInternalServerError, "", "", ErrServer, "Internal Server Error"},
		{"json without message", http.StatusConflict, "application/json", `{"ok":false}`, ErrServer, "Conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			sess, _ := newSession(t, "tok-abcdefghij")
			c := newTestClient(t, srv, sess)

			err := c.Get(context.Background(), "/x", nil, nil)
			require.ErrorIs(t, err, tt.wantIs)
			assert.NotErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, tt.wantMessage, Message(err, "fallback"))

			// only 401/403 touch the session
			assert.True(t, sess.Current().Authenticated)
		})
	}
}

func TestDo_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>not json</html>`)
	}))
	defer srv.Close()

	sess, _ := newSession(t, "")
	c := newTestClient(t, srv, sess)

	var out map[string]any
	err := c.Get(context.Background(), "/companies", nil, &out)
	require.ErrorIs(t, err, ErrServer)
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sess, _ := newSession(t, "tok-abcdefghij")
	c, err := NewHTTPClient(Config{BaseURL: url, Session: sess})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/profile", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.True(t, sess.Current().Authenticated)
	assert.Equal(t, "fallback", Message(err, "fallback"))
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	sess, _ := newSession(t, "")
	c, err := NewHTTPClient(Config{BaseURL: srv.URL, Session: sess, HTTPClient: srv.Client(), Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/slow", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_Multipart(t *testing.T) {
	var ct string
	files := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for field, hdrs := range r.MultipartForm.File {
			f, err := hdrs[0].Open()
			if err != nil {
				continue
			}
			b, _ := io.ReadAll(f)
			_ = f.Close()
			files[field] = hdrs[0].Filename + ":" + string(b)
		}
	}))
	defer srv.Close()

	sess, _ := newSession(t, "")
	c := newTestClient(t, srv, sess)

	err := c.PostMultipart(context.Background(), "/applications/7/upload", []FilePart{
		{Field: "resume", FileName: "cv.pdf", Content: strings.NewReader("cv-bytes")},
		{Field: "cover_letter", FileName: "cl.pdf", Content: strings.NewReader("cl-bytes")},
	}, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)
	assert.Equal(t, map[string]string{"resume": "cv.pdf:cv-bytes", "cover_letter": "cl.pdf:cl-bytes"}, files)
}

func TestDo_BodyAndFilesExclusive(t *testing.T) {
	sess, _ := newSession(t, "")
	c, err := NewHTTPClient(Config{BaseURL: "http://127.0.0.1:1", Session: sess})
	require.NoError(t, err)

	err = c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/x",
		Body:   map[string]string{},
		Files:  []FilePart{{Field: "f", FileName: "f", Content: strings.NewReader("")}},
	}, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestDo_RateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	sess, _ := newSession(t, "")
	c, err := NewHTTPClient(Config{BaseURL: srv.URL, Session: sess, HTTPClient: srv.Client(), RateLimit: 0.001})
	require.NoError(t, err)

	// the first request takes the only token
	require.NoError(t, c.Get(context.Background(), "/a", nil, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = c.Get(ctx, "/b", nil, nil)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestExtractMessage_Truncates(t *testing.T) {
	long := strings.Repeat("x", maxMessageLen+50)
	msg := extractMessage("text/plain", []byte(long), http.StatusInternalServerError)
	assert.Equal(t, strings.Repeat("x", maxMessageLen)+"…", msg)
}

func TestExtractMessage_TruncatesOnRuneBoundary(t *testing.T) {
	body := strings.Repeat("a", maxMessageLen-1) + strings.Repeat("é", 10)
	msg := extractMessage("text/plain", []byte(body), http.StatusInternalServerError)
	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, strings.Repeat("a", maxMessageLen-1)+"…", msg)
}
