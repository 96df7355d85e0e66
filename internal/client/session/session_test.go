package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	token  string
	saves  int
	clears int
	loads  int

	saveErr  error
	loadErr  error
	clearErr error
}

func (m *memStore) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	return nil
}

func (m *memStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.token, m.loadErr
}

func (m *memStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.token = ""
	return nil
}

func TestInitialize_EmptyStore(t *testing.T) {
	c := New(&memStore{})
	require.NoError(t, c.Initialize(context.Background()))
	require.Equal(t, Session{}, c.Current())
}

func TestInitialize_HydratesPersistedCredential(t *testing.T) {
	store := &memStore{token: "persisted"}
	c := New(store)

	require.NoError(t, c.Initialize(context.Background()))
	require.Equal(t, Session{Authenticated: true, Credential: "persisted"}, c.Current())
}

func TestInitialize_RunsOnce(t *testing.T) {
	store := &memStore{token: "first"}
	c := New(store)
	ctx := context.Background()

	require.NoError(t, c.Initialize(ctx))
	store.token = "second"
	require.NoError(t, c.Initialize(ctx))

	require.Equal(t, 1, store.loads)
	require.Equal(t, Credential("first"), c.Current().Credential)
}

func TestInitialize_LoadError(t *testing.T) {
	boom := errors.New("disk")
	c := New(&memStore{loadErr: boom})

	err := c.Initialize(context.Background())
	require.ErrorIs(t, err, boom)
	require.False(t, c.Current().Authenticated)
}

func TestEstablish_ThenCurrent(t *testing.T) {
	store := &memStore{}
	c := New(store)

	require.NoError(t, c.Establish(context.Background(), "tok"))

	require.Equal(t, Session{Authenticated: true, Credential: "tok"}, c.Current())
	require.Equal(t, "tok", store.token)
}

func TestEstablish_RejectsEmpty(t *testing.T) {
	store := &memStore{}
	c := New(store)

	require.ErrorIs(t, c.Establish(context.Background(), ""), ErrEmptyCredential)
	require.False(t, c.Current().Authenticated)
	require.Zero(t, store.saves)
}

func TestEstablish_PersistFailureKeepsSession(t *testing.T) {
	boom := errors.New("read-only")
	c := New(&memStore{saveErr: boom})

	err := c.Establish(context.Background(), "tok")
	require.ErrorIs(t, err, boom)
	require.True(t, c.Current().Authenticated)
}

func TestEstablish_NotifiesBeforeReturning(t *testing.T) {
	c := New(&memStore{})
	var seen []Session
	c.Subscribe(func(s Session) { seen = append(seen, s) })

	require.NoError(t, c.Establish(context.Background(), "tok"))

	require.Equal(t, []Session{{Authenticated: true, Credential: "tok"}}, seen)
}

func TestClear_ThenCurrent(t *testing.T) {
	store := &memStore{}
	c := New(store)
	ctx := context.Background()
	require.NoError(t, c.Establish(ctx, "tok"))

	require.NoError(t, c.Clear(ctx))

	require.Equal(t, Session{}, c.Current())
	require.Empty(t, store.token)
}

func TestClear_Idempotent(t *testing.T) {
	store := &memStore{}
	c := New(store)
	ctx := context.Background()
	var notified int
	c.Subscribe(func(Session) { notified++ })

	require.NoError(t, c.Establish(ctx, "tok"))
	require.NoError(t, c.Clear(ctx))
	require.NoError(t, c.Clear(ctx))
	require.NoError(t, New(&memStore{}).Clear(ctx), "clear when never logged in")

	require.Equal(t, Session{}, c.Current())
	require.Equal(t, 2, notified, "one establish + one effective clear")
	require.Equal(t, 2, store.clears, "store clear is re-confirmed")
}

func TestClear_StoreErrorStillLogsOut(t *testing.T) {
	boom := errors.New("locked")
	c := New(&memStore{clearErr: boom})
	ctx := context.Background()
	require.NoError(t, c.Establish(ctx, "tok"))

	require.ErrorIs(t, c.Clear(ctx), boom)
	require.False(t, c.Current().Authenticated)
}

func TestExpire_OnlyMatchingCredential(t *testing.T) {
	c := New(&memStore{})
	ctx := context.Background()
	require.NoError(t, c.Establish(ctx, "old"))
	require.NoError(t, c.Establish(ctx, "new"))

	require.False(t, c.Expire(ctx, "old"), "stale rejection must not clear a newer login")
	require.True(t, c.Current().Authenticated)

	require.True(t, c.Expire(ctx, "new"))
	require.False(t, c.Current().Authenticated)

	require.False(t, c.Expire(ctx, "new"))
	require.False(t, c.Expire(ctx, ""))
}

func TestExpire_ConcurrentClearsExactlyOnce(t *testing.T) {
	store := &memStore{}
	c := New(store)
	ctx := context.Background()
	require.NoError(t, c.Establish(ctx, "tok"))

	var notified, cleared atomic.Int32
	c.Subscribe(func(s Session) {
		if !s.Authenticated {
			notified.Add(1)
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Expire(ctx, "tok") {
				cleared.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, cleared.Load())
	require.EqualValues(t, 1, notified.Load())
	require.Equal(t, 1, store.clears)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := New(&memStore{})
	var n int
	unsubscribe := c.Subscribe(func(Session) { n++ })

	require.NoError(t, c.Establish(context.Background(), "a"))
	unsubscribe()
	require.NoError(t, c.Establish(context.Background(), "b"))

	require.Equal(t, 1, n)
}

func TestCredential_Redacted(t *testing.T) {
	require.Equal(t, "***", Credential("short").Redacted())
	require.Equal(t, "eyJh***", Credential("eyJhbGciOiJIUzI1NiJ9").Redacted())
}
