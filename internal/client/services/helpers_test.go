package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/jobtracker/internal/client/client"
)

// fakeDoer records requests and answers through respond, JSON round-tripping
// the returned value into out like the real client does.
type fakeDoer struct {
	mu      sync.Mutex
	calls   []client.Request
	respond func(req client.Request) (any, error)
}

func (f *fakeDoer) Do(_ context.Context, req client.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.respond == nil {
		return nil
	}
	resp, err := f.respond(req)
	if err != nil {
		return err
	}
	if out == nil || resp == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeDoer) Calls() []client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]client.Request(nil), f.calls...)
}

func data(v any) map[string]any {
	return map[string]any{"data": v}
}
