package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// fakeQuerier scripts relay responses and counts calls, standing in for the
// pool-backed client. Queries may arrive concurrently.
type fakeQuerier struct {
	mu    sync.Mutex
	calls int
	fn    func(urls []string, f nostr.Filter) (*nostr.Event, error)
}

func (q *fakeQuerier) Query(c context.Context, urls []string, f nostr.Filter,
	timeout time.Duration) (*nostr.Event, error) {

	q.mu.Lock()
	q.calls++
	q.mu.Unlock()
	return q.fn(urls, f)
}

func contains(urls []string, u string) bool {
	for _, have := range urls {
		if have == u {
			return true
		}
	}
	return false
}

func TestRetryNotIssuedWhenSetAlreadyCoversUniverse(t *testing.T) {
	all := []string{"wss://a", "wss://b"}
	q := &fakeQuerier{fn: func([]string, nostr.Filter) (*nostr.Event, error) {
		return nil, nil
	}}
	r := &Coordinator{Q: q, All: all}
	ev, err := r.Resolve(context.Background(), all, nostr.Filter{},
		time.Second, time.Second, "test")
	if err != nil {
		t.Fatal(err)
	}
	if ev != nil {
		t.Fatal("expected a miss")
	}
	if q.calls != 1 {
		t.Fatalf("expected exactly one query, got %d", q.calls)
	}
}

func TestRetryFindsRecordOnlyInExpandedSet(t *testing.T) {
	hidden := &nostr.Event{ID: "deadbeef"}
	q := &fakeQuerier{fn: func(urls []string, _ nostr.Filter) (*nostr.Event,
		error) {

		if contains(urls, "wss://far") {
			return hidden, nil
		}
		return nil, nil
	}}
	r := &Coordinator{Q: q, All: []string{"wss://near", "wss://far"}}
	ev, err := r.Resolve(context.Background(), []string{"wss://near"},
		nostr.Filter{}, time.Second, time.Second, "test")
	if err != nil {
		t.Fatal(err)
	}
	if ev != hidden {
		t.Fatalf("expected the hidden event, got %v", ev)
	}
	if q.calls != 2 {
		t.Fatalf("expected the record only after the expanded query, got %d calls",
			q.calls)
	}
}

func TestNoRetryAfterHit(t *testing.T) {
	found := &nostr.Event{ID: "abc"}
	q := &fakeQuerier{fn: func([]string, nostr.Filter) (*nostr.Event, error) {
		return found, nil
	}}
	r := &Coordinator{Q: q, All: []string{"wss://a", "wss://b"}}
	ev, err := r.Resolve(context.Background(), []string{"wss://a"},
		nostr.Filter{}, time.Second, time.Second, "test")
	if err != nil || ev != found {
		t.Fatalf("got %v %v", ev, err)
	}
	if q.calls != 1 {
		t.Fatalf("hit must not pay retry cost, got %d calls", q.calls)
	}
}

func TestTransportErrorNotRetried(t *testing.T) {
	q := &fakeQuerier{fn: func([]string, nostr.Filter) (*nostr.Event, error) {
		return nil, ErrTransport
	}}
	r := &Coordinator{Q: q, All: []string{"wss://a", "wss://b"}}
	if _, err := r.Resolve(context.Background(), []string{"wss://a"},
		nostr.Filter{}, time.Second, time.Second, "test"); err == nil {

		t.Fatal("transport error must propagate")
	}
	if q.calls != 1 {
		t.Fatalf("transport errors are not retried here, got %d calls", q.calls)
	}
}
