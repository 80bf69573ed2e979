package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

// Querier issues one bounded-time query against a relay set. A nil event
// with a nil error is the "not found" outcome; errors are reserved for the
// transport itself being unusable.
type Querier interface {
	Query(c context.Context, urls []string, f nostr.Filter,
		timeout time.Duration) (*nostr.Event, error)
}

// Client is the relay query client. It owns the one long-lived connection
// pool shared by every resolution in the process; connections are reused
// across queries and torn down only by Close.
type Client struct {
	pool   *nostr.SimplePool
	cancel context.CancelFunc
}

var _ Querier = (*Client)(nil)

// NewClient creates the shared relay pool. The pool lives until Close is
// called or c is canceled.
func NewClient(c context.Context) *Client {
	c, cancel := context.WithCancel(c)
	return &Client{
		pool:   nostr.NewSimplePool(c),
		cancel: cancel,
	}
}

// Close tears down the pool and every relay connection in it.
func (cl *Client) Close() {
	if cl != nil && cl.cancel != nil {
		cl.cancel()
	}
}

// Query subscribes the filter on every relay in urls and returns the first
// structurally valid match for by-id filters, or the newest match by
// created_at otherwise (kind 0 and 3xxxx are replaceable, relays may hold
// different revisions). Individual relay failures are absorbed by the pool;
// only a dead pool surfaces as an error. Never blocks past timeout plus
// bounded network overhead.
func (cl *Client) Query(c context.Context, urls []string, f nostr.Filter,
	timeout time.Duration) (ev *nostr.Event, err error) {

	if cl == nil || cl.pool == nil {
		return nil, fmt.Errorf("%w: pool not initialized", ErrTransport)
	}
	select {
	case <-cl.pool.Context.Done():
		return nil, fmt.Errorf("%w: pool closed", ErrTransport)
	default:
	}
	c, cancel := context.WithTimeout(c, timeout)
	defer cancel()
	byID := len(f.IDs) > 0
	for ie := range cl.pool.SubManyEose(c, urls, nostr.Filters{f}) {
		if ie.Event == nil {
			continue
		}
		if byID {
			return ie.Event, nil
		}
		if ev == nil || ie.CreatedAt > ev.CreatedAt {
			ev = ie.Event
		}
	}
	return
}
