package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nbd-wtf/go-nostr"
)

func TestClosedClientSignalsTransportError(t *testing.T) {
	cl := NewClient(context.Background())
	cl.Close()
	_, err := cl.Query(context.Background(), []string{"wss://a.example"},
		nostr.Filter{IDs: []string{"deadbeef"}}, time.Second)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error from a closed pool, got %v", err)
	}
}

func TestNilClientSignalsTransportError(t *testing.T) {
	var cl *Client
	_, err := cl.Query(context.Background(), nil, nostr.Filter{}, time.Second)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error from a nil client, got %v", err)
	}
}
