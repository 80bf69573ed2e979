// Package resolver turns nostr content keys (event ids, author pubkeys,
// article coordinates) into event and profile documents by querying a set of
// unreliable relays under a time budget, with one expansion retry and a TTL
// cache over profile results.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Hubmakerlabs/resolvr/pkg/cache"
	"github.com/Hubmakerlabs/resolvr/pkg/relays"
	"github.com/nbd-wtf/go-nostr"
)

// Event is a resolved event, optionally carrying its author's resolved
// profile. Author is nil whenever the enrichment lookup failed or found
// nothing; that never fails the primary resolution. The raw event is a
// named field rather than embedded so its easyjson marshaller doesn't
// swallow the author on serialization.
type Event struct {
	Event  *nostr.Event `json:"event"`
	Author *Profile     `json:"author,omitempty"`
}

// Options are the per-query policy knobs, all optional.
type Options struct {
	// QueryTimeout bounds the first query pass.
	QueryTimeout time.Duration
	// ProfileTimeout bounds profile metadata queries, defaulting to
	// QueryTimeout.
	ProfileTimeout time.Duration
	// RetryTimeout bounds the expansion retry pass, usually longer to
	// afford the wider fan-out.
	RetryTimeout time.Duration
	// ProfileTTL is the lifetime of cached profile results.
	ProfileTTL time.Duration
	// SweepInterval is the cadence of the profile cache sweeper.
	SweepInterval time.Duration
}

const (
	defaultQueryTimeout  = 3 * time.Second
	defaultRetryTimeout  = 5 * time.Second
	defaultProfileTTL    = time.Minute
	defaultSweepInterval = 5 * time.Minute
)

func (o *Options) fill() {
	if o.QueryTimeout <= 0 {
		o.QueryTimeout = defaultQueryTimeout
	}
	if o.ProfileTimeout <= 0 {
		o.ProfileTimeout = o.QueryTimeout
	}
	if o.RetryTimeout <= 0 {
		o.RetryTimeout = defaultRetryTimeout
	}
	if o.ProfileTTL <= 0 {
		o.ProfileTTL = defaultProfileTTL
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = defaultSweepInterval
	}
}

// Engine is the resolution façade. Many resolutions may be in flight at
// once; the only shared mutable state is the profile cache, everything else
// is immutable after construction.
type Engine struct {
	sets     *relays.Sets
	coord    *Coordinator
	profiles *cache.TTL[*Profile]
	opt      Options
}

func NewEngine(sets *relays.Sets, q Querier, opt Options) *Engine {
	opt.fill()
	return &Engine{
		sets:     sets,
		coord:    &Coordinator{Q: q, All: sets.AllKnown()},
		profiles: cache.New[*Profile](),
		opt:      opt,
	}
}

// Start launches the profile cache sweeper. It returns immediately; the
// sweeper stops when c is done.
func (e *Engine) Start(c context.Context) {
	go e.profiles.Start(c, e.opt.SweepInterval)
}

// ResolveEvent finds the event with the given hex id. A found event is
// enriched with its author's profile when that sub-resolution succeeds;
// author lookup failures are absorbed. Returns (nil, nil) when no relay in
// the initial or expanded set has the event.
func (e *Engine) ResolveEvent(c context.Context, id string,
	hints []string) (res *Event, err error) {

	if id == "" {
		return nil, fmt.Errorf("%w: event id", ErrPrecondition)
	}
	var ev *nostr.Event
	ev, err = e.coord.Resolve(c, e.sets.ForEvents(hints),
		nostr.Filter{IDs: []string{id}, Limit: 1},
		e.opt.QueryTimeout, e.opt.RetryTimeout, "event "+id)
	if err != nil || ev == nil {
		return nil, err
	}
	res = &Event{Event: ev}
	res.Author = e.authorOf(c, ev.PubKey, hints)
	return
}

// ResolveProfile finds the newest metadata event for pubkey, parsed into a
// Profile. Cache first: a hit returns without touching any relay.
func (e *Engine) ResolveProfile(c context.Context, pubkey string,
	hints []string) (p *Profile, err error) {

	if pubkey == "" {
		return nil, fmt.Errorf("%w: pubkey", ErrPrecondition)
	}
	var ok bool
	if p, ok = e.profiles.Get(pubkey); ok {
		return
	}
	var ev *nostr.Event
	ev, err = e.coord.Resolve(c, e.sets.ForProfiles(hints),
		nostr.Filter{
			Kinds:   []int{nostr.KindProfileMetadata},
			Authors: []string{pubkey},
			Limit:   1,
		},
		e.opt.ProfileTimeout, e.opt.RetryTimeout, "profile "+pubkey)
	if err != nil || ev == nil {
		return nil, err
	}
	p = ParseProfile(ev)
	// concurrent sets for the same pubkey race last-writer-wins, which is
	// fine: both hold independently fetched copies of the same record.
	e.profiles.Set(pubkey, p, e.opt.ProfileTTL)
	return
}

// ResolveArticle finds the addressable event (author, kind, d identifier).
// The author's profile is resolved concurrently with the article itself,
// the two target potentially different relay sets and must not serialize;
// both branches are joined before returning.
func (e *Engine) ResolveArticle(c context.Context, author, identifier string,
	kind int, hints []string) (res *Event, err error) {

	if author == "" || identifier == "" || kind <= 0 {
		return nil, fmt.Errorf("%w: article coordinate", ErrPrecondition)
	}
	var profile *Profile
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		profile = e.authorOf(c, author, hints)
	}()
	var ev *nostr.Event
	ev, err = e.coord.Resolve(c, e.sets.ForEvents(hints),
		nostr.Filter{
			Kinds:   []int{kind},
			Authors: []string{author},
			Tags:    nostr.TagMap{"d": []string{identifier}},
			Limit:   1,
		},
		e.opt.QueryTimeout, e.opt.RetryTimeout,
		fmt.Sprintf("article %d:%s:%s", kind, author, identifier))
	wg.Wait()
	if err != nil || ev == nil {
		return nil, err
	}
	res = &Event{Event: ev, Author: profile}
	return
}

// authorOf is the enrichment path: resolve the author's profile, absorbing
// every failure into a nil result.
func (e *Engine) authorOf(c context.Context, pubkey string,
	hints []string) *Profile {

	if pubkey == "" {
		return nil
	}
	p, err := e.ResolveProfile(c, pubkey, hints)
	if err != nil {
		log.D.F("author profile %s: %v", pubkey, err)
		return nil
	}
	return p
}
