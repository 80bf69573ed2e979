// Package relays builds and holds the relay lists the resolver queries,
// partitioned by purpose. The lists are constructed once at startup and are
// immutable afterwards.
package relays

import (
	"strings"

	"github.com/nbd-wtf/go-nostr"
)

// DefaultRelays is the built-in fallback used when no valid relay is
// configured for a purpose.
var DefaultRelays = []string{
	"wss://relay.damus.io",
	"wss://nos.lol",
	"wss://relay.nostr.band",
	"wss://nostr.mom",
	"wss://relay.snort.social",
}

// Sets holds the purpose-partitioned default relay lists.
type Sets struct {
	event   []string
	profile []string
}

// New builds the event and profile relay sets from comma separated
// configuration strings. An empty or entirely invalid profile list falls
// back to the event list, and both fall back to DefaultRelays.
func New(eventCSV, profileCSV string) *Sets {
	ev := Build(eventCSV, DefaultRelays)
	return &Sets{
		event:   ev,
		profile: Build(profileCSV, ev),
	}
}

// Build splits a comma separated relay list, normalizes each entry and drops
// anything that doesn't come out as a websocket URL. If nothing valid
// remains the fallback is returned unchanged.
func Build(csv string, fallback []string) (out []string) {
	for _, raw := range strings.Split(csv, ",") {
		u := Normalize(raw)
		if u == "" {
			continue
		}
		out = appendUnique(out, u)
	}
	if len(out) == 0 {
		return fallback
	}
	return
}

// Normalize coerces a relay address to a canonical websocket URL, returning
// the empty string for anything that cannot be one.
func Normalize(raw string) string {
	u := nostr.NormalizeURL(strings.TrimSpace(raw))
	if !strings.HasPrefix(u, "wss://") && !strings.HasPrefix(u, "ws://") {
		return ""
	}
	return u
}

// ForEvents returns the relay set for an event query: normalized hints
// first, then the configured event relays, deduplicated.
func (s *Sets) ForEvents(hints []string) []string {
	return merge(hints, s.event)
}

// ForProfiles is ForEvents for profile metadata queries.
func (s *Sets) ForProfiles(hints []string) []string {
	return merge(hints, s.profile)
}

// AllKnown returns the union of every configured relay. It is the expansion
// universe for the retry pass and nothing else.
func (s *Sets) AllKnown() []string {
	return Union(s.event, s.profile)
}

// Union returns the order-preserving deduplicated union of two relay lists.
func Union(a, b []string) (out []string) {
	for _, u := range a {
		out = appendUnique(out, u)
	}
	for _, u := range b {
		out = appendUnique(out, u)
	}
	return
}

// merge is Union with the first list normalized and filtered, so caller
// supplied hints go through the same validation as configured relays. Hints
// stay in front so an ordering-sensitive transport contacts them first.
func merge(hints, defaults []string) (out []string) {
	for _, raw := range hints {
		u := Normalize(raw)
		if u == "" {
			continue
		}
		out = appendUnique(out, u)
	}
	for _, u := range defaults {
		out = appendUnique(out, u)
	}
	return
}

func appendUnique(list []string, u string) []string {
	for _, have := range list {
		if have == u {
			return list
		}
	}
	return append(list, u)
}
