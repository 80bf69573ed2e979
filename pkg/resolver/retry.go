package resolver

import (
	"context"
	"time"

	"github.com/Hubmakerlabs/resolvr/pkg/relays"
	"github.com/nbd-wtf/go-nostr"
)

// Coordinator wraps a Querier with a single expansion retry: a miss against
// the initial relay set is requeried once against the full known relay
// universe. Worst case latency is timeout + retryTimeout, two round-trip
// budgets, while cold lookups whose record isn't on the hinted or default
// relays get a second chance.
type Coordinator struct {
	Q Querier
	// All is the full relay universe used for the expansion pass.
	All []string
}

// Resolve queries urls with timeout, then on a miss queries the union of
// urls and the known universe with retryTimeout, exactly once. If the union
// is no larger than the initial set the miss is terminal. Note this skips a
// retry that could have papered over a transient failure of a relay already
// in the set; always retrying would double worst case latency on every cold
// miss, so the narrower trigger stands. label only decorates logs.
func (r *Coordinator) Resolve(c context.Context, urls []string,
	f nostr.Filter, timeout, retryTimeout time.Duration,
	label string) (ev *nostr.Event, err error) {

	if ev, err = r.Q.Query(c, urls, f, timeout); err != nil || ev != nil {
		return
	}
	expanded := relays.Union(urls, r.All)
	if len(expanded) <= len(urls) {
		log.T.F("%s: miss, no wider relay set to try", label)
		return nil, nil
	}
	log.D.F("%s: miss on %d relays, retrying against %d", label, len(urls),
		len(expanded))
	return r.Q.Query(c, expanded, f, retryTimeout)
}
