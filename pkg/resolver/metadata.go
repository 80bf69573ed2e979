package resolver

import (
	"encoding/json"

	"github.com/nbd-wtf/go-nostr"
)

// Metadata is the parsed content of a kind 0 event. Every field may be
// empty.
type Metadata struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	About       string `json:"about,omitempty"`
	Website     string `json:"website,omitempty"`
	Picture     string `json:"picture,omitempty"`
	Banner      string `json:"banner,omitempty"`
	NIP05       string `json:"nip05,omitempty"`
	LUD16       string `json:"lud16,omitempty"`
}

// Profile is a kind 0 event together with its parsed content.
type Profile struct {
	PubKey string       `json:"pubkey"`
	Event  *nostr.Event `json:"event,omitempty"`
	Metadata
}

// ShortName returns the best human name available for the profile.
func (p *Profile) ShortName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Name != "" {
		return p.Name
	}
	if len(p.PubKey) >= 8 {
		return p.PubKey[:8]
	}
	return p.PubKey
}

// ParseProfile parses the content of a metadata event. Unparseable content
// degrades to an empty profile carrying the raw event, never an error.
func ParseProfile(ev *nostr.Event) (p *Profile) {
	p = &Profile{PubKey: ev.PubKey, Event: ev}
	if err := json.Unmarshal([]byte(ev.Content), &p.Metadata); chk.D(err) {
		log.D.F("unparseable metadata content on %s", ev.ID)
		p.Metadata = Metadata{}
	}
	return
}
