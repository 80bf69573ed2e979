package app

import (
	"fmt"
	"strings"

	"github.com/nbd-wtf/go-nostr"
	"github.com/nbd-wtf/go-nostr/nip19"
)

// The handlers accept both raw 64 character hex keys and NIP-19 bech32
// encodings; pointer encodings additionally carry relay hints which are
// forwarded to the resolver.

func decodeEventID(s string) (id string, hints []string, err error) {
	switch {
	case strings.HasPrefix(s, "note1"), strings.HasPrefix(s, "nevent1"):
		var prefix string
		var value any
		if prefix, value, err = nip19.Decode(s); chk.D(err) {
			return
		}
		switch prefix {
		case "note":
			id = value.(string)
		case "nevent":
			ep := value.(nostr.EventPointer)
			id, hints = ep.ID, ep.Relays
		}
	case nostr.IsValidPublicKeyHex(s):
		id = s
	default:
		err = fmt.Errorf("unrecognized event identifier %q", s)
	}
	return
}

func decodePubkey(s string) (pk string, hints []string, err error) {
	switch {
	case strings.HasPrefix(s, "npub1"), strings.HasPrefix(s, "nprofile1"):
		var prefix string
		var value any
		if prefix, value, err = nip19.Decode(s); chk.D(err) {
			return
		}
		switch prefix {
		case "npub":
			pk = value.(string)
		case "nprofile":
			pp := value.(nostr.ProfilePointer)
			pk, hints = pp.PublicKey, pp.Relays
		}
	case nostr.IsValidPublicKeyHex(s):
		pk = s
	default:
		err = fmt.Errorf("unrecognized pubkey identifier %q", s)
	}
	return
}

func decodeCoordinate(s string) (ep nostr.EntityPointer, err error) {
	if !strings.HasPrefix(s, "naddr1") {
		// also accept the raw kind:pubkey:identifier coordinate form
		parts := strings.SplitN(s, ":", 3)
		if len(parts) == 3 {
			var kind int
			if _, err = fmt.Sscanf(parts[0], "%d", &kind); err == nil {
				return nostr.EntityPointer{
					Kind:       kind,
					PublicKey:  parts[1],
					Identifier: parts[2],
				}, nil
			}
		}
		return ep, fmt.Errorf("unrecognized article identifier %q", s)
	}
	var value any
	if _, value, err = nip19.Decode(s); chk.D(err) {
		return
	}
	return value.(nostr.EntityPointer), nil
}
