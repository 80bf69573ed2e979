package app

import (
	"testing"

	"github.com/nbd-wtf/go-nostr/nip19"
)

const (
	hexID = "3bf0c63fcb93463407af97a5e5ee64fa883d107ef9e558472c4eb9aaaefa459d"
	hexPK = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func TestDecodeEventID(t *testing.T) {
	note, err := nip19.EncodeNote(hexID)
	if err != nil {
		t.Fatal(err)
	}
	nevent, err := nip19.EncodeEvent(hexID, []string{"wss://hint.example"}, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{hexID, note} {
		id, hints, err := decodeEventID(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if id != hexID || len(hints) != 0 {
			t.Fatalf("%q: got %q %v", in, id, hints)
		}
	}
	id, hints, err := decodeEventID(nevent)
	if err != nil {
		t.Fatal(err)
	}
	if id != hexID {
		t.Fatalf("got %q", id)
	}
	if len(hints) != 1 || hints[0] != "wss://hint.example" {
		t.Fatalf("pointer hints lost: %v", hints)
	}
	if _, _, err = decodeEventID("not-an-identifier"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestDecodePubkey(t *testing.T) {
	npub, err := nip19.EncodePublicKey(hexPK)
	if err != nil {
		t.Fatal(err)
	}
	nprofile, err := nip19.EncodeProfile(hexPK, []string{"wss://hint.example"})
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{hexPK, npub} {
		pk, hints, err := decodePubkey(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if pk != hexPK || len(hints) != 0 {
			t.Fatalf("%q: got %q %v", in, pk, hints)
		}
	}
	pk, hints, err := decodePubkey(nprofile)
	if err != nil {
		t.Fatal(err)
	}
	if pk != hexPK || len(hints) != 1 {
		t.Fatalf("got %q %v", pk, hints)
	}
}

func TestDecodeCoordinate(t *testing.T) {
	naddr, err := nip19.EncodeEntity(hexPK, 30023, "my-post",
		[]string{"wss://hint.example"})
	if err != nil {
		t.Fatal(err)
	}
	ep, err := decodeCoordinate(naddr)
	if err != nil {
		t.Fatal(err)
	}
	if ep.PublicKey != hexPK || ep.Kind != 30023 || ep.Identifier != "my-post" {
		t.Fatalf("got %+v", ep)
	}
	if len(ep.Relays) != 1 || ep.Relays[0] != "wss://hint.example" {
		t.Fatalf("pointer hints lost: %v", ep.Relays)
	}

	ep, err = decodeCoordinate("30023:" + hexPK + ":my-post")
	if err != nil {
		t.Fatal(err)
	}
	if ep.PublicKey != hexPK || ep.Kind != 30023 || ep.Identifier != "my-post" {
		t.Fatalf("raw coordinate: got %+v", ep)
	}

	if _, err = decodeCoordinate("garbage"); err == nil {
		t.Fatal("expected a decode error")
	}
}
