package slog_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/Hubmakerlabs/resolvr/pkg/slog"
)

func TestPrinters(t *testing.T) {
	var buf bytes.Buffer
	log, chk := slog.New(&buf)
	slog.SetLogLevel(slog.Trace)
	log.T.Ln("testing log level", "trace")
	log.D.F("testing log level %s", "debug")
	log.I.Ln("testing log level", "info")
	log.W.C(func() string { return "testing log level warn" })
	log.E.Ln("testing log level", "error")
	if chk.E(nil) {
		t.Fatal("nil error must not check true")
	}
	if !chk.E(errors.New("dummy")) {
		t.Fatal("non-nil error must check true")
	}
	out := buf.String()
	for _, want := range []string{"trace", "debug", "info", "warn", "error",
		"dummy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelGate(t *testing.T) {
	var buf bytes.Buffer
	log, _ := slog.New(&buf)
	slog.SetLogLevel(slog.Error)
	log.D.Ln("should not appear")
	if strings.Contains(buf.String(), "should not appear") {
		t.Fatal("debug output leaked past the error level gate")
	}
	slog.SetLogLevel(slog.Info)
}
