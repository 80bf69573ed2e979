package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hubmakerlabs/resolvr/app"
	"github.com/Hubmakerlabs/resolvr/pkg/relays"
	"github.com/Hubmakerlabs/resolvr/pkg/resolver"
	"github.com/Hubmakerlabs/resolvr/pkg/slog"
	"github.com/alexflint/go-arg"
)

var (
	AppName = "resolvr"
	Version = "v0.0.1"
)

var args app.Config

func main() {
	var log, chk = slog.New(os.Stderr)
	arg.MustParse(&args)
	slog.SetLogLevelString(args.LogLevel)
	log.T.S(args)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer cancel()
	sets := relays.New(args.EventRelays, args.ProfileRelays)
	log.D.Ln("event relays:", sets.ForEvents(nil))
	log.D.Ln("profile relays:", sets.ForProfiles(nil))
	client := resolver.NewClient(ctx)
	defer client.Close()
	engine := resolver.NewEngine(sets, client, resolver.Options{
		QueryTimeout:   args.QueryTimeoutD(),
		ProfileTimeout: args.ProfileTimeoutD(),
		RetryTimeout:   args.RetryTimeoutD(),
		ProfileTTL:     args.ProfileCacheTTLD(),
	})
	engine.Start(ctx)
	srv := app.NewServer(engine, args.ResponseCacheTTLD())
	go func() {
		log.I.Ln(AppName, Version, "listening on", args.Listen)
		if err := srv.Start(ctx, args.Listen); chk.E(err) {
			cancel()
		}
	}()
	<-ctx.Done()
	log.I.Ln("shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(),
		5*time.Second)
	defer shutCancel()
	srv.Shutdown(shutCtx)
}
