package app

import (
	"os"

	"github.com/Hubmakerlabs/resolvr/pkg/slog"
)

var log, chk = slog.New(os.Stderr)
