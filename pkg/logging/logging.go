package logging

import (
	"log/slog"
	"os"

	"gitlab.com/nestar/idverify-backend/pkg/env"
)

// Setup builds the process-wide logger for the given mode. Prod logs JSON,
// everything else logs human-readable text. The returned cleanup is a no-op
// today but callers should still invoke it on shutdown.
func Setup(mode env.Mode) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	if mode == env.Prod {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler), func() {}
}
