package ihtplog

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// NewLogger builds the process-wide slog.Logger the way the teacher's
// command entry points do: tint's colorized handler by default, or plain
// JSON when json is true, both gated at level.
func NewLogger(w io.Writer, level slog.Leveler, json bool) *slog.Logger {
	if json {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{Level: level}))
}
