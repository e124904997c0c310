package log

import (
	"context"
	"encoding/hex"
	"log/slog"
)

// SlogAdapter traces events through an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event. Failed accesses are logged at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
		slog.String("register", event.Register),
		slog.String("addr", event.Address),
	}
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}
	if event.Access != "" {
		attrs = append(attrs, slog.String("access", event.Access))
	}
	if len(event.Data) > 0 {
		attrs = append(attrs, slog.String("data", hex.EncodeToString(event.Data)))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}

	level := slog.LevelDebug
	if event.Category == CategoryError {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error))
	}
	a.logger.LogAttrs(context.Background(), level, "register access", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
