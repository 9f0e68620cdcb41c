package console

import (
	"context"
	"io"
	"log/slog"
)

// ConnectionManager hands accepted connections to the console.
type ConnectionManager struct {
	console *Console
}

func NewConnectionManager(c *Console) *ConnectionManager {
	return &ConnectionManager{
		console: c,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.console.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "storyteller session", "error", err)
	}
}
