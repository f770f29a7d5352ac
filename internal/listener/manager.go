package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/pixil98/go-tianxia/internal/table"
)

// SessionRunner plays one connection until it leaves.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sr SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sr,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	err := m.sessions.RunSession(ctx, conn)
	var userErr *table.UserError
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.As(err, &userErr):
		slog.InfoContext(ctx, "session refused", "reason", userErr.Message)
	default:
		slog.WarnContext(ctx, "table session", "error", err)
	}
}
