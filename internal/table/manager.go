package table

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Manager hands connections to the table and wires each session to its
// seat's messages.
type Manager struct {
	table *Table
	sub   Subscriber
}

func NewManager(t *Table, sub Subscriber) *Manager {
	return &Manager{
		table: t,
		sub:   sub,
	}
}

// Start blocks until ctx is done. Sessions end with their own connections.
func (m *Manager) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "table open", "seats", len(m.table.Seats()))
	<-ctx.Done()
	return nil
}

// RunSession seats the connection and plays until it leaves.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	s := &session{
		conn:  conn,
		in:    newLineReader(conn),
		table: m.table,
		msgs:  make(chan []byte, 16),
	}

	if err := s.chooseSeat(ctx); err != nil {
		return fmt.Errorf("choosing seat: %w", err)
	}
	defer m.table.Leave(ctx, s.seat)

	unsub, err := m.sub.Subscribe(s.seat, func(data []byte) {
		select {
		case s.msgs <- data:
		default:
			slog.Warn("dropping message for slow session", "seat", s.seat)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing seat %s: %w", s.seat, err)
	}
	defer unsub()

	return s.play(ctx)
}
