package messaging

import (
	"fmt"
	"slices"
)

// NatsPublisher publishes messages to the per-seat subjects of one table.
type NatsPublisher struct {
	server *NatsServer
	table  string
}

// NewNatsPublisher wraps a NatsServer for seat message delivery on table.
func NewNatsPublisher(server *NatsServer, table string) *NatsPublisher {
	return &NatsPublisher{server: server, table: table}
}

// SeatSubject is the subject a seat's sessions listen on.
func SeatSubject(table, seat string) string {
	return fmt.Sprintf("table-%s.seat-%s", table, seat)
}

func (p *NatsPublisher) Publish(seats []string, exclude []string, data []byte) error {
	var firstErr error
	for _, seat := range seats {
		if slices.Contains(exclude, seat) {
			continue
		}
		if err := p.server.Publish(SeatSubject(p.table, seat), data); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *NatsPublisher) Subscribe(seat string, handler func(data []byte)) (func(), error) {
	return p.server.Subscribe(SeatSubject(p.table, seat), handler)
}
