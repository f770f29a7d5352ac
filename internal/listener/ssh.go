package listener

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/pixil98/go-tianxia/internal/table"
	"golang.org/x/crypto/ssh"
)

// seatExtension carries the seat a login name resolved to through the
// handshake permissions.
const seatExtension = "tianxia-seat"

// SeatLister reports the seats a login may claim.
type SeatLister interface {
	Seats() []table.Seat
}

// SshListener serves the table over ssh. The login name must name a seat;
// unknown names are refused during the handshake.
type SshListener struct {
	port    uint16
	cm      *ConnectionManager
	seats   SeatLister
	hostKey ssh.Signer
}

func NewSshListener(port uint16, cm *ConnectionManager, seats SeatLister, hostKey ssh.Signer) *SshListener {
	return &SshListener{
		port:    port,
		cm:      cm,
		seats:   seats,
		hostKey: hostKey,
	}
}

// serverConfig wires the login callbacks. The host key is added by Start.
func (l *SshListener) serverConfig() *ssh.ServerConfig {
	return &ssh.ServerConfig{
		NoClientAuth:         true,
		NoClientAuthCallback: l.authenticate,
		PasswordCallback: func(meta ssh.ConnMetadata, _ []byte) (*ssh.Permissions, error) {
			return l.authenticate(meta)
		},
		KeyboardInteractiveCallback: func(meta ssh.ConnMetadata, _ ssh.KeyboardInteractiveChallenge) (*ssh.Permissions, error) {
			return l.authenticate(meta)
		},
	}
}

// authenticate admits a login whose name matches a seat id or player name.
// Passwords are not checked; the seat is the identity.
func (l *SshListener) authenticate(meta ssh.ConnMetadata) (*ssh.Permissions, error) {
	seat, err := seatFor(l.seats.Seats(), meta.User())
	if err != nil {
		slog.Info("ssh login refused", "user", meta.User(), "remote", meta.RemoteAddr(), "error", err)
		return nil, err
	}
	return &ssh.Permissions{Extensions: map[string]string{seatExtension: seat}}, nil
}

func seatFor(seats []table.Seat, user string) (string, error) {
	for _, st := range seats {
		if strings.EqualFold(user, st.ID) || strings.EqualFold(user, st.Name) {
			return st.ID, nil
		}
	}
	return "", fmt.Errorf("no seat %q at this table", user)
}

func (l *SshListener) Start(ctx context.Context) error {
	config := l.serverConfig()
	config.AddHostKey(l.hostKey)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	slog.InfoContext(ctx, "listening for ssh", "port", l.port)

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			slog.ErrorContext(ctx, "accepting ssh connection", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.handleConnection(connCtx, conn, config)
		}()
	}
}

func (l *SshListener) handleConnection(ctx context.Context, conn net.Conn, config *ssh.ServerConfig) {
	defer conn.Close()

	sshConn, chans, reqs, err := ssh.NewServerConn(conn, config)
	if err != nil {
		slog.InfoContext(ctx, "ssh handshake failed", "remote", conn.RemoteAddr(), "error", err)
		return
	}
	defer sshConn.Close()

	seat := ""
	if sshConn.Permissions != nil {
		seat = sshConn.Permissions.Extensions[seatExtension]
	}
	slog.InfoContext(ctx, "ssh connection established", "remote", conn.RemoteAddr(), "seat", seat)
	ctx = table.WithSeatHint(ctx, seat)

	// Closing the connection on cancel ends the channel loop below.
	go func() {
		<-ctx.Done()
		sshConn.Close()
	}()

	go ssh.DiscardRequests(reqs)

	for newChan := range chans {
		if newChan.ChannelType() != "session" {
			newChan.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		ch, requests, err := newChan.Accept()
		if err != nil {
			slog.ErrorContext(ctx, "accepting ssh channel", "seat", seat, "error", err)
			continue
		}

		select {
		case <-awaitShell(requests):
		case <-ctx.Done():
			ch.Close()
			continue
		}

		l.cm.AcceptConnection(ctx, ch)
		ch.Close()
	}
}

// awaitShell answers channel requests and closes the returned channel once
// the client asks for a shell. Clients hold input until that reply. A pty
// is refused so the client keeps local echo and line editing.
func awaitShell(in <-chan *ssh.Request) <-chan struct{} {
	ready := make(chan struct{})
	go func() {
		shell := false
		for req := range in {
			if req.Type == "shell" && !shell {
				shell = true
				req.Reply(true, nil)
				close(ready)
				continue
			}
			req.Reply(false, nil)
		}
	}()
	return ready
}
