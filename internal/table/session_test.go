package table

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tianxia/internal/game"
)

type fakeConn struct {
	io.Reader
	out bytes.Buffer
}

func (c *fakeConn) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func TestManager_RunSession(t *testing.T) {
	b := newFakeBroker()
	tbl := New(newTestState(), game.MapCatalog{}, b)
	m := NewManager(tbl, b)

	conn := &fakeConn{Reader: strings.NewReader("9\n2\nhand\nquit\n")}
	if err := m.RunSession(t.Context(), conn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := conn.out.String()
	for _, want := range []string{
		"  1) Alice of Song",
		"  2) Bob of Jin",
		"Take which seat? ",
		"Enter a number from 1 to 2.",
		"Goodbye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	testutil.AssertEqual(t, "bob told status", strings.Contains(b.all("p2"), "It is Alice's turn (idle)."), true)
	testutil.AssertEqual(t, "bob told hand", strings.Contains(b.all("p2"), "Bob holds 1 card(s):"), true)
	testutil.AssertEqual(t, "seat released", tbl.Seats()[1].Taken, false)
}

func TestManager_RunSessionTooManyTries(t *testing.T) {
	b := newFakeBroker()
	m := NewManager(New(newTestState(), game.MapCatalog{}, b), b)

	conn := &fakeConn{Reader: strings.NewReader("0\nzed\n7\n")}
	err := m.RunSession(t.Context(), conn)
	testutil.AssertErrorContains(t, err, "choosing seat: too many tries")
	testutil.AssertEqual(t, "told", strings.Contains(conn.out.String(), "Too many tries."), true)
}

func TestManager_RunSessionFullTable(t *testing.T) {
	tbl, b := newTestTable(t)
	m := NewManager(tbl, b)

	conn := &fakeConn{Reader: strings.NewReader("1\n")}
	err := m.RunSession(t.Context(), conn)
	testutil.AssertErrorContains(t, err, "table is full")
	testutil.AssertEqual(t, "told", strings.Contains(conn.out.String(), "Every seat is taken."), true)
}

type brokenConn struct {
	io.Reader
}

func (brokenConn) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestManager_RunSessionWriteErrors(t *testing.T) {
	tests := map[string]struct {
		full   bool
		input  string
		expErr string
	}{
		"full table": {
			full:   true,
			input:  "1\n",
			expErr: "connection reset",
		},
		"seat prompt": {
			input:  "1\n",
			expErr: "choosing seat: connection reset",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := newFakeBroker()
			tbl := New(newTestState(), game.MapCatalog{}, b)
			if tt.full {
				tbl, b = newTestTable(t)
			}
			m := NewManager(tbl, b)

			err := m.RunSession(t.Context(), brokenConn{Reader: strings.NewReader(tt.input)})
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestManager_RunSessionClosing(t *testing.T) {
	b := newFakeBroker()
	tbl := New(newTestState(), game.MapCatalog{}, b)
	m := NewManager(tbl, b)

	pr, pw := io.Pipe()
	defer pw.Close()
	conn := &fakeConn{Reader: pr}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- m.RunSession(ctx, conn) }()

	if _, err := io.WriteString(pw, "1\r\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !tbl.Seats()[0].Taken {
		if time.Now().After(deadline) {
			t.Fatal("seat was never taken")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	err := <-done
	testutil.AssertEqual(t, "canceled", errors.Is(err, context.Canceled), true)
	out := conn.out.String()
	if !strings.Contains(out, "The table is closing.\r\n") {
		t.Errorf("expected closing notice with CRLF, got:\n%q", out)
	}
	if strings.Contains(strings.ReplaceAll(out, "\r\n", ""), "\n") {
		t.Errorf("expected only CRLF line endings, got:\n%q", out)
	}
}

func TestPickSeat(t *testing.T) {
	seats := []Seat{{ID: "p1"}, {ID: "p2", Taken: true}, {ID: "p3"}}

	tests := map[string]struct {
		in  string
		exp string
	}{
		"number":       {in: "1", exp: "p1"},
		"id":           {in: "P3", exp: "p3"},
		"taken":        {in: "2", exp: ""},
		"taken id":     {in: "p2", exp: ""},
		"out of range": {in: "4", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "seat", pickSeat(seats, tt.in), tt.exp)
		})
	}
}

func TestManager_RunSessionSeatHint(t *testing.T) {
	tests := map[string]struct {
		hint  string
		input string
		exp   string
	}{
		"free seat": {
			hint:  "p2",
			input: "quit\n",
			exp:   "You take Bob's seat.",
		},
		"unknown seat falls back": {
			hint:  "guest",
			input: "1\nquit\n",
			exp:   "Take which seat? ",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := newFakeBroker()
			m := NewManager(New(newTestState(), game.MapCatalog{}, b), b)

			conn := &fakeConn{Reader: strings.NewReader(tt.input)}
			if err := m.RunSession(WithSeatHint(t.Context(), tt.hint), conn); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out := conn.out.String(); !strings.Contains(out, tt.exp) {
				t.Errorf("expected %q in output, got:\n%s", tt.exp, out)
			}
		})
	}
}
