package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pixil98/go-tianxia/internal/text"
)

// maxSeatTries is how many bad seat choices a connection gets.
const maxSeatTries = 3

type session struct {
	conn  io.ReadWriter
	in    *lineReader
	table *Table
	seat  string

	msgs chan []byte
}

// chooseSeat claims the hinted seat when it is free, else asks the
// connection which free seat to take.
func (s *session) chooseSeat(ctx context.Context) error {
	if hint := seatHint(ctx); hint != "" {
		if err := s.table.Sit(ctx, hint); err == nil {
			s.seat = hint
			return s.writeLine(fmt.Sprintf("You take %s's seat.", s.table.PlayerName(hint)))
		}
	}

	for {
		seats := s.table.Seats()
		lines := []string{"Seats at this table:"}
		free := 0
		for i, st := range seats {
			status := ""
			if st.Taken {
				status = " (taken)"
			} else {
				free++
			}
			lines = append(lines, fmt.Sprintf("  %d) %s of %s%s", i+1, st.Name, text.Title(string(st.Faction)), status))
		}
		if free == 0 {
			if err := s.writeLine("Every seat is taken."); err != nil {
				return err
			}
			return NewUserError("table is full")
		}

		choice, err := prompt(s.in, s.conn, strings.Join(lines, "\n")+"\nTake which seat? ",
			withMaxTries(maxSeatTries),
			withValidator(func(in string) (bool, string) {
				if pickSeat(seats, in) == "" {
					return false, fmt.Sprintf("Enter a number from 1 to %d.\n", len(seats))
				}
				return true, ""
			}),
		)
		if err != nil {
			return err
		}

		err = s.table.Sit(ctx, pickSeat(seats, choice))
		var userErr *UserError
		if errors.As(err, &userErr) {
			if err := s.writeLine(userErr.Message); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		s.seat = pickSeat(seats, choice)
		return nil
	}
}

// pickSeat maps a seat number or id to a free seat id, or "".
func pickSeat(seats []Seat, in string) string {
	for i, st := range seats {
		if st.Taken {
			continue
		}
		if n, err := strconv.Atoi(in); (err == nil && n == i+1) || strings.EqualFold(in, st.ID) {
			return st.ID
		}
	}
	return ""
}

// play reads commands until the connection closes, the context ends or
// the seat quits. Published messages are written as they arrive.
func (s *session) play(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		for {
			line, err := s.in.ReadLine()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					inputErrChan <- err
				}
				close(inputChan)
				return
			}
			inputChan <- line
		}
	}()

	if err := s.exec(ctx, "status"); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if err := s.writeLine("\nThe table is closing."); err != nil {
				return errors.Join(ctx.Err(), err)
			}
			return ctx.Err()

		case msg := <-s.msgs:
			if err := s.writeLine("\n" + text.Wrap(string(msg))); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			err := s.exec(ctx, line)
			if errors.Is(err, ErrQuit) {
				return s.writeLine("Goodbye!")
			}
			if err != nil {
				return err
			}
		}
	}
}

// exec runs line and reports user errors back to the connection. Any other
// error ends the session.
func (s *session) exec(ctx context.Context, line string) error {
	err := s.table.Exec(ctx, s.seat, line)
	var userErr *UserError
	if errors.As(err, &userErr) {
		if err := s.writeLine(userErr.Message); err != nil {
			return err
		}
		return s.prompt()
	}
	if err != nil && !errors.Is(err, ErrQuit) {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return err
}

func (s *session) prompt() error {
	_, err := io.WriteString(s.conn, fmt.Sprintf("[%s] > ", s.table.Phase()))
	return err
}

// writeLine sends msg and a line break with CRLF endings.
func (s *session) writeLine(msg string) error {
	_, err := io.WriteString(s.conn, text.CRLF(msg+"\n"))
	if err != nil {
		slog.Warn("writing to session", "seat", s.seat, "error", err)
	}
	return err
}
