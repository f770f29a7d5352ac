package table

import (
	"bufio"
	"io"
	"strings"
)

// lineReader reads input lines ended by "\n", "\r\n" or a bare "\r".
// Telnet clients send CRLF; an ssh client without a pty may send either.
type lineReader struct {
	br *bufio.Reader
	// skipLF is set after a "\r" so the "\n" of a CRLF pair is dropped
	// without waiting on the next byte.
	skipLF bool
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{br: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator. A final line with
// no terminator is returned before io.EOF.
func (r *lineReader) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if sb.Len() > 0 && err == io.EOF {
				return sb.String(), nil
			}
			return "", err
		}

		skip := r.skipLF
		r.skipLF = false
		switch b {
		case '\n':
			if skip {
				continue
			}
			return sb.String(), nil
		case '\r':
			r.skipLF = true
			return sb.String(), nil
		default:
			sb.WriteByte(b)
		}
	}
}
