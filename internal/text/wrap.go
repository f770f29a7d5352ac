package text

import (
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return WrapWidth(text, DefaultWidth)
}

func WrapWidth(text string, width int) string {
	return wordwrap.String(text, width)
}

// Indent wraps text narrower by n and indents every line by n spaces.
func Indent(text string, n int) string {
	return indent.String(wordwrap.String(text, DefaultWidth-n), uint(n))
}

// CRLF converts every line ending in text to "\r\n" for the wire.
func CRLF(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\n", "\r\n")
}

// Title upper-cases the first letter of every word, e.g. "song" -> "Song".
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

// Number formats n with thousands separators.
func Number(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
