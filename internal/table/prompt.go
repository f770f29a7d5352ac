package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/pixil98/go-tianxia/internal/text"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func withValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func withMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// errTooManyTries ends a prompt that never got a valid answer.
var errTooManyTries = fmt.Errorf("too many tries")

// prompt writes question to w and reads one trimmed line from in until the
// validator accepts it.
func prompt(in *lineReader, w io.Writer, question string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := io.WriteString(w, text.CRLF(question)); err != nil {
			return "", err
		}

		line, err := in.ReadLine()
		if err != nil {
			return "", err
		}
		input := strings.TrimSpace(line)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(w, text.CRLF(msg)); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					_, err := io.WriteString(w, "Too many tries.\r\n")
					if err != nil {
						return "", err
					}
					return "", errTooManyTries
				}
				continue
			}
		}

		return input, nil
	}
}
