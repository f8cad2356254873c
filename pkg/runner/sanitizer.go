package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EnvMaxInputSize overrides DefaultMaxInputSize when set to a positive integer.
const EnvMaxInputSize = "CMDLOOP_MAX_INPUT_SIZE"

// DefaultMaxInputSize bounds a single line, in bytes.
var DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput cleans one line read from the user. Oversized lines are
// rejected, not truncated, since a truncated line could still parse. Tabs are
// kept and embedded line breaks become spaces, so both still split words.
func SanitizeInput(line string) (string, error) {
	if limit := maxInputSize(); len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	line = strings.TrimRight(line, "\r\n")
	if strings.IndexFunc(line, isStripped) < 0 {
		return line, nil
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case isStripped(r):
			return -1
		}
		return r
	}, line), nil
}

func isStripped(r rune) bool {
	return r != '\t' && unicode.IsControl(r)
}

func maxInputSize() int {
	if v, err := strconv.Atoi(os.Getenv(EnvMaxInputSize)); err == nil && v > 0 {
		return v
	}
	return DefaultMaxInputSize
}
