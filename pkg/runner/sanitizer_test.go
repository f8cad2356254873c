package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	for size, tooLarge := range map[int]bool{
		DefaultMaxInputSize - 1: false,
		DefaultMaxInputSize:     false,
		DefaultMaxInputSize + 1: true,
	} {
		_, err := SanitizeInput(strings.Repeat("a", size))
		if tooLarge {
			assert.ErrorIs(t, err, ErrInputTooLarge, "size %d", size)
		} else {
			assert.NoError(t, err, "size %d", size)
		}
	}
}

func TestSanitizeInput_ControlChars(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"Normal Text", "add 3 4", "add 3 4"},
		{"Trailing Newline", "help\r\n", "help"},
		{"Tab Kept", "add\t3\t4", "add\t3\t4"},
		{"Embedded Newline", "add 3\n4", "add 3 4"},
		{"ANSI Code", "\x1b[31mhelp\x1b[0m", "[31mhelp[0m"},
		{"Null Byte", "he\x00lp", "help"},
		{"Bell", "quit\x07", "quit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeInput(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSanitizeInput_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "10")

	_, err := SanitizeInput("add 100 200")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	got, err := SanitizeInput("add 1 2\n")
	require.NoError(t, err)
	assert.Equal(t, "add 1 2", got)

	t.Setenv(EnvMaxInputSize, "not-a-number")
	_, err = SanitizeInput(strings.Repeat("a", DefaultMaxInputSize))
	assert.NoError(t, err)
}

func TestSanitizeInput_InvalidUTF8(t *testing.T) {
	_, err := SanitizeInput("\xbd\xb2\x3d\xbc\x20\xe2\x8c\x98")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
