package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintBanner(buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[", "a non-terminal writer gets no escape codes")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Welcome\n\nType `help`.")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome")
	assert.Contains(t, out, "help")
}
