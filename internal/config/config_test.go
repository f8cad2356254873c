package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdloop.yaml")
	content := `
prompt: "> "
aliases:
  plus: add
catch_interrupts: false
drain_timeout: 1s
metrics_addr: ":2112"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, map[string]string{"plus": "add"}, cfg.Aliases)
	assert.False(t, cfg.CatchInterrupts)
	assert.Equal(t, time.Second, cfg.DrainTimeout)
	assert.Equal(t, ":2112", cfg.MetricsAddr)
	assert.False(t, cfg.Debug)
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, Parse([]byte("debug: true\n"), &cfg))

	assert.True(t, cfg.Debug)
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.True(t, cfg.CatchInterrupts)
}

func TestParse_Errors(t *testing.T) {
	cfg := Default()
	assert.Error(t, Parse([]byte("promt: typo\n"), &cfg), "unknown keys are rejected")
	assert.Error(t, Parse([]byte("drain_timeout: soon\n"), &cfg))
	assert.Error(t, Parse([]byte(":\n  - [\n"), &cfg))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
