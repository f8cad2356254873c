package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cmdloop/internal/config"
	"github.com/aretw0/cmdloop/pkg/domain"
)

func TestDemoCommands(t *testing.T) {
	cmds := map[string]domain.Command{}
	for _, c := range DemoCommands() {
		cmds[c.Name] = c
	}
	require.Len(t, cmds, 3)

	out := &bytes.Buffer{}
	require.NoError(t, cmds["add"].Handler(context.Background(), out, []string{"3", "4"}))
	assert.Equal(t, "7\n", out.String())
	assert.Error(t, cmds["add"].Handler(context.Background(), out, []string{"three", "4"}))

	out.Reset()
	require.NoError(t, cmds["my_action"].Handler(context.Background(), out, nil))
	assert.Equal(t, "You ran my action!\n", out.String())
	assert.Equal(t, "This will appear in help text", cmds["my_action"].Doc)

	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}, cmds["add"].Complete())
	sleepCandidates := cmds["sleep"].Complete()
	assert.Len(t, sleepCandidates, 59)
	assert.Equal(t, "1", sleepCandidates[0])
	assert.Equal(t, "59", sleepCandidates[58])

	assert.True(t, cmds["sleep"].Suspending)
	assert.Zero(t, cmds["sleep"].Arity())
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := sleep(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), DefaultSleep)
}

func TestRunSession_Plain(t *testing.T) {
	out := &bytes.Buffer{}
	opts := RunOptions{
		Plain:  true,
		Stdin:  strings.NewReader("add 3 4\nadd 3\nfrobnicate\nmy_action\nquit\n"),
		Stdout: out,
	}

	cfg := config.Default()
	cfg.CatchInterrupts = false
	require.NoError(t, RunSession(context.Background(), cfg, opts))

	got := out.String()
	assert.Contains(t, got, "$ 7\n")
	assert.Contains(t, got, "Bad command args. Usage: add <x> <y>\n")
	assert.Contains(t, got, "Command frobnicate not found!\n")
	assert.Contains(t, got, "You ran my action!\n")
	assert.NotContains(t, got, "cmdloop_", "no banner on a plain session")
}

func TestExecute_ConfigAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmdloop.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prompt: \"cfg> \"\naliases:\n  plus: add\ncatch_interrupts: false\n"), 0o644))

	out := &bytes.Buffer{}
	err := Execute(context.Background(), RunOptions{
		ConfigPath: path,
		Plain:      true,
		Stdin:      strings.NewReader("plus 1 2\n"),
		Stdout:     out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cfg> 3\n")

	out.Reset()
	err = Execute(context.Background(), RunOptions{
		ConfigPath: path,
		Prompt:     "flag> ",
		Plain:      true,
		Stdin:      strings.NewReader("help\n"),
		Stdout:     out,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "flag> "))
	assert.Contains(t, out.String(), "plus <x> <y>      \n")
}

func TestExecute_BadConfig(t *testing.T) {
	err := Execute(context.Background(), RunOptions{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, handleExecutionError(nil))
	assert.NoError(t, handleExecutionError(context.Canceled))
	assert.NoError(t, handleExecutionError(domain.ErrInterrupted))

	boom := errors.New("boom")
	assert.ErrorIs(t, handleExecutionError(boom), boom)
}

func TestLogCompletion(t *testing.T) {
	out := &bytes.Buffer{}
	logCompletion(out, nil, nil)
	assert.Empty(t, out.String())

	logCompletion(out, domain.ErrInterrupted, nil)
	assert.Equal(t, "[CTRL+C]\n>>> Interrupted.\n", out.String())
}
