package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cmdloop/internal/logging"
	"github.com/aretw0/cmdloop/pkg/domain"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnCommandFinish(ctx, &domain.CommandEvent{Name: "add", Outcome: domain.OutcomeSuccess, Duration: 10 * time.Millisecond})
	hooks.OnCommandFinish(ctx, &domain.CommandEvent{Name: "add", Outcome: domain.OutcomeSuccess})
	hooks.OnCommandFinish(ctx, &domain.CommandEvent{Name: "add", Outcome: domain.OutcomeUsage})
	hooks.OnCommandFinish(ctx, &domain.CommandEvent{Name: "frobnicate", Outcome: domain.OutcomeNotFound})
	hooks.OnInterrupt(ctx, &domain.InterruptEvent{Cancelled: true})
	hooks.OnInterrupt(ctx, &domain.InterruptEvent{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commands.WithLabelValues("add", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("add", "usage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commands.WithLabelValues("unknown", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.interrupts.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.interrupts.WithLabelValues("false")))

	// Only commands that actually ran are timed.
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnCommandFinish(context.Background(), &domain.CommandEvent{Name: "sleep", Outcome: domain.OutcomeInterrupted})

	srv := httptest.NewServer(NewHandler(m))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, strings.Contains(string(body), `cmdloop_commands_total{command="sleep",outcome="interrupted"} 1`))
}

func TestServe_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", NewMetrics(), logging.NewNop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
