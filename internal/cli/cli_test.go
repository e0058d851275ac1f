package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/swimlane/internal/config"
	"github.com/aretw0/swimlane/internal/logging"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Server:  config.ServerConfig{Port: 0, SessionTTL: time.Minute, ShutdownTTL: time.Second},
		Board:   config.BoardConfig{Seed: true},
		Redis:   config.RedisConfig{Prefix: "swimlane:", LockTTL: 5 * time.Second},
		Metrics: config.MetricsConfig{Enabled: true},
	}
}

func TestNewRuntime_Defaults(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	assert.Equal(t, "default", rt.Board.Name)
	blocks, err := rt.Board.ListBlocks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, blocks, 3)
	require.NotNil(t, rt.Metrics)
	require.NotNil(t, rt.MetricsHandler())
}

func TestNewRuntime_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	assert.Nil(t, rt.Metrics)
	assert.Nil(t, rt.MetricsHandler())
	assert.NoError(t, rt.Close())
}

func TestNewRuntime_NoSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Board.Seed = false

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	blocks, err := rt.Board.ListBlocks(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestNewRuntime_DefinitionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: bugs
lanes:
  - id: new
  - id: fixed
transitions:
  - from: new
    to: fixed
`), 0o644))

	cfg := testConfig()
	cfg.Board.Definition = path

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "bugs", rt.Board.Name)
	assert.Len(t, rt.Board.ListLanes(), 2)

	cfg.Board.Definition = filepath.Join(dir, "missing.yaml")
	_, err = NewRuntime(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestNewRuntime_DebugHooksLog(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatText)

	rt, err := NewRuntime(context.Background(), testConfig(), logger)
	require.NoError(t, err)

	_, err = rt.Board.CommitMove(context.Background(), "block-1", domain.LaneInProgress, map[string]string{"assignee": "Alice"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), string(domain.EventMoveCommitted))
}

func TestNewRuntime_RedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis.Addr = mr.Addr()

	rt, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	before := mr.CommandCount()
	_, err = rt.Board.CommitMove(context.Background(), "block-1", domain.LaneInProgress, nil)
	require.NoError(t, err)

	assert.Greater(t, mr.CommandCount(), before, "commit should take the Redis lock")
	assert.False(t, mr.Exists("swimlane:lock:block-1"), "lock is released after the commit")
	assert.NoError(t, rt.Close())
	assert.NoError(t, rt.Close(), "Close is idempotent")
}

func TestNewRuntime_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.Redis.Addr = addr

	_, err := NewRuntime(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "redis unreachable")
}

func TestNewHTTPHandler(t *testing.T) {
	rt, err := NewRuntime(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	_, err = rt.Board.CommitMove(context.Background(), "block-1", domain.LaneInProgress, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(NewHTTPHandler(rt, logging.NewNop()))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/lanes")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `swimlane_moves_committed_total{from="todo",to="inProgress"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNewRuntime_CommitsReachStream(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, testConfig(), logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, rt.Streams)

	events, cancel := rt.Streams.Subscribe("")
	defer cancel()

	_, err = rt.Board.CommitMove(ctx, "block-1", domain.LaneInProgress, map[string]string{"assignee": "Eve"})
	require.NoError(t, err)
	_, err = rt.Board.Engine().CommitMove(ctx, "block-1", domain.LaneDone, nil)
	require.NoError(t, err)

	require.Len(t, events, 2)
	first, second := <-events, <-events
	assert.Equal(t, domain.LaneInProgress, *first.Lane)
	require.Len(t, first.Appended, 1)
	assert.Equal(t, "Eve", first.Appended[0].Data["assignee"])
	assert.Equal(t, domain.LaneDone, *second.Lane)
	require.Len(t, second.Appended, 1)
	assert.Equal(t, domain.LaneInProgress, second.Appended[0].From)
}

func TestServe_StopsOnCancel(t *testing.T) {
	rt, err := NewRuntime(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, rt, ServeOptions{Addr: "127.0.0.1:0", SessionTTL: time.Minute, ShutdownTimeout: time.Second}, logging.NewNop())
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	rt, err := NewRuntime(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	err = ServeMCP(context.Background(), rt, "carrier-pigeon", 0, logging.NewNop())
	assert.ErrorContains(t, err, "unknown transport")
}

func TestRunBoard_Console(t *testing.T) {
	rt, err := NewRuntime(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	var out bytes.Buffer
	err = RunBoard(context.Background(), rt.Board, BoardOptions{
		Input:    strings.NewReader("mv block-2 review\nEve\nexit\n"),
		Output:   &out,
		Headless: true,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "moved block-2: inProgress -> review")
}

func TestSignalContext_CancelledElsewhere(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
