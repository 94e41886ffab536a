package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	mu   sync.Mutex
	logs []models.SystemLog
}

func (s *memorySink) CreateBatch(_ context.Context, logs []models.SystemLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, logs...)
	return nil
}

func (s *memorySink) all() []models.SystemLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.SystemLog(nil), s.logs...)
}

func TestDBHandler_PersistsErrorsOnly(t *testing.T) {
	sink := &memorySink{}
	h := NewDBHandler(sink, time.Hour)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Info("routine created", "routine_id", "r1")
	logger.Error("failed to load routine",
		"user_id", "u1",
		"action", "routine.get",
		"error", "connection reset",
		"latency_ms", 12.4,
		"routine_id", "r1",
	)
	h.Stop()

	logs := sink.all()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "failed to load routine", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	assert.Equal(t, "routine.get", entry.Action)
	assert.Equal(t, "connection reset", entry.Error)
	assert.Equal(t, 12, entry.LatencyMs)
	assert.JSONEq(t, `{"routine_id":"r1"}`, string(entry.Extra))
}

func TestDBHandler_StopIsIdempotent(t *testing.T) {
	h := NewDBHandler(&memorySink{}, time.Hour)
	h.Stop()
	h.Stop()
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink down")
}

func TestMultiHandler_FansOutDespiteFailure(t *testing.T) {
	var buf bytes.Buffer
	stdout := NewJSONHandler(&buf, slog.LevelInfo)
	m := NewMultiHandler(failingHandler{stdout}, stdout)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, m.Enabled(context.Background(), slog.LevelDebug))

	err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0))
	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestMultiHandler_RoutesByLevelAndDerives(t *testing.T) {
	var debugBuf, infoBuf bytes.Buffer
	m := NewMultiHandler(nil, NewJSONHandler(&debugBuf, slog.LevelDebug), NewJSONHandler(&infoBuf, slog.LevelInfo))

	logger := slog.New(m).With("request_id", "r-1").WithGroup("routine")
	logger.Debug("loaded", "id", "x")
	logger.Info("saved", "id", "y")

	assert.Contains(t, debugBuf.String(), `"msg":"loaded"`)
	assert.NotContains(t, infoBuf.String(), `"msg":"loaded"`)
	assert.Contains(t, infoBuf.String(), `"request_id":"r-1"`)
	assert.Contains(t, infoBuf.String(), `"routine":{"id":"y"}`)

	assert.Same(t, m, m.WithGroup(""))
	assert.Same(t, m, m.WithAttrs(nil))
}

type recordingPruner struct {
	cutoff time.Time
}

func (p *recordingPruner) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	p.cutoff = cutoff
	return 3, nil
}

func TestPrune_UsesRetention(t *testing.T) {
	p := &recordingPruner{}
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	prune(p, 30*24*time.Hour, now)

	assert.Equal(t, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC), p.cutoff)
}
