package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	batchSize            = 50
	defaultFlushInterval = 5 * time.Second
)

var fallback = slog.New(slog.NewJSONHandler(os.Stderr, nil))

// LogSink persists a batch of log rows.
type LogSink interface {
	CreateBatch(ctx context.Context, logs []models.SystemLog) error
}

type logBuffer struct {
	sink    LogSink
	mu      sync.Mutex
	entries []models.SystemLog
}

// DBHandler is an slog.Handler that batches ERROR+ records into system_logs.
type DBHandler struct {
	buf    *logBuffer
	attrs  []slog.Attr
	ticker *time.Ticker
	done   chan struct{}
	exited chan struct{}
	once   *sync.Once
}

func NewDBHandler(sink LogSink, flushInterval time.Duration) *DBHandler {
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	h := &DBHandler{
		buf:    &logBuffer{sink: sink, entries: make([]models.SystemLog, 0, batchSize)},
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		once:   &sync.Once{},
	}
	go h.flushLoop()
	return h
}

func (h *DBHandler) flushLoop() {
	defer close(h.exited)
	for {
		select {
		case <-h.ticker.C:
			h.buf.flush()
		case <-h.done:
			h.buf.flush()
			return
		}
	}
}

func (b *logBuffer) flush() {
	b.mu.Lock()
	if len(b.entries) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.entries
	b.entries = make([]models.SystemLog, 0, batchSize)
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.sink.CreateBatch(ctx, batch); err != nil {
		// Not through the default logger, which would feed this buffer again.
		fallback.Error("failed to flush system logs to DB", "error", err.Error(), "count", len(batch))
	}
}

// Stop flushes pending records and waits for the flush loop to exit.
func (h *DBHandler) Stop() {
	h.once.Do(func() {
		h.ticker.Stop()
		close(h.done)
	})
	<-h.exited
}

// Enabled only handles ERROR and above.
func (h *DBHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *DBHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "action":
			entry.Action = a.Value.String()
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			entry.LatencyMs = latencyMillis(a.Value)
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		apply(a)
	}
	record.Attrs(apply)

	entry.Extra = datatypes.JSON("{}")
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.buf.mu.Lock()
	h.buf.entries = append(h.buf.entries, entry)
	needFlush := len(h.buf.entries) >= batchSize
	h.buf.mu.Unlock()

	if needFlush {
		go h.buf.flush()
	}
	return nil
}

func latencyMillis(v slog.Value) int {
	switch v.Kind() {
	case slog.KindFloat64:
		return int(math.Round(v.Float64()))
	case slog.KindInt64:
		return int(v.Int64())
	case slog.KindDuration:
		return int(v.Duration().Milliseconds())
	default:
		return 0
	}
}

// WithAttrs keeps the attributes so request-scoped loggers still populate
// the dedicated columns. Groups are flattened.
func (h *DBHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *DBHandler) WithGroup(_ string) slog.Handler {
	return h
}
