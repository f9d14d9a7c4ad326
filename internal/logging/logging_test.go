package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Info("grievance submitted", "grievance_id", 7)
	logger.Error("batch failed", "batch", "week.csv")

	assert.Contains(t, infoBuf.String(), "grievance submitted")
	assert.Contains(t, infoBuf.String(), "batch failed")
	assert.NotContains(t, errBuf.String(), "grievance submitted")
	assert.Contains(t, errBuf.String(), "batch failed")
}

func TestMultiHandler_WithAttrsPropagates(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewMultiHandler(slog.NewJSONHandler(&buf, nil))).With("request_id", "abc")

	logger.Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request_id"])
}

func TestEntryFromRecord_LiftsDomainKeys(t *testing.T) {
	record := slog.NewRecord(time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC), slog.LevelError, "failed to store batch row", 0)
	record.AddAttrs(
		slog.String("batch", "week.csv"),
		slog.Int("grievance_id", 42),
		slog.String("error", "duplicate key"),
		slog.Int("row", 3),
	)

	entry := entryFromRecord(record, []slog.Attr{slog.String("request_id", "req-1")})

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "failed to store batch row", entry.Message)
	assert.Equal(t, "week.csv", entry.Batch)
	require.NotNil(t, entry.GrievanceID)
	assert.Equal(t, uint(42), *entry.GrievanceID)
	assert.Equal(t, "duplicate key", entry.Error)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.JSONEq(t, `{"row":3}`, string(entry.Extra))
}

func TestPGHandler_OnlyErrors(t *testing.T) {
	h := &PGHandler{}

	assert.False(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestRetentionCutoff(t *testing.T) {
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), retentionCutoff(now))
}
