package trace

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicSink struct{}

func (panicSink) Record(Event) { panic("boom") }

func TestSafeRecord(t *testing.T) {
	assert.NotPanics(t, func() { SafeRecord(nil, Event{}) })
	assert.NotPanics(t, func() { SafeRecord(panicSink{}, Event{}) })
	assert.NotPanics(t, func() { SafeRecord(NopSink{}, Event{}) })
}

func TestRecorder_SnapshotIsIndependent(t *testing.T) {
	r := NewRecorder()
	sources := []int{1, 2}
	r.Record(Event{Graph: 0, Timestep: 1, Column: 1, Path: "multi", Sources: sources})
	sources[0] = 9

	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, []int{1, 2}, snap[0].Sources)

	snap[0].Column = 5
	assert.Equal(t, 1, r.Snapshot()[0].Column)

	var nilRec *Recorder
	nilRec.Record(Event{})
	assert.Nil(t, nilRec.Snapshot())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogSink{Logger: l}.Record(Event{
		Graph: 1, Timestep: 2, Column: 3, Path: "multi",
		Sources: []int{2, 3}, SkippedEdges: 1, Err: errors.New("edge"),
	})

	out := buf.String()
	assert.Contains(t, out, "Point dispatched.")
	assert.Contains(t, out, "graph=1")
	assert.Contains(t, out, "path=multi")
	assert.Contains(t, out, "skipped_edges=1")
	assert.Contains(t, out, "error=edge")
}
