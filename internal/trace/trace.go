// Package trace records per-point dispatch decisions of the executor.
//
// Tracing is observational only. A sink never influences execution and the
// executor builds events only when a sink is configured.
package trace

import (
	"context"
	"log/slog"
	"sync"
)

// Event describes what happened to a single point.
type Event struct {
	Graph    int
	Timestep int
	Column   int
	// Path is "skipped", "single" or "multi".
	Path string
	// Sources lists the source columns actually passed to the kernel on the
	// multi-input path.
	Sources      []int
	SkippedEdges int
	Err          error
}

// Sink receives events. Record must not panic and must not block for long;
// callers go through SafeRecord anyway.
type Sink interface {
	Record(event Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// SafeRecord records an event, swallowing any panic from the sink.
func SafeRecord(s Sink, event Event) {
	if s == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Record(event)
}

// Recorder collects events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Record(event Event) {
	if r == nil {
		return
	}
	if event.Sources != nil {
		event.Sources = append([]int(nil), event.Sources...)
	}
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Snapshot returns a copy of all recorded events in recording order.
func (r *Recorder) Snapshot() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// LogSink writes every event to a logger at debug level.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Record(e Event) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	attrs := []any{
		"graph", e.Graph,
		"timestep", e.Timestep,
		"column", e.Column,
		"path", e.Path,
	}
	if len(e.Sources) > 0 {
		attrs = append(attrs, "sources", e.Sources)
	}
	if e.SkippedEdges > 0 {
		attrs = append(attrs, "skipped_edges", e.SkippedEdges)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}
	l.Log(context.Background(), slog.LevelDebug, "Point dispatched.", attrs...)
}
