package executor

import (
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/report"
	"github.com/specialistvlad/serialbench/internal/timer"
	"github.com/specialistvlad/serialbench/internal/trace"
)

// Option configures an Executor.
type Option func(*Executor)

// WithTimer replaces the default wall-clock timer.
func WithTimer(t timer.Timer) Option {
	return func(e *Executor) { e.timer = t }
}

// WithReporter sets the hook that receives the timing after Run.
func WithReporter(r report.Reporter) Option {
	return func(e *Executor) { e.reporter = r }
}

// WithScratchPreparer replaces graph.PrepareScratch as the one-time scratch
// preparation hook.
func WithScratchPreparer(f graph.PrepareFunc) Option {
	return func(e *Executor) { e.prepare = f }
}

// WithTraceSink records one event per point.
func WithTraceSink(s trace.Sink) Option {
	return func(e *Executor) { e.sink = s }
}

// WithLimit caps the bytes allocated for tiles and, separately, for scratch.
// Zero means no cap.
func WithLimit(tileBytes, scratchBytes int64) Option {
	return func(e *Executor) {
		e.tileLimit = tileBytes
		e.scratchLimit = scratchBytes
	}
}

// WithRunID sets the identifier attached to logs and the reported timing.
func WithRunID(id string) Option {
	return func(e *Executor) { e.runID = id }
}
