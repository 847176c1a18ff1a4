// Package report publishes the timing of a finished run.
package report

import (
	"context"
	"errors"
	"time"
)

// Timing is the result of one run.
type Timing struct {
	RunID         string
	Elapsed       time.Duration
	Graphs        int
	Tasks         int64
	Dependencies  int64
	SkippedPoints int64
	SkippedEdges  int64
	Flops         int64
	Bytes         int64
	// Mismatches counts inputs whose stamp did not match the expected
	// predecessor. Only populated when verification is on.
	Mismatches int64
}

// Seconds returns Elapsed as floating-point seconds.
func (t Timing) Seconds() float64 { return t.Elapsed.Seconds() }

// Fields flattens the timing into a map suitable for JSON-like transports.
func (t Timing) Fields() map[string]any {
	return map[string]any{
		"run_id":         t.RunID,
		"elapsed_s":      t.Seconds(),
		"graphs":         t.Graphs,
		"tasks":          t.Tasks,
		"dependencies":   t.Dependencies,
		"skipped_points": t.SkippedPoints,
		"skipped_edges":  t.SkippedEdges,
		"flops":          t.Flops,
		"bytes":          t.Bytes,
		"mismatches":     t.Mismatches,
	}
}

// Reporter receives the timing once the run has finished.
type Reporter interface {
	ReportTiming(ctx context.Context, t Timing) error
}

// Func adapts a function to a Reporter.
type Func func(ctx context.Context, t Timing) error

func (f Func) ReportTiming(ctx context.Context, t Timing) error { return f(ctx, t) }

// Multi fans a timing out to every reporter. All reporters run; their errors
// are joined.
type Multi []Reporter

func (m Multi) ReportTiming(ctx context.Context, t Timing) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.ReportTiming(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
