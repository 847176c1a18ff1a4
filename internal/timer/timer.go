// Package timer brackets a benchmark run.
package timer

import "time"

// Timer measures the span between Start and End.
type Timer interface {
	Start()
	End() time.Duration
}

// Wall measures elapsed wall-clock time using the monotonic clock.
type Wall struct {
	start time.Time
}

func (w *Wall) Start() { w.start = time.Now() }

// End returns the time since Start, or zero if Start was never called.
func (w *Wall) End() time.Duration {
	if w.start.IsZero() {
		return 0
	}
	return time.Since(w.start)
}

// Fixed is a Timer that always reports the same duration and counts calls.
// Useful in tests.
type Fixed struct {
	Elapsed time.Duration
	Starts  int
	Ends    int
	// OnStart and OnEnd, if set, run inside the corresponding call.
	OnStart func()
	OnEnd   func()
}

func (f *Fixed) Start() {
	f.Starts++
	if f.OnStart != nil {
		f.OnStart()
	}
}

func (f *Fixed) End() time.Duration {
	f.Ends++
	if f.OnEnd != nil {
		f.OnEnd()
	}
	return f.Elapsed
}
