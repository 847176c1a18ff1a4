package executor

import (
	"context"
	"fmt"

	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/trace"
)

// ExecutePoint runs column x of timestep t of graph g, using the dependence
// set the graph reports for t. The structural checks run once here; the
// timestep driver runs them once per timestep instead.
func (e *Executor) ExecutePoint(ctx context.Context, g, t, x int) Outcome {
	if err := e.checkPoint(g, t); err != nil {
		return e.skip(ctx, g, t, x, Outcome{}, err)
	}
	return e.executePoint(ctx, g, t, x, e.graphs[g].DependenceSetAtTimestep(t))
}

// checkPoint validates what a point needs before its graph can be queried.
func (e *Executor) checkPoint(g, t int) error {
	if e.closed {
		return ErrClosed
	}
	if g < 0 || g >= len(e.graphs) || e.graphs[g] == nil {
		return fmt.Errorf("%w: %d of %d", ErrInvalidGraph, g, len(e.graphs))
	}
	if n := e.params[g].NbFields; n <= 0 {
		return fmt.Errorf("%w: %d", ErrNonPositiveFields, n)
	}
	if t < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimestep, t)
	}
	return nil
}

// executePoint expects checkPoint(g, t) to have passed.
func (e *Executor) executePoint(ctx context.Context, g, t, x, dset int) Outcome {
	o := Outcome{State: StateNotStarted}
	gr := e.graphs[g]
	p := e.params[g]

	o.State = StateValidateX
	if x < 0 || x >= p.MaxWidth {
		return e.skip(ctx, g, t, x, o, fmt.Errorf("%w: %d not in [0, %d)", ErrColumnOutOfRange, x, p.MaxWidth))
	}
	dst, err := e.tiles.TileAt(g, t%p.NbFields, x)
	if err != nil {
		return e.skip(ctx, g, t, x, o, fmt.Errorf("%w: %w", ErrDestinationIndex, err))
	}
	if dst == nil {
		return e.skip(ctx, g, t, x, o, ErrNilTile)
	}

	o.State = StateClassifyDeps
	deps := gr.Dependencies(dset, x)
	scratch := e.scratch.For(p)

	var sources []int
	inputs := e.inputs[:0]
	if len(deps) == 0 || t == 0 {
		// Timestep 0 has no previous row, whatever the graph declares.
		o.Path = PathSingleInput
		inputs = append(inputs, dst)
	} else {
		o.State = StateGatherInputs
		o.Path = PathMultiInput
		row := (t - 1) % p.NbFields
		for _, c := range deps {
			if c < 0 || c >= p.MaxWidth {
				e.skipEdge(ctx, g, t, x, &o, fmt.Errorf("%w: %d not in [0, %d)", ErrSourceColumn, c, p.MaxWidth))
				continue
			}
			src, err := e.tiles.TileAt(g, row, c)
			if err == nil && src == nil {
				err = ErrNilTile
			}
			if err != nil {
				e.skipEdge(ctx, g, t, x, &o, fmt.Errorf("%w: column %d: %v", ErrSourceIndex, c, err))
				continue
			}
			inputs = append(inputs, src)
			if e.sink != nil {
				sources = append(sources, c)
			}
		}
	}
	// Keep any growth for the next point.
	e.inputs = inputs[:0]

	o.State = StateDispatch
	o.Inputs = len(inputs)
	gr.ExecutePoint(t, x, dst, inputs, scratch)

	o.State = StateDone
	e.finish(g, t, x, o, sources)
	return o
}

func (e *Executor) skip(ctx context.Context, g, t, x int, o Outcome, err error) Outcome {
	o.Path = PathSkipped
	o.State = StateSkip
	o.Err = err
	ctxlog.FromContext(ctx).Warn("Point skipped.", "graph", g, "timestep", t, "column", x, "error", err)
	e.finish(g, t, x, o, nil)
	return o
}

func (e *Executor) skipEdge(ctx context.Context, g, t, x int, o *Outcome, err error) {
	o.SkippedEdges++
	if o.Err == nil {
		o.Err = err
	}
	ctxlog.FromContext(ctx).Warn("Dependency edge skipped.", "graph", g, "timestep", t, "column", x, "error", err)
}

func (e *Executor) finish(g, t, x int, o Outcome, sources []int) {
	e.record(g, o)
	if e.sink == nil {
		return
	}
	trace.SafeRecord(e.sink, trace.Event{
		Graph:        g,
		Timestep:     t,
		Column:       x,
		Path:         o.Path.String(),
		Sources:      sources,
		SkippedEdges: o.SkippedEdges,
		Err:          o.Err,
	})
}
