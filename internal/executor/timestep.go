package executor

import (
	"context"

	"github.com/specialistvlad/serialbench/internal/ctxlog"
)

// ExecuteTimestep runs every active point of timestep t of graph g in
// increasing column order. The active range and dependence set are queried
// once per timestep.
func (e *Executor) ExecuteTimestep(ctx context.Context, g, t int) {
	if g < 0 || g >= len(e.graphs) || e.graphs[g] == nil {
		ctxlog.FromContext(ctx).Warn("Timestep skipped.", "graph", g, "timestep", t, "error", ErrInvalidGraph)
		return
	}
	gr := e.graphs[g]
	offset := gr.OffsetAtTimestep(t)
	width := gr.WidthAtTimestep(t)
	if err := e.checkPoint(g, t); err != nil {
		for x := offset; x < offset+width; x++ {
			e.skip(ctx, g, t, x, Outcome{}, err)
		}
		return
	}
	dset := gr.DependenceSetAtTimestep(t)

	for x := offset; x < offset+width; x++ {
		e.executePoint(ctx, g, t, x, dset)
	}
}
