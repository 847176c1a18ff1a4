package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/report"
	"github.com/specialistvlad/serialbench/internal/scratch"
	"github.com/specialistvlad/serialbench/internal/tilestore"
	"github.com/specialistvlad/serialbench/internal/timer"
	"github.com/specialistvlad/serialbench/internal/trace"
)

// Executor owns the tiles and scratch memory of a set of graphs and runs
// them. It is not safe for concurrent use.
type Executor struct {
	graphs []graph.Graph
	params []graph.Params

	tiles   *tilestore.Store
	scratch *scratch.Manager
	// inputs is the reused backing array for kernel inputs.
	inputs [][]byte

	timer        timer.Timer
	reporter     report.Reporter
	sink         trace.Sink
	prepare      graph.PrepareFunc
	tileLimit    int64
	scratchLimit int64
	runID        string

	total  Stats
	stats  []Stats
	closed bool
}

// New allocates tiles for every graph and prepares the shared scratch
// buffer. Parameters are read once here. A nil entry in graphs is kept so
// that graph indices stay stable; its points are skipped.
//
// Allocation failures are returned wrapped in tilestore.ErrAllocation or
// scratch.ErrAllocation and are fatal.
func New(ctx context.Context, graphs []graph.Graph, opts ...Option) (*Executor, error) {
	e := &Executor{
		graphs:  graphs,
		params:  make([]graph.Params, len(graphs)),
		stats:   make([]Stats, len(graphs)),
		timer:   &timer.Wall{},
		prepare: graph.PrepareScratch,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.runID == "" {
		e.runID = uuid.NewString()
	}

	maxDeps := 1
	for i, g := range graphs {
		if g == nil {
			continue
		}
		e.params[i] = g.Params()
		maxDeps = max(maxDeps, e.params[i].MaxWidth)
	}

	logger := ctxlog.FromContext(ctx).With("run_id", e.runID)

	tiles, err := tilestore.Allocate(e.params, tilestore.WithLimit(e.tileLimit))
	if err != nil {
		logger.Error("Tile allocation failed.", "error", err)
		return nil, fmt.Errorf("failed to allocate tiles: %w", err)
	}
	sm, err := scratch.New(e.params, e.prepare, scratch.WithLimit(e.scratchLimit))
	if err != nil {
		tiles.Release()
		logger.Error("Scratch allocation failed.", "error", err)
		return nil, fmt.Errorf("failed to allocate scratch: %w", err)
	}
	e.tiles = tiles
	e.scratch = sm
	e.inputs = make([][]byte, 0, maxDeps)

	logger.Debug("Executor ready.",
		"graphs", len(graphs),
		"tile_bytes", tiles.Bytes(),
		"scratch_bytes", sm.Size(),
		"scratch_prepared", sm.Prepared(),
	)
	return e, nil
}

// RunID returns the identifier of this executor's runs.
func (e *Executor) RunID() string { return e.runID }

// Run executes every graph in index order, each over timesteps
// 0..Timesteps-1, between Timer.Start and Timer.End, and then hands the
// timing to the reporter. Point-level problems never fail the run; only the
// reporter or a closed executor can. The context is used for logging only.
func (e *Executor) Run(ctx context.Context) error {
	if e.closed {
		return ErrClosed
	}
	logger := ctxlog.FromContext(ctx).With("run_id", e.runID)
	ctx = ctxlog.WithLogger(ctx, logger)

	e.total = Stats{}
	for i := range e.stats {
		e.stats[i] = Stats{}
	}

	logger.Info("▶️ Run started.", "graphs", len(e.graphs))
	e.timer.Start()
	for g := range e.graphs {
		for t := 0; t < e.params[g].Timesteps; t++ {
			e.ExecuteTimestep(ctx, g, t)
		}
	}
	elapsed := e.timer.End()

	timing := e.timing()
	timing.Elapsed = elapsed
	logger.Info("✅ Run finished.",
		"elapsed", elapsed,
		"tasks", timing.Tasks,
		"skipped_points", timing.SkippedPoints,
		"skipped_edges", timing.SkippedEdges,
	)

	if e.reporter == nil {
		return nil
	}
	if err := e.reporter.ReportTiming(ctx, timing); err != nil {
		return fmt.Errorf("failed to report timing: %w", err)
	}
	return nil
}

// Stats returns the counters of the latest run across all graphs, including
// points addressed to unknown graphs.
func (e *Executor) Stats() Stats { return e.total }

// GraphStats returns the counters of the latest run for graph g.
func (e *Executor) GraphStats(g int) Stats {
	if g < 0 || g >= len(e.stats) {
		return Stats{}
	}
	return e.stats[g]
}

// Close releases tiles and scratch memory. It is safe to call more than
// once.
func (e *Executor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.tiles.Release()
	e.scratch.Release()
	e.inputs = nil
	return nil
}

type costReporter interface {
	Costs() (flops, bytes int64)
}

type verifier interface {
	Mismatches() int64
}

func (e *Executor) timing() report.Timing {
	t := report.Timing{
		RunID:         e.runID,
		Graphs:        len(e.graphs),
		Tasks:         e.total.Tasks,
		Dependencies:  e.total.Dependencies,
		SkippedPoints: e.total.SkippedPoints,
		SkippedEdges:  e.total.SkippedEdges,
	}
	for i, g := range e.graphs {
		if c, ok := g.(costReporter); ok {
			flops, bytes := c.Costs()
			t.Flops += flops * e.stats[i].Tasks
			t.Bytes += bytes * e.stats[i].Tasks
		}
		if v, ok := g.(verifier); ok {
			t.Mismatches += v.Mismatches()
		}
	}
	return t
}

func (e *Executor) record(g int, o Outcome) {
	e.total.add(o)
	if g >= 0 && g < len(e.stats) {
		e.stats[g].add(o)
	}
}

// IsFatal reports whether err is an allocation failure.
func IsFatal(err error) bool {
	return errors.Is(err, tilestore.ErrAllocation) || errors.Is(err, scratch.ErrAllocation)
}
