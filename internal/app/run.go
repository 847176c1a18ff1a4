package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/executor"
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/report"
	"github.com/specialistvlad/serialbench/internal/trace"
)

// Run executes every graph once and reports the timing.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.graphs) == 0 {
		a.logger.Warn("No graphs configured, execution not required.")
		return nil
	}

	reporters := report.Multi{report.Text{W: a.outW}}
	if a.cfg.SocketIOURL != "" {
		reporters = append(reporters, report.SocketIO{URL: a.cfg.SocketIOURL, Event: a.cfg.SocketIOEvent})
	}

	opts := []executor.Option{
		executor.WithRunID(a.runID),
		executor.WithReporter(reporters),
		executor.WithLimit(a.cfg.MaxTileBytes, 0),
	}
	if a.cfg.Trace {
		opts = append(opts, executor.WithTraceSink(trace.LogSink{Logger: a.logger}))
	}

	graphs := make([]graph.Graph, len(a.graphs))
	for i, g := range a.graphs {
		graphs[i] = g
	}

	exec, err := executor.New(ctx, graphs, opts...)
	if err != nil {
		return fmt.Errorf("failed to set up executor: %w", err)
	}
	defer exec.Close()

	if err := report.Display(a.outW, a.graphInfo()); err != nil {
		return err
	}

	a.logger.Info("🚀 Starting serial execution...", "graphs", len(graphs))
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	if st := exec.Stats(); st.SkippedPoints > 0 || st.SkippedEdges > 0 {
		a.logger.Warn("Run completed with skipped work; results are not a correctness guarantee.",
			"skipped_points", st.SkippedPoints,
			"skipped_edges", st.SkippedEdges,
		)
	}
	return nil
}

func (a *App) graphInfo() []report.GraphInfo {
	infos := make([]report.GraphInfo, len(a.graphs))
	for i, g := range a.graphs {
		p := g.Params()
		flops, bytes := g.Costs()
		infos[i] = report.GraphInfo{
			Name:         g.Name(),
			Type:         string(g.Type()),
			Timesteps:    p.Timesteps,
			MaxWidth:     p.MaxWidth,
			NbFields:     p.NbFields,
			Radix:        g.Radix(),
			Period:       g.Period(),
			Kernel:       a.model.Graphs[i].Kernel.Type,
			FlopsPerTask: flops,
			BytesPerTask: bytes,
			OutputBytes:  p.OutputBytesPerTask,
			ScratchBytes: p.ScratchBytesPerTask,
		}
	}
	return infos
}
