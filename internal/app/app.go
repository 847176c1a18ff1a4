package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/graph"
	ihcl "github.com/specialistvlad/serialbench/internal/hcl"
	"github.com/specialistvlad/serialbench/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	runID    string
	registry *registry.Registry
	model    *config.Model
	graphs   []*graph.Pattern
}

// NewApp is the constructor for the main application. It loads and validates
// the configuration, registers kernel modules and builds every graph. Any
// startup failure panics; the entrypoint recovers and reports it.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var (
		model *config.Model
		conv  config.Converter
		err   error
	)
	if cfg.ConfigPath != "" {
		model, conv, err = loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		logger.Debug("Configuration loaded and translated into unified model.", "graphs", len(model.Graphs))
	} else {
		conv = ihcl.NewConverter(nil)
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All kernel modules registered.", "count", len(modules), "kernels", reg.Types())

	if model == nil {
		model, err = modelFromFlags(cfg.Graphs, conv, reg)
		if err != nil {
			panic(fmt.Errorf("failed to build graphs from flags: %w", err))
		}
	}

	if err := config.Validate(model); err != nil {
		panic(err)
	}
	if err := reg.Validate(ctx, model); err != nil {
		// A mismatch between configuration and compiled kernels.
		panic(err)
	}
	logger.Debug("Configuration validation passed.")

	graphs := make([]*graph.Pattern, 0, len(model.Graphs))
	for _, def := range model.Graphs {
		p, err := buildPattern(ctx, def, reg, conv, cfg.Verify)
		if err != nil {
			panic(fmt.Errorf("graph %q: %w", def.Name, err))
		}
		graphs = append(graphs, p)
	}
	logger.Debug("Graphs built.", "count", len(graphs))

	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		runID:    runID,
		registry: reg,
		model:    model,
		graphs:   graphs,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry { return a.registry }

// Graphs returns the built graphs in execution order.
func (a *App) Graphs() []*graph.Pattern { return a.graphs }

// RunID returns the identifier attached to every log line and report.
func (a *App) RunID() string { return a.runID }

func buildPattern(ctx context.Context, def *config.GraphDefinition, reg *registry.Registry, conv config.Converter, verify bool) (*graph.Pattern, error) {
	params := graph.Params{
		NbFields:            def.NbFields,
		MaxWidth:            def.MaxWidth,
		Timesteps:           def.Timesteps,
		OutputBytesPerTask:  def.OutputBytes,
		ScratchBytesPerTask: def.ScratchBytes,
	}
	k, err := reg.Build(ctx, def.Kernel, conv, params)
	if err != nil {
		return nil, err
	}
	typ, err := graph.ParseDependenceType(def.Pattern)
	if err != nil {
		return nil, err
	}
	return graph.NewPattern(graph.PatternConfig{
		Name:   def.Name,
		Type:   typ,
		Params: params,
		Radix:  def.Radix,
		Period: def.Period,
		Verify: verify,
	}, k)
}

// modelFromFlags turns command-line graphs into a model. Kernel arguments
// are only passed when the kernel accepts them.
func modelFromFlags(flags []GraphFlags, conv config.Converter, reg *registry.Registry) (*config.Model, error) {
	model := &config.Model{}
	for i, f := range flags {
		def := &config.GraphDefinition{
			Name:         fmt.Sprintf("graph%d", i),
			Pattern:      f.Type,
			Timesteps:    f.Steps,
			MaxWidth:     f.Width,
			NbFields:     f.NbFields,
			OutputBytes:  f.OutputBytes,
			ScratchBytes: f.ScratchBytes,
			Radix:        f.Radix,
			Period:       f.Period,
			Kernel:       &config.KernelDefinition{Type: f.Kernel, Arguments: map[string]hcl.Expression{}},
		}

		accepted := reg.Arguments(f.Kernel)
		candidates := map[string]any{"iterations": f.Iterations, "duration": f.Duration}
		for name, v := range candidates {
			if _, ok := accepted[name]; !ok {
				continue
			}
			val, err := conv.ToCtyValue(v)
			if err != nil {
				return nil, fmt.Errorf("graph %d: argument %q: %w", i, name, err)
			}
			def.Kernel.Arguments[name] = hcl.StaticExpr(val, hcl.Range{Filename: "<flags>"})
		}
		model.Graphs = append(model.Graphs, def)
	}
	return model, nil
}
