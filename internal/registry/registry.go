package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/serialbench/internal/config"
	"github.com/specialistvlad/serialbench/internal/ctxlog"
	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
)

// Module is the interface that all kernel modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredKernel holds the compiled Go parts of a kernel type.
type RegisteredKernel struct {
	// NewConfig returns a pointer to a fresh argument struct. Nil means the
	// kernel takes no arguments.
	NewConfig func() any
	// Build constructs the kernel from decoded arguments for one graph.
	Build func(ctx context.Context, cfg any, p graph.Params) (kernel.Kernel, error)
}

// Registry holds the registered kernel types of a single application
// instance.
type Registry struct {
	kernels map[string]*RegisteredKernel
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{kernels: make(map[string]*RegisteredKernel)}
}

// RegisterKernel registers a kernel type. Registering the same name twice
// panics.
func (r *Registry) RegisterKernel(name string, k *RegisteredKernel) {
	if _, exists := r.kernels[name]; exists {
		panic(fmt.Sprintf("kernel with name '%s' already registered", name))
	}
	if k == nil || k.Build == nil {
		panic(fmt.Sprintf("kernel '%s' has no build function", name))
	}
	slog.Debug("Registering kernel.", "name", name)
	r.kernels[name] = k
}

// Kernel looks up a registered kernel type.
func (r *Registry) Kernel(name string) (*RegisteredKernel, bool) {
	k, ok := r.kernels[name]
	return k, ok
}

// Types returns the registered kernel type names in sorted order.
func (r *Registry) Types() []string {
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build decodes def's arguments through conv and constructs the kernel for
// a graph with parameters p.
func (r *Registry) Build(ctx context.Context, def *config.KernelDefinition, conv config.Converter, p graph.Params) (kernel.Kernel, error) {
	logger := ctxlog.FromContext(ctx).With("kernel", def.Type)

	rk, ok := r.kernels[def.Type]
	if !ok {
		return nil, fmt.Errorf("unknown kernel type %q", def.Type)
	}

	var cfg any
	if rk.NewConfig != nil {
		cfg = rk.NewConfig()
		if err := conv.DecodeBody(ctx, cfg, def.Arguments); err != nil {
			return nil, fmt.Errorf("failed to decode arguments for kernel %q: %w", def.Type, err)
		}
	} else if len(def.Arguments) > 0 {
		return nil, fmt.Errorf("kernel %q takes no arguments", def.Type)
	}
	logger.Debug("Kernel arguments decoded.", "config", cfg)

	k, err := rk.Build(ctx, cfg, p)
	if err != nil {
		return nil, fmt.Errorf("failed to build kernel %q: %w", def.Type, err)
	}
	return k, nil
}
