// Package busywait provides a kernel that spins for a fixed wall-clock
// duration.
package busywait

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/specialistvlad/serialbench/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of the busy_wait kernel.
type Input struct {
	Duration string `bench:"duration"`
}

// Kernel spins until D has elapsed.
type Kernel struct {
	D time.Duration
}

func (k Kernel) Execute(int, int, []byte, [][]byte, []byte) {
	start := time.Now()
	for time.Since(start) < k.D {
	}
}

func build(_ context.Context, cfg any, _ graph.Params) (kernel.Kernel, error) {
	in := cfg.(*Input)
	d, err := time.ParseDuration(in.Duration)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration: %w", err)
	}
	if d < 0 {
		return nil, fmt.Errorf("duration must not be negative, got %v", d)
	}
	return Kernel{D: d}, nil
}

// Register registers the kernel with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("busy_wait", &registry.RegisteredKernel{
		NewConfig: func() any { return new(Input) },
		Build:     build,
	})
}
