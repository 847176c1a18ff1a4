// Package memorybound provides a kernel that streams through the scratch
// buffer, copying one half onto the other.
package memorybound

import (
	"context"
	"fmt"

	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/specialistvlad/serialbench/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of the memory_bound kernel.
type Input struct {
	Iterations int `bench:"iterations"`
}

// Kernel alternates the copy direction between the two halves of scratch on
// every iteration. Scratch contents carry over between calls.
type Kernel struct {
	Iterations int
	// Scratch is the scratch size the kernel was built for.
	Scratch int
}

func (k Kernel) Execute(_, _ int, _ []byte, _ [][]byte, scratch []byte) {
	half := len(scratch) / 2
	if half == 0 {
		return
	}
	lo, hi := scratch[:half], scratch[half:2*half]
	for it := 0; it < k.Iterations; it++ {
		if it%2 == 0 {
			copy(hi, lo)
		} else {
			copy(lo, hi)
		}
	}
}

func (k Kernel) FlopsPerTask() int64 { return 0 }

// BytesPerTask counts one read and one write of half the scratch buffer per
// iteration.
func (k Kernel) BytesPerTask() int64 { return int64(k.Iterations) * int64(k.Scratch/2) * 2 }

func build(_ context.Context, cfg any, p graph.Params) (kernel.Kernel, error) {
	in := cfg.(*Input)
	if in.Iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative, got %d", in.Iterations)
	}
	if p.ScratchBytesPerTask < 2 {
		return nil, fmt.Errorf("memory_bound needs scratch_bytes of at least 2, got %d", p.ScratchBytesPerTask)
	}
	return Kernel{Iterations: in.Iterations, Scratch: p.ScratchBytesPerTask}, nil
}

// Register registers the kernel with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("memory_bound", &registry.RegisteredKernel{
		NewConfig: func() any { return new(Input) },
		Build:     build,
	})
}
