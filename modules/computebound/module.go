// Package computebound provides a kernel that performs a fixed number of
// floating-point multiply-adds per task.
package computebound

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/specialistvlad/serialbench/internal/registry"
)

const lanes = 64

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments of the compute_bound kernel.
type Input struct {
	Iterations int `bench:"iterations"`
}

// Kernel runs Iterations rounds of a multiply-add over lanes values and
// stores a checksum after the stamp, if the output has room.
type Kernel struct {
	Iterations int
}

func (k Kernel) Execute(_, _ int, output []byte, _ [][]byte, _ []byte) {
	var a [lanes]float64
	for i := range a {
		a[i] = 1 + float64(i)/lanes
	}
	for it := 0; it < k.Iterations; it++ {
		for i := range a {
			a[i] = a[i]*0.5 + 0.5
		}
	}
	var sum float64
	for _, v := range a {
		sum += v
	}
	if len(output) >= kernel.StampSize+8 {
		binary.LittleEndian.PutUint64(output[kernel.StampSize:], math.Float64bits(sum))
	}
}

func (k Kernel) FlopsPerTask() int64 { return 2 * lanes * int64(k.Iterations) }
func (k Kernel) BytesPerTask() int64 { return 0 }

func build(_ context.Context, cfg any, _ graph.Params) (kernel.Kernel, error) {
	in := cfg.(*Input)
	if in.Iterations < 0 {
		return nil, fmt.Errorf("iterations must not be negative, got %d", in.Iterations)
	}
	return Kernel{Iterations: in.Iterations}, nil
}

// Register registers the kernel with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("compute_bound", &registry.RegisteredKernel{
		NewConfig: func() any { return new(Input) },
		Build:     build,
	})
}
