// Package empty provides a kernel that does nothing, measuring pure
// dispatch overhead.
package empty

import (
	"context"

	"github.com/specialistvlad/serialbench/internal/graph"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/specialistvlad/serialbench/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Kernel does nothing.
type Kernel struct{}

func (Kernel) Execute(int, int, []byte, [][]byte, []byte) {}

func (Kernel) FlopsPerTask() int64 { return 0 }
func (Kernel) BytesPerTask() int64 { return 0 }

// Register registers the kernel with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKernel("empty", &registry.RegisteredKernel{
		Build: func(context.Context, any, graph.Params) (kernel.Kernel, error) {
			return Kernel{}, nil
		},
	})
}
