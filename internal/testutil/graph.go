package testutil

import (
	"github.com/specialistvlad/serialbench/internal/graph"
)

// Call is one recorded kernel invocation.
type Call struct {
	Timestep int
	Point    int
	Output   []byte
	// Inputs is a copy of the slice headers passed to the kernel; the tiles
	// themselves are shared with the executor.
	Inputs  [][]byte
	Scratch []byte
}

// FakeGraph is a graph.Graph assembled from optional function fields. Unset
// fields fall back to a full-width, single dependence set graph without
// dependencies. Every kernel call is recorded.
type FakeGraph struct {
	P graph.Params

	Offset func(t int) int
	Width  func(t int) int
	DSet   func(t int) int
	Deps   func(dset, x int) []int
	Kernel func(t, x int, output []byte, inputs [][]byte, scratch []byte)

	// Queries counts calls to OffsetAtTimestep, WidthAtTimestep and
	// DependenceSetAtTimestep, keyed by method name.
	Queries map[string]int
	Calls   []Call
}

func (g *FakeGraph) Params() graph.Params { return g.P }

func (g *FakeGraph) OffsetAtTimestep(t int) int {
	g.count("offset")
	if g.Offset != nil {
		return g.Offset(t)
	}
	return 0
}

func (g *FakeGraph) WidthAtTimestep(t int) int {
	g.count("width")
	if g.Width != nil {
		return g.Width(t)
	}
	return g.P.MaxWidth
}

func (g *FakeGraph) DependenceSetAtTimestep(t int) int {
	g.count("dset")
	if g.DSet != nil {
		return g.DSet(t)
	}
	return 0
}

func (g *FakeGraph) Dependencies(dset, x int) []int {
	if g.Deps != nil {
		return g.Deps(dset, x)
	}
	return nil
}

func (g *FakeGraph) ExecutePoint(t, x int, output []byte, inputs [][]byte, scratch []byte) {
	var in [][]byte
	if inputs != nil {
		in = append([][]byte{}, inputs...)
	}
	g.Calls = append(g.Calls, Call{Timestep: t, Point: x, Output: output, Inputs: in, Scratch: scratch})
	if g.Kernel != nil {
		g.Kernel(t, x, output, inputs, scratch)
	}
}

// Points returns the (timestep, point) pairs of every recorded call.
func (g *FakeGraph) Points() [][2]int {
	out := make([][2]int, 0, len(g.Calls))
	for _, c := range g.Calls {
		out = append(out, [2]int{c.Timestep, c.Point})
	}
	return out
}

func (g *FakeGraph) count(name string) {
	if g.Queries == nil {
		g.Queries = make(map[string]int)
	}
	g.Queries[name]++
}

// SameTile reports whether a and b start at the same byte. Empty slices never
// match.
func SameTile(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return &a[0] == &b[0]
}
