package graph

// Params are the static sizing attributes of a graph. They are read once by
// the executor and never change during a run.
type Params struct {
	// NbFields is the depth of the output double buffer. Timestep t writes
	// row t mod NbFields.
	NbFields int
	// MaxWidth is the maximum number of points active in any timestep.
	MaxWidth int
	// Timesteps is the number of timesteps to execute.
	Timesteps int
	// OutputBytesPerTask is the size of every output tile.
	OutputBytesPerTask int
	// ScratchBytesPerTask is the scratch size a single kernel call needs.
	ScratchBytesPerTask int
}

// Graph is the read-only view of a task graph consumed by the executor.
//
// Implementations are called from a single goroutine and need no locking.
// Correctness of double buffering requires NbFields to exceed the largest
// timestep distance any dependency spans; the executor assumes this holds.
type Graph interface {
	// Params returns the graph's sizing attributes.
	Params() Params

	// OffsetAtTimestep and WidthAtTimestep define the half-open range of
	// active points [offset, offset+width) at timestep t.
	OffsetAtTimestep(t int) int
	WidthAtTimestep(t int) int

	// DependenceSetAtTimestep selects which dependency rule applies at t.
	DependenceSetAtTimestep(t int) int

	// Dependencies returns the ordered source points, in the previous
	// timestep, that point x depends on under dependence set dset. The
	// returned slice must not be modified by the caller.
	Dependencies(dset, x int) []int

	// ExecutePoint runs the kernel for point x at timestep t. It writes its
	// result into output in place. inputs holds zero or more tiles in
	// dependency order and must not be retained after the call.
	ExecutePoint(t, x int, output []byte, inputs [][]byte, scratch []byte)
}

// PrepareFunc is the one-time scratch preparation hook. It runs once per
// executor, before any kernel call, and only when some graph needs scratch.
type PrepareFunc func(scratch []byte)
