package executor

// State is a step of the per-point state machine.
type State int

const (
	StateNotStarted State = iota
	StateValidateX
	StateClassifyDeps
	StateGatherInputs
	StateDispatch
	// Terminal states.
	StateDone
	StateSkip
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateValidateX:
		return "validate_x"
	case StateClassifyDeps:
		return "classify_deps"
	case StateGatherInputs:
		return "gather_inputs"
	case StateDispatch:
		return "dispatch"
	case StateDone:
		return "done"
	case StateSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Path is the dispatch path a point took.
type Path int

const (
	PathSkipped Path = iota
	PathSingleInput
	PathMultiInput
)

func (p Path) String() string {
	switch p {
	case PathSingleInput:
		return "single"
	case PathMultiInput:
		return "multi"
	default:
		return "skipped"
	}
}

// Outcome describes how one point was handled.
type Outcome struct {
	Path  Path
	State State
	// Inputs is the number of input tiles handed to the kernel.
	Inputs       int
	SkippedEdges int
	// Err is the reason for a skipped point, or the first skipped edge of a
	// dispatched one.
	Err error
}

// Stats counts what a run did.
type Stats struct {
	Points        int64
	Tasks         int64
	SingleInput   int64
	MultiInput    int64
	Dependencies  int64
	SkippedPoints int64
	SkippedEdges  int64
}

func (s *Stats) add(o Outcome) {
	s.Points++
	s.SkippedEdges += int64(o.SkippedEdges)
	switch o.Path {
	case PathSingleInput:
		s.Tasks++
		s.SingleInput++
	case PathMultiInput:
		s.Tasks++
		s.MultiInput++
		s.Dependencies += int64(o.Inputs)
	default:
		s.SkippedPoints++
	}
}
