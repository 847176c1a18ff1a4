package graph

import (
	"fmt"
	"math/bits"

	"github.com/specialistvlad/serialbench/internal/kernel"
)

// DependenceType names one of the synthetic dependency patterns.
type DependenceType string

const (
	Trivial           DependenceType = "trivial"
	NoComm            DependenceType = "no_comm"
	Stencil1D         DependenceType = "stencil_1d"
	Stencil1DPeriodic DependenceType = "stencil_1d_periodic"
	DOM               DependenceType = "dom"
	Tree              DependenceType = "tree"
	FFT               DependenceType = "fft"
	AllToAll          DependenceType = "all_to_all"
	Nearest           DependenceType = "nearest"
	Spread            DependenceType = "spread"
)

// DependenceTypes lists every supported pattern in a stable order.
var DependenceTypes = []DependenceType{
	Trivial, NoComm, Stencil1D, Stencil1DPeriodic, DOM, Tree, FFT, AllToAll, Nearest, Spread,
}

// ParseDependenceType resolves a pattern name.
func ParseDependenceType(s string) (DependenceType, error) {
	for _, d := range DependenceTypes {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dependence type %q", s)
}

// PatternConfig describes a Pattern graph.
type PatternConfig struct {
	Name   string
	Type   DependenceType
	Params Params
	// Radix is the fan-in for nearest and spread. Zero selects 3.
	Radix int
	// Period is the number of dependence sets spread cycles through. Zero
	// selects 1.
	Period int
	// Verify enables checking of input stamps in ExecutePoint.
	Verify bool
}

// Pattern is a Graph built from one of the standard dependence types.
// Dependency lists are computed once at construction.
type Pattern struct {
	cfg   PatternConfig
	k     kernel.Kernel
	nsets int
	deps  [][]int // indexed by dset*MaxWidth + x

	mismatches int64
}

// NewPattern builds a pattern graph that runs k at every point.
func NewPattern(cfg PatternConfig, k kernel.Kernel) (*Pattern, error) {
	if _, err := ParseDependenceType(string(cfg.Type)); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, fmt.Errorf("graph %q: kernel is required", cfg.Name)
	}
	if cfg.Params.MaxWidth < 0 || cfg.Params.Timesteps < 0 {
		return nil, fmt.Errorf("graph %q: max_width and timesteps must not be negative", cfg.Name)
	}
	if cfg.Radix == 0 {
		cfg.Radix = 3
	}
	if cfg.Radix < 0 {
		return nil, fmt.Errorf("graph %q: radix must be positive, got %d", cfg.Name, cfg.Radix)
	}
	if cfg.Period == 0 {
		cfg.Period = 1
	}
	if cfg.Period < 0 {
		return nil, fmt.Errorf("graph %q: period must be positive, got %d", cfg.Name, cfg.Period)
	}

	p := &Pattern{cfg: cfg, k: k}
	p.nsets = p.maxDependenceSets()
	w := cfg.Params.MaxWidth
	p.deps = make([][]int, p.nsets*w)
	for dset := 0; dset < p.nsets; dset++ {
		for x := 0; x < w; x++ {
			p.deps[dset*w+x] = p.computeDependencies(dset, x)
		}
	}
	return p, nil
}

// Name returns the configured graph name.
func (p *Pattern) Name() string { return p.cfg.Name }

// Type returns the dependence type.
func (p *Pattern) Type() DependenceType { return p.cfg.Type }

// Radix returns the fan-in used by nearest and spread, after defaulting.
func (p *Pattern) Radix() int { return p.cfg.Radix }

// Period returns the number of dependence sets spread cycles through, after
// defaulting.
func (p *Pattern) Period() int { return p.cfg.Period }

// Params implements Graph.
func (p *Pattern) Params() Params { return p.cfg.Params }

// MaxDependenceSets returns how many distinct dependence sets the pattern
// cycles through.
func (p *Pattern) MaxDependenceSets() int { return p.nsets }

// OffsetAtTimestep implements Graph.
func (p *Pattern) OffsetAtTimestep(t int) int {
	if t < 0 {
		return 0
	}
	if p.cfg.Type == DOM {
		return max(0, t+p.cfg.Params.MaxWidth-p.cfg.Params.Timesteps)
	}
	return 0
}

// WidthAtTimestep implements Graph.
func (p *Pattern) WidthAtTimestep(t int) int {
	w := p.cfg.Params.MaxWidth
	if t < 0 {
		return 0
	}
	switch p.cfg.Type {
	case DOM:
		return max(0, min(w, t+1, p.cfg.Params.Timesteps-t))
	case Tree:
		return min(w, 1<<min(t, 62))
	default:
		return w
	}
}

// DependenceSetAtTimestep implements Graph.
func (p *Pattern) DependenceSetAtTimestep(t int) int {
	switch p.cfg.Type {
	case FFT:
		return (t + p.nsets - 1) % p.nsets
	case Spread:
		return t % p.nsets
	default:
		return 0
	}
}

// Dependencies implements Graph. Out-of-range arguments yield no
// dependencies.
func (p *Pattern) Dependencies(dset, x int) []int {
	w := p.cfg.Params.MaxWidth
	if dset < 0 || dset >= p.nsets || x < 0 || x >= w {
		return nil
	}
	return p.deps[dset*w+x]
}

// ExecutePoint implements Graph. The kernel runs first; the (t, x) stamp is
// written afterwards so it survives kernels that overwrite the whole tile.
func (p *Pattern) ExecutePoint(t, x int, output []byte, inputs [][]byte, scratch []byte) {
	if p.cfg.Verify && t > 0 {
		p.verify(t, x, inputs)
	}
	p.k.Execute(t, x, output, inputs, scratch)
	kernel.Stamp(output, t, x)
}

// Mismatches returns the number of inputs whose stamp did not match the
// expected (t-1, dependency) pair. Always zero unless Verify is set.
func (p *Pattern) Mismatches() int64 { return p.mismatches }

// Costs returns the estimated FLOPs and bytes touched per task, or zeros if
// the kernel does not report them.
func (p *Pattern) Costs() (flops, bytes int64) {
	if c, ok := p.k.(kernel.Coster); ok {
		return c.FlopsPerTask(), c.BytesPerTask()
	}
	return 0, 0
}

func (p *Pattern) verify(t, x int, inputs [][]byte) {
	deps := p.Dependencies(p.DependenceSetAtTimestep(t), x)
	// The single-input fallback and partially gathered inputs cannot be
	// matched one-to-one against the dependency list.
	if len(deps) == 0 || len(deps) != len(inputs) {
		return
	}
	for i, in := range inputs {
		ts, pt, ok := kernel.ReadStamp(in)
		if !ok {
			return
		}
		if ts != t-1 || pt != deps[i] {
			p.mismatches++
		}
	}
}

func (p *Pattern) maxDependenceSets() int {
	switch p.cfg.Type {
	case FFT:
		w := p.cfg.Params.MaxWidth
		if w <= 1 {
			return 1
		}
		return bits.Len(uint(w - 1))
	case Spread:
		return p.cfg.Period
	default:
		return 1
	}
}

func (p *Pattern) computeDependencies(dset, x int) []int {
	w := p.cfg.Params.MaxWidth
	switch p.cfg.Type {
	case Trivial:
		return nil
	case NoComm:
		return []int{x}
	case Stencil1D:
		return clippedRange(x-1, x+1, w)
	case Stencil1DPeriodic:
		return uniqueMod([]int{x - 1, x, x + 1}, w)
	case DOM:
		return clippedRange(x-1, x, w)
	case Tree:
		return []int{x / 2}
	case FFT:
		d := 1 << dset
		var deps []int
		if x-d >= 0 {
			deps = append(deps, x-d)
		}
		deps = append(deps, x)
		if x+d < w {
			deps = append(deps, x+d)
		}
		return deps
	case AllToAll:
		return clippedRange(0, w-1, w)
	case Nearest:
		r := min(p.cfg.Radix, w)
		return clippedRange(x-(r-1)/2, x+r/2, w)
	case Spread:
		r := min(p.cfg.Radix, w)
		cols := make([]int, 0, r)
		for i := 0; i < r; i++ {
			shift := 0
			if i > 0 {
				shift = dset
			}
			cols = append(cols, x+i*w/r+shift)
		}
		return uniqueMod(cols, w)
	}
	return nil
}

// clippedRange returns the columns lo..hi inclusive, clipped to [0, w).
func clippedRange(lo, hi, w int) []int {
	lo = max(lo, 0)
	hi = min(hi, w-1)
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		out = append(out, c)
	}
	return out
}

// uniqueMod wraps every column into [0, w) and drops repeats, keeping the
// first occurrence.
func uniqueMod(cols []int, w int) []int {
	if w <= 0 {
		return nil
	}
	out := make([]int, 0, len(cols))
	for _, c := range cols {
		c = ((c % w) + w) % w
		seen := false
		for _, o := range out {
			if o == c {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, c)
		}
	}
	return out
}
