package graph

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/serialbench/internal/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noop = kernel.Func(func(int, int, []byte, [][]byte, []byte) {})

func newPattern(t *testing.T, typ DependenceType, width, steps int) *Pattern {
	t.Helper()
	p, err := NewPattern(PatternConfig{
		Name: "test",
		Type: typ,
		Params: Params{
			NbFields:           3,
			MaxWidth:           width,
			Timesteps:          steps,
			OutputBytesPerTask: kernel.StampSize,
		},
	}, noop)
	require.NoError(t, err)
	return p
}

func TestParseDependenceType(t *testing.T) {
	for _, d := range DependenceTypes {
		got, err := ParseDependenceType(string(d))
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}

	_, err := ParseDependenceType("ring")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dependence type "ring"`)
}

func TestNewPattern_Rejects(t *testing.T) {
	_, err := NewPattern(PatternConfig{Name: "g", Type: "bogus"}, noop)
	require.Error(t, err)

	_, err = NewPattern(PatternConfig{Name: "g", Type: Trivial}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kernel is required")

	_, err = NewPattern(PatternConfig{Name: "g", Type: Nearest, Radix: -1, Params: Params{MaxWidth: 4}}, noop)
	require.Error(t, err)
}

func TestDependencies(t *testing.T) {
	tests := []struct {
		name  string
		typ   DependenceType
		width int
		dset  int
		x     int
		want  []int
	}{
		{"trivial", Trivial, 4, 0, 2, nil},
		{"no_comm", NoComm, 4, 0, 2, []int{2}},
		{"stencil interior", Stencil1D, 4, 0, 1, []int{0, 1, 2}},
		{"stencil left edge", Stencil1D, 4, 0, 0, []int{0, 1}},
		{"stencil right edge", Stencil1D, 4, 0, 3, []int{2, 3}},
		{"periodic left edge", Stencil1DPeriodic, 4, 0, 0, []int{3, 0, 1}},
		{"periodic narrow", Stencil1DPeriodic, 2, 0, 0, []int{1, 0}},
		{"dom", DOM, 4, 0, 2, []int{1, 2}},
		{"dom first column", DOM, 4, 0, 0, []int{0}},
		{"tree", Tree, 8, 0, 5, []int{2}},
		{"fft set 0", FFT, 8, 0, 2, []int{1, 2, 3}},
		{"fft set 2", FFT, 8, 2, 2, []int{2, 6}},
		{"all_to_all", AllToAll, 3, 0, 1, []int{0, 1, 2}},
		{"nearest radix 3", Nearest, 8, 0, 4, []int{3, 4, 5}},
		{"x out of range", NoComm, 4, 0, 4, nil},
		{"dset out of range", NoComm, 4, 1, 0, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPattern(t, tc.typ, tc.width, 4)
			got := p.Dependencies(tc.dset, tc.x)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Dependencies(%d, %d) mismatch (-want +got):\n%s", tc.dset, tc.x, diff)
			}
		})
	}
}

func TestSpread_CyclesDependenceSets(t *testing.T) {
	p, err := NewPattern(PatternConfig{
		Name:   "spread",
		Type:   Spread,
		Params: Params{NbFields: 2, MaxWidth: 6, Timesteps: 6},
		Radix:  3,
		Period: 2,
	}, noop)
	require.NoError(t, err)

	assert.Equal(t, 2, p.MaxDependenceSets())
	assert.Equal(t, 3, p.Radix())
	assert.Equal(t, 2, p.Period())
	assert.Equal(t, 0, p.DependenceSetAtTimestep(0))
	assert.Equal(t, 1, p.DependenceSetAtTimestep(1))
	assert.Equal(t, 0, p.DependenceSetAtTimestep(2))

	assert.Equal(t, []int{0, 2, 4}, p.Dependencies(0, 0))
	assert.Equal(t, []int{5, 2, 4}, p.Dependencies(1, 5))
}

func TestSpread_UnevenWidth(t *testing.T) {
	p, err := NewPattern(PatternConfig{
		Name:   "spread",
		Type:   Spread,
		Params: Params{NbFields: 2, MaxWidth: 8, Timesteps: 2},
		Radix:  3,
	}, noop)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 5}, p.Dependencies(0, 0))
	assert.Equal(t, []int{7, 1, 4}, p.Dependencies(0, 7))
}

func TestFFT_DependenceSets(t *testing.T) {
	p := newPattern(t, FFT, 8, 6)
	require.Equal(t, 3, p.MaxDependenceSets())
	assert.Equal(t, 2, p.DependenceSetAtTimestep(0))
	assert.Equal(t, 0, p.DependenceSetAtTimestep(1))
	assert.Equal(t, 1, p.DependenceSetAtTimestep(2))
}

func TestActiveRange(t *testing.T) {
	t.Run("full width", func(t *testing.T) {
		p := newPattern(t, Stencil1D, 5, 3)
		for ts := 0; ts < 3; ts++ {
			assert.Equal(t, 0, p.OffsetAtTimestep(ts))
			assert.Equal(t, 5, p.WidthAtTimestep(ts))
		}
	})

	t.Run("tree doubles", func(t *testing.T) {
		p := newPattern(t, Tree, 5, 5)
		var widths []int
		for ts := 0; ts < 5; ts++ {
			widths = append(widths, p.WidthAtTimestep(ts))
		}
		assert.Equal(t, []int{1, 2, 4, 5, 5}, widths)
	})

	t.Run("dom wavefront", func(t *testing.T) {
		p := newPattern(t, DOM, 3, 5)
		type span struct{ Off, Width int }
		var got []span
		for ts := 0; ts < 5; ts++ {
			got = append(got, span{p.OffsetAtTimestep(ts), p.WidthAtTimestep(ts)})
		}
		want := []span{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 1}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("dom spans mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("negative timestep", func(t *testing.T) {
		p := newPattern(t, NoComm, 4, 2)
		assert.Equal(t, 0, p.OffsetAtTimestep(-1))
		assert.Equal(t, 0, p.WidthAtTimestep(-1))
	})
}

func TestExecutePoint_StampsAndVerifies(t *testing.T) {
	var calls int
	k := kernel.Func(func(ts, pt int, out []byte, in [][]byte, _ []byte) {
		calls++
		clear(out)
	})
	p, err := NewPattern(PatternConfig{
		Name:   "v",
		Type:   NoComm,
		Params: Params{NbFields: 2, MaxWidth: 2, Timesteps: 2, OutputBytesPerTask: kernel.StampSize},
		Verify: true,
	}, k)
	require.NoError(t, err)

	prev := make([]byte, kernel.StampSize)
	p.ExecutePoint(0, 1, prev, [][]byte{prev}, nil)
	ts, pt, ok := kernel.ReadStamp(prev)
	require.True(t, ok)
	assert.Equal(t, 0, ts)
	assert.Equal(t, 1, pt)

	// Correct predecessor: no mismatch.
	out := make([]byte, kernel.StampSize)
	p.ExecutePoint(1, 1, out, [][]byte{prev}, nil)
	assert.Zero(t, p.Mismatches())

	// Wrong predecessor column.
	p.ExecutePoint(1, 0, out, [][]byte{prev}, nil)
	assert.Equal(t, int64(1), p.Mismatches())
	assert.Equal(t, 3, calls)
}

func TestPrepareScratch(t *testing.T) {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = 0xff
	}
	PrepareScratch(buf)

	assert.Equal(t, scratchFill, binary.LittleEndian.Uint64(buf[0:8]))
	assert.Equal(t, scratchFill, binary.LittleEndian.Uint64(buf[8:16]))
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[16:])
}
