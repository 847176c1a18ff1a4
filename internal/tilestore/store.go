package tilestore

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/serialbench/internal/graph"
)

var (
	// ErrAllocation reports that a matrix could not be allocated. It is fatal
	// for the run.
	ErrAllocation = errors.New("tile allocation failed")
	// ErrUnknownGraph reports a graph index outside the store.
	ErrUnknownGraph = errors.New("unknown graph index")
	// ErrOutOfBounds reports a row, column or flat index outside a matrix.
	ErrOutOfBounds = errors.New("tile index out of bounds")
	// ErrReleased reports access after Release.
	ErrReleased = errors.New("tile store released")
)

// Option configures Allocate.
type Option func(*options)

type options struct {
	limit int64
}

// WithLimit caps the total number of bytes the store may allocate across all
// graphs. Zero means no cap.
func WithLimit(bytes int64) Option {
	return func(o *options) { o.limit = bytes }
}

// matrix is the tile arena of a single graph.
type matrix struct {
	rows     int
	cols     int
	tileSize int
	data     []byte
}

// Store holds one matrix per graph, indexed like the graphs slice it was
// allocated from.
type Store struct {
	matrices []matrix
	bytes    int64
	released bool
}

// Allocate creates a matrix for every graph. Graphs with a non-positive
// NbFields or MaxWidth get an empty matrix; lookups into it fail with
// ErrOutOfBounds. Any failure is reported as ErrAllocation.
func Allocate(params []graph.Params, opts ...Option) (s *Store, err error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		// make panics on lengths the runtime cannot satisfy.
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()

	s = &Store{matrices: make([]matrix, len(params))}
	for i, p := range params {
		size, err := arenaSize(p)
		if err != nil {
			return nil, fmt.Errorf("%w: graph %d: %v", ErrAllocation, i, err)
		}
		if o.limit > 0 && s.bytes+size > o.limit {
			return nil, fmt.Errorf("%w: graph %d needs %d bytes, %d of %d already in use", ErrAllocation, i, size, s.bytes, o.limit)
		}

		m := matrix{tileSize: p.OutputBytesPerTask}
		if p.NbFields > 0 && p.MaxWidth > 0 {
			m.rows = p.NbFields
			m.cols = p.MaxWidth
			m.data = make([]byte, size)
		}
		s.matrices[i] = m
		s.bytes += size
	}
	return s, nil
}

// arenaSize returns the byte size of a graph's arena, guarding against
// overflow.
func arenaSize(p graph.Params) (int64, error) {
	if p.OutputBytesPerTask < 0 {
		return 0, fmt.Errorf("negative output size %d", p.OutputBytesPerTask)
	}
	if p.NbFields <= 0 || p.MaxWidth <= 0 {
		return 0, nil
	}
	tiles := int64(p.NbFields) * int64(p.MaxWidth)
	if tiles/int64(p.MaxWidth) != int64(p.NbFields) {
		return 0, fmt.Errorf("tile count overflows: %d x %d", p.NbFields, p.MaxWidth)
	}
	if p.OutputBytesPerTask > 0 && tiles > math.MaxInt/int64(p.OutputBytesPerTask) {
		return 0, fmt.Errorf("arena size overflows: %d tiles of %d bytes", tiles, p.OutputBytesPerTask)
	}
	return tiles * int64(p.OutputBytesPerTask), nil
}

// Len returns the number of graphs in the store.
func (s *Store) Len() int { return len(s.matrices) }

// Bytes returns the total number of tile bytes held.
func (s *Store) Bytes() int64 { return s.bytes }

// Index returns the flat tile index of (row, col) in graph g's matrix.
func (s *Store) Index(g, row, col int) (int, error) {
	m, err := s.matrix(g)
	if err != nil {
		return 0, err
	}
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("graph %d (%d,%d) in %dx%d: %w", g, row, col, m.rows, m.cols, ErrOutOfBounds)
	}
	idx := row*m.cols + col
	if idx < 0 || idx >= m.rows*m.cols {
		return 0, fmt.Errorf("graph %d flat index %d: %w", g, idx, ErrOutOfBounds)
	}
	return idx, nil
}

// TileAt returns the tile at (row, col) of graph g. The returned slice has
// length and capacity OutputBytesPerTask.
func (s *Store) TileAt(g, row, col int) ([]byte, error) {
	idx, err := s.Index(g, row, col)
	if err != nil {
		return nil, err
	}
	m := &s.matrices[g]
	off := idx * m.tileSize
	return m.data[off : off+m.tileSize : off+m.tileSize], nil
}

// Release drops every matrix. Later lookups fail with ErrReleased. Calling
// Release more than once is harmless.
func (s *Store) Release() {
	if s == nil || s.released {
		return
	}
	for i := range s.matrices {
		s.matrices[i].data = nil
	}
	s.matrices = nil
	s.bytes = 0
	s.released = true
}

func (s *Store) matrix(g int) (*matrix, error) {
	if s == nil || s.released {
		return nil, ErrReleased
	}
	if g < 0 || g >= len(s.matrices) {
		return nil, fmt.Errorf("graph %d of %d: %w", g, len(s.matrices), ErrUnknownGraph)
	}
	return &s.matrices[g], nil
}
