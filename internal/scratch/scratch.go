// Package scratch owns the single scratch buffer shared by every kernel call
// of a serial run.
package scratch

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/serialbench/internal/graph"
)

// ErrAllocation reports that the scratch buffer could not be allocated.
var ErrAllocation = errors.New("scratch allocation failed")

// Option configures New.
type Option func(*Manager)

// WithLimit caps the scratch buffer size in bytes. Zero means no cap.
func WithLimit(bytes int64) Option {
	return func(m *Manager) { m.limit = bytes }
}

// Manager holds one buffer sized to the largest ScratchBytesPerTask of any
// graph. The buffer is prepared once and never reset between kernel calls.
type Manager struct {
	buf      []byte
	limit    int64
	prepared bool
}

// New sizes, allocates and prepares the scratch buffer. When no graph needs
// scratch nothing is allocated and prepare is not called.
func New(params []graph.Params, prepare graph.PrepareFunc, opts ...Option) (m *Manager, err error) {
	m = &Manager{}
	for _, opt := range opts {
		opt(m)
	}

	size := 0
	for i, p := range params {
		if p.ScratchBytesPerTask < 0 {
			return nil, fmt.Errorf("%w: graph %d has negative scratch size %d", ErrAllocation, i, p.ScratchBytesPerTask)
		}
		size = max(size, p.ScratchBytesPerTask)
	}
	if size == 0 {
		return m, nil
	}
	if m.limit > 0 && int64(size) > m.limit {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrAllocation, size, m.limit)
	}

	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	m.buf = make([]byte, size)

	if prepare != nil {
		prepare(m.buf)
	}
	m.prepared = true
	return m, nil
}

// For returns the buffer re-sliced to p's own scratch size, or nil when p
// needs none.
func (m *Manager) For(p graph.Params) []byte {
	if m == nil || p.ScratchBytesPerTask <= 0 || p.ScratchBytesPerTask > len(m.buf) {
		return nil
	}
	return m.buf[:p.ScratchBytesPerTask:p.ScratchBytesPerTask]
}

// Size returns the allocated buffer length.
func (m *Manager) Size() int {
	if m == nil {
		return 0
	}
	return len(m.buf)
}

// Prepared reports whether the buffer was allocated and prepared.
func (m *Manager) Prepared() bool { return m != nil && m.prepared }

// Release drops the buffer. Safe to call more than once.
func (m *Manager) Release() {
	if m == nil {
		return
	}
	m.buf = nil
	m.prepared = false
}
