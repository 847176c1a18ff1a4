// Package kernel defines the compute payload invoked for every point of a
// task graph, along with the small helpers kernels share.
//
// Kernels are opaque to the executor: it hands them a destination tile, an
// ordered list of input tiles and the shared scratch region, and never looks
// at the result. A kernel must write its output in place and must not keep a
// reference to the inputs slice after Execute returns, because the executor
// reuses its backing array for the next point.
package kernel

import "encoding/binary"

// StampSize is the number of leading output bytes used by Stamp.
const StampSize = 16

// Kernel is the per-point compute payload.
type Kernel interface {
	Execute(timestep, point int, output []byte, inputs [][]byte, scratch []byte)
}

// Func adapts an ordinary function to the Kernel interface.
type Func func(timestep, point int, output []byte, inputs [][]byte, scratch []byte)

// Execute calls f.
func (f Func) Execute(timestep, point int, output []byte, inputs [][]byte, scratch []byte) {
	f(timestep, point, output, inputs, scratch)
}

// Coster is implemented by kernels that can estimate the work they perform
// per task, for reporting.
type Coster interface {
	FlopsPerTask() int64
	BytesPerTask() int64
}

// Stamp writes (timestep, point) into the first StampSize bytes of buf. It is
// a no-op when buf is too small.
func Stamp(buf []byte, timestep, point int) {
	if len(buf) < StampSize {
		return
	}
	binary.LittleEndian.PutUint64(buf[0:8], uint64(int64(timestep)))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(int64(point)))
}

// ReadStamp returns the stamp previously written by Stamp. ok is false when
// buf cannot hold a stamp.
func ReadStamp(buf []byte) (timestep, point int, ok bool) {
	if len(buf) < StampSize {
		return 0, 0, false
	}
	timestep = int(int64(binary.LittleEndian.Uint64(buf[0:8])))
	point = int(int64(binary.LittleEndian.Uint64(buf[8:16])))
	return timestep, point, true
}
