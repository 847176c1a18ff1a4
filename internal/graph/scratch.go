package graph

import "encoding/binary"

// scratchFill is written into every full 8-byte word of a prepared scratch
// region, so kernels reading uninitialised scratch see a recognisable value.
const scratchFill uint64 = 0x5c4a7c8b13579bdf

// PrepareScratch is the default PrepareFunc.
func PrepareScratch(scratch []byte) {
	n := len(scratch) &^ 7
	for i := 0; i < n; i += 8 {
		binary.LittleEndian.PutUint64(scratch[i:i+8], scratchFill)
	}
	clear(scratch[n:])
}
