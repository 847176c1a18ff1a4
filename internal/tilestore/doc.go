// Package tilestore owns the double-buffered output tiles of every graph in a
// run.
//
// Each graph gets one arena of NbFields*MaxWidth tiles, each exactly
// OutputBytesPerTask bytes, laid out row-major with the flat index
// row*MaxWidth + col. Tiles are handed out as capacity-capped sub-slices of
// the arena, so a kernel appending to its output can never spill into the
// neighbouring tile. Nothing is resized or freed individually; Release drops
// everything at once.
package tilestore
