// Package executor runs task graphs serially over double-buffered tiles.
//
// For every graph, timesteps run in increasing order and the points of a
// timestep run in increasing column order. Timestep t writes row
// t mod NbFields of the graph's tile matrix and reads its inputs from row
// (t-1) mod NbFields.
//
// A point takes one of two paths. With no dependencies, or at timestep 0, the
// destination tile itself is passed as the only input. Otherwise the tiles of
// every in-bounds dependency are gathered in declared order and passed
// together. Either way the graph's kernel hook is invoked exactly once.
//
// Malformed indices never stop a run. An out-of-range column skips its point
// and an out-of-range dependency skips only that edge. Both are logged and
// counted. Only allocation failures are fatal, and they surface from New.
package executor
