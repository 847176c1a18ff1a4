// Package graph defines the contract between the serial executor and the task
// graphs it runs, plus a reference implementation of the common synthetic
// dependence patterns.
//
// A graph is a sequence of timesteps. At every timestep a contiguous range of
// points is active, and each point may depend on points of the previous
// timestep. The executor only ever talks to a graph through the Graph
// interface, so topology generators and kernels can be swapped freely.
//
// # Relationship with Other Components
//
//   - Executor: queries ranges, dependence sets and dependency lists, then
//     calls ExecutePoint once per active point.
//   - Kernel: Pattern delegates the compute payload of every point to a
//     kernel.Kernel built by the registry.
//   - Tile store / scratch manager: sized from Params.
package graph
