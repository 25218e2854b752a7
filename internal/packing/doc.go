// Package packing holds the bin-packing data model: containers, solutions,
// problem instances, the fitness used to rank solutions, greedy
// construction heuristics and the best-fit repair step shared by the
// search operators. Every exported operation either keeps a solution
// feasible or fails without mutating it.
package packing
