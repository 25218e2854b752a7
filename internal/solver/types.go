package solver

import (
	"time"

	"github.com/eugenenazirov/binpacker/internal/gga"
	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/packing"
)

// Result summarises one solve. TabuState is empty when refinement did not
// run. GGASolution is the packing handed to refinement; it is the same
// packing as Solution when refinement did not improve it.
type Result struct {
	Instance       string
	Solution       *packing.Solution
	GGASolution    *packing.Solution
	Fitness        float64
	Bins           int
	LowerBound     int
	History        []history.Stats
	Generations    int
	GGAStop        gga.StopReason
	TabuState      string
	TabuIterations int
	Duration       time.Duration
}

// Solver packs an instance into as few bins as it can find.
type Solver interface {
	Solve(in packing.Instance) (Result, error)
}
