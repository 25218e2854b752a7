package packing

import "math"

// Fitness scores a solution. Lower is better.
type Fitness interface {
	Evaluate(s *Solution) float64
}

// FitnessFunc adapts a plain function to Fitness.
type FitnessFunc func(s *Solution) float64

func (f FitnessFunc) Evaluate(s *Solution) float64 { return f(s) }

// DefaultFillExponent is the exponent k of the Falkenauer fill term.
const DefaultFillExponent = 2.0

// FalkenauerFitness scores a solution as
//
//	bins + (1 - mean((used/capacity)^k))
//
// The fill term lies in [0, 1) for pruned solutions, so the bin count
// always dominates; among equal counts, solutions concentrating weight in
// full bins win.
type FalkenauerFitness struct {
	Exponent float64
}

// NewFitness returns the Falkenauer fitness with the default exponent.
func NewFitness() FalkenauerFitness {
	return FalkenauerFitness{Exponent: DefaultFillExponent}
}

func (f FalkenauerFitness) Evaluate(s *Solution) float64 {
	n := s.Len()
	if n == 0 {
		return 0
	}
	k := f.Exponent
	if k <= 0 {
		k = DefaultFillExponent
	}
	var fill float64
	for _, c := range s.containers {
		fill += math.Pow(c.FillRatio(), k)
	}
	return float64(n) + (1 - fill/float64(n))
}
