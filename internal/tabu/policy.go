package tabu

import "github.com/eugenenazirov/binpacker/internal/packing"

// Candidate is one neighbour of the current solution.
type Candidate struct {
	Move     Move
	Fitness  float64
	Solution *packing.Solution
}

// AcceptancePolicy chooses which candidate, if any, the search moves to.
// A candidate is admissible when its move is not tabu or its fitness beats
// best (aspiration). It returns the chosen index and whether one was found.
type AcceptancePolicy interface {
	Select(candidates []Candidate, memory *Memory, best float64) (int, bool)
}

// FirstAcceptable takes the first admissible candidate in generation order.
type FirstAcceptable struct{}

func (FirstAcceptable) Select(candidates []Candidate, memory *Memory, best float64) (int, bool) {
	for i, c := range candidates {
		if admissible(c, memory, best) {
			return i, true
		}
	}
	return -1, false
}

// BestAcceptable takes the admissible candidate with the lowest fitness;
// ties go to the earliest.
type BestAcceptable struct{}

func (BestAcceptable) Select(candidates []Candidate, memory *Memory, best float64) (int, bool) {
	chosen := -1
	for i, c := range candidates {
		if !admissible(c, memory, best) {
			continue
		}
		if chosen < 0 || c.Fitness < candidates[chosen].Fitness {
			chosen = i
		}
	}
	return chosen, chosen >= 0
}

// PolicyByName resolves "first" or "best"; anything else falls back to first.
func PolicyByName(name string) AcceptancePolicy {
	if name == "best" {
		return BestAcceptable{}
	}
	return FirstAcceptable{}
}

func admissible(c Candidate, memory *Memory, best float64) bool {
	return !memory.Contains(c.Move) || c.Fitness < best
}
