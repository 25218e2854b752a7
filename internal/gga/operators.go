package gga

import (
	"fmt"

	"github.com/eugenenazirov/binpacker/internal/packing"
)

// Individual is a population member with its cached fitness.
type Individual struct {
	Solution *packing.Solution
	Fitness  float64
}

// Tournament samples size individuals uniformly with replacement and
// returns the fittest. On ties the first sampled wins.
func Tournament(population []Individual, size int, rng packing.Rand) Individual {
	best := population[rng.Intn(len(population))]
	for i := 1; i < size; i++ {
		cand := population[rng.Intn(len(population))]
		if cand.Fitness < best.Fitness {
			best = cand
		}
	}
	return best
}

// Crossover injects a random contiguous run of a's containers into a copy
// of b. Containers of b that held any injected item are dissolved; their
// remaining items, together with anything missing from expected, are
// re-inserted by packing.Repair. Neither parent is modified.
func Crossover(a, b *packing.Solution, expected []int, rng packing.Rand) (*packing.Solution, error) {
	if a.Len() == 0 || b.Len() == 0 {
		return packing.Repair(b, missingItems(b, nil, expected))
	}

	start := rng.Intn(a.Len())
	length := 1 + rng.Intn(a.Len()-start)
	donors := make([]*packing.Container, length)
	injected := make(map[int]int)
	for i := range donors {
		donors[i] = a.Container(start + i).Copy()
		for _, item := range donors[i].Elements() {
			injected[item]++
		}
	}

	child := b.Copy()
	var disrupted []int
	for i := 0; i < child.Len(); i++ {
		c := child.Container(i)
		hit := false
		for _, item := range c.Elements() {
			if injected[item] == 0 {
				continue
			}
			if err := c.Remove(item); err != nil {
				return nil, fmt.Errorf("crossover: %w", err)
			}
			injected[item]--
			hit = true
		}
		if hit {
			disrupted = append(disrupted, i)
		}
	}

	var orphans []int
	for _, c := range child.RemoveAt(disrupted...) {
		orphans = append(orphans, c.Elements()...)
	}
	child.Insert(rng.Intn(child.Len()+1), donors...)
	orphans = append(orphans, missingItems(child, orphans, expected)...)

	repaired, err := packing.Repair(child, orphans)
	if err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	if err := repaired.Validate(expected); err != nil {
		return nil, fmt.Errorf("crossover: %w", err)
	}
	return repaired, nil
}

// Mutate dissolves up to bins random containers of a copy of s and
// re-inserts their items by best fit.
func Mutate(s *packing.Solution, bins int, expected []int, rng packing.Rand) (*packing.Solution, error) {
	out := s.Copy()
	n := min(bins, out.Len())
	if n <= 0 {
		return out, nil
	}

	var orphans []int
	for _, c := range out.RemoveAt(rng.Perm(out.Len())[:n]...) {
		orphans = append(orphans, c.Elements()...)
	}

	repaired, err := packing.Repair(out, orphans)
	if err != nil {
		return nil, fmt.Errorf("mutate: %w", err)
	}
	if err := repaired.Validate(expected); err != nil {
		return nil, fmt.Errorf("mutate: %w", err)
	}
	return repaired, nil
}

// missingItems returns the items of expected that appear neither in s nor
// in pending.
func missingItems(s *packing.Solution, pending, expected []int) []int {
	counts := make(map[int]int, len(expected))
	for _, item := range expected {
		counts[item]++
	}
	for _, item := range s.Items() {
		counts[item]--
	}
	for _, item := range pending {
		counts[item]--
	}

	var missing []int
	for _, item := range expected {
		if counts[item] > 0 {
			missing = append(missing, item)
			counts[item]--
		}
	}
	return missing
}
