package packing

import "fmt"

// Repair returns a copy of partial with empty containers dropped and every
// orphan re-inserted by best fit, heaviest first. New containers are opened
// only when no existing one has room. partial is not modified.
func Repair(partial *Solution, orphans []int) (*Solution, error) {
	out := partial.Copy().Prune()
	for _, item := range sortedDesc(orphans) {
		if item <= 0 {
			return nil, fmt.Errorf("%w: orphan weight %d", ErrInvalidInstance, item)
		}
		if err := bestFit(out, item); err != nil {
			return nil, fmt.Errorf("repair item %d: %w", item, err)
		}
	}
	return out, nil
}
