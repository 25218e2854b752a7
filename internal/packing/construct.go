package packing

import (
	"fmt"
	"slices"
)

// FirstFitDecreasing sorts items by decreasing weight and puts each into
// the first container with room.
func FirstFitDecreasing(in Instance) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return firstFit(in.Capacity, sortedDesc(in.Items))
}

// BestFitDecreasing sorts items by decreasing weight and puts each into
// the fullest container that still has room.
func BestFitDecreasing(in Instance) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := NewSolution(in.Capacity)
	for _, item := range sortedDesc(in.Items) {
		if err := bestFit(s, item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// RandomizedFirstFit applies first fit to a random permutation of the items.
func RandomizedFirstFit(in Instance, rng Rand) (*Solution, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	order := make([]int, len(in.Items))
	for i, p := range rng.Perm(len(in.Items)) {
		order[i] = in.Items[p]
	}
	return firstFit(in.Capacity, order)
}

func firstFit(capacity int, items []int) (*Solution, error) {
	s := NewSolution(capacity)
	for _, item := range items {
		if item <= 0 {
			return nil, fmt.Errorf("%w: item weight %d", ErrInvalidInstance, item)
		}
		if item > capacity {
			return nil, fmt.Errorf("%w: item weighs %d, capacity is %d", ErrInfeasibleItem, item, capacity)
		}
		target := firstWithRoom(s, item)
		if target == nil {
			target = s.OpenContainer()
		}
		if err := target.Add(item); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func firstWithRoom(s *Solution, item int) *Container {
	for _, c := range s.containers {
		if c.Fits(item) {
			return c
		}
	}
	return nil
}

// bestFit places item into the container with the least remaining space
// that can still hold it, opening a new container if none can.
func bestFit(s *Solution, item int) error {
	var target *Container
	for _, c := range s.containers {
		if !c.Fits(item) {
			continue
		}
		if target == nil || c.RemainingSpace() < target.RemainingSpace() {
			target = c
		}
	}
	if target == nil {
		if item > s.capacity {
			return ErrInfeasibleItem
		}
		target = s.OpenContainer()
	}
	return target.Add(item)
}

func sortedDesc(items []int) []int {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}
