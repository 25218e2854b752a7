package packing

import "fmt"

// Instance is a bin-packing problem: item weights and a common bin capacity.
type Instance struct {
	Name     string
	Capacity int
	Items    []int
}

// Validate rejects empty or malformed instances and items that can never fit.
func (in Instance) Validate() error {
	if in.Capacity <= 0 || len(in.Items) == 0 {
		return ErrInvalidInstance
	}
	for i, item := range in.Items {
		if item <= 0 {
			return fmt.Errorf("%w: item %d has weight %d", ErrInvalidInstance, i, item)
		}
		if item > in.Capacity {
			return fmt.Errorf("%w: item %d weighs %d, capacity is %d", ErrInfeasibleItem, i, item, in.Capacity)
		}
	}
	return nil
}

// TotalWeight sums all item weights.
func (in Instance) TotalWeight() int {
	total := 0
	for _, item := range in.Items {
		total += item
	}
	return total
}

// LowerBound returns ceil(total weight / capacity), the trivial L1 bound
// on the number of bins.
func (in Instance) LowerBound() int {
	if in.Capacity <= 0 {
		return 0
	}
	return (in.TotalWeight() + in.Capacity - 1) / in.Capacity
}
