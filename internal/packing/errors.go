package packing

import "errors"

var (
	// ErrCapacityExceeded is returned when adding an item would overflow a container.
	ErrCapacityExceeded = errors.New("item exceeds remaining container capacity")
	// ErrItemNotFound is returned when removing an item the container does not hold.
	ErrItemNotFound = errors.New("item not found in container")
	// ErrInfeasibleItem is returned when an item is heavier than the bin capacity.
	ErrInfeasibleItem = errors.New("item weight exceeds bin capacity")
	// ErrInvalidInstance is returned when an instance has no items, a non-positive capacity or a non-positive weight.
	ErrInvalidInstance = errors.New("instance must have a positive capacity and at least one positive item")
	// ErrInvariantViolation signals a solution that lost, duplicated or overfilled items.
	ErrInvariantViolation = errors.New("solution violates packing invariants")
)
