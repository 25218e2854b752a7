package packing

import (
	"fmt"
	"slices"
)

// Container is a single bin. Its capacity is fixed at construction.
type Container struct {
	capacity int
	used     int
	elements []int
}

// NewContainer creates an empty container with the given capacity.
func NewContainer(capacity int) *Container {
	return &Container{capacity: capacity}
}

// Add appends item to the container. The container is left untouched when
// the item does not fit.
func (c *Container) Add(item int) error {
	if c.used+item > c.capacity {
		return fmt.Errorf("%w: add %d to %d/%d", ErrCapacityExceeded, item, c.used, c.capacity)
	}
	c.elements = append(c.elements, item)
	c.used += item
	return nil
}

// Remove deletes the first occurrence of item.
func (c *Container) Remove(item int) error {
	idx := slices.Index(c.elements, item)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrItemNotFound, item)
	}
	c.elements = slices.Delete(c.elements, idx, idx+1)
	c.used -= item
	return nil
}

// RemainingSpace returns capacity minus the used weight.
func (c *Container) RemainingSpace() int {
	return c.capacity - c.used
}

// IsFull reports whether no space is left.
func (c *Container) IsFull() bool {
	return c.RemainingSpace() == 0
}

// Fits reports whether item can be added without exceeding capacity.
func (c *Container) Fits(item int) bool {
	return c.used+item <= c.capacity
}

func (c *Container) Capacity() int { return c.capacity }

func (c *Container) Used() int { return c.used }

func (c *Container) Len() int { return len(c.elements) }

func (c *Container) IsEmpty() bool { return len(c.elements) == 0 }

// Elements returns a copy of the items in insertion order.
func (c *Container) Elements() []int {
	return slices.Clone(c.elements)
}

// Element returns the i-th item.
func (c *Container) Element(i int) int {
	return c.elements[i]
}

// FillRatio returns used/capacity.
func (c *Container) FillRatio() float64 {
	if c.capacity <= 0 {
		return 0
	}
	return float64(c.used) / float64(c.capacity)
}

// Copy returns an independent container with the same capacity and items.
func (c *Container) Copy() *Container {
	return &Container{
		capacity: c.capacity,
		used:     c.used,
		elements: slices.Clone(c.elements),
	}
}

func (c *Container) String() string {
	return fmt.Sprintf("%v (%d/%d)", c.elements, c.used, c.capacity)
}
