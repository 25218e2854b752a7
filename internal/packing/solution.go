package packing

import (
	"fmt"
	"slices"
)

// Solution is an ordered set of containers sharing one capacity. It owns
// its containers exclusively; Copy never aliases them.
type Solution struct {
	capacity   int
	containers []*Container
}

// NewSolution wraps the given containers. Callers hand over ownership.
func NewSolution(capacity int, containers ...*Container) *Solution {
	return &Solution{capacity: capacity, containers: containers}
}

func (s *Solution) Capacity() int { return s.capacity }

// Len returns the number of containers, which is the bin count once pruned.
func (s *Solution) Len() int { return len(s.containers) }

// Container returns the i-th container.
func (s *Solution) Container(i int) *Container {
	return s.containers[i]
}

// Containers returns the container slice. The slice is a copy but the
// containers are shared, so callers must treat them as read-only.
func (s *Solution) Containers() []*Container {
	return slices.Clone(s.containers)
}

// OpenContainer appends a new empty container and returns it.
func (s *Solution) OpenContainer() *Container {
	c := NewContainer(s.capacity)
	s.containers = append(s.containers, c)
	return c
}

// Append adds existing containers to the end of the solution.
func (s *Solution) Append(containers ...*Container) {
	s.containers = append(s.containers, containers...)
}

// Insert places containers before index at.
func (s *Solution) Insert(at int, containers ...*Container) {
	s.containers = slices.Insert(s.containers, at, containers...)
}

// RemoveAt deletes the containers at the given indices and returns them.
func (s *Solution) RemoveAt(indices ...int) []*Container {
	drop := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		drop[idx] = struct{}{}
	}
	removed := make([]*Container, 0, len(drop))
	kept := s.containers[:0]
	for i, c := range s.containers {
		if _, ok := drop[i]; ok {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	clear(s.containers[len(kept):])
	s.containers = kept
	return removed
}

// Copy deep-copies the solution.
func (s *Solution) Copy() *Solution {
	out := &Solution{
		capacity:   s.capacity,
		containers: make([]*Container, len(s.containers)),
	}
	for i, c := range s.containers {
		out.containers[i] = c.Copy()
	}
	return out
}

// Prune drops empty containers in place, preserving order.
func (s *Solution) Prune() *Solution {
	s.containers = slices.DeleteFunc(s.containers, (*Container).IsEmpty)
	return s
}

// Items returns every item across all containers.
func (s *Solution) Items() []int {
	var n int
	for _, c := range s.containers {
		n += c.Len()
	}
	items := make([]int, 0, n)
	for _, c := range s.containers {
		items = append(items, c.elements...)
	}
	return items
}

// Validate checks that the solution holds exactly the expected multiset of
// items, no container overflows or misreports its load, and no container
// is empty.
func (s *Solution) Validate(expected []int) error {
	counts := countItems(expected)
	for i, c := range s.containers {
		if c.IsEmpty() {
			return fmt.Errorf("%w: container %d is empty", ErrInvariantViolation, i)
		}
		sum := 0
		for _, item := range c.elements {
			sum += item
			counts[item]--
		}
		if sum != c.used {
			return fmt.Errorf("%w: container %d reports %d used, holds %d", ErrInvariantViolation, i, c.used, sum)
		}
		if c.used > c.capacity {
			return fmt.Errorf("%w: container %d holds %d over capacity %d", ErrInvariantViolation, i, c.used, c.capacity)
		}
	}
	for item, n := range counts {
		switch {
		case n > 0:
			return fmt.Errorf("%w: item %d missing %d time(s)", ErrInvariantViolation, item, n)
		case n < 0:
			return fmt.Errorf("%w: item %d duplicated %d time(s)", ErrInvariantViolation, item, -n)
		}
	}
	return nil
}

func (s *Solution) String() string {
	return fmt.Sprintf("%d bins %v", len(s.containers), s.containers)
}

func countItems(items []int) map[int]int {
	counts := make(map[int]int, len(items))
	for _, item := range items {
		counts[item]++
	}
	return counts
}
