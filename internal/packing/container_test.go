package packing

import (
	"errors"
	"slices"
	"testing"
)

func TestContainerAdd(t *testing.T) {
	t.Parallel()

	c := NewContainer(100)
	if err := c.Add(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Used() != 30 {
		t.Fatalf("expected used 30, got %d", c.Used())
	}
	if got := c.Elements(); !slices.Equal(got, []int{30}) {
		t.Fatalf("expected elements [30], got %v", got)
	}

	if err := c.Add(20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Elements(); !slices.Equal(got, []int{30, 20}) {
		t.Fatalf("expected elements [30 20], got %v", got)
	}
}

func TestContainerAddExceedsCapacity(t *testing.T) {
	t.Parallel()

	c := NewContainer(100)
	if err := c.Add(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Add(80); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if c.Used() != 30 {
		t.Fatalf("expected used to stay 30, got %d", c.Used())
	}
	if got := c.Elements(); !slices.Equal(got, []int{30}) {
		t.Fatalf("expected elements unchanged, got %v", got)
	}
}

func TestContainerRemove(t *testing.T) {
	t.Parallel()

	c := NewContainer(100)
	for _, item := range []int{30, 20, 30} {
		if err := c.Add(item); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if err := c.Remove(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Used() != 50 {
		t.Fatalf("expected used 50, got %d", c.Used())
	}
	if got := c.Elements(); !slices.Equal(got, []int{20, 30}) {
		t.Fatalf("expected first occurrence removed, got %v", got)
	}

	if err := c.Remove(99); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if c.Used() != 50 {
		t.Fatalf("failed remove must not change state, used=%d", c.Used())
	}
}

func TestContainerSpace(t *testing.T) {
	t.Parallel()

	c := NewContainer(100)
	if c.IsFull() {
		t.Fatalf("new container must not be full")
	}
	if c.RemainingSpace() != 100 {
		t.Fatalf("expected remaining 100, got %d", c.RemainingSpace())
	}

	_ = c.Add(30)
	if c.RemainingSpace() != 70 {
		t.Fatalf("expected remaining 70, got %d", c.RemainingSpace())
	}

	_ = c.Add(70)
	if !c.IsFull() {
		t.Fatalf("expected container to be full")
	}
}

func TestContainerCopyIsIndependent(t *testing.T) {
	t.Parallel()

	c := NewContainer(100)
	_ = c.Add(30)
	_ = c.Add(20)

	dup := c.Copy()
	if dup.Capacity() != c.Capacity() || dup.Used() != c.Used() {
		t.Fatalf("copy differs: %v vs %v", dup, c)
	}
	if !slices.Equal(dup.Elements(), c.Elements()) {
		t.Fatalf("copy elements differ: %v vs %v", dup.Elements(), c.Elements())
	}

	_ = c.Add(10)
	if dup.Used() == c.Used() {
		t.Fatalf("expected copy to be unaffected by mutation of the original")
	}
	if err := dup.Remove(20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(c.Elements(), []int{30, 20, 10}) {
		t.Fatalf("expected original to be unaffected by mutation of the copy, got %v", c.Elements())
	}
}
