package packing

import (
	"errors"
	"testing"
)

func TestRepairReinsertsOrphans(t *testing.T) {
	t.Parallel()

	partial := solutionOf(100, []int{60}, nil, []int{30})
	orphans := []int{40, 20, 50}

	got, err := Repair(partial, orphans)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := got.Validate([]int{60, 30, 40, 20, 50}); err != nil {
		t.Fatalf("repaired solution invalid: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected best fit to reuse containers and need 2 bins, got %v", got)
	}
}

func TestRepairDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	partial := solutionOf(100, []int{60}, nil)
	if _, err := Repair(partial, []int{40}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if partial.Len() != 2 || partial.Container(0).Used() != 60 {
		t.Fatalf("input mutated: %v", partial)
	}
}

func TestRepairOpensContainerWhenNothingFits(t *testing.T) {
	t.Parallel()

	partial := solutionOf(100, []int{90})
	got, err := Repair(partial, []int{30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 {
		t.Fatalf("expected a new container, got %v", got)
	}
}

func TestRepairRejectsOversizedOrphan(t *testing.T) {
	t.Parallel()

	if _, err := Repair(NewSolution(100), []int{101}); !errors.Is(err, ErrInfeasibleItem) {
		t.Fatalf("expected ErrInfeasibleItem, got %v", err)
	}
}
