package packing

import (
	"errors"
	"testing"
)

func TestConstructionHeuristics(t *testing.T) {
	t.Parallel()

	builders := map[string]func(Instance) (*Solution, error){
		"FirstFitDecreasing": FirstFitDecreasing,
		"BestFitDecreasing":  BestFitDecreasing,
		"RandomizedFirstFit": func(in Instance) (*Solution, error) {
			return RandomizedFirstFit(in, NewRand(7))
		},
	}

	tests := []struct {
		name     string
		instance Instance
		maxBins  int
	}{
		{name: "ThreeHalves", instance: Instance{Capacity: 100, Items: []int{50, 50, 50}}, maxBins: 2},
		{name: "TenTens", instance: Instance{Capacity: 100, Items: []int{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}}, maxBins: 1},
		{name: "Mixed", instance: Instance{Capacity: 10, Items: []int{7, 3, 6, 4, 5, 5, 2, 8}}, maxBins: 4},
	}

	for name, build := range builders {
		name, build := name, build
		for _, tc := range tests {
			tc := tc
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				t.Parallel()

				s, err := build(tc.instance)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if err := s.Validate(tc.instance.Items); err != nil {
					t.Fatalf("invalid solution: %v", err)
				}
				if name != "RandomizedFirstFit" && s.Len() > tc.maxBins {
					t.Fatalf("expected at most %d bins, got %d: %v", tc.maxBins, s.Len(), s)
				}
			})
		}
	}
}

func TestConstructionRejectsInfeasibleItem(t *testing.T) {
	t.Parallel()

	in := Instance{Capacity: 100, Items: []int{150}}

	if _, err := FirstFitDecreasing(in); !errors.Is(err, ErrInfeasibleItem) {
		t.Fatalf("FirstFitDecreasing: expected ErrInfeasibleItem, got %v", err)
	}
	if _, err := BestFitDecreasing(in); !errors.Is(err, ErrInfeasibleItem) {
		t.Fatalf("BestFitDecreasing: expected ErrInfeasibleItem, got %v", err)
	}
	if _, err := RandomizedFirstFit(in, NewRand(1)); !errors.Is(err, ErrInfeasibleItem) {
		t.Fatalf("RandomizedFirstFit: expected ErrInfeasibleItem, got %v", err)
	}
}

func TestBestFitPrefersTightestContainer(t *testing.T) {
	t.Parallel()

	s := solutionOf(100, []int{50}, []int{80}, []int{60})
	if err := bestFit(s, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Container(1).Used() != 100 {
		t.Fatalf("expected item in the tightest container, got %v", s)
	}
}

func TestFirstFitReportsUnplaceableItems(t *testing.T) {
	t.Parallel()

	if _, err := firstFit(10, []int{4, 11, 3}); !errors.Is(err, ErrInfeasibleItem) {
		t.Fatalf("expected ErrInfeasibleItem for oversized item, got %v", err)
	}
	if _, err := firstFit(10, []int{4, 0}); !errors.Is(err, ErrInvalidInstance) {
		t.Fatalf("expected ErrInvalidInstance for zero weight, got %v", err)
	}

	s, err := firstFit(10, []int{6, 5, 4, 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Validate([]int{6, 5, 4, 5}); err != nil {
		t.Fatalf("first fit produced invalid packing: %v", err)
	}
	if s.Len() != 2 || s.Container(0).Used() != 10 {
		t.Fatalf("expected [6 4] [5 5], got %v", s)
	}
}
