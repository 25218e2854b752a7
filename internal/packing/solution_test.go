package packing

import (
	"errors"
	"slices"
	"testing"
)

func solutionOf(capacity int, bins ...[]int) *Solution {
	s := NewSolution(capacity)
	for _, items := range bins {
		c := s.OpenContainer()
		for _, item := range items {
			if err := c.Add(item); err != nil {
				panic(err)
			}
		}
	}
	return s
}

func TestSolutionCopyIsDeep(t *testing.T) {
	t.Parallel()

	s := solutionOf(100, []int{50, 50}, []int{50})
	dup := s.Copy()

	if err := dup.Container(1).Add(40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Container(1).Used() != 50 {
		t.Fatalf("original container changed after mutating copy: %v", s.Container(1))
	}
}

func TestSolutionPrune(t *testing.T) {
	t.Parallel()

	s := solutionOf(100, []int{10}, nil, []int{20}, nil)
	s.Prune()

	if s.Len() != 2 {
		t.Fatalf("expected 2 containers, got %d", s.Len())
	}
	if s.Container(0).Used() != 10 || s.Container(1).Used() != 20 {
		t.Fatalf("prune must keep order, got %v", s)
	}
}

func TestSolutionRemoveAt(t *testing.T) {
	t.Parallel()

	s := solutionOf(100, []int{10}, []int{20}, []int{30})
	removed := s.RemoveAt(0, 2)

	if len(removed) != 2 || removed[0].Used() != 10 || removed[1].Used() != 30 {
		t.Fatalf("unexpected removed containers: %v", removed)
	}
	if s.Len() != 1 || s.Container(0).Used() != 20 {
		t.Fatalf("unexpected remaining containers: %v", s)
	}
}

func TestSolutionValidate(t *testing.T) {
	t.Parallel()

	expected := []int{50, 50, 50}

	tests := []struct {
		name    string
		sol     *Solution
		wantErr error
	}{
		{name: "Valid", sol: solutionOf(100, []int{50, 50}, []int{50})},
		{name: "MissingItem", sol: solutionOf(100, []int{50, 50}), wantErr: ErrInvariantViolation},
		{name: "DuplicatedItem", sol: solutionOf(100, []int{50, 50}, []int{50, 50}), wantErr: ErrInvariantViolation},
		{name: "EmptyContainer", sol: solutionOf(100, []int{50, 50}, []int{50}, nil), wantErr: ErrInvariantViolation},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.sol.Validate(expected); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSolutionItems(t *testing.T) {
	t.Parallel()

	s := solutionOf(100, []int{40, 30}, []int{20})
	got := s.Items()
	slices.Sort(got)
	if want := []int{20, 30, 40}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestInstanceValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      Instance
		wantErr error
	}{
		{name: "Valid", in: Instance{Capacity: 100, Items: []int{50, 50, 50}}},
		{name: "InfeasibleItem", in: Instance{Capacity: 100, Items: []int{150}}, wantErr: ErrInfeasibleItem},
		{name: "NoItems", in: Instance{Capacity: 100}, wantErr: ErrInvalidInstance},
		{name: "ZeroCapacity", in: Instance{Items: []int{1}}, wantErr: ErrInvalidInstance},
		{name: "NegativeWeight", in: Instance{Capacity: 10, Items: []int{3, -1}}, wantErr: ErrInvalidInstance},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := tc.in.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestInstanceLowerBound(t *testing.T) {
	t.Parallel()

	in := Instance{Capacity: 100, Items: []int{50, 50, 50}}
	if got := in.LowerBound(); got != 2 {
		t.Fatalf("expected lower bound 2, got %d", got)
	}
}
