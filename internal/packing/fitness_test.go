package packing

import "testing"

func TestFitnessFewerBinsAlwaysWins(t *testing.T) {
	t.Parallel()

	f := NewFitness()

	// Two balanced bins versus three with one completely full.
	two := solutionOf(100, []int{30}, []int{30})
	three := solutionOf(100, []int{100}, []int{1}, []int{1})

	if f.Evaluate(two) >= f.Evaluate(three) {
		t.Fatalf("expected 2-bin fitness %f below 3-bin fitness %f", f.Evaluate(two), f.Evaluate(three))
	}
}

func TestFitnessRewardsFullerBinsAtEqualCount(t *testing.T) {
	t.Parallel()

	f := NewFitness()

	skewed := solutionOf(100, []int{50, 50}, []int{20})
	even := solutionOf(100, []int{60}, []int{60})

	if f.Evaluate(skewed) >= f.Evaluate(even) {
		t.Fatalf("expected skewed packing %f to beat even packing %f", f.Evaluate(skewed), f.Evaluate(even))
	}
}

func TestFitnessIsDeterministic(t *testing.T) {
	t.Parallel()

	f := NewFitness()
	s := solutionOf(100, []int{50, 30}, []int{70})

	first := f.Evaluate(s)
	for i := 0; i < 10; i++ {
		if got := f.Evaluate(s); got != first {
			t.Fatalf("fitness changed between evaluations: %f vs %f", first, got)
		}
	}
}

func TestFitnessBounds(t *testing.T) {
	t.Parallel()

	f := NewFitness()
	full := solutionOf(100, []int{100}, []int{100})
	if got := f.Evaluate(full); got != 2 {
		t.Fatalf("expected fully packed 2-bin fitness of 2, got %f", got)
	}
	if got := f.Evaluate(NewSolution(100)); got != 0 {
		t.Fatalf("expected empty solution fitness 0, got %f", got)
	}
}
