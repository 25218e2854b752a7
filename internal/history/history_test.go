package history

import (
	"slices"
	"testing"
)

func TestHistoryRecordsSeries(t *testing.T) {
	t.Parallel()

	h := New()
	h.ObserveGeneration(Stats{Generation: 0, Best: 3.5, Average: 4.2})
	h.ObserveGeneration(Stats{Generation: 1, Best: 3.1, Average: 3.9})

	if h.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", h.Len())
	}
	if got, want := h.Best(), []float64{3.5, 3.1}; !slices.Equal(got, want) {
		t.Fatalf("expected best %v, got %v", want, got)
	}
	if got, want := h.Average(), []float64{4.2, 3.9}; !slices.Equal(got, want) {
		t.Fatalf("expected average %v, got %v", want, got)
	}

	entries := h.Entries()
	entries[0].Best = 99
	if h.Best()[0] != 3.5 {
		t.Fatalf("expected Entries to return a copy")
	}
}

func TestMultiSkipsNilObservers(t *testing.T) {
	t.Parallel()

	var calls int
	counter := ObserverFunc(func(Stats) { calls++ })
	h := New()

	Multi(nil, counter, h).ObserveGeneration(Stats{Generation: 4})

	if calls != 1 {
		t.Fatalf("expected counter to be called once, got %d", calls)
	}
	if h.Len() != 1 {
		t.Fatalf("expected history to record the entry")
	}
}
