// Package history records per-generation search telemetry. The search
// engines report into an Observer and never read the data back.
package history

import (
	"slices"
	"sync"
)

// Stats summarises one generation of a population.
type Stats struct {
	Generation int     `json:"generation"`
	Best       float64 `json:"best"`
	Average    float64 `json:"average"`
	Worst      float64 `json:"worst"`
	StdDev     float64 `json:"stdDev"`
	BestBins   int     `json:"bestBins"`
}

// Observer receives generation statistics as the search progresses.
type Observer interface {
	ObserveGeneration(Stats)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Stats)

func (f ObserverFunc) ObserveGeneration(s Stats) { f(s) }

// History is an Observer that keeps every reported generation.
type History struct {
	mu      sync.RWMutex
	entries []Stats
}

// New returns an empty History.
func New() *History {
	return &History{}
}

func (h *History) ObserveGeneration(s Stats) {
	h.mu.Lock()
	h.entries = append(h.entries, s)
	h.mu.Unlock()
}

// Entries returns a copy of the recorded generations.
func (h *History) Entries() []Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.entries)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Best returns the best-fitness series.
func (h *History) Best() []float64 {
	return h.series(func(s Stats) float64 { return s.Best })
}

// Average returns the average-fitness series.
func (h *History) Average() []float64 {
	return h.series(func(s Stats) float64 { return s.Average })
}

func (h *History) series(pick func(Stats) float64) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, len(h.entries))
	for i, s := range h.entries {
		out[i] = pick(s)
	}
	return out
}

// Multi fans a report out to several observers, skipping nil ones.
func Multi(observers ...Observer) Observer {
	return ObserverFunc(func(s Stats) {
		for _, o := range observers {
			if o != nil {
				o.ObserveGeneration(s)
			}
		}
	})
}
