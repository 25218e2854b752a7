package report

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/packing"
	"github.com/eugenenazirov/binpacker/internal/solver"
)

func sampleSolution(t *testing.T) *packing.Solution {
	t.Helper()
	s := packing.NewSolution(10)
	for _, items := range [][]int{{7, 3}, {6, 2}, {5}} {
		c := s.OpenContainer()
		for _, item := range items {
			if err := c.Add(item); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
	}
	return s
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	res := solver.Result{
		Instance:   "demo.txt",
		Solution:   sampleSolution(t),
		Bins:       3,
		LowerBound: 3,
		Duration:   1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	if err := Display(&buf, res); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Best solution found for demo.txt:",
		"Bin 1: [7 3] (10/10)",
		"Bin 3: [5] (5/10)",
		"Bins used: 3 (lower bound 3)",
		"Total solve time: 1.50 seconds",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCharts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stats := []history.Stats{
		{Generation: 0, Best: 3.4, Average: 3.9},
		{Generation: 1, Best: 3.2, Average: 3.6},
		{Generation: 2, Best: 3.1, Average: 3.3},
	}

	convergence := filepath.Join(dir, "nested", "convergence.png")
	if err := ConvergenceChart(stats, "demo", convergence); err != nil {
		t.Fatalf("ConvergenceChart returned error: %v", err)
	}
	loads := filepath.Join(dir, "loads.png")
	if err := LoadChart(sampleSolution(t), "demo loads", loads); err != nil {
		t.Fatalf("LoadChart returned error: %v", err)
	}

	for _, path := range []string{convergence, loads} {
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		_, err = png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s is not a png: %v", path, err)
		}
	}
}

func TestComparisonChart(t *testing.T) {
	t.Parallel()

	after := packing.NewSolution(10)
	for _, items := range [][]int{{7, 3}, {6, 2}, {5}} {
		c := after.OpenContainer()
		for _, item := range items {
			if err := c.Add(item); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
	}
	before := packing.NewSolution(10)
	for _, items := range [][]int{{7}, {3, 6}, {2, 5}} {
		c := before.OpenContainer()
		for _, item := range items {
			if err := c.Add(item); err != nil {
				t.Fatalf("add: %v", err)
			}
		}
	}
	before.OpenContainer()

	path := filepath.Join(t.TempDir(), "cmp", "comparison.png")
	if err := ComparisonChart(before, after, "evolved", "refined", "demo", path); err != nil {
		t.Fatalf("ComparisonChart returned error: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Fatalf("%s is not a png: %v", path, err)
	}

	if err := ComparisonChart(nil, after, "a", "b", "x", path); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData for missing packing, got %v", err)
	}
}

func TestChartsRejectEmptyInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := ConvergenceChart(nil, "x", filepath.Join(dir, "a.png")); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if err := LoadChart(packing.NewSolution(10), "x", filepath.Join(dir, "b.png")); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
