// Package report renders solver results as text and PNG charts.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/eugenenazirov/binpacker/internal/solver"
)

const rule = 100

// Display writes the bins of res, the bin count and the elapsed time.
func Display(w io.Writer, res solver.Result) error {
	line := strings.Repeat("=", rule)

	var b strings.Builder
	fmt.Fprintf(&b, "\nBest solution found for %s:\n%s\n", res.Instance, line)
	for i, c := range res.Solution.Containers() {
		fmt.Fprintf(&b, "Bin %d: %v (%d/%d)\n", i+1, c.Elements(), c.Used(), c.Capacity())
	}
	fmt.Fprintf(&b, "%s\nBins used: %d (lower bound %d)\n", line, res.Bins, res.LowerBound)
	fmt.Fprintf(&b, "%s\nTotal solve time: %.2f seconds\n%s\n", line, res.Duration.Seconds(), line)

	_, err := io.WriteString(w, b.String())
	return err
}
