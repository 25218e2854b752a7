package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/packing"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("nothing to plot")

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// ConvergenceChart plots best and average fitness per generation and saves
// it to path. The image format follows the file extension.
func ConvergenceChart(stats []history.Stats, title, path string) error {
	if len(stats) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Fitness evolution: %s", title)
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness (lower is better)"

	best := make(plotter.XYs, len(stats))
	avg := make(plotter.XYs, len(stats))
	for i, s := range stats {
		best[i].X, best[i].Y = float64(s.Generation), s.Best
		avg[i].X, avg[i].Y = float64(s.Generation), s.Average
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return err
	}
	avgLine, err := plotter.NewLine(avg)
	if err != nil {
		return err
	}
	avgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, avgLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("average", avgLine)
	p.Legend.Top = true

	return save(p, path)
}

// LoadChart draws one bar per bin showing its used capacity, with the
// capacity as a reference line.
func LoadChart(sol *packing.Solution, title, path string) error {
	if sol == nil || sol.Len() == 0 {
		return ErrNoData
	}

	loads := make(plotter.Values, sol.Len())
	for i, c := range sol.Containers() {
		loads[i] = float64(c.Used())
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bin"
	p.Y.Label.Text = "Load"

	bars, err := plotter.NewBarChart(loads, vg.Points(12))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = vg.Length(0)

	capacity, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: float64(sol.Capacity())},
		{X: float64(sol.Len()) - 0.5, Y: float64(sol.Capacity())},
	})
	if err != nil {
		return err
	}
	capacity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bars, capacity)
	p.Legend.Add("capacity", capacity)
	p.Y.Min = 0
	p.Y.Max = float64(sol.Capacity()) * 1.05

	return save(p, path)
}

// ComparisonChart draws the bin loads of two packings of the same instance
// side by side, each sorted from fullest to emptiest bin, with the shared
// capacity as a reference line.
func ComparisonChart(before, after *packing.Solution, beforeLabel, afterLabel, title, path string) error {
	if before == nil || after == nil || before.Len() == 0 || after.Len() == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bin (fullest first)"
	p.Y.Label.Text = "Load"

	width := vg.Points(8)
	series := []struct {
		sol    *packing.Solution
		label  string
		offset vg.Length
	}{
		{sol: before, label: beforeLabel, offset: -width / 2},
		{sol: after, label: afterLabel, offset: width / 2},
	}
	for i, s := range series {
		bars, err := plotter.NewBarChart(sortedLoads(s.sol), width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = s.offset
		p.Add(bars)
		p.Legend.Add(fmt.Sprintf("%s (%d bins)", s.label, s.sol.Len()), bars)
	}

	bins := max(before.Len(), after.Len())
	capacity, err := plotter.NewLine(plotter.XYs{
		{X: -0.5, Y: float64(before.Capacity())},
		{X: float64(bins) - 0.5, Y: float64(before.Capacity())},
	})
	if err != nil {
		return err
	}
	capacity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(capacity)
	p.Legend.Add("capacity", capacity)
	p.Legend.Top = true
	p.Y.Min = 0
	p.Y.Max = float64(before.Capacity()) * 1.15

	return save(p, path)
}

func sortedLoads(sol *packing.Solution) plotter.Values {
	loads := make(plotter.Values, sol.Len())
	for i, c := range sol.Containers() {
		loads[i] = float64(c.Used())
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(loads)))
	return loads
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
