package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/binpacker/internal/batch"
	"github.com/eugenenazirov/binpacker/internal/config"
	"github.com/eugenenazirov/binpacker/internal/instance"
	"github.com/eugenenazirov/binpacker/internal/metrics"
	"github.com/eugenenazirov/binpacker/internal/report"
)

var errNoInstances = errors.New("no instance files to solve")

// runSolve solves files, or every file under the instances directory when
// none are given, and prints each packing to w.
func runSolve(w io.Writer, cfg config.Config, files []string, logger *zap.Logger) error {
	dir := cfg.Batch.InstancesDir
	if len(files) == 0 {
		all, err := instance.List(dir)
		if err != nil {
			return err
		}
		files = all
	}

	valid, missing := instance.ValidFiles(files, dir)
	for _, name := range missing {
		logger.Warn("instance file does not exist", zap.String("file", filepath.Join(dir, name)))
	}
	if len(valid) == 0 {
		return errNoInstances
	}

	runner, err := batch.New(dir, cfg.Solver, cfg.Batch.Parallelism,
		batch.WithLogger(logger),
		batch.WithMetrics(metrics.New()),
	)
	if err != nil {
		return err
	}

	failed := 0
	for _, out := range runner.Run(valid) {
		if out.Err != nil {
			failed++
			fmt.Fprintf(w, "\n%s: %v\n", out.File, out.Err)
			continue
		}
		if err := report.Display(w, out.Result); err != nil {
			return err
		}
		if cfg.Batch.PlotDir != "" {
			if err := writeCharts(cfg.Batch.PlotDir, out); err != nil {
				logger.Warn("chart rendering failed", zap.String("file", out.File), zap.Error(err))
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d instances failed", failed, len(valid))
	}
	return nil
}

func writeCharts(dir string, out batch.Outcome) error {
	base := chartName(out.File)
	if len(out.Result.History) > 0 {
		if err := report.ConvergenceChart(out.Result.History, out.File, filepath.Join(dir, base+"_convergence.png")); err != nil {
			return err
		}
	}
	if out.Result.TabuState != "" && out.Result.GGASolution != nil {
		path := filepath.Join(dir, base+"_comparison.png")
		title := fmt.Sprintf("%s: before and after tabu search", out.File)
		if err := report.ComparisonChart(out.Result.GGASolution, out.Result.Solution, "genetic algorithm", "tabu search", title, path); err != nil {
			return err
		}
	}
	return report.LoadChart(out.Result.Solution, out.File, filepath.Join(dir, base+"_bins.png"))
}

// chartName flattens an instance path into a file name stem.
func chartName(file string) string {
	stem := strings.TrimSuffix(file, filepath.Ext(file))
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(stem)
}

func runList(w io.Writer, dir string) error {
	files, err := instance.List(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		_, err := fmt.Fprintf(w, "no instance files under %s\n", dir)
		return err
	}
	return writeLines(w, files)
}
