// Package solver runs the grouping genetic algorithm and, optionally, a
// tabu search refinement of its best packing.
package solver

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/binpacker/internal/gga"
	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/metrics"
	"github.com/eugenenazirov/binpacker/internal/packing"
	"github.com/eugenenazirov/binpacker/internal/tabu"
)

// Option configures the solver returned by New.
type Option func(*pipeline)

func WithLogger(logger *zap.Logger) Option {
	return func(p *pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics records every solve on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *pipeline) {
		p.metrics = m
	}
}

// WithObserver forwards per-generation statistics to o in addition to the
// history kept in Result.
func WithObserver(o history.Observer) Option {
	return func(p *pipeline) {
		p.observer = o
	}
}

type pipeline struct {
	cfg      Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	observer history.Observer
}

// New validates cfg and returns a Solver. The returned Solver keeps no
// state between calls and may be used concurrently.
func New(cfg Config, opts ...Option) (Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &pipeline{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *pipeline) Solve(in packing.Instance) (Result, error) {
	start := time.Now()
	res, err := p.solve(in)
	res.Duration = time.Since(start)
	p.metrics.ObserveSolve(res.Bins, res.LowerBound, res.Duration, err)
	if err != nil {
		p.logger.Debug("solve failed", zap.String("instance", in.Name), zap.Error(err))
		return Result{}, err
	}

	p.logger.Debug("solve finished",
		zap.String("instance", in.Name),
		zap.Int("bins", res.Bins),
		zap.Int("lower_bound", res.LowerBound),
		zap.Float64("fitness", res.Fitness),
		zap.Int("generations", res.Generations),
		zap.String("tabu_state", res.TabuState),
		zap.Duration("elapsed", res.Duration),
	)
	return res, nil
}

func (p *pipeline) solve(in packing.Instance) (Result, error) {
	rng := packing.NewRand(p.cfg.Seed)
	rec := history.New()

	engine, err := gga.New(p.cfg.GGA, in, rng, gga.WithObserver(history.Multi(rec, p.observer)))
	if err != nil {
		return Result{}, err
	}
	evolved, err := engine.Run()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Instance:    in.Name,
		Solution:    evolved.Best,
		GGASolution: evolved.Best,
		Fitness:     evolved.Fitness,
		LowerBound:  in.LowerBound(),
		Generations: evolved.Generations,
		GGAStop:     evolved.StopReason,
	}

	if p.cfg.EnableTabu && evolved.Best.Len() > res.LowerBound {
		search, err := tabu.New(p.cfg.Tabu, rng, tabu.WithPolicy(tabu.PolicyByName(p.cfg.Acceptance)))
		if err != nil {
			return Result{}, err
		}
		refined := search.Search(evolved.Best)
		if refined.Fitness < res.Fitness {
			res.Solution, res.Fitness = refined.Best, refined.Fitness
		}
		res.TabuState = refined.State.String()
		res.TabuIterations = refined.Iterations
	}

	if err := res.Solution.Validate(in.Items); err != nil {
		return Result{}, fmt.Errorf("solve %s: %w", in.Name, err)
	}
	res.Bins = res.Solution.Len()
	res.History = rec.Entries()
	return res, nil
}
