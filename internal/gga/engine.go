package gga

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/packing"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	StateInitializing State = iota
	StateEvolving
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateEvolving:
		return "evolving"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StopReason explains why evolution ended.
type StopReason string

const (
	StopGenerationLimit StopReason = "generation_limit"
	StopStalled         StopReason = "stalled"
	StopLowerBound      StopReason = "lower_bound"
)

// Result is the outcome of a run.
type Result struct {
	Best        *packing.Solution
	Fitness     float64
	Generations int
	StopReason  StopReason
}

// Option configures an Engine.
type Option func(*Engine)

// WithFitness overrides the default Falkenauer fitness.
func WithFitness(f packing.Fitness) Option {
	return func(e *Engine) {
		e.fitness = f
	}
}

// WithObserver registers a receiver for per-generation statistics.
func WithObserver(o history.Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// Engine evolves a population of packings for one instance. An Engine runs
// once and is not safe for concurrent use.
type Engine struct {
	cfg      Config
	instance packing.Instance
	fitness  packing.Fitness
	rng      packing.Rand
	observer history.Observer

	state      State
	generation int
	population []Individual
	best       Individual
}

// New validates the configuration and the instance and returns an engine
// in the initializing state.
func New(cfg Config, instance packing.Instance, rng packing.Rand, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := instance.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}

	e := &Engine{
		cfg:      cfg,
		instance: instance,
		fitness:  packing.NewFitness(),
		rng:      rng,
		state:    StateInitializing,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// State returns the current lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// Population returns the current population.
func (e *Engine) Population() []Individual {
	return slices.Clone(e.population)
}

// Run builds the initial population and evolves it until a stop condition
// holds. It returns the best solution seen in any generation.
func (e *Engine) Run() (Result, error) {
	if e.state != StateInitializing {
		return Result{}, ErrAlreadyRun
	}
	if err := e.initialize(); err != nil {
		return Result{}, err
	}
	e.state = StateEvolving

	reason := StopGenerationLimit
	lowerBound := e.instance.LowerBound()
	stalled := 0

	for e.generation < e.cfg.Generations {
		e.record()

		if e.cfg.StopAtLowerBound && e.best.Solution.Len() <= lowerBound {
			reason = StopLowerBound
			break
		}

		next, err := e.nextGeneration()
		if err != nil {
			e.state = StateTerminated
			return Result{}, fmt.Errorf("generation %d: %w", e.generation, err)
		}
		e.population = next
		e.generation++

		if e.updateBest() {
			stalled = 0
		} else {
			stalled++
		}
		if e.cfg.StallGenerations > 0 && stalled >= e.cfg.StallGenerations {
			reason = StopStalled
			break
		}
	}

	e.state = StateTerminated
	return Result{
		Best:        e.best.Solution.Copy(),
		Fitness:     e.best.Fitness,
		Generations: e.generation,
		StopReason:  reason,
	}, nil
}

// initialize seeds the population with first-fit and best-fit decreasing
// packings and fills the rest with randomized first fit.
func (e *Engine) initialize() error {
	e.population = make([]Individual, 0, e.cfg.PopulationSize)

	for i := 0; i < e.cfg.PopulationSize; i++ {
		var (
			s   *packing.Solution
			err error
		)
		switch i {
		case 0:
			s, err = packing.FirstFitDecreasing(e.instance)
		case 1:
			s, err = packing.BestFitDecreasing(e.instance)
		default:
			s, err = packing.RandomizedFirstFit(e.instance, e.rng)
		}
		if err != nil {
			return fmt.Errorf("build initial population: %w", err)
		}
		e.population = append(e.population, e.evaluate(s))
	}

	best := e.population[floats.MinIdx(e.fitnessValues())]
	e.best = Individual{Solution: best.Solution.Copy(), Fitness: best.Fitness}
	return nil
}

func (e *Engine) nextGeneration() ([]Individual, error) {
	ranked := slices.Clone(e.population)
	slices.SortStableFunc(ranked, func(a, b Individual) int {
		switch {
		case a.Fitness < b.Fitness:
			return -1
		case a.Fitness > b.Fitness:
			return 1
		default:
			return 0
		}
	})

	next := make([]Individual, 0, e.cfg.PopulationSize)
	for _, elite := range ranked[:e.cfg.EliteSize] {
		next = append(next, Individual{Solution: elite.Solution.Copy(), Fitness: elite.Fitness})
	}

	for len(next) < e.cfg.PopulationSize {
		p1 := Tournament(e.population, e.cfg.TournamentSize, e.rng)
		p2 := Tournament(e.population, e.cfg.TournamentSize, e.rng)

		var (
			child *packing.Solution
			err   error
		)
		if e.rng.Float64() < e.cfg.CrossoverRate {
			child, err = Crossover(p1.Solution, p2.Solution, e.instance.Items, e.rng)
			if err != nil {
				return nil, err
			}
		} else {
			child = p1.Solution.Copy()
		}

		if e.rng.Float64() < e.cfg.MutationRate {
			child, err = Mutate(child, e.cfg.MutationBins, e.instance.Items, e.rng)
			if err != nil {
				return nil, err
			}
		}

		next = append(next, e.evaluate(child))
	}
	return next, nil
}

func (e *Engine) evaluate(s *packing.Solution) Individual {
	return Individual{Solution: s, Fitness: e.fitness.Evaluate(s)}
}

// updateBest copies the population's best into e.best when it improves on
// it and reports whether it did.
func (e *Engine) updateBest() bool {
	idx := floats.MinIdx(e.fitnessValues())
	cand := e.population[idx]
	if cand.Fitness < e.best.Fitness {
		e.best = Individual{Solution: cand.Solution.Copy(), Fitness: cand.Fitness}
		return true
	}
	return false
}

func (e *Engine) record() {
	if e.observer == nil {
		return
	}
	values := e.fitnessValues()
	bestIdx := floats.MinIdx(values)
	mean, std := stat.Mean(values, nil), 0.0
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}
	e.observer.ObserveGeneration(history.Stats{
		Generation: e.generation,
		Best:       values[bestIdx],
		Average:    mean,
		Worst:      floats.Max(values),
		StdDev:     std,
		BestBins:   e.population[bestIdx].Solution.Len(),
	})
}

func (e *Engine) fitnessValues() []float64 {
	values := make([]float64, len(e.population))
	for i, ind := range e.population {
		values[i] = ind.Fitness
	}
	return values
}
