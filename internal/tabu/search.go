package tabu

import (
	"errors"
	"fmt"

	"github.com/eugenenazirov/binpacker/internal/packing"
)

// ErrNilRand is returned when no random stream is supplied.
var ErrNilRand = errors.New("random stream is required")

// State is the lifecycle phase of an Engine.
type State int

const (
	StateReady State = iota
	StateSearching
	// StateExhausted means no admissible neighbour was found.
	StateExhausted
	// StateLimitReached means MaxIterations iterations were performed.
	StateLimitReached
	// StateStalled means MaxNoImprove iterations passed without a new best.
	StateStalled
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateSearching:
		return "searching"
	case StateExhausted:
		return "exhausted"
	case StateLimitReached:
		return "limit_reached"
	case StateStalled:
		return "stalled"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of a search.
type Result struct {
	Best       *packing.Solution
	Fitness    float64
	Iterations int
	State      State
}

// Option configures an Engine.
type Option func(*Engine)

// WithFitness overrides the default Falkenauer fitness.
func WithFitness(f packing.Fitness) Option {
	return func(e *Engine) {
		e.fitness = f
	}
}

// WithPolicy overrides the FirstAcceptable acceptance rule.
func WithPolicy(p AcceptancePolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}

// Engine refines a solution with single-item moves and a short-term tabu
// memory. An Engine holds the memory of its last run and is not safe for
// concurrent use.
type Engine struct {
	cfg     Config
	fitness packing.Fitness
	policy  AcceptancePolicy
	rng     packing.Rand

	state  State
	memory *Memory
}

// New validates cfg and returns an engine in the ready state.
func New(cfg Config, rng packing.Rand, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	e := &Engine{
		cfg:     cfg,
		fitness: packing.NewFitness(),
		policy:  FirstAcceptable{},
		rng:     rng,
		state:   StateReady,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) State() State {
	return e.state
}

// Search explores from start and returns the best solution seen, which is
// never worse than start. start is not modified.
func (e *Engine) Search(start *packing.Solution) Result {
	e.state = StateSearching
	e.memory = NewMemory(e.cfg.Tenure)

	current := start.Copy().Prune()
	best := current
	bestFitness := e.fitness.Evaluate(current)

	iteration, sinceImprove := 0, 0
	for {
		if iteration >= e.cfg.MaxIterations {
			e.state = StateLimitReached
			break
		}
		if e.cfg.MaxNoImprove > 0 && sinceImprove >= e.cfg.MaxNoImprove {
			e.state = StateStalled
			break
		}

		candidates := e.Neighborhood(current)
		idx, ok := e.policy.Select(candidates, e.memory, bestFitness)
		if !ok {
			e.state = StateExhausted
			break
		}

		chosen := candidates[idx]
		e.memory.Push(chosen.Move)
		current = chosen.Solution
		if chosen.Fitness < bestFitness {
			best, bestFitness = chosen.Solution, chosen.Fitness
			sinceImprove = 0
		} else {
			sinceImprove++
		}
		iteration++
	}

	return Result{
		Best:       best.Copy(),
		Fitness:    bestFitness,
		Iterations: iteration,
		State:      e.state,
	}
}

// Neighborhood samples up to MaxNeighbors single-item moves from sol,
// giving up after 10*MaxNeighbors attempts. Each candidate carries its own
// pruned copy of the solution.
func (e *Engine) Neighborhood(sol *packing.Solution) []Candidate {
	var sources, spare []int
	for i := 0; i < sol.Len(); i++ {
		c := sol.Container(i)
		if !c.IsEmpty() {
			sources = append(sources, i)
		}
		if c.RemainingSpace() > 0 {
			spare = append(spare, i)
		}
	}
	if len(sources) == 0 || len(spare) == 0 {
		return nil
	}

	candidates := make([]Candidate, 0, e.cfg.MaxNeighbors)
	destinations := make([]int, 0, len(spare))
	maxAttempts := 10 * e.cfg.MaxNeighbors

	for attempts := 0; len(candidates) < e.cfg.MaxNeighbors && attempts < maxAttempts; attempts++ {
		i := sources[e.rng.Intn(len(sources))]

		destinations = destinations[:0]
		for _, j := range spare {
			if j != i {
				destinations = append(destinations, j)
			}
		}
		if len(destinations) == 0 {
			continue
		}
		j := destinations[e.rng.Intn(len(destinations))]

		from := sol.Container(i)
		item := from.Element(e.rng.Intn(from.Len()))
		if !sol.Container(j).Fits(item) {
			continue
		}

		neighbor := sol.Copy()
		if err := neighbor.Container(i).Remove(item); err != nil {
			continue
		}
		if err := neighbor.Container(j).Add(item); err != nil {
			continue
		}
		neighbor.Prune()

		candidates = append(candidates, Candidate{
			Move:     Move{Item: item, Source: i, Destination: j},
			Fitness:  e.fitness.Evaluate(neighbor),
			Solution: neighbor,
		})
	}
	return candidates
}
