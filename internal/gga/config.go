package gga

import "fmt"

// Config holds the grouping genetic algorithm parameters. It is immutable
// once handed to New.
type Config struct {
	PopulationSize int     `yaml:"population_size" json:"populationSize"`
	Generations    int     `yaml:"generations" json:"generations"`
	CrossoverRate  float64 `yaml:"crossover_rate" json:"crossoverRate"`
	MutationRate   float64 `yaml:"mutation_rate" json:"mutationRate"`
	EliteSize      int     `yaml:"elite_size" json:"eliteSize"`
	TournamentSize int     `yaml:"tournament_size" json:"tournamentSize"`
	// MutationBins is how many containers a mutation dissolves.
	MutationBins int `yaml:"mutation_bins" json:"mutationBins"`
	// StallGenerations stops the run after that many generations without
	// improvement of the best solution. Zero disables it.
	StallGenerations int `yaml:"stall_generations" json:"stallGenerations"`
	// StopAtLowerBound stops as soon as the best solution reaches the
	// ceil(sum/capacity) bound, which no packing can beat.
	StopAtLowerBound bool `yaml:"stop_at_lower_bound" json:"stopAtLowerBound"`
}

// DefaultConfig returns the stock parameters used by the CLI and service.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 100,
		Generations:    100,
		CrossoverRate:  0.8,
		MutationRate:   0.1,
		EliteSize:      5,
		TournamentSize: 3,
		MutationBins:   2,
	}
}

// Validate reports the first invalid parameter.
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: population size must be >= 2, got %d", ErrInvalidConfig, c.PopulationSize)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must be >= 0, got %d", ErrInvalidConfig, c.Generations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover rate must be in [0,1], got %g", ErrInvalidConfig, c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation rate must be in [0,1], got %g", ErrInvalidConfig, c.MutationRate)
	}
	if c.EliteSize < 1 || c.EliteSize >= c.PopulationSize {
		return fmt.Errorf("%w: elite size must be in [1, population size), got %d", ErrInvalidConfig, c.EliteSize)
	}
	if c.TournamentSize < 1 {
		return fmt.Errorf("%w: tournament size must be >= 1, got %d", ErrInvalidConfig, c.TournamentSize)
	}
	if c.MutationBins < 1 {
		return fmt.Errorf("%w: mutation bins must be >= 1, got %d", ErrInvalidConfig, c.MutationBins)
	}
	if c.StallGenerations < 0 {
		return fmt.Errorf("%w: stall generations must be >= 0, got %d", ErrInvalidConfig, c.StallGenerations)
	}
	return nil
}
