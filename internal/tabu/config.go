package tabu

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when the search parameters are out of range.
var ErrInvalidConfig = errors.New("invalid tabu configuration")

// Config holds the tabu search parameters.
type Config struct {
	// Tenure is the number of recent moves kept tabu.
	Tenure        int `yaml:"tenure" json:"tenure"`
	MaxIterations int `yaml:"max_iterations" json:"maxIterations"`
	// MaxNeighbors bounds the sampled neighbourhood per iteration.
	MaxNeighbors int `yaml:"max_neighbors" json:"maxNeighbors"`
	// MaxNoImprove stops the search after that many iterations without a
	// new best. Zero disables it.
	MaxNoImprove int `yaml:"max_no_improve" json:"maxNoImprove"`
}

func DefaultConfig() Config {
	return Config{
		Tenure:        10,
		MaxIterations: 1000,
		MaxNeighbors:  20,
		MaxNoImprove:  100,
	}
}

func (c Config) Validate() error {
	if c.Tenure < 1 {
		return fmt.Errorf("%w: tenure must be >= 1, got %d", ErrInvalidConfig, c.Tenure)
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must be >= 0, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if c.MaxNeighbors < 1 {
		return fmt.Errorf("%w: max neighbors must be >= 1, got %d", ErrInvalidConfig, c.MaxNeighbors)
	}
	if c.MaxNoImprove < 0 {
		return fmt.Errorf("%w: max no-improve must be >= 0, got %d", ErrInvalidConfig, c.MaxNoImprove)
	}
	return nil
}
