package solver

import (
	"fmt"

	"github.com/eugenenazirov/binpacker/internal/gga"
	"github.com/eugenenazirov/binpacker/internal/tabu"
)

const (
	AcceptFirst = "first"
	AcceptBest  = "best"
)

// Config combines the evolutionary and local search stages.
type Config struct {
	GGA        gga.Config  `yaml:"gga" json:"gga"`
	Tabu       tabu.Config `yaml:"tabu" json:"tabu"`
	EnableTabu bool        `yaml:"enable_tabu" json:"enableTabu"`
	// Acceptance selects the tabu acceptance rule, "first" or "best".
	Acceptance string `yaml:"acceptance" json:"acceptance"`
	// Seed fixes the random stream; zero seeds from the clock.
	Seed int64 `yaml:"seed" json:"seed"`
}

func DefaultConfig() Config {
	return Config{
		GGA:        gga.DefaultConfig(),
		Tabu:       tabu.DefaultConfig(),
		EnableTabu: true,
		Acceptance: AcceptFirst,
	}
}

func (c Config) Validate() error {
	if err := c.GGA.Validate(); err != nil {
		return err
	}
	if !c.EnableTabu {
		return nil
	}
	if err := c.Tabu.Validate(); err != nil {
		return err
	}
	switch c.Acceptance {
	case "", AcceptFirst, AcceptBest:
		return nil
	default:
		return fmt.Errorf("%w: unknown acceptance %q", tabu.ErrInvalidConfig, c.Acceptance)
	}
}
