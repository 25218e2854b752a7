package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/binpacker/internal/solver"
	"github.com/eugenenazirov/binpacker/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 5.0
	defaultRateLimitBurst = 10
	defaultMaxItems       = 5000
	defaultLogLevel       = "info"
	defaultInstancesDir   = "instances"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	LogLevel             string
	// MaxItems caps the item count accepted by a single solve request.
	MaxItems int
	// MaxRuns bounds the in-memory run history.
	MaxRuns int
	Solver  solver.Config
	Batch   BatchConfig
}

// BatchConfig drives the solve command.
type BatchConfig struct {
	InstancesDir string `yaml:"instances_dir"`
	Parallelism  int    `yaml:"parallelism"`
	// PlotDir receives convergence and load charts; empty disables them.
	PlotDir string `yaml:"plot_dir"`
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
	LogLevel             string        `yaml:"log_level"`
	MaxItems             int           `yaml:"max_items"`
	MaxRuns              int           `yaml:"max_runs"`
	Solver               solver.Config `yaml:"solver"`
	Batch                BatchConfig   `yaml:"batch"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides. Nil fields are unset.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	Seed           *int64
	Generations    *int
	PopulationSize *int
	EnableTabu     *bool
	Acceptance     *string
	InstancesDir   *string
	Parallelism    *int
	PlotDir        *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if overrides != nil && overrides.ConfigFile != "" {
		if err := applyFile(&cfg, overrides.ConfigFile); err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         60 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		LogLevel:             defaultLogLevel,
		MaxItems:             defaultMaxItems,
		MaxRuns:              storage.DefaultMaxRuns,
		Solver:               solver.DefaultConfig(),
		Batch: BatchConfig{
			InstancesDir: defaultInstancesDir,
			Parallelism:  1,
		},
	}
}

// applyFile loads a YAML file over cfg. Keys absent from the file keep
// their current values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	yamlCfg := yamlConfig{Solver: cfg.Solver, Batch: cfg.Batch}
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	durations := []struct {
		raw string
		dst *time.Duration
		key string
	}{
		{yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod, "shutdown_grace_period"},
		{yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout, "read_header_timeout"},
		{yamlCfg.WriteTimeout, &cfg.WriteTimeout, "write_timeout"},
		{yamlCfg.IdleTimeout, &cfg.IdleTimeout, "idle_timeout"},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.MaxItems > 0 {
		cfg.MaxItems = yamlCfg.MaxItems
	}
	if yamlCfg.MaxRuns > 0 {
		cfg.MaxRuns = yamlCfg.MaxRuns
	}
	cfg.Solver = yamlCfg.Solver
	cfg.Batch = yamlCfg.Batch
	return nil
}

// applyEnvConfig applies environment variable configuration. Malformed
// numeric values are reported rather than ignored.
func applyEnvConfig(cfg *Config) error {
	if port := env("PORT"); port != "" {
		cfg.Port = port
	}
	if level := env("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if dir := env("INSTANCES_DIR"); dir != "" {
		cfg.Batch.InstancesDir = dir
	}
	if dir := env("PLOT_DIR"); dir != "" {
		cfg.Batch.PlotDir = dir
	}
	if acceptance := env("TABU_ACCEPTANCE"); acceptance != "" {
		cfg.Solver.Acceptance = acceptance
	}

	if raw := env("RATE_LIMIT_RPS"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = value
	}
	if raw := env("SOLVER_SEED"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("SOLVER_SEED: %w", err)
		}
		cfg.Solver.Seed = value
	}
	if raw := env("TABU_ENABLED"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("TABU_ENABLED: %w", err)
		}
		cfg.Solver.EnableTabu = value
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"RATE_LIMIT_BURST", &cfg.RateLimitBurst},
		{"MAX_ITEMS", &cfg.MaxItems},
		{"MAX_RUNS", &cfg.MaxRuns},
		{"GGA_POPULATION_SIZE", &cfg.Solver.GGA.PopulationSize},
		{"GGA_GENERATIONS", &cfg.Solver.GGA.Generations},
		{"TABU_MAX_ITERATIONS", &cfg.Solver.Tabu.MaxIterations},
		{"BATCH_PARALLELISM", &cfg.Batch.Parallelism},
	}
	for _, e := range ints {
		raw := env(e.key)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = value
	}
	return nil
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, o *CLIOverrides) {
	if o.Port != nil && *o.Port != "" {
		cfg.Port = *o.Port
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		cfg.LogLevel = *o.LogLevel
	}
	if o.RateLimitRPS != nil {
		cfg.RateLimitRPS = *o.RateLimitRPS
	}
	if o.RateLimitBurst != nil {
		cfg.RateLimitBurst = *o.RateLimitBurst
	}
	if o.Seed != nil {
		cfg.Solver.Seed = *o.Seed
	}
	if o.Generations != nil {
		cfg.Solver.GGA.Generations = *o.Generations
	}
	if o.PopulationSize != nil {
		cfg.Solver.GGA.PopulationSize = *o.PopulationSize
	}
	if o.EnableTabu != nil {
		cfg.Solver.EnableTabu = *o.EnableTabu
	}
	if o.Acceptance != nil && *o.Acceptance != "" {
		cfg.Solver.Acceptance = *o.Acceptance
	}
	if o.InstancesDir != nil && *o.InstancesDir != "" {
		cfg.Batch.InstancesDir = *o.InstancesDir
	}
	if o.Parallelism != nil {
		cfg.Batch.Parallelism = *o.Parallelism
	}
	if o.PlotDir != nil {
		cfg.Batch.PlotDir = *o.PlotDir
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst must be >= 0")
	}
	if cfg.MaxItems <= 0 {
		return fmt.Errorf("max items must be positive")
	}
	if cfg.MaxRuns <= 0 {
		return fmt.Errorf("max runs must be positive")
	}
	if cfg.Batch.Parallelism < 1 {
		return fmt.Errorf("batch parallelism must be >= 1")
	}
	if err := cfg.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
