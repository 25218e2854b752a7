package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/binpacker/internal/application"
	"github.com/eugenenazirov/binpacker/internal/config"
	"github.com/eugenenazirov/binpacker/internal/logging"
)

var signalNotify = signal.Notify

// cli holds the parsed command line. Flags are applied as overrides only
// when the user set them, so commands never inherit another command's
// zero values.
type cli struct {
	app *kingpin.Application

	configFile *string
	logLevel   *string

	serve *kingpin.CmdClause
	port  *string
	rps   *float64
	burst *int

	solve        *kingpin.CmdClause
	files        *[]string
	seed         *int64
	generations  *int
	population   *int
	tabu         *string
	acceptance   *string
	instancesDir *string
	parallelism  *int
	plotDir      *string

	list *kingpin.CmdClause

	set flagsSet
}

type flagsSet struct {
	logLevel, instancesDir              bool
	port, rps, burst                    bool
	seed, generations, population, tabu bool
	acceptance, parallelism, plotDir    bool
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("binpacker", "Bin packing solver: grouping genetic algorithm with tabu search refinement")}
	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").IsSetByUser(&c.set.logLevel).String()
	c.instancesDir = c.app.Flag("instances-dir", "Directory holding instance files").IsSetByUser(&c.set.instancesDir).String()

	c.serve = c.app.Command("serve", "Run the HTTP solving service").Default()
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").IsSetByUser(&c.set.port).String()
	c.rps = c.serve.Flag("rate-limit-rps", "Requests per second allowed per client (set 0 to disable)").IsSetByUser(&c.set.rps).Float64()
	c.burst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").IsSetByUser(&c.set.burst).Int()

	c.solve = c.app.Command("solve", "Solve instance files and print the packings")
	c.files = c.solve.Arg("files", "Instance files relative to the instances directory; all files when omitted").Strings()
	c.seed = c.solve.Flag("seed", "Random seed (0 seeds from the clock)").IsSetByUser(&c.set.seed).Int64()
	c.generations = c.solve.Flag("generations", "Number of GGA generations").IsSetByUser(&c.set.generations).Int()
	c.population = c.solve.Flag("population", "GGA population size").IsSetByUser(&c.set.population).Int()
	c.tabu = c.solve.Flag("tabu", "Tabu search refinement").IsSetByUser(&c.set.tabu).Enum("on", "off")
	c.acceptance = c.solve.Flag("acceptance", "Tabu acceptance rule").IsSetByUser(&c.set.acceptance).Enum("first", "best")
	c.parallelism = c.solve.Flag("parallelism", "Instances solved concurrently").IsSetByUser(&c.set.parallelism).Int()
	c.plotDir = c.solve.Flag("plot-dir", "Directory for convergence and load charts").IsSetByUser(&c.set.plotDir).String()

	c.list = c.app.Command("list", "List available instance files")
	return c
}

// overrides maps the flags the user actually set onto config overrides.
func (c *cli) overrides() *config.CLIOverrides {
	o := &config.CLIOverrides{ConfigFile: *c.configFile}

	if c.set.logLevel {
		o.LogLevel = c.logLevel
	}
	if c.set.instancesDir {
		o.InstancesDir = c.instancesDir
	}
	if c.set.port {
		o.Port = c.port
	}
	if c.set.rps {
		o.RateLimitRPS = c.rps
	}
	if c.set.burst {
		o.RateLimitBurst = c.burst
	}
	if c.set.seed {
		o.Seed = c.seed
	}
	if c.set.generations {
		o.Generations = c.generations
	}
	if c.set.population {
		o.PopulationSize = c.population
	}
	if c.set.tabu {
		enabled := *c.tabu == "on"
		o.EnableTabu = &enabled
	}
	if c.set.acceptance {
		o.Acceptance = c.acceptance
	}
	if c.set.parallelism {
		o.Parallelism = c.parallelism
	}
	if c.set.plotDir {
		o.PlotDir = c.plotDir
	}
	return o
}

func main() {
	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	cfg, err := config.Load(c.overrides())
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case c.serve.FullCommand():
		serve(cfg, logger)
	case c.solve.FullCommand():
		err = runSolve(os.Stdout, cfg, *c.files, logger)
	case c.list.FullCommand():
		err = runList(os.Stdout, cfg.Batch.InstancesDir)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func serve(cfg config.Config, logger *zap.Logger) {
	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
