// Command simplega evolves binary genotypes against a registered fitness landscape
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lixenwraith/simplega/config"
	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/genetic/history"
	"github.com/lixenwraith/simplega/genetic/metrics"
	"github.com/lixenwraith/simplega/genetic/persistence"
	"github.com/lixenwraith/simplega/genetic/registry"
	"github.com/lixenwraith/simplega/genetic/tracking"
	"github.com/lixenwraith/simplega/parameter"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the command-line surface; values only override the file when set
type options struct {
	configPath string
	debug      bool
	tui        bool

	file config.File
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("simplega", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.Default()
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	genes := fs.Int("genes", defaults.Solver.GeneCount, "Genes per individual (even)")
	population := fs.Int("population", defaults.Solver.PopulationSize, "Individuals per generation (even)")
	generations := fs.Int("generations", defaults.Solver.Generations, "Index of the final generation")
	mutation := fs.Float64("mutation", defaults.Solver.MutationProbability, "Per-gene mutation probability (0-1)")
	elitism := fs.Float64("elitism", defaults.Solver.ElitismPercentage, "Share of the population kept as elites (0-1)")
	seed := fs.Uint64("seed", defaults.Solver.Seed, "Random seed (0 for random)")
	landscape := fs.String("fitness", defaults.Fitness.Name, "Fitness landscape: "+strings.Join(registry.Default().Names(), ", "))
	report := fs.Int("report", defaults.Output.ReportInterval, "Report every N generations (0 disables)")
	snapshot := fs.String("snapshot", "", "Write the final population to this file or snapshot name")
	resume := fs.String("resume", "", "Seed the initial population from this file or snapshot name")
	historyPath := fs.String("history", "", "SQLite database recording run history")
	plotPath := fs.String("plot", "", "Write fitness curves to this image (png, svg, pdf)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.BoolVar(&opts.tui, "tui", false, "Show a live terminal dashboard")
	fs.BoolVar(&opts.debug, "debug", false, "Write debug logs to "+filepath.Join(parameter.LogDir, parameter.LogFileName))

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.file = defaults
	if opts.configPath != "" {
		f, err := config.Load(opts.configPath)
		if err != nil {
			return opts, err
		}
		opts.file = f
	}

	// Explicit flags win over the configuration file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "genes":
			opts.file.Solver.GeneCount = *genes
		case "population":
			opts.file.Solver.PopulationSize = *population
		case "generations":
			opts.file.Solver.Generations = *generations
		case "mutation":
			opts.file.Solver.MutationProbability = *mutation
		case "elitism":
			opts.file.Solver.ElitismPercentage = *elitism
		case "seed":
			opts.file.Solver.Seed = *seed
		case "fitness":
			opts.file.Fitness.Name = *landscape
		case "report":
			opts.file.Output.ReportInterval = *report
		case "snapshot":
			opts.file.Output.Snapshot = *snapshot
		case "resume":
			opts.file.Output.Resume = *resume
		case "history":
			opts.file.Output.History = *historyPath
		case "plot":
			opts.file.Output.Plot = *plotPath
		case "metrics-addr":
			opts.file.Metrics.Addr = *metricsAddr
		}
	})

	return opts, nil
}

// snapshots resolves -snapshot and -resume values: a bare name (no directory,
// no extension) lives in the default persistence directory, anything else is a file path
type snapshots struct {
	manager *persistence.Manager
}

func newSnapshots() snapshots {
	return snapshots{manager: persistence.NewManager(parameter.GeneticPersistencePath)}
}

func isSnapshotName(v string) bool {
	return !strings.ContainsRune(v, filepath.Separator) && filepath.Ext(v) == ""
}

func (s snapshots) path(v string) string {
	if isSnapshotName(v) {
		return s.manager.FilePath(v)
	}
	return v
}

func (s snapshots) load(v string) (persistence.PopulationDTO, error) {
	if !isSnapshotName(v) {
		return persistence.LoadFile(v)
	}
	if !s.manager.Exists(v) {
		return persistence.PopulationDTO{}, fmt.Errorf("snapshot %q not found at %s", v, s.manager.FilePath(v))
	}
	return s.manager.Load(v)
}

func (s snapshots) save(v string, dto persistence.PopulationDTO) error {
	if isSnapshotName(v) {
		return s.manager.Save(v, dto)
	}
	return persistence.SaveFile(v, dto)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	file := opts.file

	cfg, err := file.SolverConfig(registry.Default())
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	logger, closeLog, err := setupLogging(parameter.LogDir, opts.debug)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	solverOpts := []genetic.Option{genetic.WithLogger(logger)}
	snaps := newSnapshots()

	if file.Output.Resume != "" {
		path := snaps.path(file.Output.Resume)
		dto, err := snaps.load(file.Output.Resume)
		if err != nil {
			fmt.Fprintf(stderr, "Resume failed: %v\n", err)
			return 1
		}
		pop, err := dto.ToPopulation()
		if err != nil {
			fmt.Fprintf(stderr, "Resume failed: %s: %v\n", path, err)
			return 1
		}
		logger.Info("resuming population", zap.String("path", path), zap.Int("snapshot_generation", dto.Generation))
		solverOpts = append(solverOpts, genetic.WithPopulation(pop))
	}

	collector := tracking.NewCollector(cfg.Fitness)
	solverOpts = append(solverOpts, genetic.WithObserver(collector))

	if file.Output.ReportInterval > 0 && !opts.tui {
		solverOpts = append(solverOpts, genetic.WithObserver(tracking.NewReporter(stdout, cfg.Fitness, file.Output.ReportInterval)))
	}

	var recorder *history.Recorder
	if file.Output.History != "" {
		store, err := history.Open(file.Output.History)
		if err != nil {
			fmt.Fprintf(stderr, "History store: %v\n", err)
			return 1
		}
		defer store.Close()

		// Rows of the generation running at interrupt time are still written
		recorder, err = store.BeginRun(context.Background(), file.Fitness.Name, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "History store: %v\n", err)
			return 1
		}
		solverOpts = append(solverOpts, genetic.WithObserver(recorder))
	}

	if file.Metrics.Addr != "" {
		promReg := prometheus.NewRegistry()
		exporter, err := metrics.NewExporter(promReg)
		if err != nil {
			fmt.Fprintf(stderr, "Metrics: %v\n", err)
			return 1
		}
		solverOpts = append(solverOpts, genetic.WithObserver(exporter))

		srv := &http.Server{
			Addr:              file.Metrics.Addr,
			Handler:           promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var screen tcell.Screen
	if opts.tui {
		screen, err = tcell.NewScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Failed to initialize terminal: %v\n", err)
			return 1
		}
		dash := newDashboard(screen, cfg.Fitness, cfg.Generations)
		solverOpts = append(solverOpts, genetic.WithObserver(dash))
		go dash.listen(cancel)
	}

	solver, err := genetic.NewSolver(cfg, solverOpts...)
	if err != nil {
		if screen != nil {
			screen.Fini()
		}
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	final, runErr := solver.Run(ctx)
	if screen != nil {
		screen.Fini()
	}

	interrupted := errors.Is(runErr, context.Canceled)
	if runErr != nil && !interrupted {
		fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
		return 1
	}

	printSummary(stdout, collector.Summary(), interrupted)

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			fmt.Fprintf(stderr, "History store: %v\n", err)
		} else {
			fmt.Fprintf(stdout, "History run: %s\n", recorder.RunID())
		}
	}

	if file.Output.Plot != "" {
		title := fmt.Sprintf("%s, %d genes, population %d", file.Fitness.Name, cfg.GeneCount, cfg.PopulationSize)
		if err := tracking.WriteFitnessPlot(collector.History(), title, file.Output.Plot); err != nil {
			fmt.Fprintf(stderr, "Plot failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Plot written: %s\n", file.Output.Plot)
	}

	if file.Output.Snapshot != "" {
		path := snaps.path(file.Output.Snapshot)
		if err := snaps.save(file.Output.Snapshot, persistence.FromPopulation(final, solver.Generation())); err != nil {
			fmt.Fprintf(stderr, "Snapshot failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Snapshot written: %s\n", path)
	}

	return 0
}

func printSummary(out io.Writer, s tracking.Summary, interrupted bool) {
	if interrupted {
		fmt.Fprintf(out, "Run interrupted after generation %d\n", s.FinalStats.Generation)
	}
	fmt.Fprintf(out, "Best Individual: %s\n", s.Best.Genotype)
	fmt.Fprintf(out, "Phenotype: %v\n", s.Best.Phenotype)
	fmt.Fprintf(out, "Fitness: %.6f (generation %d)\n", s.Best.Fitness, s.Best.Generation)
	fmt.Fprintf(out, "Final Average Fitness: %.6f, Diversity: %.4f\n", s.FinalStats.Mean, s.FinalStats.Diversity)
}
