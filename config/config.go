// Package config loads run configuration from TOML files
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/genetic/registry"
	"github.com/lixenwraith/simplega/parameter"
)

// File is the on-disk configuration layout
type File struct {
	Solver  SolverSection  `toml:"solver"`
	Fitness FitnessSection `toml:"fitness"`
	Output  OutputSection  `toml:"output"`
	Metrics MetricsSection `toml:"metrics"`
}

// SolverSection mirrors genetic.Config without the fitness function
type SolverSection struct {
	GeneCount           int     `toml:"gene_count"`
	PopulationSize      int     `toml:"population_size"`
	Generations         int     `toml:"generations"`
	MutationProbability float64 `toml:"mutation_probability"`
	ElitismPercentage   float64 `toml:"elitism_percentage"`
	TournamentSize      int     `toml:"tournament_size"`
	Parallelism         int     `toml:"parallelism"`
	Seed                uint64  `toml:"seed"`
	MutateOffspring     bool    `toml:"mutate_offspring"`
}

// FitnessSection selects a registered landscape
type FitnessSection struct {
	Name string `toml:"name"`
}

// OutputSection controls reporting and run artifacts
type OutputSection struct {
	// ReportInterval prints a report every N generations; 0 disables it
	ReportInterval int `toml:"report_interval"`
	// Snapshot is the file the final population is written to
	Snapshot string `toml:"snapshot"`
	// Resume is a snapshot file to seed the initial population from
	Resume string `toml:"resume"`
	// History is the SQLite database recording per-generation statistics
	History string `toml:"history"`
	// Plot is an image of the fitness curves written after the run
	Plot string `toml:"plot"`
}

// MetricsSection configures the Prometheus endpoint
type MetricsSection struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is given
func Default() File {
	return File{
		Solver: SolverSection{
			GeneCount:           parameter.GAGeneCount,
			PopulationSize:      parameter.GAPopulationSize,
			Generations:         parameter.GAGenerations,
			MutationProbability: parameter.GAMutationProbability,
			ElitismPercentage:   parameter.GAElitismPercentage,
			TournamentSize:      parameter.GATournamentSize,
			Parallelism:         parameter.GAParallelism,
		},
		Fitness: FitnessSection{
			Name: registry.NameSchafferF6,
		},
		Output: OutputSection{
			ReportInterval: parameter.GAReportInterval,
		},
	}
}

// Load decodes path over the defaults; keys missing from the file keep their default
func Load(path string) (File, error) {
	f := Default()
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("config: %s: unknown keys %v", path, undecoded)
	}
	return f, nil
}

// Validate checks the file without building a fitness function
func (f File) Validate() error {
	if err := f.Solver.config(placeholder{}).Validate(); err != nil {
		return err
	}
	if f.Fitness.Name == "" {
		return fmt.Errorf("%w: fitness name is required", genetic.ErrInvalidArgument)
	}
	if f.Output.ReportInterval < 0 {
		return fmt.Errorf("%w: report interval must not be negative, got %d", genetic.ErrInvalidArgument, f.Output.ReportInterval)
	}
	return nil
}

// SolverConfig validates the file and resolves the fitness landscape through reg
func (f File) SolverConfig(reg *registry.Registry) (genetic.Config, error) {
	if err := f.Validate(); err != nil {
		return genetic.Config{}, err
	}
	fn, err := reg.Create(f.Fitness.Name, f.Solver.GeneCount)
	if err != nil {
		return genetic.Config{}, err
	}
	return f.Solver.config(fn), nil
}

func (s SolverSection) config(fn genetic.FitnessFunction) genetic.Config {
	return genetic.Config{
		GeneCount:           s.GeneCount,
		PopulationSize:      s.PopulationSize,
		Generations:         s.Generations,
		MutationProbability: s.MutationProbability,
		ElitismPercentage:   s.ElitismPercentage,
		TournamentSize:      s.TournamentSize,
		Parallelism:         s.Parallelism,
		Seed:                s.Seed,
		MutateOffspring:     s.MutateOffspring,
		Fitness:             fn,
	}
}

// placeholder stands in for the landscape while the solver fields are validated
type placeholder struct{}

func (placeholder) Evaluate(*genetic.Individual) float64  { return 0 }
func (placeholder) Decode(*genetic.Individual) []float64 { return nil }
