package genetic

import (
	"fmt"

	"github.com/lixenwraith/simplega/parameter"
)

// Config holds the solver inputs; the solver never modifies it
type Config struct {
	// GeneCount is the genotype length of every individual (even, >= 2)
	GeneCount int
	// PopulationSize is the number of individuals per generation (even, >= 2)
	PopulationSize int
	// Generations is the index of the final generation; generation 0 is the initial population
	Generations int
	// MutationProbability is the per-gene flip probability (0-1)
	MutationProbability float64
	// ElitismPercentage is the share of the population preserved unchanged (0-1)
	ElitismPercentage float64
	// TournamentSize is the number of draws per tournament; 0 selects the binary default
	TournamentSize int
	// Parallelism is the number of concurrent evaluations; <= 1 evaluates sequentially
	Parallelism int
	// Seed for random number generation (0 for random seed)
	Seed uint64
	// MutateOffspring mutates freshly bred children instead of the outgoing population
	MutateOffspring bool
	// Fitness scores every individual once per generation
	Fitness FitnessFunction
}

// DefaultConfig returns the default configuration without a fitness function
func DefaultConfig() Config {
	return Config{
		GeneCount:           parameter.GAGeneCount,
		PopulationSize:      parameter.GAPopulationSize,
		Generations:         parameter.GAGenerations,
		MutationProbability: parameter.GAMutationProbability,
		ElitismPercentage:   parameter.GAElitismPercentage,
		TournamentSize:      parameter.GATournamentSize,
		Parallelism:         parameter.GAParallelism,
	}
}

// ValidateProbability checks that p lies in [0,1]; NaN is rejected
func ValidateProbability(name string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%w: %s must be between 0.0 and 1.0, got %v", ErrInvalidArgument, name, p)
	}
	return nil
}

// Validate reports the first contract violation in the configuration
func (c Config) Validate() error {
	if err := ValidateGeneCount(c.GeneCount); err != nil {
		return err
	}
	if err := ValidatePopulationSize(c.PopulationSize); err != nil {
		return err
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidArgument, c.Generations)
	}
	if err := ValidateProbability("mutation probability", c.MutationProbability); err != nil {
		return err
	}
	if err := ValidateProbability("elitism percentage", c.ElitismPercentage); err != nil {
		return err
	}
	if c.TournamentSize < 0 {
		return fmt.Errorf("%w: tournament size must not be negative, got %d", ErrInvalidArgument, c.TournamentSize)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidArgument, c.Parallelism)
	}
	if c.Fitness == nil {
		return fmt.Errorf("%w: fitness function is required", ErrInvalidArgument)
	}
	return nil
}
