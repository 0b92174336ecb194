package genetic

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"

	"github.com/lixenwraith/simplega/parameter"
)

// State is the solver lifecycle phase
type State uint8

const (
	StateInitialized State = iota
	StateEvaluating
	StateBreeding
	StateMutating
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateEvaluating:
		return "evaluating"
	case StateBreeding:
		return "breeding"
	case StateMutating:
		return "mutating"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// --- Solver ---

// Solver runs the generational loop over a single current population
type Solver struct {
	config Config

	rng        *rand.Rand
	population *Population
	observers  []Observer
	logger     *zap.Logger

	state      State
	generation int
	history    []Stats
	best       *Individual
}

// Option customizes a Solver at construction
type Option func(*Solver)

// WithPopulation seeds the solver with an existing population instead of a random one
func WithPopulation(pop *Population) Option {
	return func(s *Solver) {
		s.population = pop
	}
}

// WithRand replaces the seeded source derived from Config.Seed
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		s.rng = rng
	}
}

// WithLogger sets the structured logger (default no-op)
func WithLogger(logger *zap.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// WithObserver registers an observer; observers are called in registration order
func WithObserver(o Observer) Option {
	return func(s *Solver) {
		s.observers = append(s.observers, o)
	}
}

// NewSolver validates the configuration and prepares the initial population
func NewSolver(config Config, opts ...Option) (*Solver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.TournamentSize == 0 {
		config.TournamentSize = parameter.GATournamentSize
	}

	s := &Solver{
		config:  config,
		logger:  zap.NewNop(),
		history: make([]Stats, 0, config.Generations+1),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rng == nil {
		if config.Seed == 0 {
			s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		} else {
			s.rng = rand.New(rand.NewPCG(config.Seed, config.Seed))
		}
	}

	if s.population == nil {
		pop, err := NewPopulation(config.PopulationSize, config.GeneCount, s.rng)
		if err != nil {
			return nil, err
		}
		s.population = pop
	} else if s.population.Size() != config.PopulationSize || s.population.GeneCount() != config.GeneCount {
		return nil, fmt.Errorf("%w: seed population is %d x %d genes, configuration expects %d x %d genes",
			ErrInvalidArgument, s.population.Size(), s.population.GeneCount(),
			config.PopulationSize, config.GeneCount)
	}

	return s, nil
}

// Config returns the effective configuration
func (s *Solver) Config() Config {
	return s.config
}

// Population returns the current population
func (s *Solver) Population() *Population {
	return s.population
}

// Generation returns the index of the current generation
func (s *Solver) Generation() int {
	return s.generation
}

// State returns the lifecycle phase
func (s *Solver) State() State {
	return s.state
}

// History returns a copy of the statistics of every evaluated generation
func (s *Solver) History() []Stats {
	return slices.Clone(s.history)
}

// Best returns a detached copy of the fittest individual evaluated so far
func (s *Solver) Best() (*Individual, bool) {
	if s.best == nil {
		return nil, false
	}
	return s.best.Clone(), true
}

// Run evolves generations 0 through Config.Generations and returns the final,
// evaluated population. The context is checked between generations only
func (s *Solver) Run(ctx context.Context) (*Population, error) {
	if s.state == StateTerminated {
		return s.population, ErrTerminated
	}

	s.logger.Info("run started",
		zap.Int("gene_count", s.config.GeneCount),
		zap.Int("population_size", s.config.PopulationSize),
		zap.Int("generations", s.config.Generations),
		zap.Float64("mutation_probability", s.config.MutationProbability),
		zap.Float64("elitism_percentage", s.config.ElitismPercentage),
	)

	for k := 0; ; k++ {
		s.generation = k
		s.evaluate()

		if k == s.config.Generations {
			break
		}

		select {
		case <-ctx.Done():
			s.state = StateTerminated
			s.logger.Info("run cancelled", zap.Int("generation", k), zap.Error(ctx.Err()))
			return s.population, ctx.Err()
		default:
		}

		next, err := s.breed()
		if err != nil {
			s.state = StateTerminated
			return s.population, err
		}

		if err := s.mutate(next); err != nil {
			s.state = StateTerminated
			return s.population, err
		}

		s.population = next
	}

	s.state = StateTerminated
	if s.best != nil {
		s.logger.Info("run finished",
			zap.Int("generation", s.generation),
			zap.Float64("best_fitness", s.best.Fitness()),
			zap.String("best_genotype", s.best.BitString()),
		)
	}
	return s.population, nil
}

// evaluate scores the current population, records statistics and notifies observers
func (s *Solver) evaluate() {
	s.state = StateEvaluating
	s.population.Evaluate(s.config.Fitness, s.config.Parallelism)

	stats := s.population.Stats()
	stats.Generation = s.generation
	s.history = append(s.history, stats)

	if best := s.population.Best(); s.best == nil || best.Fitness() > s.best.Fitness() {
		s.best = best.Clone()
	}

	s.logger.Debug("generation evaluated",
		zap.Int("generation", stats.Generation),
		zap.Float64("max", stats.Max),
		zap.Float64("mean", stats.Mean),
		zap.Float64("min", stats.Min),
		zap.Float64("diversity", stats.Diversity),
	)

	for _, o := range s.observers {
		o.ObserveGeneration(s.generation, s.population)
	}
}

// breed builds the next population: elites by reference, then crossover children
func (s *Solver) breed() (*Population, error) {
	s.state = StateBreeding

	current := s.population
	size := current.Size()
	next := make([]*Individual, 0, size)

	if s.config.ElitismPercentage > 0 {
		if _, err := TagElites(current, s.config.ElitismPercentage); err != nil {
			return nil, err
		}
		for _, ind := range current.individuals {
			if ind.elite {
				next = append(next, ind)
			}
		}
	}

	for len(next) < size {
		parentA, parentB, err := SelectParents(current, s.config.TournamentSize, s.rng)
		if err != nil {
			return nil, err
		}
		childA, childB, err := CrossoverSinglePoint(parentA, parentB, s.rng)
		if err != nil {
			return nil, err
		}
		next = append(next, childA, childB)
	}

	return &Population{individuals: next, geneCount: current.geneCount}, nil
}

// mutate applies bit-flip mutation to non-elites of the outgoing population, or of
// the bred population when MutateOffspring is set
func (s *Solver) mutate(next *Population) error {
	s.state = StateMutating

	targets := s.population.individuals
	if s.config.MutateOffspring {
		targets = next.individuals
	}
	for _, ind := range targets {
		if err := Mutate(ind, s.config.MutationProbability, s.rng); err != nil {
			return err
		}
	}
	return nil
}
