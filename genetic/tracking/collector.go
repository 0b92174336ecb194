package tracking

import (
	"slices"
	"sync"

	"github.com/lixenwraith/simplega/genetic"
)

// Record describes one individual at the moment it was observed
type Record struct {
	Generation int
	Genotype   string
	Phenotype  []float64
	Fitness    float64
}

// Summary is the accumulated view of a run
type Summary struct {
	Generations  int
	Best         Record
	FinalStats   genetic.Stats
	Improvements []int // Generations in which the best-ever fitness rose
}

// Collector accumulates per-generation statistics and the best individual seen
// The fitness function is only used to decode phenotypes of recorded individuals
type Collector struct {
	fitness genetic.FitnessFunction

	mu           sync.RWMutex
	history      []genetic.Stats
	best         Record
	hasBest      bool
	improvements []int
}

var _ genetic.Observer = (*Collector)(nil)

// NewCollector creates a collector decoding phenotypes with fn
func NewCollector(fn genetic.FitnessFunction) *Collector {
	return &Collector{fitness: fn}
}

func (c *Collector) ObserveGeneration(generation int, pop *genetic.Population) {
	stats := pop.Stats()
	stats.Generation = generation
	top := pop.Best()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, stats)

	if !c.hasBest || top.Fitness() > c.best.Fitness {
		c.best = Record{
			Generation: generation,
			Genotype:   top.BitString(),
			Phenotype:  c.fitness.Decode(top),
			Fitness:    top.Fitness(),
		}
		c.hasBest = true
		c.improvements = append(c.improvements, generation)
	}
}

// History returns a copy of the recorded statistics
func (c *Collector) History() []genetic.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.history)
}

// Best returns the best-ever record, false before the first generation
func (c *Collector) Best() (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.best, c.hasBest
}

// Summary returns the accumulated run view
func (c *Collector) Summary() Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Summary{
		Generations:  len(c.history),
		Best:         c.best,
		Improvements: slices.Clone(c.improvements),
	}
	if n := len(c.history); n > 0 {
		s.FinalStats = c.history[n-1]
	}
	return s
}

// Reset clears accumulated state for reuse
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = nil
	c.best = Record{}
	c.hasBest = false
	c.improvements = nil
}
