package genetic

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TopRankCount is the size of the ranking exposed by TopFive
const TopRankCount = 5

// Population is an ordered collection of individuals sharing one gene count
type Population struct {
	individuals []*Individual
	geneCount   int
}

// ValidatePopulationSize checks that n is an even number of at least two
func ValidatePopulationSize(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: population size must be at least 2, got %d", ErrInvalidArgument, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: population size must be even, got %d", ErrInvalidArgument, n)
	}
	return nil
}

// NewPopulation creates size random individuals of geneCount genes each
func NewPopulation(size, geneCount int, rng *rand.Rand) (*Population, error) {
	if err := ValidatePopulationSize(size); err != nil {
		return nil, err
	}

	individuals := make([]*Individual, size)
	for i := range individuals {
		ind, err := NewIndividual(geneCount, rng)
		if err != nil {
			return nil, err
		}
		individuals[i] = ind
	}

	return &Population{individuals: individuals, geneCount: geneCount}, nil
}

// PopulationFrom wraps existing individuals, keeping their order
// Every individual must be distinct and carry the same gene count
func PopulationFrom(individuals []*Individual) (*Population, error) {
	if err := ValidatePopulationSize(len(individuals)); err != nil {
		return nil, err
	}

	geneCount := individuals[0].GeneCount()
	seen := make(map[*Individual]struct{}, len(individuals))
	for i, ind := range individuals {
		if ind == nil {
			return nil, fmt.Errorf("%w: individual %d is nil", ErrInvalidArgument, i)
		}
		if ind.GeneCount() != geneCount {
			return nil, fmt.Errorf("%w: individual %d has %d genes, expected %d",
				ErrInvalidArgument, i, ind.GeneCount(), geneCount)
		}
		if _, dup := seen[ind]; dup {
			return nil, fmt.Errorf("%w: individual %d appears more than once", ErrInvalidArgument, i)
		}
		seen[ind] = struct{}{}
	}

	return &Population{
		individuals: slices.Clone(individuals),
		geneCount:   geneCount,
	}, nil
}

// Size returns the number of individuals
func (p *Population) Size() int {
	return len(p.individuals)
}

// GeneCount returns the genotype length shared by all individuals
func (p *Population) GeneCount() int {
	return p.geneCount
}

// Individual returns the individual at position i
func (p *Population) Individual(i int) *Individual {
	return p.individuals[i]
}

// Individuals returns the members in population order
// The slice is a copy; the individuals are shared
func (p *Population) Individuals() []*Individual {
	return slices.Clone(p.individuals)
}

// Evaluate caches fn's fitness on every individual and clears elite flags
// With workers > 1 individuals are evaluated concurrently; fn must be pure
func (p *Population) Evaluate(fn FitnessFunction, workers int) {
	if workers <= 1 {
		for _, ind := range p.individuals {
			ind.fitness = fn.Evaluate(ind)
			ind.elite = false
		}
		return
	}

	wp := pool.New().WithMaxGoroutines(workers)
	for _, ind := range p.individuals {
		wp.Go(func() {
			ind.fitness = fn.Evaluate(ind)
			ind.elite = false
		})
	}
	wp.Wait()
}

func (p *Population) fitnesses() []float64 {
	out := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		out[i] = ind.fitness
	}
	return out
}

// Total returns the sum of cached fitness values
func (p *Population) Total() float64 {
	return floats.Sum(p.fitnesses())
}

// Mean returns the average cached fitness; the population must not be empty
func (p *Population) Mean() float64 {
	return stat.Mean(p.fitnesses(), nil)
}

// Min returns the lowest cached fitness; panics on an empty population
func (p *Population) Min() float64 {
	return floats.Min(p.fitnesses())
}

// Max returns the highest cached fitness; panics on an empty population
func (p *Population) Max() float64 {
	return floats.Max(p.fitnesses())
}

// ranked returns members ordered by descending fitness, ties kept in population order
func (p *Population) ranked() []*Individual {
	out := slices.Clone(p.individuals)
	slices.SortStableFunc(out, func(a, b *Individual) int {
		return cmp.Compare(b.fitness, a.fitness)
	})
	return out
}

// TopN returns the n fittest individuals; ties are broken by population order
func (p *Population) TopN(n int) []*Individual {
	if n <= 0 {
		return []*Individual{}
	}
	ranked := p.ranked()
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// TopFive returns the five fittest individuals
func (p *Population) TopFive() []*Individual {
	return p.TopN(TopRankCount)
}

// Best returns the fittest individual, first in population order on ties
func (p *Population) Best() *Individual {
	best := p.individuals[0]
	for _, ind := range p.individuals[1:] {
		if ind.fitness > best.fitness {
			best = ind
		}
	}
	return best
}

// Diversity returns the mean pairwise Hamming distance normalized to [0,1]
func (p *Population) Diversity() float64 {
	n := len(p.individuals)
	if n < 2 || p.geneCount == 0 {
		return 0
	}

	// Per locus, c ones among n members differ in c*(n-c) pairs
	var differing float64
	for locus := 0; locus < p.geneCount; locus++ {
		ones := 0
		for _, ind := range p.individuals {
			ones += int(ind.genes[locus].value)
		}
		differing += float64(ones * (n - ones))
	}

	pairs := float64(n*(n-1)) / 2
	return differing / (pairs * float64(p.geneCount))
}

// Stats computes a statistics snapshot of the current fitness values
func (p *Population) Stats() Stats {
	fit := p.fitnesses()
	return Stats{
		Size:      len(fit),
		Total:     floats.Sum(fit),
		Mean:      stat.Mean(fit, nil),
		Min:       floats.Min(fit),
		Max:       floats.Max(fit),
		StdDev:    stat.StdDev(fit, nil),
		Diversity: p.Diversity(),
	}
}
