// Package genetic implements a generational genetic algorithm over binary genotypes
// 1. Individuals carry fixed-length bit genotypes; a FitnessFunction decodes and scores them
// 2. Operators are plain functions that take an explicit random source
// 3. The Solver drives evaluate, elitism, selection, crossover, mutation and replacement
package genetic

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// --- Selection ---

// TournamentSelect draws tournamentSize members uniformly with replacement and
// returns the fittest; on equal fitness the earliest draw wins
func TournamentSelect(pop *Population, tournamentSize int, rng *rand.Rand) (*Individual, error) {
	if tournamentSize < 1 {
		return nil, fmt.Errorf("%w: tournament size must be at least 1, got %d", ErrInvalidArgument, tournamentSize)
	}

	size := pop.Size()
	var best *Individual
	for i := 0; i < tournamentSize; i++ {
		candidate := pop.individuals[rng.IntN(size)]
		if best == nil || candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best, nil
}

// SelectParents runs two independent tournaments; both may return the same individual
func SelectParents(pop *Population, tournamentSize int, rng *rand.Rand) (parentA, parentB *Individual, err error) {
	if parentA, err = TournamentSelect(pop, tournamentSize, rng); err != nil {
		return nil, nil, err
	}
	if parentB, err = TournamentSelect(pop, tournamentSize, rng); err != nil {
		return nil, nil, err
	}
	return parentA, parentB, nil
}

// BinaryTournamentSelection selects a parent pair with tournaments of two
func BinaryTournamentSelection(pop *Population, rng *rand.Rand) (parentA, parentB *Individual, err error) {
	return SelectParents(pop, 2, rng)
}

// --- Recombination ---

// CrossoverSinglePoint draws k from [0, geneCount) and swaps the head [0,k]:
// childA takes parentB's head and parentA's tail, childB the complement.
// Gene values are copied so children never share storage with parents
func CrossoverSinglePoint(parentA, parentB *Individual, rng *rand.Rand) (childA, childB *Individual, err error) {
	geneCount := parentA.GeneCount()
	if geneCount != parentB.GeneCount() {
		return nil, nil, fmt.Errorf("%w: crossover parents differ in gene count (%d vs %d)",
			ErrInvalidArgument, geneCount, parentB.GeneCount())
	}
	if geneCount == 0 {
		return nil, nil, fmt.Errorf("%w: crossover parents have no genes", ErrInvalidArgument)
	}

	k := rng.IntN(geneCount)

	childA = NewEmptyIndividual()
	childB = NewEmptyIndividual()
	childA.genes = make([]Gene, geneCount)
	childB.genes = make([]Gene, geneCount)

	copy(childA.genes[:k+1], parentB.genes[:k+1])
	copy(childB.genes[:k+1], parentA.genes[:k+1])
	copy(childA.genes[k+1:], parentA.genes[k+1:])
	copy(childB.genes[k+1:], parentB.genes[k+1:])

	return childA, childB, nil
}

// --- Mutation ---

// Mutate flips each gene independently with the given probability
// Elites are left untouched; any other individual has its fitness reset to 0
func Mutate(ind *Individual, probability float64, rng *rand.Rand) error {
	if err := ValidateProbability("mutation probability", probability); err != nil {
		return err
	}
	if ind.elite {
		return nil
	}

	ind.fitness = 0
	for i := range ind.genes {
		if rng.Float64() < probability {
			ind.genes[i] = ind.genes[i].Flipped()
		}
	}
	return nil
}

// --- Elitism ---

// EliteCount returns round(size*percent), half to even, bumped to the next even number
func EliteCount(size int, percent float64) int {
	count := int(math.RoundToEven(float64(size) * percent))
	if count%2 != 0 {
		count++
	}
	return min(count, size)
}

// TagElites marks the EliteCount fittest members as elite, ties kept in population order
// Flags of all other members are left as they are; the evaluation step clears them
func TagElites(pop *Population, percent float64) (int, error) {
	if err := ValidateProbability("elitism percentage", percent); err != nil {
		return 0, err
	}

	count := EliteCount(pop.Size(), percent)
	for _, ind := range pop.TopN(count) {
		ind.elite = true
	}
	return count, nil
}
