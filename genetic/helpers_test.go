package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// onesFitness scores the fraction of set genes
type onesFitness struct{}

func (onesFitness) Evaluate(ind *Individual) float64 {
	return onesFitness{}.Decode(ind)[0] / float64(ind.GeneCount())
}

func (onesFitness) Decode(ind *Individual) []float64 {
	ones := 0
	for _, g := range ind.genes {
		ones += g.Value()
	}
	return []float64{float64(ones)}
}

// tableFitness looks fitness up by bit string, unknown genotypes score 0
type tableFitness map[string]float64

func (t tableFitness) Evaluate(ind *Individual) float64 {
	return t[ind.BitString()]
}

func (t tableFitness) Decode(ind *Individual) []float64 {
	return []float64{t[ind.BitString()]}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func mustIndividual(t *testing.T, bits string) *Individual {
	t.Helper()
	ind, err := IndividualFromBits(bits)
	require.NoError(t, err)
	return ind
}

func mustPopulation(t *testing.T, bits ...string) *Population {
	t.Helper()
	individuals := make([]*Individual, len(bits))
	for i, b := range bits {
		individuals[i] = mustIndividual(t, b)
	}
	pop, err := PopulationFrom(individuals)
	require.NoError(t, err)
	return pop
}

// withFitness assigns fitness values directly, in population order
func withFitness(pop *Population, values ...float64) *Population {
	for i, v := range values {
		pop.individuals[i].fitness = v
	}
	return pop
}
