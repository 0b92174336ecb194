package genetic

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Individual is a binary genotype with a cached fitness and an elite flag
type Individual struct {
	id      uuid.UUID
	genes   []Gene
	fitness float64
	elite   bool
}

// ValidateGeneCount checks that n is an even number of at least two
func ValidateGeneCount(n int) error {
	if n < 2 {
		return fmt.Errorf("%w: gene count must be at least 2, got %d", ErrInvalidArgument, n)
	}
	if n%2 != 0 {
		return fmt.Errorf("%w: gene count must be even, got %d", ErrInvalidArgument, n)
	}
	return nil
}

// NewIndividual creates an individual whose genes are drawn uniformly from {0,1}
func NewIndividual(geneCount int, rng *rand.Rand) (*Individual, error) {
	if err := ValidateGeneCount(geneCount); err != nil {
		return nil, err
	}

	ind := &Individual{
		id:    uuid.New(),
		genes: make([]Gene, geneCount),
	}
	for i := range ind.genes {
		ind.genes[i] = newGene(uint8(rng.IntN(2)))
	}
	return ind, nil
}

// NewEmptyIndividual creates an individual without genes, to be filled by crossover
func NewEmptyIndividual() *Individual {
	return &Individual{id: uuid.New()}
}

// IndividualFromBits builds an individual from a '0'/'1' string
func IndividualFromBits(bits string) (*Individual, error) {
	if err := ValidateGeneCount(len(bits)); err != nil {
		return nil, err
	}

	ind := &Individual{
		id:    uuid.New(),
		genes: make([]Gene, len(bits)),
	}
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '0':
			ind.genes[i] = newGene(0)
		case '1':
			ind.genes[i] = newGene(1)
		default:
			return nil, fmt.Errorf("%w: invalid character %q at position %d in bit string", ErrInvalidArgument, bits[i], i)
		}
	}
	return ind, nil
}

// ID returns the individual identity
func (ind *Individual) ID() uuid.UUID {
	return ind.id
}

// GeneCount returns the genotype length
func (ind *Individual) GeneCount() int {
	return len(ind.genes)
}

// Gene returns the gene at position i
func (ind *Individual) Gene(i int) Gene {
	return ind.genes[i]
}

// Genes returns a copy of the genotype
func (ind *Individual) Genes() []Gene {
	out := make([]Gene, len(ind.genes))
	copy(out, ind.genes)
	return out
}

// BitString renders the genotype as a string of '0' and '1' characters
func (ind *Individual) BitString() string {
	if len(ind.genes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(ind.genes))
	for _, g := range ind.genes {
		sb.WriteByte(g.bit())
	}
	return sb.String()
}

// Fitness returns the cached fitness from the last evaluation
func (ind *Individual) Fitness() float64 {
	return ind.fitness
}

// IsElite reports whether the elitism step tagged this individual in the current generation
func (ind *Individual) IsElite() bool {
	return ind.elite
}

// SameGenotype reports whether both individuals carry identical gene values
// Identities and fitness are ignored
func (ind *Individual) SameGenotype(other *Individual) bool {
	if other == nil || len(ind.genes) != len(other.genes) {
		return false
	}
	for i := range ind.genes {
		if ind.genes[i].value != other.genes[i].value {
			return false
		}
	}
	return true
}

// Clone returns a detached copy that keeps identity, genes, fitness and elite flag
func (ind *Individual) Clone() *Individual {
	return &Individual{
		id:      ind.id,
		genes:   ind.Genes(),
		fitness: ind.fitness,
		elite:   ind.elite,
	}
}

func (ind *Individual) String() string {
	var sb strings.Builder
	sb.WriteString("Individual: [ ")
	for i, g := range ind.genes {
		sb.WriteByte(g.bit())
		if i < len(ind.genes)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(" ]")
	return sb.String()
}
