package genetic

import (
	"fmt"

	"github.com/google/uuid"
)

// Gene is a single binary value with a stable identity
// Genes are immutable; mutation replaces a gene rather than changing it
type Gene struct {
	id    uuid.UUID
	value uint8
}

// NewGene creates a gene holding value, which must be 0 or 1
func NewGene(value int) (Gene, error) {
	if value != 0 && value != 1 {
		return Gene{}, fmt.Errorf("%w: gene value must be 0 or 1, got %d", ErrInvalidArgument, value)
	}
	return newGene(uint8(value)), nil
}

func newGene(value uint8) Gene {
	return Gene{id: uuid.New(), value: value}
}

// ID returns the gene identity
func (g Gene) ID() uuid.UUID {
	return g.id
}

// Value returns 0 or 1
func (g Gene) Value() int {
	return int(g.value)
}

// Flipped returns a new gene with the opposite value and a fresh identity
func (g Gene) Flipped() Gene {
	return newGene(g.value ^ 1)
}

func (g Gene) bit() byte {
	return '0' + g.value
}
