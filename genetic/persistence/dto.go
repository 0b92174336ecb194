package persistence

import (
	"fmt"

	"github.com/lixenwraith/simplega/genetic"
)

// PopulationDTO is the serializable population state
type PopulationDTO struct {
	Generation  int             `toml:"generation"`
	GeneCount   int             `toml:"gene_count"`
	Individuals []IndividualDTO `toml:"individuals"`
}

// IndividualDTO is a serializable individual; fitness is informational and is
// recomputed when the population is evaluated again
type IndividualDTO struct {
	ID      string  `toml:"id"`
	Genes   string  `toml:"genes"`
	Fitness float64 `toml:"fitness"`
	Elite   bool    `toml:"elite"`
}

// FromPopulation converts a population to a DTO
func FromPopulation(pop *genetic.Population, generation int) PopulationDTO {
	if pop == nil {
		return PopulationDTO{}
	}

	dto := PopulationDTO{
		Generation:  generation,
		GeneCount:   pop.GeneCount(),
		Individuals: make([]IndividualDTO, pop.Size()),
	}

	for i, ind := range pop.Individuals() {
		dto.Individuals[i] = IndividualDTO{
			ID:      ind.ID().String(),
			Genes:   ind.BitString(),
			Fitness: ind.Fitness(),
			Elite:   ind.IsElite(),
		}
	}

	return dto
}

// ToPopulation rebuilds the genotypes as fresh, unevaluated individuals
func (dto PopulationDTO) ToPopulation() (*genetic.Population, error) {
	individuals := make([]*genetic.Individual, len(dto.Individuals))

	for i, d := range dto.Individuals {
		if dto.GeneCount != 0 && len(d.Genes) != dto.GeneCount {
			return nil, fmt.Errorf("%w: individual %d has %d genes, snapshot declares %d",
				genetic.ErrInvalidArgument, i, len(d.Genes), dto.GeneCount)
		}
		ind, err := genetic.IndividualFromBits(d.Genes)
		if err != nil {
			return nil, fmt.Errorf("individual %d: %w", i, err)
		}
		individuals[i] = ind
	}

	return genetic.PopulationFrom(individuals)
}
