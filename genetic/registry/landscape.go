package registry

import (
	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/genetic/fitness"
)

// Built-in landscape names
const (
	NameSchafferF6 = "schaffer-f6"
	NameOneMax     = "onemax"
)

// Factory builds a fitness function for genotypes of geneCount genes
// It rejects gene counts the landscape cannot decode
type Factory func(geneCount int) (genetic.FitnessFunction, error)

func newSchafferF6(geneCount int) (genetic.FitnessFunction, error) {
	f := fitness.NewSchafferF6()
	if err := f.Decoder().CheckGeneCount(geneCount); err != nil {
		return nil, err
	}
	return f, nil
}

func newOneMax(geneCount int) (genetic.FitnessFunction, error) {
	if err := genetic.ValidateGeneCount(geneCount); err != nil {
		return nil, err
	}
	return fitness.OneMax{}, nil
}
