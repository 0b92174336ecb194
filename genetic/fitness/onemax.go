package fitness

import "github.com/lixenwraith/simplega/genetic"

// OneMax scores the fraction of set genes; its optimum is the all-ones genotype
type OneMax struct{}

var _ genetic.FitnessFunction = OneMax{}

// Decode returns the number of set genes
func (OneMax) Decode(ind *genetic.Individual) []float64 {
	ones := 0
	for i := 0; i < ind.GeneCount(); i++ {
		ones += ind.Gene(i).Value()
	}
	return []float64{float64(ones)}
}

func (o OneMax) Evaluate(ind *genetic.Individual) float64 {
	if ind.GeneCount() == 0 {
		return 0
	}
	return o.Decode(ind)[0] / float64(ind.GeneCount())
}
