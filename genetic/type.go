package genetic

// --- Collaborator Contracts ---

// FitnessFunction maps a genotype to phenotype parameters and a scalar fitness
// Higher fitness is better. Implementations must be deterministic for a fixed
// genotype, free of side effects, and defined for every valid genotype, since
// the solver may call Evaluate concurrently on different individuals
type FitnessFunction interface {
	// Evaluate returns the fitness of the individual's genotype
	Evaluate(ind *Individual) float64
	// Decode returns the real-valued phenotype encoded by the genotype
	Decode(ind *Individual) []float64
}

// Observer receives every generation right after it has been evaluated
// Observers run on the solver goroutine and must not retain or modify the population
type Observer interface {
	ObserveGeneration(generation int, pop *Population)
}

// ObserverFunc adapts a plain function to Observer
type ObserverFunc func(generation int, pop *Population)

func (f ObserverFunc) ObserveGeneration(generation int, pop *Population) {
	f(generation, pop)
}

// --- Statistics ---

// Stats is a snapshot of population fitness statistics
type Stats struct {
	Generation int
	Size       int
	Total      float64
	Mean       float64
	Min        float64
	Max        float64
	StdDev     float64
	Diversity  float64 // Mean normalized Hamming distance (0-1)
}
