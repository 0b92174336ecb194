package parameter

// Genetic Algorithm - Solver Configuration
const (
	// GAGeneCount is the genotype length; split in halves for two-parameter landscapes
	GAGeneCount = 32

	// GAPopulationSize is the number of individuals in each generation
	GAPopulationSize = 50

	// GAGenerations is the final generation index of a run
	GAGenerations = 100

	// GAMutationProbability is the per-gene flip probability (0.0-1.0)
	GAMutationProbability = 0.02

	// GAElitismPercentage is the share of each generation preserved unchanged (0.0-1.0)
	GAElitismPercentage = 0.05

	// GATournamentSize for selection pressure (binary tournament)
	GATournamentSize = 2

	// GAParallelism for batch evaluation (1 = sequential)
	GAParallelism = 1
)

// Genetic Algorithm - Reporting
const (
	// GAReportInterval prints the top-ranked individuals every N generations
	GAReportInterval = 5

	// GAReportTopCount is how many ranked individuals a report lists
	GAReportTopCount = 5
)

// Genetic Algorithm - Schaffer F6 Landscape
const (
	// GAF6DomainMin and GAF6DomainMax bound each decoded coordinate
	GAF6DomainMin = -100.0
	GAF6DomainMax = 100.0

	// GAF6Arity is the number of decoded coordinates (x, y)
	GAF6Arity = 2
)

// Persistence and logging locations
const (
	// GeneticPersistencePath is the directory for population snapshot files
	GeneticPersistencePath = "./data/populations"

	// LogDir and LogFileName locate the debug log
	LogDir      = "logs"
	LogFileName = "simplega.log"

	// LogMaxSizeMB rotates the debug log past this size
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated logs kept
	LogMaxBackups = 3
)
