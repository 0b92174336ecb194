package tracking

import (
	"fmt"
	"io"

	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/parameter"
)

// Reporter prints the top-ranked phenotypes and fitness statistics every Interval generations
type Reporter struct {
	out      io.Writer
	fitness  genetic.FitnessFunction
	interval int
	top      int
}

var _ genetic.Observer = (*Reporter)(nil)

// NewReporter writes to out, decoding phenotypes with fn; interval <= 0 uses the default
func NewReporter(out io.Writer, fn genetic.FitnessFunction, interval int) *Reporter {
	if interval <= 0 {
		interval = parameter.GAReportInterval
	}
	return &Reporter{
		out:      out,
		fitness:  fn,
		interval: interval,
		top:      parameter.GAReportTopCount,
	}
}

func (r *Reporter) ObserveGeneration(generation int, pop *genetic.Population) {
	if generation%r.interval != 0 {
		return
	}

	fmt.Fprintf(r.out, "/////////// Generation %d Top %d ///////////\n", generation, r.top)
	for _, ind := range pop.TopN(r.top) {
		fmt.Fprintf(r.out, "%s %v %.6f\n", ind.BitString(), r.fitness.Decode(ind), ind.Fitness())
	}
	fmt.Fprintf(r.out, "Min Fitness: %.6f\n", pop.Min())
	fmt.Fprintf(r.out, "Max Fitness: %.6f\n", pop.Max())
	fmt.Fprintf(r.out, "Average Fitness: %.6f\n", pop.Mean())
	fmt.Fprintf(r.out, "Total Fitness: %.6f\n", pop.Total())
	fmt.Fprintln(r.out, "//////////////////////////////////////")
}
