package fitness

import (
	"math"

	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/parameter"
)

// SchafferF6 is the inverted Schaffer F6 landscape over two coordinates
// Its single global peak of 1 sits at the origin, ringed by many local optima
type SchafferF6 struct {
	decoder BinaryDecoder
}

var _ genetic.FitnessFunction = (*SchafferF6)(nil)

// NewSchafferF6 decodes each genotype half onto [-100, 100]
func NewSchafferF6() *SchafferF6 {
	return &SchafferF6{
		decoder: BinaryDecoder{
			Arity:  parameter.GAF6Arity,
			Domain: Bounds{Min: parameter.GAF6DomainMin, Max: parameter.GAF6DomainMax},
		},
	}
}

// SchafferF6Value evaluates 1 - (0.5 + (sin²(√(x²+y²)) - 0.5) / (1 + 0.001(x²+y²))²)
func SchafferF6Value(x, y float64) float64 {
	r2 := x*x + y*y
	s := math.Sin(math.Sqrt(r2))
	d := 1 + 0.001*r2
	return 1 - (0.5 + (s*s-0.5)/(d*d))
}

// Decoder exposes the genotype decoder
func (f *SchafferF6) Decoder() BinaryDecoder {
	return f.decoder
}

func (f *SchafferF6) Decode(ind *genetic.Individual) []float64 {
	return f.decoder.Decode(ind)
}

func (f *SchafferF6) Evaluate(ind *genetic.Individual) float64 {
	p := f.decoder.Decode(ind)
	return SchafferF6Value(p[0], p[1])
}
