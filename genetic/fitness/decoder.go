package fitness

import (
	"fmt"
	"math"

	"github.com/lixenwraith/simplega/genetic"
)

// Bounds is the closed real interval a decoded parameter is mapped into
type Bounds struct {
	Min, Max float64
}

// Width returns Max - Min
func (b Bounds) Width() float64 {
	return b.Max - b.Min
}

// MapToDomain maps an unsigned raw integer of bitLength bits linearly onto b:
// raw*width/(2^bitLength-1) - offset, where offset = -b.Min
// Zero maps to b.Min and the all-ones value maps to b.Max
func MapToDomain(raw float64, bitLength int, b Bounds) float64 {
	denominator := math.Exp2(float64(bitLength)) - 1
	offset := -b.Min
	return raw*b.Width()/denominator - offset
}

// ParseRaw interprets a '0'/'1' string as an unsigned binary integer, most significant bit first
// Values wider than 53 bits lose precision beyond float64 resolution
func ParseRaw(bits string) float64 {
	var raw float64
	for i := 0; i < len(bits); i++ {
		raw *= 2
		if bits[i] == '1' {
			raw++
		}
	}
	return raw
}

// BinaryDecoder splits a genotype into Arity equal segments and maps each onto Domain
type BinaryDecoder struct {
	Arity  int
	Domain Bounds
}

// NewBinaryDecoder validates arity and domain
func NewBinaryDecoder(arity int, domain Bounds) (BinaryDecoder, error) {
	if arity < 1 {
		return BinaryDecoder{}, fmt.Errorf("%w: decoder arity must be at least 1, got %d", genetic.ErrInvalidArgument, arity)
	}
	if !(domain.Max > domain.Min) {
		return BinaryDecoder{}, fmt.Errorf("%w: decoder domain [%v, %v] is empty", genetic.ErrInvalidArgument, domain.Min, domain.Max)
	}
	return BinaryDecoder{Arity: arity, Domain: domain}, nil
}

// CheckGeneCount verifies that a genotype of n genes splits into Arity equal segments
func (d BinaryDecoder) CheckGeneCount(n int) error {
	if err := genetic.ValidateGeneCount(n); err != nil {
		return err
	}
	if n%d.Arity != 0 {
		return fmt.Errorf("%w: gene count %d does not split into %d equal segments", genetic.ErrInvalidArgument, n, d.Arity)
	}
	return nil
}

// DecodeBits maps a bit string onto Arity real values
// Trailing bits that do not fill a whole segment are ignored
func (d BinaryDecoder) DecodeBits(bits string) []float64 {
	segment := len(bits) / d.Arity
	out := make([]float64, d.Arity)
	if segment == 0 {
		for i := range out {
			out[i] = d.Domain.Min
		}
		return out
	}

	for i := range out {
		raw := ParseRaw(bits[i*segment : (i+1)*segment])
		out[i] = MapToDomain(raw, segment, d.Domain)
	}
	return out
}

// Decode maps the individual's genotype onto Arity real values
func (d BinaryDecoder) Decode(ind *genetic.Individual) []float64 {
	return d.DecodeBits(ind.BitString())
}
