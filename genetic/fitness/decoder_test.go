package fitness

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simplega/genetic"
)

var f6Domain = Bounds{Min: -100, Max: 100}

func mustIndividual(t *testing.T, bits string) *genetic.Individual {
	t.Helper()
	ind, err := genetic.IndividualFromBits(bits)
	require.NoError(t, err)
	return ind
}

func TestMapToDomain_Endpoints(t *testing.T) {
	for _, bits := range []int{1, 3, 8, 16, 31} {
		maxRaw := math.Exp2(float64(bits)) - 1
		assert.Equal(t, -100.0, MapToDomain(0, bits, f6Domain), "bits=%d", bits)
		assert.Equal(t, 100.0, MapToDomain(maxRaw, bits, f6Domain), "bits=%d", bits)
	}
}

func TestMapToDomain_Monotonic(t *testing.T) {
	prev := math.Inf(-1)
	for raw := 0; raw < 1<<10; raw++ {
		v := MapToDomain(float64(raw), 10, f6Domain)
		assert.GreaterOrEqual(t, v, prev, "raw=%d", raw)
		prev = v
	}
}

func TestMapToDomain_Formula(t *testing.T) {
	// raw*width/(2^h-1) - offset, evaluated left to right
	for raw := 0; raw < 8; raw++ {
		want := float64(raw)*200/7 - 100
		assert.Equal(t, want, MapToDomain(float64(raw), 3, f6Domain), "raw=%d", raw)
	}
}

func TestParseRaw(t *testing.T) {
	assert.Equal(t, 0.0, ParseRaw("000"))
	assert.Equal(t, 5.0, ParseRaw("101"))
	assert.Equal(t, 255.0, ParseRaw("11111111"))
	assert.Equal(t, 0.0, ParseRaw(""))
}

func TestBinaryDecoder_Halves(t *testing.T) {
	d := BinaryDecoder{Arity: 2, Domain: f6Domain}

	assert.Equal(t, []float64{-100, -100}, d.Decode(mustIndividual(t, "000000")))
	assert.Equal(t, []float64{100, 100}, d.Decode(mustIndividual(t, "111111")))
	assert.Equal(t, []float64{-100, 100}, d.Decode(mustIndividual(t, "000111")))

	// "101" = 5, "010" = 2 on a 3-bit segment
	// Expectations use runtime float64 arithmetic, not exact constant folding
	got := d.Decode(mustIndividual(t, "101010"))
	high, low := 5.0, 2.0
	assert.Equal(t, high*200/7-100, got[0])
	assert.Equal(t, low*200/7-100, got[1])
}

func TestBinaryDecoder_Arity(t *testing.T) {
	d, err := NewBinaryDecoder(3, Bounds{Min: 0, Max: 3})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 1, 3}, d.DecodeBits("000111"))
	assert.Equal(t, []float64{0, 1, 3}, d.DecodeBits("0001110"), "trailing bit ignored")

	assert.NoError(t, d.CheckGeneCount(12))
	assert.ErrorIs(t, d.CheckGeneCount(8), genetic.ErrInvalidArgument)
	assert.ErrorIs(t, d.CheckGeneCount(3), genetic.ErrInvalidArgument)
}

func TestNewBinaryDecoder_Invalid(t *testing.T) {
	_, err := NewBinaryDecoder(0, f6Domain)
	assert.ErrorIs(t, err, genetic.ErrInvalidArgument)

	_, err = NewBinaryDecoder(2, Bounds{Min: 1, Max: 1})
	assert.ErrorIs(t, err, genetic.ErrInvalidArgument)
}

func ExampleBinaryDecoder_DecodeBits() {
	d := BinaryDecoder{Arity: 2, Domain: Bounds{Min: -100, Max: 100}}
	fmt.Println(d.DecodeBits("00001111"))
	// Output: [-100 100]
}
