package genetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentSelect_FirstSeenWinsTies(t *testing.T) {
	pop := withFitness(mustPopulation(t, "00", "01", "10", "11"), 0.5, 0.5, 0.5, 0.5)

	for seed := uint64(1); seed <= 20; seed++ {
		replay := newRand(seed)
		firstDraw := replay.IntN(pop.Size())

		winner, err := TournamentSelect(pop, 3, newRand(seed))
		require.NoError(t, err)
		assert.Same(t, pop.Individual(firstDraw), winner, "seed %d", seed)
	}
}

func TestTournamentSelect_FittestOfDraws(t *testing.T) {
	pop := withFitness(mustPopulation(t, "0000", "0001", "0010", "0011", "0100", "0101"), 0.1, 0.6, 0.3, 0.9, 0.2, 0.4)

	for seed := uint64(1); seed <= 50; seed++ {
		replay := newRand(seed)
		expected := pop.Individual(replay.IntN(pop.Size()))
		if other := pop.Individual(replay.IntN(pop.Size())); other.Fitness() > expected.Fitness() {
			expected = other
		}

		winner, err := TournamentSelect(pop, 2, newRand(seed))
		require.NoError(t, err)
		assert.Same(t, expected, winner, "seed %d", seed)
	}
}

func TestTournamentSelect_InvalidSize(t *testing.T) {
	pop := mustPopulation(t, "00", "11")
	_, err := TournamentSelect(pop, 0, newRand(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBinaryTournamentSelection_MayRepeatParent(t *testing.T) {
	pop := mustPopulation(t, "00", "11")
	rng := newRand(5)

	repeated := false
	for i := 0; i < 200; i++ {
		a, b, err := BinaryTournamentSelection(pop, rng)
		require.NoError(t, err)
		require.NotNil(t, a)
		require.NotNil(t, b)
		if a == b {
			repeated = true
		}
	}
	assert.True(t, repeated, "independent draws should sometimes pick the same parent")
}

func TestCrossoverSinglePoint_Partition(t *testing.T) {
	rng := newRand(11)
	for i := 0; i < 100; i++ {
		parentA, err := NewIndividual(16, rng)
		require.NoError(t, err)
		parentB, err := NewIndividual(16, rng)
		require.NoError(t, err)

		childA, childB, err := CrossoverSinglePoint(parentA, parentB, rng)
		require.NoError(t, err)
		require.Equal(t, parentA.GeneCount(), childA.GeneCount())
		require.Equal(t, parentA.GeneCount(), childB.GeneCount())

		a, b := parentA.BitString(), parentB.BitString()
		ca, cb := childA.BitString(), childB.BitString()
		for pos := range a {
			switch {
			case ca[pos] == a[pos] && cb[pos] == b[pos]:
			case ca[pos] == b[pos] && cb[pos] == a[pos]:
			default:
				t.Fatalf("position %d: children %c/%c are not a split of parents %c/%c", pos, ca[pos], cb[pos], a[pos], b[pos])
			}
		}
	}
}

func TestCrossoverSinglePoint_HeadFromOtherParent(t *testing.T) {
	zeros := mustIndividual(t, "00000000")
	ones := mustIndividual(t, "11111111")

	for seed := uint64(1); seed <= 30; seed++ {
		k := newRand(seed).IntN(8)

		childA, childB, err := CrossoverSinglePoint(zeros, ones, newRand(seed))
		require.NoError(t, err)

		head := k + 1
		assert.Equal(t, repeatBit('1', head)+repeatBit('0', 8-head), childA.BitString(), "k=%d", k)
		assert.Equal(t, repeatBit('0', head)+repeatBit('1', 8-head), childB.BitString(), "k=%d", k)
		assert.Zero(t, childA.Fitness())
		assert.False(t, childA.IsElite())
		assert.NotEqual(t, zeros.ID(), childA.ID())
	}
}

func TestCrossoverSinglePoint_ChildrenOwnGenes(t *testing.T) {
	parentA := mustIndividual(t, "0000")
	parentB := mustIndividual(t, "1111")

	childA, childB, err := CrossoverSinglePoint(parentA, parentB, newRand(2))
	require.NoError(t, err)

	before := childB.BitString()
	require.NoError(t, Mutate(childA, 1, newRand(2)))

	assert.Equal(t, "0000", parentA.BitString())
	assert.Equal(t, "1111", parentB.BitString())
	assert.Equal(t, before, childB.BitString())
}

func TestCrossoverSinglePoint_MismatchedParents(t *testing.T) {
	_, _, err := CrossoverSinglePoint(mustIndividual(t, "0000"), mustIndividual(t, "11"), newRand(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = CrossoverSinglePoint(NewEmptyIndividual(), NewEmptyIndividual(), newRand(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMutate_ZeroProbability(t *testing.T) {
	rng := newRand(4)
	ind, err := NewIndividual(64, rng)
	require.NoError(t, err)
	ind.fitness = 0.8
	before := ind.BitString()

	require.NoError(t, Mutate(ind, 0, rng))
	assert.Equal(t, before, ind.BitString())
	assert.Zero(t, ind.Fitness(), "mutation resets fitness of non-elites")
}

func TestMutate_FullProbability(t *testing.T) {
	ind := mustIndividual(t, "01100101")
	ids := ind.Genes()

	require.NoError(t, Mutate(ind, 1, newRand(4)))
	assert.Equal(t, "10011010", ind.BitString())
	for i, g := range ind.Genes() {
		assert.NotEqual(t, ids[i].ID(), g.ID(), "flipped gene %d gets a new identity", i)
	}
}

func TestMutate_ElitesUntouched(t *testing.T) {
	ind := mustIndividual(t, "0110")
	ind.fitness = 0.7
	ind.elite = true

	require.NoError(t, Mutate(ind, 1, newRand(4)))
	assert.Equal(t, "0110", ind.BitString())
	assert.Equal(t, 0.7, ind.Fitness())
}

func TestMutate_InvalidProbability(t *testing.T) {
	ind := mustIndividual(t, "0110")
	for _, p := range []float64{-0.1, 1.01, math.NaN()} {
		assert.ErrorIs(t, Mutate(ind, p, newRand(1)), ErrInvalidArgument, "p=%v", p)
	}

	ind.elite = true
	assert.ErrorIs(t, Mutate(ind, 2, newRand(1)), ErrInvalidArgument, "validation precedes the elite check")
}

func TestMutate_ExpectedFlipRate(t *testing.T) {
	rng := newRand(21)
	ind := mustIndividual(t, repeatBit('0', 10000))

	require.NoError(t, Mutate(ind, 0.1, rng))
	flipped := 0
	for _, g := range ind.Genes() {
		flipped += g.Value()
	}
	assert.InDelta(t, 1000, flipped, 150)
}

func TestEliteCount(t *testing.T) {
	tests := []struct {
		size    int
		percent float64
		want    int
	}{
		{20, 0.1, 2},
		{20, 0.15, 4},
		{10, 0.25, 2},
		{10, 0.35, 4},
		{10, 0.95, 10},
		{20, 0, 0},
		{20, 1, 20},
		{2, 0.1, 0},
		{50, 0.1, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EliteCount(tt.size, tt.percent), "size=%d percent=%v", tt.size, tt.percent)
	}
}

func TestTagElites_TopByFitness(t *testing.T) {
	pop := mustPopulation(t, "0000", "0001", "0010", "0011", "0100", "0101", "0110", "0111", "1000", "1001")
	withFitness(pop, 0.3, 0.9, 0.1, 0.7, 0.5, 0.2, 0.8, 0.4, 0.6, 0.0)

	count, err := TagElites(pop, 0.3)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	var tagged []float64
	for _, ind := range pop.Individuals() {
		if ind.IsElite() {
			tagged = append(tagged, ind.Fitness())
		}
	}
	assert.ElementsMatch(t, []float64{0.9, 0.8, 0.7, 0.6}, tagged)
}

func TestTagElites_InvalidPercent(t *testing.T) {
	pop := mustPopulation(t, "00", "11")
	_, err := TagElites(pop, 1.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = TagElites(pop, -0.5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func repeatBit(b byte, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return string(out)
}
