package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simplega/genetic"
	"github.com/lixenwraith/simplega/genetic/fitness"
)

func TestExporter_MirrorsStats(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, err := NewExporter(reg)
	require.NoError(t, err)

	cfg := genetic.Config{
		GeneCount:           6,
		PopulationSize:      8,
		Generations:         3,
		MutationProbability: 0.02,
		ElitismPercentage:   0.25,
		Seed:                7,
		Fitness:             fitness.OneMax{},
	}
	solver, err := genetic.NewSolver(cfg, genetic.WithObserver(e))
	require.NoError(t, err)
	final, err := solver.Run(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(e.generation))
	assert.Equal(t, 32.0, testutil.ToFloat64(e.evaluations), "four generations of eight")
	assert.Equal(t, final.Max(), testutil.ToFloat64(e.fitness.WithLabelValues("max")))
	assert.Equal(t, final.Min(), testutil.ToFloat64(e.fitness.WithLabelValues("min")))
	assert.Equal(t, final.Diversity(), testutil.ToFloat64(e.diversity))

	count, err := testutil.GatherAndCount(reg, "simplega_fitness")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNewExporter_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewExporter(reg)
	require.NoError(t, err)

	_, err = NewExporter(reg)
	assert.Error(t, err)
}
