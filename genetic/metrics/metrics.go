// Package metrics exports solver progress as Prometheus metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/simplega/genetic"
)

const namespace = "simplega"

// Exporter is an Observer that mirrors generation statistics into gauges
type Exporter struct {
	generation  prometheus.Gauge
	fitness     *prometheus.GaugeVec
	diversity   prometheus.Gauge
	evaluations prometheus.Counter
}

var _ genetic.Observer = (*Exporter)(nil)

// NewExporter creates the collectors and registers them with reg
func NewExporter(reg prometheus.Registerer) (*Exporter, error) {
	e := &Exporter{
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation",
			Help:      "Index of the most recently evaluated generation.",
		}),
		fitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fitness",
			Help:      "Fitness statistics of the most recently evaluated generation.",
		}, []string{"stat"}),
		diversity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "diversity",
			Help:      "Mean normalized pairwise Hamming distance of the population.",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Fitness evaluations performed.",
		}),
	}

	for _, c := range []prometheus.Collector{e.generation, e.fitness, e.diversity, e.evaluations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Exporter) ObserveGeneration(generation int, pop *genetic.Population) {
	s := pop.Stats()

	e.generation.Set(float64(generation))
	e.fitness.WithLabelValues("max").Set(s.Max)
	e.fitness.WithLabelValues("min").Set(s.Min)
	e.fitness.WithLabelValues("mean").Set(s.Mean)
	e.fitness.WithLabelValues("total").Set(s.Total)
	e.diversity.Set(s.Diversity)
	e.evaluations.Add(float64(s.Size))
}
