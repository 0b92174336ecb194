package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/lixenwraith/simplega/genetic"
)

// Recorder writes one row per observed generation for a single run
// Observer callbacks cannot return errors, so the first failure is kept and
// further writes are skipped
type Recorder struct {
	store *Store
	ctx   context.Context
	runID string

	mu  sync.Mutex
	err error
}

var _ genetic.Observer = (*Recorder)(nil)

// RunID returns the identifier of the recorded run
func (r *Recorder) RunID() string {
	return r.runID
}

// Err returns the first write failure, if any
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) ObserveGeneration(generation int, pop *genetic.Population) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}

	s := pop.Stats()
	_, err := r.store.db.ExecContext(r.ctx,
		`INSERT INTO generations (run_id, generation, total, mean, min, max, stddev, diversity, best)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.runID, generation, s.Total, s.Mean, s.Min, s.Max, s.StdDev, s.Diversity, pop.Best().BitString(),
	)
	if err != nil {
		r.err = fmt.Errorf("history: insert generation %d: %w", generation, err)
	}
}
