// Package history records per-generation statistics of solver runs in SQLite
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/simplega/genetic"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	landscape   TEXT NOT NULL,
	gene_count  INTEGER NOT NULL,
	population  INTEGER NOT NULL,
	generations INTEGER NOT NULL,
	mutation    REAL NOT NULL,
	elitism     REAL NOT NULL,
	seed        INTEGER NOT NULL,
	started_at  TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS generations (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	generation INTEGER NOT NULL,
	total      REAL NOT NULL,
	mean       REAL NOT NULL,
	min        REAL NOT NULL,
	max        REAL NOT NULL,
	stddev     REAL NOT NULL,
	diversity  REAL NOT NULL,
	best       TEXT NOT NULL,
	PRIMARY KEY (run_id, generation)
);`

// Store persists run metadata and generation statistics
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	// Serialize writers; SQLite allows one at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Run describes a stored run
type Run struct {
	ID          string
	Landscape   string
	GeneCount   int
	Population  int
	Generations int
	Mutation    float64
	Elitism     float64
	Seed        uint64
	StartedAt   time.Time
}

// Generation is one stored generation row
type Generation struct {
	genetic.Stats
	Best string
}

// BeginRun registers a run and returns a recorder observing its generations
func (s *Store) BeginRun(ctx context.Context, landscape string, cfg genetic.Config) (*Recorder, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, landscape, gene_count, population, generations, mutation, elitism, seed, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, landscape, cfg.GeneCount, cfg.PopulationSize, cfg.Generations,
		cfg.MutationProbability, cfg.ElitismPercentage, int64(cfg.Seed), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("history: insert run: %w", err)
	}
	return &Recorder{store: s, ctx: ctx, runID: id}, nil
}

// Runs lists stored runs, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, landscape, gene_count, population, generations, mutation, elitism, seed, started_at
		 FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("history: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var seed int64
		if err := rows.Scan(&r.ID, &r.Landscape, &r.GeneCount, &r.Population, &r.Generations,
			&r.Mutation, &r.Elitism, &seed, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.Seed = uint64(seed)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Generations returns the stored generations of a run in order
func (s *Store) Generations(ctx context.Context, runID string) ([]Generation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT generation, total, mean, min, max, stddev, diversity, best
		 FROM generations WHERE run_id = ? ORDER BY generation`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: query generations: %w", err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		var g Generation
		if err := rows.Scan(&g.Generation, &g.Total, &g.Mean, &g.Min, &g.Max,
			&g.StdDev, &g.Diversity, &g.Best); err != nil {
			return nil, fmt.Errorf("history: scan generation: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
