// Package sqlite provides a SQLite-backed trajectory store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aretw0/germwalk/pkg/domain"
)

// Store implements ports.TrajectoryStore on a SQLite database.
// Safe for concurrent use.
type Store struct {
	conn *sqlx.DB
}

type runRow struct {
	ID        string `db:"id"`
	Graph     string `db:"graph"`
	Seed      int64  `db:"seed"`
	Steps     int    `db:"steps"`
	Agents    int    `db:"agents"`
	CreatedAt int64  `db:"created_at"`
}

type observationRow struct {
	Tick        int     `db:"tick"`
	AgentID     int     `db:"agent_id"`
	Node        string  `db:"node"`
	X           float64 `db:"x"`
	Y           float64 `db:"y"`
	HasPosition bool    `db:"has_position"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	conn.SetMaxOpenConns(1)

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		graph TEXT NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS observations (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		tick INTEGER NOT NULL,
		agent_id INTEGER NOT NULL,
		node TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		has_position INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick, agent_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveRun inserts or updates run metadata.
func (s *Store) SaveRun(ctx context.Context, info domain.RunInfo) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO runs (id, graph, seed, steps, agents, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			graph = excluded.graph,
			seed = excluded.seed,
			steps = excluded.steps,
			agents = excluded.agents,
			created_at = excluded.created_at`,
		info.ID, info.Graph, info.Seed, info.Steps, info.Agents, info.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", info.ID, err)
	}
	return nil
}

// AppendTick writes one tick of observations in a single transaction,
// replacing any observations already stored for that tick.
func (s *Store) AppendTick(ctx context.Context, runID string, tick int, obs []domain.Observation) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.GetContext(ctx, &exists, "SELECT COUNT(*) FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("check run: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("append tick %d: %w", tick, domain.ErrRunNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM observations WHERE run_id = ? AND tick = ?", runID, tick); err != nil {
		return fmt.Errorf("clear tick %d: %w", tick, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT OR REPLACE INTO observations
		(run_id, tick, agent_id, node, x, y, has_position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, runID, o.Tick, o.AgentID, string(o.Node), o.Position.X, o.Position.Y, o.HasPosition); err != nil {
			return fmt.Errorf("insert observation (tick %d, agent %d): %w", o.Tick, o.AgentID, err)
		}
	}
	return tx.Commit()
}

// LoadRun retrieves run metadata.
func (s *Store) LoadRun(ctx context.Context, runID string) (domain.RunInfo, error) {
	var row runRow
	err := s.conn.GetContext(ctx, &row, "SELECT * FROM runs WHERE id = ?", runID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunInfo{}, domain.ErrRunNotFound
	}
	if err != nil {
		return domain.RunInfo{}, fmt.Errorf("load run %s: %w", runID, err)
	}
	return row.info(), nil
}

// LoadObservations returns the run's observations ordered by tick, then agent.
func (s *Store) LoadObservations(ctx context.Context, runID string) ([]domain.Observation, error) {
	if _, err := s.LoadRun(ctx, runID); err != nil {
		return nil, err
	}

	var rows []observationRow
	err := s.conn.SelectContext(ctx, &rows, `
		SELECT tick, agent_id, node, x, y, has_position
		FROM observations
		WHERE run_id = ?
		ORDER BY tick, agent_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("load observations %s: %w", runID, err)
	}

	out := make([]domain.Observation, len(rows))
	for i, r := range rows {
		out[i] = domain.Observation{
			Tick:        r.Tick,
			AgentID:     r.AgentID,
			Node:        domain.NodeID(r.Node),
			Position:    domain.Position{X: r.X, Y: r.Y},
			HasPosition: r.HasPosition,
		}
	}
	return out, nil
}

// ListRuns returns every run, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.RunInfo, error) {
	var rows []runRow
	if err := s.conn.SelectContext(ctx, &rows, "SELECT * FROM runs ORDER BY created_at, id"); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	runs := make([]domain.RunInfo, len(rows))
	for i, r := range rows {
		runs[i] = r.info()
	}
	return runs, nil
}

// DeleteRun removes a run and its observations.
func (s *Store) DeleteRun(ctx context.Context, runID string) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM observations WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("delete observations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return tx.Commit()
}

func (r runRow) info() domain.RunInfo {
	return domain.RunInfo{
		ID:        r.ID,
		Graph:     r.Graph,
		Seed:      r.Seed,
		Steps:     r.Steps,
		Agents:    r.Agents,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}
}
