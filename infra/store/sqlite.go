package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aquatherm/poolsim/core/model"
)

// RunStore persists completed simulation runs to a SQLite database. Writes
// happen after a run finishes, never inside the hourly loop.
type RunStore struct {
	db *sql.DB
}

// NewRunStore opens or creates the database at path and ensures the schema.
func NewRunStore(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        start_ts INTEGER,
        end_ts INTEGER,
        created_ts INTEGER,
        meta TEXT,
        summary TEXT
    );
    CREATE TABLE IF NOT EXISTS run_days (
        run_id TEXT,
        day_ts INTEGER,
        record TEXT,
        PRIMARY KEY (run_id, day_ts)
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &RunStore{db: db}, nil
}

// SaveRun writes the run meta, summary and daily aggregates in one
// transaction. Hourly records stay with the caller; they are export data,
// not query data.
func (s *RunStore) SaveRun(ctx context.Context, res *model.RunResult) error {
	meta, err := json.Marshal(res.Meta)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(res.Summary)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, start_ts, end_ts, created_ts, meta, summary) VALUES (?, ?, ?, ?, ?, ?)`,
		res.Meta.RunID, res.Meta.Start.Unix(), res.Meta.End.Unix(),
		res.Meta.GeneratedAt.Unix(), string(meta), string(summary)); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, d := range res.Daily {
		rec, err := json.Marshal(d)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_days (run_id, day_ts, record) VALUES (?, ?, ?)`,
			res.Meta.RunID, d.Date.Unix(), string(rec)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// StoredRun pairs a run's meta with its summary.
type StoredRun struct {
	Meta    model.RunMeta `json:"meta"`
	Summary model.Summary `json:"summary"`
}

// ListRuns returns stored runs newest first.
func (s *RunStore) ListRuns(ctx context.Context) ([]StoredRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT meta, summary FROM runs ORDER BY created_ts DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []StoredRun
	for rows.Next() {
		var meta, summary string
		if err := rows.Scan(&meta, &summary); err != nil {
			return nil, err
		}
		var sr StoredRun
		if err := json.Unmarshal([]byte(meta), &sr.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal meta: %w", err)
		}
		if err := json.Unmarshal([]byte(summary), &sr.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// LoadDaily returns the daily aggregates of a run ordered by date.
func (s *RunStore) LoadDaily(ctx context.Context, runID string) ([]model.DailyRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM run_days WHERE run_id = ? ORDER BY day_ts`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.DailyRecord
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var d model.DailyRecord
		if err := json.Unmarshal([]byte(rec), &d); err != nil {
			return nil, fmt.Errorf("unmarshal daily record: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PruneBefore removes runs created before the cutoff.
func (s *RunStore) PruneBefore(ctx context.Context, cutoff time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM run_days WHERE run_id IN (SELECT id FROM runs WHERE created_ts < ?)`,
		cutoff.Unix()); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_ts < ?`, cutoff.Unix())
	return err
}

// Close closes the database.
func (s *RunStore) Close() error { return s.db.Close() }
