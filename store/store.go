// Package store caches detector labelings in a sqlite database keyed by
// trial and detector.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"github.com/gazelab/gazeline/gaze"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"os"
	"path/filepath"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id        TEXT PRIMARY KEY,
    trial     TEXT NOT NULL,
    detector  TEXT NOT NULL,
    created   INTEGER NOT NULL,
    samples   INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_runs_trial_detector ON runs(trial, detector);

CREATE TABLE IF NOT EXISTS labels (
    run_id  TEXT NOT NULL REFERENCES runs(id),
    idx     INTEGER NOT NULL,
    label   TEXT NOT NULL,
    PRIMARY KEY (run_id, idx)
);
`

type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path, creating
// parent directories and applying the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutRun stores one labeling, replacing any previous run for the same
// trial and detector, and returns the new run ID.
func (s *Store) PutRun(trial, detector string, labels []gaze.EventLabel) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM labels WHERE run_id IN (SELECT id FROM runs WHERE trial = ? AND detector = ?)`,
		trial, detector); err != nil {
		return "", fmt.Errorf("clear old labels: %w", err)
	}
	if _, err := tx.Exec(
		`DELETE FROM runs WHERE trial = ? AND detector = ?`, trial, detector); err != nil {
		return "", fmt.Errorf("clear old run: %w", err)
	}

	id := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO runs (id, trial, detector, created, samples) VALUES (?, ?, ?, ?, ?)`,
		id, trial, detector, time.Now().Unix(), len(labels)); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO labels (run_id, idx, label) VALUES (?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()
	for i, label := range labels {
		if _, err := stmt.Exec(id, i, label.String()); err != nil {
			return "", fmt.Errorf("insert label %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// GetRun loads the cached labeling for a trial and detector. The second
// return is false when nothing is cached for the pair.
func (s *Store) GetRun(trial, detector string) ([]gaze.EventLabel, bool, error) {
	var id string
	var samples int
	err := s.db.QueryRow(
		`SELECT id, samples FROM runs WHERE trial = ? AND detector = ?`,
		trial, detector).Scan(&id, &samples)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("look up run: %w", err)
	}

	rows, err := s.db.Query(`SELECT idx, label FROM labels WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, false, fmt.Errorf("load labels: %w", err)
	}
	defer rows.Close()

	labels := make([]gaze.EventLabel, samples)
	count := 0
	for rows.Next() {
		var idx int
		var raw string
		if err := rows.Scan(&idx, &raw); err != nil {
			return nil, false, fmt.Errorf("scan label: %w", err)
		}
		label, err := gaze.ParseEventLabel(raw)
		if err != nil {
			return nil, false, fmt.Errorf("run %s: %v", id, err)
		}
		if idx < 0 || idx >= samples {
			return nil, false, fmt.Errorf("run %s: label index %d out of range", id, idx)
		}
		labels[idx] = label
		count += 1
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("load labels: %w", err)
	}
	if count != samples {
		return nil, false, fmt.Errorf("run %s: %d labels for %d samples", id, count, samples)
	}
	return labels, true, nil
}

// RunInfo describes one cached run.
type RunInfo struct {
	ID       string
	Trial    string
	Detector string
	Created  time.Time
	Samples  int
}

// Runs lists every cached run, ordered by trial then detector.
func (s *Store) Runs() ([]RunInfo, error) {
	rows, err := s.db.Query(`SELECT id, trial, detector, created, samples FROM runs ORDER BY trial, detector`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Trial, &info.Detector, &created, &info.Samples); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		info.Created = time.Unix(created, 0)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return out, nil
}
