package store

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout has fixed-width fractions so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun inserts a run and its per-family counts in one transaction.
func (db *DB) RecordRun(run *Run, counts []FamilyCount) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO runs
		(id, started_at, duration_ms, archive_root, output, version, status, rounds, problems, faults, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeLayout), run.DurationMS, run.ArchiveRoot,
		run.Output, run.Version, run.Status, run.Rounds, run.Problems, run.Faults, nullString(run.Error),
	); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, c := range counts {
		if _, err := tx.Exec(
			"INSERT INTO family_counts (run_id, family, year, rounds, problems) VALUES (?, ?, ?, ?, ?)",
			run.ID, c.Family, c.Year, c.Rounds, c.Problems,
		); err != nil {
			return fmt.Errorf("inserting family count: %w", err)
		}
	}

	return tx.Commit()
}

// ListRuns returns up to limit runs, most recent first. A limit of zero or
// less returns every run.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, started_at, duration_ms, archive_root, output, version, status, rounds, problems, faults, error
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun returns the run with the given ID, or nil if it does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.conn.QueryRow(
		`SELECT id, started_at, duration_ms, archive_root, output, version, status, rounds, problems, faults, error
		FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return r, err
}

// RunFamilies returns the per-family counts of a run ordered by family and year.
func (db *DB) RunFamilies(runID string) ([]FamilyCount, error) {
	rows, err := db.conn.Query(
		`SELECT run_id, family, year, rounds, problems FROM family_counts
		WHERE run_id = ? ORDER BY family, year`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []FamilyCount
	for rows.Next() {
		var c FamilyCount
		if err := rows.Scan(&c.RunID, &c.Family, &c.Year, &c.Rounds, &c.Problems); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var startedAt string
	var errText sql.NullString
	if err := row.Scan(&r.ID, &startedAt, &r.DurationMS, &r.ArchiveRoot, &r.Output, &r.Version,
		&r.Status, &r.Rounds, &r.Problems, &r.Faults, &errText); err != nil {
		return nil, err
	}
	r.StartedAt, _ = time.Parse(timeLayout, startedAt)
	r.Error = errText.String
	return &r, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
