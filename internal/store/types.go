// Package store provides SQLite access for the gcca-parser run history.
package store

import "time"

// Run status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one recorded index build.
type Run struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	DurationMS  int64     `json:"duration_ms"`
	ArchiveRoot string    `json:"archive_root"`
	Output      string    `json:"output"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	Rounds      int       `json:"rounds"`
	Problems    int       `json:"problems"`
	Faults      int       `json:"faults"`
	Error       string    `json:"error,omitempty"`
}

// FamilyCount is the number of rounds and problems one family had in one
// year during a run.
type FamilyCount struct {
	RunID    string `json:"run_id"`
	Family   string `json:"family"`
	Year     int    `json:"year"`
	Rounds   int    `json:"rounds"`
	Problems int    `json:"problems"`
}
