package db

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/atlasgrowth/plumbing/internal/dumper"
)

// RunRecorder persists one dump run as an event subtree:
//
//	dump.started
//	├── path.read / path.failed   (one per configured path)
//	└── dump.completed
//
// Each Start begins a new run; a recorder reused across runs gets a fresh
// RunID for every run after the first.
type RunRecorder struct {
	DB    *sql.DB
	RunID string

	rootID int64
}

// NewRunRecorder returns a recorder writing to database with a new run id.
func NewRunRecorder(database *sql.DB) *RunRecorder {
	return &RunRecorder{DB: database, RunID: uuid.NewString()}
}

// RootID returns the dump.started event id, or 0 before Start succeeds.
func (r *RunRecorder) RootID() int64 { return r.rootID }

// Start logs the dump.started root for a new run.
func (r *RunRecorder) Start(paths []string) error {
	if r.RunID == "" || r.rootID != 0 {
		r.RunID = uuid.NewString()
	}
	r.rootID = 0
	id, err := LogEvent(r.DB, nil, EventDumpStarted, map[string]any{
		"run_id":     r.RunID,
		"pid":        os.Getpid(),
		"path_count": len(paths),
	})
	if err != nil {
		return err
	}
	r.rootID = id
	return nil
}

// Record logs a path.read or path.failed event under the run root.
func (r *RunRecorder) Record(index int, res dumper.Result) error {
	if r.rootID == 0 {
		return fmt.Errorf("run %s not started", r.RunID)
	}
	if res.OK() {
		_, err := LogEvent(r.DB, &r.rootID, EventPathRead, map[string]any{
			"path":  res.Path,
			"index": index,
			"bytes": len(res.Content),
		})
		return err
	}
	_, err := LogEvent(r.DB, &r.rootID, EventPathFailed, map[string]any{
		"path":   res.Path,
		"index":  index,
		"opened": res.Opened,
		"error":  res.Message(),
	})
	return err
}

// Finish logs dump.completed with the read and failed counts.
func (r *RunRecorder) Finish(results []dumper.Result) error {
	if r.rootID == 0 {
		return fmt.Errorf("run %s not started", r.RunID)
	}
	read := 0
	for _, res := range results {
		if res.OK() {
			read++
		}
	}
	_, err := LogEvent(r.DB, &r.rootID, EventDumpCompleted, map[string]any{
		"read":   read,
		"failed": len(results) - read,
	})
	return err
}
