package main

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/atlasgrowth/plumbing/internal/config"
	"github.com/atlasgrowth/plumbing/internal/db"
	"github.com/atlasgrowth/plumbing/internal/dumper"
)

// filesToRead is dumped in this order, relative to the working directory.
var filesToRead = []string{
	"client/src/App.tsx",
	"client/src/components/Header.tsx",
	"client/src/main.tsx",
	"client/src/pages/Home.tsx",
	"client/src/pages/Residential.tsx",
	"client/src/pages/Commercial.tsx",
}

func main() {
	cfg, err := config.LoadDumperConfig()
	if err != nil {
		log.Printf("[dumpfiles] %v; continuing without it", err)
	}

	d, cleanup := newDumper(cfg, filesToRead, os.Stdout)
	defer cleanup()
	d.Run()
}

// newDumper builds the dumper and, when configured, attaches the run event
// log. An event log that cannot be opened is reported and skipped.
func newDumper(cfg config.DumperConfig, paths []string, out io.Writer) (*dumper.Dumper, func()) {
	d := dumper.New(paths, out)
	if !cfg.EventLogEnabled() {
		return d, func() {}
	}

	database, err := openEventLog(cfg.DBPath)
	if err != nil {
		log.Printf("[dumpfiles] event log disabled: %v", err)
		return d, func() {}
	}
	rec := db.NewRunRecorder(database)
	d.Recorder = rec
	log.Printf("[dumpfiles] recording run %s to %s", rec.RunID, cfg.DBPath)
	return d, func() { database.Close() }
}

func openEventLog(path string) (*sql.DB, error) {
	database, err := db.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return database, nil
}
