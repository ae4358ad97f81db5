package dumper

import (
	"io"
	"log"
	"os"
)

// Dumper prints the contents of a fixed, ordered list of files.
type Dumper struct {
	Reader   Reader
	Out      io.Writer
	Recorder Recorder

	paths []string
}

// New returns a Dumper over a private copy of paths. A nil out writes to stdout.
func New(paths []string, out io.Writer) *Dumper {
	if out == nil {
		out = os.Stdout
	}
	return &Dumper{
		Reader:   FileReader{},
		Out:      out,
		Recorder: nopRecorder{},
		paths:    append([]string(nil), paths...),
	}
}

// Paths returns a copy of the configured paths.
func (d *Dumper) Paths() []string {
	return append([]string(nil), d.paths...)
}

// Run reads and renders every path in order and returns one result per path.
// No per-path failure stops the run.
func (d *Dumper) Run() []Result {
	reader := d.Reader
	if reader == nil {
		reader = FileReader{}
	}
	out := d.Out
	if out == nil {
		out = os.Stdout
	}
	rec := d.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	if err := rec.Start(d.Paths()); err != nil {
		log.Printf("[dumper] recorder start failed: %v", err)
	}

	results := make([]Result, 0, len(d.paths))
	for i, p := range d.paths {
		r := reader.Read(p)
		if err := Render(out, r); err != nil {
			log.Printf("[dumper] %v", err)
		}
		if err := rec.Record(i, r); err != nil {
			log.Printf("[dumper] recorder failed for %s: %v", p, err)
		}
		results = append(results, r)
	}

	if err := rec.Finish(results); err != nil {
		log.Printf("[dumper] recorder finish failed: %v", err)
	}
	return results
}
