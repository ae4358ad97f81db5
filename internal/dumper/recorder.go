package dumper

// Recorder observes a run. Errors from a recorder are logged by the Dumper
// and never change what is written to the output.
type Recorder interface {
	Start(paths []string) error
	Record(index int, r Result) error
	Finish(results []Result) error
}

type nopRecorder struct{}

func (nopRecorder) Start([]string) error     { return nil }
func (nopRecorder) Record(int, Result) error { return nil }
func (nopRecorder) Finish([]Result) error    { return nil }
