package dumper

// Result is the outcome of reading one configured path.
// Exactly one of Content or Err is meaningful: Err == nil means success.
type Result struct {
	Path    string
	Content string
	Err     error
	// Opened reports whether a file handle was obtained before the failure.
	// A file that opens but cannot be read or decoded still gets its header.
	Opened bool
}

// Succeeded is the result of a file that was opened and read whole.
func Succeeded(path, content string) Result {
	return Result{Path: path, Content: content, Opened: true}
}

// Failed records err for path. opened is false when no handle was obtained.
func Failed(path string, opened bool, err error) Result {
	return Result{Path: path, Err: err, Opened: opened}
}

// OK reports whether the full contents were read.
func (r Result) OK() bool { return r.Err == nil }

// Message returns the failure description, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
