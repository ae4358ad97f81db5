package dumper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"unicode/utf8"

	"github.com/bitfield/script"
)

// ErrNotText is returned when a file's bytes are not valid UTF-8 text.
var ErrNotText = errors.New("not a valid UTF-8 text file")

// Reader produces the read result for a single path.
type Reader interface {
	Read(path string) Result
}

// FileReader reads whole files from the local filesystem.
type FileReader struct{}

// Read opens path and reads it whole. A directory counts as an open
// failure, so its block carries no header.
func (FileReader) Read(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Failed(path, false, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Failed(path, true, err)
	}
	if info.IsDir() {
		return Failed(path, false, &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR})
	}

	content, err := script.NewPipe().WithReader(f).String()
	if err != nil {
		return Failed(path, true, err)
	}
	if !utf8.ValidString(content) {
		return Failed(path, true, fmt.Errorf("decode %s: %w", path, ErrNotText))
	}
	return Succeeded(path, content)
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(path string) Result

func (fn ReaderFunc) Read(path string) Result { return fn(path) }
