package dumper

import (
	"fmt"
	"io"
	"strings"
)

const separatorWidth = 50

var separator = strings.Repeat("=", separatorWidth)

// Render writes the block for one result to w.
//
// Layout for a file that was opened:
//
//	<blank line>
//	==================================================
//	Contents of <path>:
//	==================================================
//	<contents verbatim>
//
// followed by a newline. If reading or decoding failed after the open, the
// contents are replaced by the error line. If the open itself failed, the
// error line is the whole block.
func Render(w io.Writer, r Result) error {
	var b strings.Builder
	if r.Opened {
		b.WriteString("\n")
		b.WriteString(separator + "\n")
		b.WriteString("Contents of " + r.Path + ":\n")
		b.WriteString(separator + "\n")
	}
	if r.OK() {
		b.WriteString(r.Content)
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Error reading %s: %s\n", r.Path, r.Message())
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write block for %s: %w", r.Path, err)
	}
	return nil
}
