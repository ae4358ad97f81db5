// Package dumper prints the contents of a list of files as delimited blocks.
//
// Reading and rendering are separate steps. A Reader turns each path into a
// Result (contents, or the error that prevented reading them), and Render
// formats a Result onto any io.Writer. Dumper ties the two together over an
// ordered path list and never aborts on a per-path failure.
package dumper
