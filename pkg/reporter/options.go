package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/tsreprint/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowDiff prints the diff of a failed identity or idempotence check
	// under the case in text output.
	ShowDiff bool

	// ShowPassed lists passed cases too.
	ShowPassed bool

	// Verbose replaces the one-line summary with a summary block.
	Verbose bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
		ShowDiff:    true,
		SortBy:      analysis.SortByCount,
	}
}
