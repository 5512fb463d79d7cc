// Package runner drives round-trip verification over many files: it
// discovers sources, checks every file or Markdown snippet on a worker
// pool, and gates the run on the share of sources that failed to parse.
package runner

import (
	"github.com/yaklabco/tsreprint/pkg/verify"
)

// DefaultMaxParseFailureRatio is the share of cases allowed to fail parsing
// before the run as a whole fails.
const DefaultMaxParseFailureRatio = 0.2

// SidecarName is the file next to a fixture that declares an expected
// parse failure as {"throws": "<message>"}.
const SidecarName = "options.json"

// Options controls a verification run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions lists the file extensions (lowercase, with leading dot) to
	// pick up from directories. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths, relative to
	// WorkingDir.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. 0 or negative means
	// runtime.NumCPU().
	Jobs int

	// Verify configures the per-case checks. The parser is replaced by the
	// flavor detected for each file when it names a built-in parser.
	Verify verify.Options

	// MaxParseFailureRatio is the tolerated share of cases whose source does
	// not parse. Negative means DefaultMaxParseFailureRatio.
	MaxParseFailureRatio float64
}

// DefaultExtensions returns the extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs", ".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveRatio() float64 {
	if o.MaxParseFailureRatio < 0 {
		return DefaultMaxParseFailureRatio
	}
	return o.MaxParseFailureRatio
}
