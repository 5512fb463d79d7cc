package analysis

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by failure count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeCases includes the flat list of cases.
	IncludeCases bool

	// IncludePassed keeps passed cases in the flat list.
	IncludePassed bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeByStage includes the per-stage analysis.
	IncludeByStage bool

	// SortBy specifies how to sort ByFile and ByStage.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeCases:   true,
		IncludeByFile:  true,
		IncludeByStage: true,
		SortBy:         SortByCount,
		SortDesc:       true,
	}
}
