package analysis

import "time"

// StageParse groups sources that failed to parse in the first place.
const StageParse = "parse"

// Report contains pre-computed views of a verification run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Cases is the flat list for detailed output.
	Cases []CaseEntry `json:"cases,omitempty"`

	// ByFile groups cases by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByStage groups failures by the check that caught them.
	ByStage []StageAnalysis `json:"byStage,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// CaseEntry represents a single verified source in the report.
type CaseEntry struct {
	Name    string `json:"name"`
	Flavor  string `json:"flavor,omitempty"`
	Status  string `json:"status"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Diff    string `json:"diff,omitempty"`

	// Comments counts the comments of a passed source.
	Comments int `json:"comments,omitempty"`

	// PrettySpans counts the places where pretty printed output departs
	// from the source.
	PrettySpans int `json:"prettySpans,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int      `json:"filesChecked"`
	FilesErrored      int      `json:"filesErrored"`
	FilesFailing      int      `json:"filesFailing"`
	Cases             int      `json:"cases"`
	Passed            int      `json:"passed"`
	Failed            int      `json:"failed"`
	ExpectedFailures  int      `json:"expectedFailures"`
	ParseFailures     int      `json:"parseFailures"`
	ParseFailureRatio float64  `json:"parseFailureRatio"`
	RunErrors         []string `json:"runErrors,omitempty"`
}

// HasFailures returns true if the run failed.
func (t Totals) HasFailures() bool {
	return t.Failed > 0 || t.FilesErrored > 0 || len(t.RunErrors) > 0
}

// Problems counts failed and unparsable sources.
func (t Totals) Problems() int {
	return t.Failed + t.ParseFailures
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path             string   `json:"path"`
	Cases            int      `json:"cases"`
	Passed           int      `json:"passed"`
	Failed           int      `json:"failed"`
	ExpectedFailures int      `json:"expectedFailures"`
	ParseFailures    int      `json:"parseFailures"`
	Error            string   `json:"error,omitempty"`
	Stages           []string `json:"stages,omitempty"`
}

// Problems counts failed and unparsable sources of the file.
func (f FileAnalysis) Problems() int {
	return f.Failed + f.ParseFailures
}

// StageAnalysis contains aggregated data for a single check.
type StageAnalysis struct {
	Stage    string   `json:"stage"`
	Failures int      `json:"failures"`
	Files    []string `json:"files,omitempty"`
}
