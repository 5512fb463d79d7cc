package runner

import (
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/verify"
)

// Status is the outcome of one case.
type Status string

// Case statuses.
const (
	// StatusPassed: every check succeeded.
	StatusPassed Status = "passed"
	// StatusFailed: a round-trip check failed.
	StatusFailed Status = "failed"
	// StatusExpectedFailure: the source failed to parse with the message its
	// sidecar declares.
	StatusExpectedFailure Status = "expected-failure"
	// StatusParseFailure: the source failed to parse unexpectedly.
	StatusParseFailure Status = "parse-failure"
)

// CaseOutcome is the result for one source: a whole file, or one code fence
// of a Markdown document.
type CaseOutcome struct {
	// Name is the path, with ":<line>" appended for Markdown snippets.
	Name   string
	Flavor string
	Status Status

	// Error explains a status other than passed.
	Error error

	// Report is set for passed cases.
	Report *verify.Report
}

// FileOutcome groups the cases of one discovered file.
type FileOutcome struct {
	Path  string
	Cases []CaseOutcome

	// Error is set when the file could not be read.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered  int
	FilesErrored     int
	Cases            int
	Passed           int
	Failed           int
	ExpectedFailures int
	ParseFailures    int
}

// ParseFailureRatio is the share of cases whose source did not parse.
func (s Stats) ParseFailureRatio() float64 {
	if s.Cases == 0 {
		return 0
	}
	return float64(s.ParseFailures) / float64(s.Cases)
}

// TooManyParseFailuresError fails a run in which more sources failed to
// parse than tolerated. It wraps the first parse failure.
type TooManyParseFailuresError struct {
	Failures int
	Cases    int
	Ratio    float64
	First    error
}

func (e *TooManyParseFailuresError) Error() string {
	return fmt.Sprintf("%d of %d sources failed to parse (more than %.0f%%): %v",
		e.Failures, e.Cases, e.Ratio*100, e.First)
}

func (e *TooManyParseFailuresError) Unwrap() error {
	return e.First
}

// Result is the outcome of a run.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats

	// Errors holds run-level failures such as the parse failure gate.
	Errors []error
}

// HasFailures reports whether the run should be considered failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.Failed > 0 || r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// Cases returns every case of the run in file order.
func (r *Result) Cases() []CaseOutcome {
	if r == nil {
		return nil
	}

	var out []CaseOutcome
	for _, file := range r.Files {
		out = append(out, file.Cases...)
	}
	return out
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	for _, c := range outcome.Cases {
		r.Stats.Cases++
		switch c.Status {
		case StatusPassed:
			r.Stats.Passed++
		case StatusFailed:
			r.Stats.Failed++
		case StatusExpectedFailure:
			r.Stats.ExpectedFailures++
		case StatusParseFailure:
			r.Stats.ParseFailures++
		}
	}
}

// gate appends a TooManyParseFailuresError when parse failures exceed
// ratio of the cases.
func (r *Result) gate(ratio float64) {
	if r.Stats.ParseFailures == 0 || float64(r.Stats.ParseFailures) <= float64(r.Stats.Cases)*ratio {
		return
	}

	var first error
	for _, c := range r.Cases() {
		if c.Status == StatusParseFailure {
			first = c.Error
			break
		}
	}

	r.Errors = append(r.Errors, &TooManyParseFailuresError{
		Failures: r.Stats.ParseFailures,
		Cases:    r.Stats.Cases,
		Ratio:    ratio,
		First:    first,
	})
}
