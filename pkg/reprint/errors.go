package reprint

import "fmt"

// Stage names the round-trip check that failed.
type Stage string

// Round-trip stages.
const (
	// StageIdentity: reprinting an unmodified tree did not give back the
	// source.
	StageIdentity Stage = "reprint-identity"
	// StageReparse: printed output could not be parsed again.
	StageReparse Stage = "reparse"
	// StageEquivalence: printed output parsed to a different tree.
	StageEquivalence Stage = "equivalence"
	// StageIdempotence: pretty printing the pretty-printed output changed it.
	StageIdempotence Stage = "idempotence"
	// StageComments: comments were lost or duplicated.
	StageComments Stage = "comments"
	// StageSyntax: the independent syntax check rejected the output.
	StageSyntax Stage = "syntax"
)

// RoundTripError reports output that does not survive a round trip through
// the parser.
type RoundTripError struct {
	Stage  Stage
	Path   string
	Reason string

	// Diff is a unified diff between the expected and the produced text,
	// when one applies.
	Diff string

	// Err is the underlying failure, such as the parse error of a reparse.
	Err error
}

func (e *RoundTripError) Error() string {
	msg := fmt.Sprintf("round trip failed at %s", e.Stage)
	if e.Path != "" {
		msg += " for " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

func (e *RoundTripError) Unwrap() error {
	return e.Err
}
