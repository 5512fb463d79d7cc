package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

func TestFormatCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome runner.CaseOutcome
		want    string
	}{
		{
			name:    "passed",
			outcome: runner.CaseOutcome{Name: "a.ts", Status: runner.StatusPassed},
			want:    "  passed  a.ts\n",
		},
		{
			name: "parse failure",
			outcome: runner.CaseOutcome{
				Name:   "b.js",
				Status: runner.StatusParseFailure,
				Error:  &typescript.ParseError{Path: "b.js", Line: 1, Column: 1, Message: "with statements are not supported"},
			},
			want: "  parse-failure  b.js (1:1)  with statements are not supported\n",
		},
		{
			name: "round trip",
			outcome: runner.CaseOutcome{
				Name:   "c.ts",
				Status: runner.StatusFailed,
				Error: &reprint.RoundTripError{
					Stage:  reprint.StageEquivalence,
					Path:   "c.ts",
					Reason: "body[0].expression.value: 1 vs 2",
				},
			},
			want: "  failed  c.ts  body[0].expression.value: 1 vs 2  [" + string(reprint.StageEquivalence) + "]\n",
		},
		{
			name: "plain error",
			outcome: runner.CaseOutcome{
				Name:   "d.ts",
				Status: runner.StatusParseFailure,
				Error:  errors.New("boom"),
			},
			want: "  parse-failure  d.ts  boom\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatCase(tt.outcome, false))
		})
	}
}

func TestFormatCase_Diff(t *testing.T) {
	t.Parallel()

	outcome := runner.CaseOutcome{
		Name:   "a.ts",
		Status: runner.StatusFailed,
		Error: &reprint.RoundTripError{
			Stage:  reprint.StageIdentity,
			Reason: "1 changed span",
			Diff:   "--- a.ts\n+++ a.ts\n@@ -1 +1 @@\n-a;\n+b;\n",
		},
	}

	styles := pretty.NewStyles(false)

	withDiff := styles.FormatCase(outcome, true)
	assert.Contains(t, withDiff, "    -a;\n    +b;\n")
	assert.NotContains(t, styles.FormatCase(outcome, false), "+b;")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md", styles.FormatFileHeader("a.md", 0))
	assert.Equal(t, "a.md (2 failing)", styles.FormatFileHeader("a.md", 2))
}
