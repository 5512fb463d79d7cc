// Package verify checks that source survives the reprinting round trips:
// reprinting an unmodified tree gives back the source, pretty printed
// output parses to an equivalent tree, pretty printing is idempotent, and
// no comment is lost or duplicated.
package verify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

// SyntaxChecker is an independent judge of whether code is syntactically
// valid.
type SyntaxChecker interface {
	Check(ctx context.Context, path string, code []byte) error
}

// Options configures the checks.
type Options struct {
	Reprint reprint.Options

	// Pretty enables the pretty-print checks.
	Pretty bool

	// Syntax, when set, also validates the pretty printed output.
	Syntax SyntaxChecker

	// NormalizeNewlines compares reprinted text with "\r\n" folded to "\n".
	NormalizeNewlines bool
}

// DefaultOptions enables every check except the syntax oracle.
func DefaultOptions() Options {
	return Options{
		Reprint: reprint.DefaultOptions(),
		Pretty:  true,
	}
}

// Report describes a source that passed.
type Report struct {
	Path string

	// Pretty is the pretty printed source, empty when Pretty is off.
	Pretty string

	// Comments is the number of comments in the source.
	Comments int

	Stats fix.Stats
}

// Source runs every enabled check on content. A parse error of content
// itself is returned unchanged; every other failure is a
// *reprint.RoundTripError.
func Source(ctx context.Context, path string, content []byte, opts Options) (*Report, error) {
	logger := logging.FromContext(ctx)

	file, err := reprint.Parse(ctx, path, content, opts.Reprint)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: path, Comments: len(file.Comments)}

	printed, err := reprint.Print(ctx, file, opts.Reprint)
	if err != nil {
		return nil, &reprint.RoundTripError{Stage: reprint.StageIdentity, Path: path, Reason: err.Error(), Err: err}
	}
	if err := same(path, reprint.StageIdentity, string(content), printed.Code, opts.NormalizeNewlines); err != nil {
		return nil, err
	}

	if !opts.Pretty {
		return report, nil
	}

	pretty, err := reprint.PrettyPrint(ctx, file.Root, opts.Reprint)
	if err != nil {
		return nil, &reprint.RoundTripError{Stage: reprint.StageReparse, Path: path, Reason: err.Error(), Err: err}
	}
	report.Pretty = pretty.Code
	report.Stats = fix.Measure(string(content), pretty.Code)

	reparsed, err := reparse(ctx, path, pretty.Code, opts)
	if err != nil {
		return nil, err
	}
	if err := equivalent(path, file.Root, reparsed.Root); err != nil {
		return nil, err
	}
	if err := conserved(path, ast.AllComments(file.Root), reparsed.Comments); err != nil {
		return nil, err
	}

	again, err := reprint.PrettyPrint(ctx, reparsed.Root, opts.Reprint)
	if err != nil {
		return nil, &reprint.RoundTripError{Stage: reprint.StageIdempotence, Path: path, Reason: err.Error(), Err: err}
	}
	if err := same(path, reprint.StageIdempotence, pretty.Code, again.Code, false); err != nil {
		return nil, err
	}

	if opts.Syntax != nil {
		if err := opts.Syntax.Check(ctx, path, []byte(pretty.Code)); err != nil {
			return nil, &reprint.RoundTripError{Stage: reprint.StageSyntax, Path: path, Reason: err.Error(), Err: err}
		}
	}

	logger.Debug("verified", logging.FieldPath, path, "pretty_spans", report.Stats.Spans)

	return report, nil
}

// Tree reprints a possibly modified file and checks that the output parses
// to a tree equivalent to it, carrying the same comments.
func Tree(ctx context.Context, file *ast.File, opts Options) (reprint.Result, error) {
	result, err := reprint.Print(ctx, file, opts.Reprint)
	if err != nil {
		return reprint.Result{}, err
	}

	reparsed, err := reparse(ctx, file.Path, result.Code, opts)
	if err != nil {
		return reprint.Result{}, err
	}
	if err := equivalent(file.Path, file.Root, reparsed.Root); err != nil {
		return reprint.Result{}, err
	}
	if err := conserved(file.Path, ast.AllComments(file.Root), reparsed.Comments); err != nil {
		return reprint.Result{}, err
	}

	return result, nil
}

func reparse(ctx context.Context, path, code string, opts Options) (*ast.File, error) {
	file, err := reprint.Parse(ctx, path, []byte(code), opts.Reprint)
	if err != nil {
		return nil, &reprint.RoundTripError{
			Stage:  reprint.StageReparse,
			Path:   path,
			Reason: err.Error(),
			Err:    err,
		}
	}

	return file, nil
}

func equivalent(path string, want, got *ast.Node) error {
	reason := ast.Explain(want, got)
	if reason == "" {
		return nil
	}

	return &reprint.RoundTripError{Stage: reprint.StageEquivalence, Path: path, Reason: reason}
}

func same(path string, stage reprint.Stage, want, got string, normalize bool) error {
	if normalize {
		want = strings.ReplaceAll(want, "\r\n", "\n")
		got = strings.ReplaceAll(got, "\r\n", "\n")
	}
	if want == got {
		return nil
	}

	diff, err := fix.UnifiedDiff(path, want, got)
	if err != nil {
		diff = ""
	}

	stats := fix.Measure(want, got)

	return &reprint.RoundTripError{
		Stage:  stage,
		Path:   path,
		Reason: fmt.Sprintf("output differs in %d place(s)", stats.Spans),
		Diff:   diff,
	}
}

// conserved compares the comment multisets of want and got.
func conserved(path string, want, got []*ast.Comment) error {
	counts := make(map[string]int)
	for _, comment := range want {
		counts[comment.Normalized()]++
	}
	for _, comment := range got {
		counts[comment.Normalized()]--
	}

	var lost, extra []string
	for text, count := range counts {
		switch {
		case count > 0:
			lost = append(lost, text)
		case count < 0:
			extra = append(extra, text)
		}
	}
	if len(lost) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(lost)
	sort.Strings(extra)

	var parts []string
	if len(lost) > 0 {
		parts = append(parts, fmt.Sprintf("lost %q", lost))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("duplicated %q", extra))
	}

	return &reprint.RoundTripError{Stage: reprint.StageComments, Path: path, Reason: strings.Join(parts, ", ")}
}
