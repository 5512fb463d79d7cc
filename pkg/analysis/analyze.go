package analysis

import (
	"cmp"
	"errors"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	stageMap   map[string]*StageAnalysis
	stageFiles map[string]map[string]bool
	fileStages map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		stageMap:   make(map[string]*StageAnalysis),
		stageFiles: make(map[string]map[string]bool),
		fileStages: make(map[string]map[string]bool),
	}
}

func (ctx *analysisContext) recordStage(stage, path string) {
	sa, ok := ctx.stageMap[stage]
	if !ok {
		sa = &StageAnalysis{Stage: stage}
		ctx.stageMap[stage] = sa
		ctx.stageFiles[stage] = make(map[string]bool)
	}
	sa.Failures++
	ctx.stageFiles[stage][path] = true

	if ctx.fileStages[path] == nil {
		ctx.fileStages[path] = make(map[string]bool)
	}
	ctx.fileStages[path][stage] = true
}

// buildByStage constructs the ByStage slice from accumulated data.
func (ctx *analysisContext) buildByStage(opts Options) []StageAnalysis {
	result := make([]StageAnalysis, 0, len(ctx.stageMap))
	for stage, sa := range ctx.stageMap {
		for f := range ctx.stageFiles[stage] {
			sa.Files = append(sa.Files, f)
		}
		slices.Sort(sa.Files)
		result = append(result, *sa)
	}
	sortStageAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// newCaseEntry builds a CaseEntry from a runner case, pulling position and
// stage out of the typed errors.
func newCaseEntry(name string, c *runner.CaseOutcome) CaseEntry {
	entry := CaseEntry{
		Name:   name,
		Flavor: c.Flavor,
		Status: string(c.Status),
	}

	if c.Report != nil {
		entry.Comments = c.Report.Comments
		entry.PrettySpans = c.Report.Stats.Spans
	}

	if c.Error == nil {
		return entry
	}

	entry.Message = c.Error.Error()

	var (
		roundTrip *reprint.RoundTripError
		parseErr  *typescript.ParseError
	)
	switch {
	case errors.As(c.Error, &roundTrip):
		entry.Stage = string(roundTrip.Stage)
		entry.Diff = roundTrip.Diff
		if roundTrip.Reason != "" {
			entry.Message = roundTrip.Reason
		}
	case errors.As(c.Error, &parseErr):
		entry.Stage = StageParse
		entry.Message = parseErr.Message
		entry.Line = parseErr.Line
		entry.Column = parseErr.Column
	default:
		entry.Stage = StageParse
	}

	return entry
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through the cases to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	var byFile []FileAnalysis

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: displayPath}

		if file.Error != nil {
			report.Totals.FilesErrored++
			fa.Error = file.Error.Error()
			byFile = append(byFile, fa)
			continue
		}

		for i := range file.Cases {
			c := &file.Cases[i]
			report.Totals.Cases++
			fa.Cases++

			entry := newCaseEntry(makeRelativePath(c.Name, opts.WorkingDir), c)

			switch c.Status {
			case runner.StatusPassed:
				report.Totals.Passed++
				fa.Passed++
			case runner.StatusFailed:
				report.Totals.Failed++
				fa.Failed++
				ctx.recordStage(entry.Stage, displayPath)
			case runner.StatusExpectedFailure:
				report.Totals.ExpectedFailures++
				fa.ExpectedFailures++
			case runner.StatusParseFailure:
				report.Totals.ParseFailures++
				fa.ParseFailures++
				ctx.recordStage(entry.Stage, displayPath)
			}

			if opts.IncludeCases && (opts.IncludePassed || c.Status != runner.StatusPassed) {
				report.Cases = append(report.Cases, entry)
			}
		}

		if fa.Problems() > 0 {
			report.Totals.FilesFailing++
			for stage := range ctx.fileStages[displayPath] {
				fa.Stages = append(fa.Stages, stage)
			}
			slices.Sort(fa.Stages)
			byFile = append(byFile, fa)
		}
	}

	if report.Totals.Cases > 0 {
		report.Totals.ParseFailureRatio = float64(report.Totals.ParseFailures) / float64(report.Totals.Cases)
	}
	for _, err := range result.Errors {
		report.Totals.RunErrors = append(report.Totals.RunErrors, err.Error())
	}

	if opts.IncludeByStage {
		report.ByStage = ctx.buildByStage(opts)
	}
	if opts.IncludeByFile {
		sortFileAnalysis(byFile, opts.SortBy, opts.SortDesc)
		report.ByFile = byFile
	}

	return report
}

func sortStageAnalysis(stages []StageAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(stages, func(left, right StageAnalysis) int {
		if sortBy == SortByAlpha {
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Stage, right.Stage)
		}
		result := cmp.Compare(left.Failures, right.Failures)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Stage, right.Stage)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortStableFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}
		result := cmp.Compare(left.Problems(), right.Problems())
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
