package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/langdetect"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/snippets"
	"github.com/yaklabco/tsreprint/pkg/verify"
)

// Runner verifies discovered files concurrently.
type Runner struct {
	extractor *snippets.Extractor
}

// New creates a Runner.
func New() *Runner {
	return &Runner{extractor: snippets.New()}
}

// Run discovers files under opts.Paths and verifies them on a worker pool.
// Files are reported in path order whatever order they complete in. When
// more cases fail to parse than opts.MaxParseFailureRatio allows, the result
// carries a *TooManyParseFailuresError.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger.Debug("starting verification",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	result.gate(opts.effectiveRatio())

	logger.Debug("verification finished",
		logging.FieldCases, result.Stats.Cases,
		logging.FieldPassed, result.Stats.Passed,
		logging.FieldFailed, result.Stats.Failed,
		logging.FieldParseFailures, result.Stats.ParseFailures,
	)

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.processFile(logging.WithFields(ctx, logging.FieldPath, path), path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	if isMarkdown(path) {
		found, err := r.extractor.Extract(ctx, content)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		for _, snippet := range found {
			outcome.Cases = append(outcome.Cases,
				r.check(ctx, snippet.Name(path), snippet.Flavor, snippet.Content, nil, opts))
		}

		return outcome
	}

	sidecar, err := LoadSidecar(path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	flavor := langdetect.Flavor(path, content)
	outcome.Cases = append(outcome.Cases, r.check(ctx, path, flavor, content, sidecar, opts))

	return outcome
}

// check verifies one source and classifies the result.
func (r *Runner) check(ctx context.Context, name, flavor string, content []byte, sidecar *Sidecar, opts Options) CaseOutcome {
	vopts := opts.Verify
	if builtinParser(vopts.Reprint.Parser) && flavor != "" {
		vopts.Reprint.Parser = flavor
	}

	outcome := CaseOutcome{Name: name, Flavor: vopts.Reprint.Parser}

	report, err := verify.Source(ctx, name, content, vopts)
	var roundTrip *reprint.RoundTripError
	switch {
	case err == nil:
		outcome.Status = StatusPassed
		outcome.Report = report
	case errors.As(err, &roundTrip):
		outcome.Status = StatusFailed
		outcome.Error = err
	case sidecar.Expects(err):
		outcome.Status = StatusExpectedFailure
		outcome.Error = err
	default:
		outcome.Status = StatusParseFailure
		outcome.Error = err
	}

	logging.FromContext(ctx).Debug("checked",
		"case", name,
		logging.FieldFlavor, outcome.Flavor,
		"status", outcome.Status,
	)

	return outcome
}

func builtinParser(name string) bool {
	return name == "" || name == reprint.ParserTypeScript || name == reprint.ParserJavaScript
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}
