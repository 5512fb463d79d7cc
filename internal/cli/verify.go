package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/configloader"
	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/analysis"
	"github.com/yaklabco/tsreprint/pkg/config"
	"github.com/yaklabco/tsreprint/pkg/reporter"
	"github.com/yaklabco/tsreprint/pkg/runner"
	"github.com/yaklabco/tsreprint/pkg/syntaxcheck"
	"github.com/yaklabco/tsreprint/pkg/verify"
)

type verifyFlags struct {
	printer     printerFlags
	format      string
	jobs        int
	ignore      []string
	syntaxCheck bool
	noPretty    bool
	ratio       float64
	verbose     bool
	showPassed  bool
	noDiff      bool
	compact     bool
	sortBy      string
}

func newVerifyCommand(global *globalFlags) *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify [paths...]",
		Short: "Check that sources survive the reprint round trips",
		Long: `Check every TypeScript, JavaScript and Markdown file under the given paths
(default: the current directory). Each source, and each TypeScript or
JavaScript fence in Markdown, must reprint to its exact original text and
pretty print to code that parses back to an equivalent tree, keeping every
comment and printing identically a second time.

Files next to an options.json of the form {"throws": "message"} are
expected to fail parsing with that message. The run fails when too many
sources fail to parse.`,
		Example: `  tsreprint verify
  tsreprint verify test/fixtures --jobs 8
  tsreprint verify --syntax-check --format summary
  tsreprint verify --format json > report.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, global, flags, args)
		},
	}

	addPrinterFlags(cmd, &flags.printer)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, summary, diff")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.syntaxCheck, "syntax-check", false, "also parse pretty output with tree-sitter")
	cmd.Flags().BoolVar(&flags.noPretty, "no-pretty", false, "only check that reprinting is the identity")
	cmd.Flags().Float64Var(&flags.ratio, "max-parse-failure-ratio", runner.DefaultMaxParseFailureRatio,
		"share of sources allowed to fail parsing")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a summary block instead of one line")
	cmd.Flags().BoolVar(&flags.showPassed, "show-passed", false, "list passed sources too")
	cmd.Flags().BoolVar(&flags.noDiff, "no-diff", false, "hide diffs of failed sources")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count", "order of summary tables: count, alpha")

	return cmd
}

func (f *verifyFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	o := f.printer.overrides(cmd)
	changed := cmd.Flags().Changed

	if changed("jobs") {
		o.Jobs = &f.jobs
	}
	if changed("syntax-check") {
		o.SyntaxCheck = &f.syntaxCheck
	}
	if changed("no-pretty") {
		enabled := !f.noPretty
		o.Pretty = &enabled
	}
	if changed("max-parse-failure-ratio") {
		o.MaxParseRatio = &f.ratio
	}
	o.Ignore = f.ignore

	return o
}

func runVerify(cmd *cobra.Command, global *globalFlags, flags *verifyFlags, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: invalid sort %q: must be count or alpha", ErrUsage, flags.sortBy)
	}

	cfg, err := loadConfig(ctx, global, flags.overrides(cmd))
	if err != nil {
		return err
	}

	workDir, err := global.workDir()
	if err != nil {
		return err
	}

	runOpts := runnerOptions(cfg, args, workDir)

	logger.Debug("starting verify run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("verify run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       global.color,
		ShowSummary: true,
		ShowDiff:    !flags.noDiff,
		ShowPassed:  flags.showPassed,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		SortBy:      sortBy,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasFailures() {
		return ErrChecksFailed
	}

	return nil
}

// runnerOptions builds the verification run from the resolved config.
func runnerOptions(cfg *config.Config, paths []string, workDir string) runner.Options {
	verifyOpts := verify.Options{
		Reprint: cfg.ReprintOptions(),
		Pretty:  cfg.Verify.Pretty,
	}
	if cfg.Verify.SyntaxCheck {
		verifyOpts.Syntax = syntaxcheck.New(string(cfg.Parser.Flavor))
	}

	return runner.Options{
		Paths:                paths,
		WorkingDir:           workDir,
		Extensions:           cfg.Verify.Extensions,
		ExcludeGlobs:         cfg.Verify.Ignore,
		Jobs:                 cfg.Verify.Jobs,
		Verify:               verifyOpts,
		MaxParseFailureRatio: cfg.Verify.MaxParseFailureRatio,
	}
}
