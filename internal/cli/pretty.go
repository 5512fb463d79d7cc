package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/fsutil"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

type prettyFlags struct {
	printer printerFlags
	write   bool
	diff    bool
	check   bool
	backup  bool
}

func newPrettyCommand(global *globalFlags) *cobra.Command {
	flags := &prettyFlags{}

	cmd := &cobra.Command{
		Use:   "pretty FILE...",
		Short: "Pretty print files from scratch",
		Long: `Parse each file and print the tree from scratch, ignoring the original
layout. Comments are kept. By default the result goes to standard output.`,
		Example: `  tsreprint pretty src/index.ts
  tsreprint pretty --write --backup src/*.ts
  tsreprint pretty --check --quote single src/*.ts`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPretty(cmd, global, flags, args)
		},
	}

	addPrinterFlags(cmd, &flags.printer)
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "show a diff instead of the output")
	cmd.Flags().BoolVar(&flags.check, "check", false, "fail when any file is not already pretty printed")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep the original next to rewritten files")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runPretty(cmd *cobra.Command, global *globalFlags, flags *prettyFlags, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	if flags.backup && !flags.write {
		return fmt.Errorf("%w: --backup requires --write", ErrUsage)
	}

	cfg, err := loadConfig(ctx, global, flags.printer.overrides(cmd))
	if err != nil {
		return err
	}

	unformatted, modified := 0, 0
	for _, arg := range args {
		path, err := global.resolve(arg)
		if err != nil {
			return err
		}

		src, err := parseSource(ctx, path, cfg, cmd.Flags().Changed("flavor"))
		if err != nil {
			return err
		}

		result, err := reprint.PrettyPrint(ctx, src.file.Root, src.opts)
		if err != nil {
			return err
		}

		original := string(src.content)
		if result.Code != original {
			unformatted++
		}

		switch {
		case flags.write:
			written, err := fsutil.Replace(ctx, src.snapshot, src.content, []byte(result.Code),
				fsutil.ReplaceOptions{Backup: flags.backup})
			if err != nil {
				return err
			}
			if written {
				modified++
				logger.Debug("rewrote file", logging.FieldPath, path)
			}
		case flags.diff:
			if _, err := global.writeDiff(out, path, original, result.Code); err != nil {
				return err
			}
		case flags.check:
			if result.Code != original {
				fmt.Fprintf(out, "%s\n", global.displayPath(path))
			}
		default:
			if _, err := io.WriteString(out, result.Code); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}

	if flags.write {
		logger.Info("pretty printed",
			logging.FieldFilesModified, modified,
			logging.FieldCases, len(args),
		)
	}

	if flags.check && unformatted > 0 {
		return ErrChecksFailed
	}

	return nil
}
