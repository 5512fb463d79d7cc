package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

type reprintFlags struct {
	printer printerFlags
	diff    bool
	check   bool
}

func newReprintCommand(global *globalFlags) *cobra.Command {
	flags := &reprintFlags{}

	cmd := &cobra.Command{
		Use:   "reprint FILE...",
		Short: "Parse files and print them back through the reprinter",
		Long: `Parse each file and print the tree back with the reprinter. An unmodified
tree reprints to exactly the original text, so any output that differs from
the input points at a reprinter bug.`,
		Example: `  tsreprint reprint src/index.ts
  tsreprint reprint --check src/*.ts
  tsreprint reprint --diff --flavor javascript legacy.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReprint(cmd, global, flags, args)
		},
	}

	addPrinterFlags(cmd, &flags.printer)
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "show a diff against the input instead of the output")
	cmd.Flags().BoolVar(&flags.check, "check", false, "fail when the output differs from the input")

	return cmd
}

func runReprint(cmd *cobra.Command, global *globalFlags, flags *reprintFlags, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(ctx, global, flags.printer.overrides(cmd))
	if err != nil {
		return err
	}

	differs := 0
	for _, arg := range args {
		path, err := global.resolve(arg)
		if err != nil {
			return err
		}

		src, err := parseSource(ctx, path, cfg, cmd.Flags().Changed("flavor"))
		if err != nil {
			return err
		}

		result, err := reprint.Print(ctx, src.file, src.opts)
		if err != nil {
			return err
		}

		original := string(src.content)
		switch {
		case flags.diff:
			changed, err := global.writeDiff(out, path, original, result.Code)
			if err != nil {
				return err
			}
			if changed {
				differs++
			}
		case flags.check:
			if result.Code != original {
				differs++
				fmt.Fprintf(out, "%s: reprint differs from input\n", global.displayPath(path))
			}
		default:
			if _, err := io.WriteString(out, result.Code); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}

		logging.FromContext(ctx).Debug("reprinted file",
			logging.FieldPath, path,
			logging.FieldReused, result.Stats.Reused,
			logging.FieldReprinted, result.Stats.Reprinted,
		)
	}

	if flags.check && differs > 0 {
		return ErrChecksFailed
	}

	return nil
}
