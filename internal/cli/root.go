// Package cli provides the Cobra command structure for tsreprint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	directory  string
}

// NewRootCommand creates the root tsreprint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tsreprint",
		Short: "Reprint TypeScript and JavaScript with minimal changes",
		Long: `tsreprint parses TypeScript and JavaScript into a syntax tree and prints it
back. Code that was not changed is copied verbatim from the original source,
so reprinting keeps comments, blank lines and formatting; only modified
subtrees are printed fresh.

The pretty command prints a tree from scratch, and verify checks that a
corpus of sources survives both round trips.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if global.debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&global.directory, "directory", "C", "",
		"run as if started in this directory")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newReprintCommand(global))
	rootCmd.AddCommand(newPrettyCommand(global))
	rootCmd.AddCommand(newVerifyCommand(global))
	rootCmd.AddCommand(newASTCommand(global))
	rootCmd.AddCommand(newInitCommand(global))
	rootCmd.AddCommand(newConfigCommand(global))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(global.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
