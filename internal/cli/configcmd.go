package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/configloader"
)

func newConfigCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the configuration after merging every source",
		Long: `Print the configuration that commands run with: defaults, overlaid by the
user config, the project config, --config, and TSREPRINT_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, global)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigEnv(cmd.OutOrStdout())
		},
	})

	return cmd
}

func runConfigShow(cmd *cobra.Command, global *globalFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	dir, err := global.workDir()
	if err != nil {
		return err
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: global.configPath,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, path := range result.LoadedFrom {
		fmt.Fprintf(out, "# loaded from %s\n", path)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(out, "# warning: %s\n", warning)
	}

	content, err := result.Config.ToYAML()
	if err != nil {
		return err
	}
	_, err = out.Write(content)
	return err
}

func runConfigEnv(out io.Writer) error {
	descriptions := configloader.ListEnvVars()
	for _, name := range configloader.EnvVarNames() {
		if _, err := fmt.Fprintf(out, "%-36s %s\n", name, descriptions[name]); err != nil {
			return err
		}
	}
	return nil
}
