package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/configloader"
	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/config"
)

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tsreprint configuration file",
		Long: `Create a .tsreprint.yml configuration file in the current directory.

Examples:
  tsreprint init                     Create a commented minimal config
  tsreprint init --full              Write every setting with its default
  tsreprint init --output ci.yml     Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	path, err := global.resolve(flags.output)
	if err != nil {
		return err
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := configloader.WriteConfig(path, content, flags.force); err != nil {
		return fmt.Errorf("%w; use --force to overwrite", err)
	}

	logger.Info("created configuration file", logging.FieldPath, filepath.Base(path))

	return nil
}
