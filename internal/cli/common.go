package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tsreprint/internal/configloader"
	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/config"
	"github.com/yaklabco/tsreprint/pkg/fsutil"
	"github.com/yaklabco/tsreprint/pkg/langdetect"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

// printerFlags are the layout and parser flags shared by the commands that
// print code. Only flags the user set override the loaded configuration.
type printerFlags struct {
	tabWidth   int
	useTabs    bool
	quote      string
	wrapColumn int
	flavor     string
	strict     bool
}

func addPrinterFlags(cmd *cobra.Command, flags *printerFlags) {
	cmd.Flags().IntVar(&flags.tabWidth, "tab-width", 0, "columns per indentation level")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent freshly printed code with tabs")
	cmd.Flags().StringVar(&flags.quote, "quote", "", "quotes for re-quoted strings: double, single, auto")
	cmd.Flags().IntVar(&flags.wrapColumn, "wrap-column", 0, "column at which printed lists wrap")
	addParserFlags(cmd, flags)
}

func addParserFlags(cmd *cobra.Command, flags *printerFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "",
		"parser: typescript, javascript or treesitter (default: detected per file)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "disable newline-based semicolon insertion; treesitter rejects recovered input")
}

func (f *printerFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	o := &configloader.Overrides{}
	changed := cmd.Flags().Changed

	if changed("tab-width") {
		o.TabWidth = &f.tabWidth
	}
	if changed("use-tabs") {
		o.UseTabs = &f.useTabs
	}
	if changed("quote") {
		o.Quote = &f.quote
	}
	if changed("wrap-column") {
		o.WrapColumn = &f.wrapColumn
	}
	if changed("flavor") {
		flavor := config.Flavor(f.flavor)
		o.Flavor = &flavor
	}
	if changed("strict") {
		o.Strict = &f.strict
	}

	return o
}

// workDir returns the directory commands run in.
func (g *globalFlags) workDir() (string, error) {
	if g.directory != "" {
		return filepath.Abs(g.directory)
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// resolve makes path relative to the command's working directory.
func (g *globalFlags) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	dir, err := g.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

// loadConfig resolves the layered configuration with overrides on top.
func loadConfig(ctx context.Context, global *globalFlags, overrides *configloader.Overrides) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	dir, err := global.workDir()
	if err != nil {
		return nil, err
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: global.configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, result.LoadedFrom)
	}

	return result.Config, nil
}

// source is a file read for a single-file command.
type source struct {
	path     string
	content  []byte
	snapshot *fsutil.Snapshot
	file     *ast.File
	opts     reprint.Options
}

// parseSource reads and parses path. Built-in flavors follow the file's
// detected language unless --flavor was given.
func parseSource(ctx context.Context, path string, cfg *config.Config, flavorSet bool) (*source, error) {
	content, snapshot, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	opts := cfg.ReprintOptions()
	if !flavorSet && isBuiltinFlavor(opts.Parser) {
		if detected := langdetect.Flavor(path, content); detected != "" {
			opts.Parser = detected
		}
	}

	logging.FromContext(ctx).Debug("parsing",
		logging.FieldPath, path,
		logging.FieldFlavor, opts.Parser,
	)

	file, err := reprint.Parse(ctx, path, content, opts)
	if err != nil {
		return nil, err
	}

	return &source{path: path, content: content, snapshot: snapshot, file: file, opts: opts}, nil
}

func isBuiltinFlavor(name string) bool {
	return name == "" || name == reprint.ParserTypeScript || name == reprint.ParserJavaScript
}
