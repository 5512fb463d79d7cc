package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/syntaxcheck"
)

type astFlags struct {
	printer    printerFlags
	format     string
	treeSitter bool
}

func newASTCommand(global *globalFlags) *cobra.Command {
	flags := &astFlags{}

	cmd := &cobra.Command{
		Use:   "ast FILE",
		Short: "Print the syntax tree of a file",
		Long: `Parse a file and print its syntax tree with node ranges. With --tree-sitter
the tree-sitter parse of the same file is printed instead, for comparison.`,
		Example: `  tsreprint ast src/index.ts
  tsreprint ast --format yaml src/index.ts
  tsreprint ast --tree-sitter src/index.ts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAST(cmd, global, flags, args[0])
		},
	}

	addParserFlags(cmd, &flags.printer)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.treeSitter, "tree-sitter", false, "print the tree-sitter S-expression")

	return cmd
}

func runAST(cmd *cobra.Command, global *globalFlags, flags *astFlags, arg string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch flags.format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: unknown format %q; valid formats: text, json, yaml", ErrUsage, flags.format)
	}

	cfg, err := loadConfig(ctx, global, flags.printer.overrides(cmd))
	if err != nil {
		return err
	}

	path, err := global.resolve(arg)
	if err != nil {
		return err
	}

	src, err := parseSource(ctx, path, cfg, cmd.Flags().Changed("flavor"))
	if err != nil {
		return err
	}

	if flags.treeSitter {
		sexp, err := syntaxcheck.Dump(src.content, syntaxcheck.LanguageFor(path, src.opts.Parser))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, sexp)
		return err
	}

	return writeTree(out, src.file, flags.format)
}

func writeTree(w io.Writer, file *ast.File, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(treeDocument(file)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(treeDocument(file)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return nil
	default:
		_, err := io.WriteString(w, ast.Dump(file.Root))
		return err
	}
}

// treeDocument is the structured form of a parsed file.
func treeDocument(file *ast.File) map[string]any {
	comments := make([]map[string]any, 0, len(file.Comments))
	for _, c := range file.Comments {
		comments = append(comments, map[string]any{
			"kind":      c.Kind.String(),
			"placement": c.Placement.String(),
			"value":     c.Value,
			"start":     c.Range.Start,
			"end":       c.Range.End,
		})
	}

	return map[string]any{
		"path":     file.Path,
		"program":  ast.ToMap(file.Root),
		"comments": comments,
	}
}
