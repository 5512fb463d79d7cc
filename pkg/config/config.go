// Package config defines the configuration types of tsreprint.
// These types are pure data structures; loading and precedence live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// Flavor selects the grammar used to parse sources.
type Flavor string

const (
	FlavorTypeScript Flavor = Flavor(reprint.ParserTypeScript)
	FlavorJavaScript Flavor = Flavor(reprint.ParserJavaScript)
)

// PrinterConfig holds the layout options of freshly printed code.
type PrinterConfig struct {
	TabWidth           int    `yaml:"tab_width"`
	UseTabs            bool   `yaml:"use_tabs"`
	Quote              string `yaml:"quote"`
	WrapColumn         int    `yaml:"wrap_column"`
	LineTerminator     string `yaml:"line_terminator"`
	ObjectCurlySpacing bool   `yaml:"object_curly_spacing"`
	TrailingComma      bool   `yaml:"trailing_comma"`
}

// ParserConfig selects and tunes the parser.
type ParserConfig struct {
	// Flavor is "typescript" or "javascript". The verify command still
	// picks the flavor per file unless a custom parser is registered.
	Flavor Flavor `yaml:"flavor"`

	// Strict disables newline-based semicolon insertion.
	Strict bool `yaml:"strict"`
}

// VerifyConfig configures the batch round-trip harness.
type VerifyConfig struct {
	// Extensions lists the file extensions to check.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs"`

	// MaxParseFailureRatio is the share of sources allowed to fail parsing.
	MaxParseFailureRatio float64 `yaml:"max_parse_failure_ratio"`

	// SyntaxCheck validates pretty printed output with tree-sitter.
	SyntaxCheck bool `yaml:"syntax_check"`

	// Pretty enables the pretty-print checks.
	Pretty bool `yaml:"pretty"`
}

// Config is the root configuration structure.
type Config struct {
	Printer PrinterConfig `yaml:"printer"`
	Parser  ParserConfig  `yaml:"parser"`
	Verify  VerifyConfig  `yaml:"verify"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	defaults := printer.DefaultOptions()
	return &Config{
		Printer: PrinterConfig{
			TabWidth:           defaults.TabWidth,
			UseTabs:            defaults.UseTabs,
			Quote:              defaults.Quote,
			WrapColumn:         defaults.WrapColumn,
			LineTerminator:     defaults.LineTerminator,
			ObjectCurlySpacing: defaults.ObjectCurlySpacing,
			TrailingComma:      defaults.TrailingComma,
		},
		Parser: ParserConfig{
			Flavor: FlavorTypeScript,
		},
		Verify: VerifyConfig{
			Extensions:           []string{".ts", ".tsx", ".js", ".md"},
			MaxParseFailureRatio: runner.DefaultMaxParseFailureRatio,
			Pretty:               true,
		},
	}
}

// PrinterOptions converts the printer section to printer.Options.
func (c *Config) PrinterOptions() printer.Options {
	return printer.Options{
		TabWidth:           c.Printer.TabWidth,
		UseTabs:            c.Printer.UseTabs,
		Quote:              c.Printer.Quote,
		WrapColumn:         c.Printer.WrapColumn,
		LineTerminator:     c.Printer.LineTerminator,
		ObjectCurlySpacing: c.Printer.ObjectCurlySpacing,
		TrailingComma:      c.Printer.TrailingComma,
	}
}

// ReprintOptions converts the parser and printer sections to
// reprint.Options.
func (c *Config) ReprintOptions() reprint.Options {
	return reprint.Options{
		Parser:  string(c.Parser.Flavor),
		Strict:  c.Parser.Strict,
		Printer: c.PrinterOptions(),
	}
}
