package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/tsreprint/pkg/config"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "printer.quote").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownQuotes lists valid printer.quote values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownQuotes = map[string]bool{
	printer.QuoteDouble: true,
	printer.QuoteSingle: true,
	printer.QuoteAuto:   true,
}

// knownTerminators lists valid printer.line_terminator values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownTerminators = map[string]bool{
	"":     true,
	"\n":   true,
	"\r\n": true,
	"\r":   true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validatePrinter(cfg, result)

	if !IsValidFlavor(cfg.Parser.Flavor) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "parser.flavor",
			Value:   cfg.Parser.Flavor,
			Message: fmt.Sprintf("unknown flavor %q; must be one of: %s", cfg.Parser.Flavor, strings.Join(reprint.Parsers(), ", ")),
		})
	}

	if cfg.Verify.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "verify.jobs",
			Value:   cfg.Verify.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if ratio := cfg.Verify.MaxParseFailureRatio; ratio < 0 || ratio > 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "verify.max_parse_failure_ratio",
			Value:   ratio,
			Message: "ratio must be between 0 and 1",
		})
	}

	for i, ext := range cfg.Verify.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("verify.extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; it will never match", ext),
			})
		}
	}

	validateIgnorePatterns(cfg, result)

	return result
}

func validatePrinter(cfg *config.Config, result *ValidationResult) {
	p := cfg.Printer

	if p.TabWidth < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "printer.tab_width",
			Value:   p.TabWidth,
			Message: "tab width must be >= 1",
		})
	}

	if p.WrapColumn < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "printer.wrap_column",
			Value:   p.WrapColumn,
			Message: "wrap column must be >= 1",
		})
	}

	if !knownQuotes[p.Quote] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "printer.quote",
			Value:   p.Quote,
			Message: fmt.Sprintf("invalid quote %q; must be one of: double, single, auto", p.Quote),
		})
	}

	if !knownTerminators[p.LineTerminator] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "printer.line_terminator",
			Value:   p.LineTerminator,
			Message: fmt.Sprintf("unsupported line terminator %q", p.LineTerminator),
		})
	}
}

// validateIgnorePatterns checks that ignore patterns compile the way the
// runner compiles them.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Verify.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("verify.ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if a parser is registered under the flavor.
func IsValidFlavor(f config.Flavor) bool {
	return slices.Contains(reprint.Parsers(), string(f))
}

// IsValidQuote returns true if the quote style is valid.
func IsValidQuote(q string) bool {
	return knownQuotes[q]
}
