package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/config"
)

// envVarPrefix is the prefix for all tsreprint environment variables.
const envVarPrefix = "TSREPRINT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TAB_WIDTH":               {field: "printer.tab_width", typ: envTypeInt, description: "Columns per indentation level"},
	"USE_TABS":                {field: "printer.use_tabs", typ: envTypeBool, description: "Indent with tabs: true or false"},
	"QUOTE":                   {field: "printer.quote", typ: envTypeString, description: "String quotes: double, single, or auto"},
	"WRAP_COLUMN":             {field: "printer.wrap_column", typ: envTypeInt, description: "Column at which printed lists wrap"},
	"FLAVOR":                  {field: "parser.flavor", typ: envTypeString, description: "Parser flavor: typescript or javascript"},
	"STRICT":                  {field: "parser.strict", typ: envTypeBool, description: "Disable semicolon insertion: true or false"},
	"JOBS":                    {field: "verify.jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"IGNORE":                  {field: "verify.ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"SYNTAX_CHECK":            {field: "verify.syntax_check", typ: envTypeBool, description: "Check pretty output with tree-sitter: true or false"},
	"MAX_PARSE_FAILURE_RATIO": {field: "verify.max_parse_failure_ratio", typ: envTypeFloat, description: "Allowed share of sources that fail to parse (0-1)"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with TSREPRINT_ (e.g., TSREPRINT_QUOTE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "printer.quote":
		cfg.Printer.Quote = value
	case "parser.flavor":
		cfg.Parser.Flavor = config.Flavor(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "printer.use_tabs":
		cfg.Printer.UseTabs = value
	case "parser.strict":
		cfg.Parser.Strict = value
	case "verify.syntax_check":
		cfg.Verify.SyntaxCheck = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "printer.tab_width":
		cfg.Printer.TabWidth = value
	case "printer.wrap_column":
		cfg.Printer.WrapColumn = value
	case "verify.jobs":
		cfg.Verify.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "verify.max_parse_failure_ratio":
		cfg.Verify.MaxParseFailureRatio = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "verify.ignore":
		cfg.Verify.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
