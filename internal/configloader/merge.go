package configloader

import "github.com/yaklabco/tsreprint/pkg/config"

// Overrides holds settings given on the command line. A nil field leaves
// the loaded value untouched, so "--use-tabs=false" can override a config
// file that enables tabs.
type Overrides struct {
	TabWidth       *int
	UseTabs        *bool
	Quote          *string
	WrapColumn     *int
	LineTerminator *string
	Flavor         *config.Flavor
	Strict         *bool
	Jobs           *int
	Ignore         []string
	SyntaxCheck    *bool
	Pretty         *bool
	MaxParseRatio  *float64
}

// merge applies overrides onto a copy of base.
//   - Pointer fields: applied when non-nil
//   - Slices: appended to the base patterns
func merge(base *config.Config, overrides *Overrides) *config.Config {
	if base == nil {
		base = config.NewConfig()
	}
	result := base.Clone()
	if overrides == nil {
		return result
	}

	setIf(&result.Printer.TabWidth, overrides.TabWidth)
	setIf(&result.Printer.UseTabs, overrides.UseTabs)
	setIf(&result.Printer.Quote, overrides.Quote)
	setIf(&result.Printer.WrapColumn, overrides.WrapColumn)
	setIf(&result.Printer.LineTerminator, overrides.LineTerminator)
	setIf(&result.Parser.Flavor, overrides.Flavor)
	setIf(&result.Parser.Strict, overrides.Strict)
	setIf(&result.Verify.Jobs, overrides.Jobs)
	setIf(&result.Verify.SyntaxCheck, overrides.SyntaxCheck)
	setIf(&result.Verify.Pretty, overrides.Pretty)
	setIf(&result.Verify.MaxParseFailureRatio, overrides.MaxParseRatio)

	if len(overrides.Ignore) > 0 {
		result.Verify.Ignore = append(result.Verify.Ignore, overrides.Ignore...)
	}

	return result
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
