package printer

import (
	"errors"
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/lines"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// Quote styles for string literals that must be re-quoted.
const (
	QuoteDouble = "double"
	QuoteSingle = "single"
	QuoteAuto   = "auto"
)

// Options controls the layout of freshly printed code. Code reused from the
// original source keeps its own layout.
type Options struct {
	// TabWidth is the number of columns per indentation level.
	TabWidth int

	// UseTabs indents with tab characters instead of spaces.
	UseTabs bool

	// Quote selects the quote for re-quoted strings: double, single or auto.
	Quote string

	// WrapColumn is the width above which argument and parameter lists are
	// broken one item per line.
	WrapColumn int

	// LineTerminator separates output lines. Empty means "\n".
	LineTerminator string

	// ObjectCurlySpacing puts spaces inside single-line braces.
	ObjectCurlySpacing bool

	// TrailingComma adds a comma after the last item of multi-line lists.
	TrailingComma bool
}

// DefaultOptions returns the default printing options.
func DefaultOptions() Options {
	return Options{
		TabWidth:           source.DefaultTabWidth,
		Quote:              QuoteDouble,
		WrapColumn:         74,
		LineTerminator:     "\n",
		ObjectCurlySpacing: true,
	}
}

// ErrInvalidOptions is wrapped by every Validate failure.
var ErrInvalidOptions = errors.New("invalid printer options")

// Validate checks option values.
func (o Options) Validate() error {
	if o.TabWidth < 1 {
		return fmt.Errorf("%w: tabWidth must be positive, got %d", ErrInvalidOptions, o.TabWidth)
	}
	if o.WrapColumn < 1 {
		return fmt.Errorf("%w: wrapColumn must be positive, got %d", ErrInvalidOptions, o.WrapColumn)
	}

	switch o.Quote {
	case QuoteDouble, QuoteSingle, QuoteAuto:
	default:
		return fmt.Errorf("%w: quote must be double, single or auto, got %q", ErrInvalidOptions, o.Quote)
	}

	switch o.LineTerminator {
	case "", "\n", "\r\n", "\r":
	default:
		return fmt.Errorf("%w: unsupported line terminator %q", ErrInvalidOptions, o.LineTerminator)
	}

	return nil
}

// Render converts printed lines to text.
func (o Options) Render(l lines.Lines) string {
	return l.String(lines.RenderOptions{
		TabWidth:       o.TabWidth,
		UseTabs:        o.UseTabs,
		LineTerminator: o.LineTerminator,
	})
}
