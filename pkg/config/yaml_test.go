package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/config"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/reprint"
)

func TestNewConfig_MatchesPrinterDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, printer.DefaultOptions(), cfg.PrinterOptions())
	assert.Equal(t, config.FlavorTypeScript, cfg.Parser.Flavor)
	assert.InDelta(t, 0.2, cfg.Verify.MaxParseFailureRatio, 1e-9)
	assert.True(t, cfg.Verify.Pretty)
}

func TestReprintOptions(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Parser.Flavor = config.FlavorJavaScript
	cfg.Parser.Strict = true
	cfg.Printer.TabWidth = 2

	opts := cfg.ReprintOptions()
	assert.Equal(t, reprint.ParserJavaScript, opts.Parser)
	assert.True(t, opts.Strict)
	assert.Equal(t, 2, opts.Printer.TabWidth)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("printer:\n  tab_width: 2\n  use_tabs: true\nverify:\n  ignore: [\"vendor/**\"]\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Printer.TabWidth)
	assert.True(t, cfg.Printer.UseTabs)
	assert.Equal(t, printer.QuoteDouble, cfg.Printer.Quote, "absent keys keep their default")
	assert.True(t, cfg.Printer.ObjectCurlySpacing)
	assert.Equal(t, []string{"vendor/**"}, cfg.Verify.Ignore)
}

func TestFromYAML_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
}

func TestFromYAML_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := config.FromYAML([]byte("printer:\n  tabwidth: 2\n"))
	require.Error(t, err)
}

func TestDecodeInto_ExplicitFalse(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	require.NoError(t, config.DecodeInto([]byte("printer:\n  object_curly_spacing: false\n"), cfg))
	assert.False(t, cfg.Printer.ObjectCurlySpacing)
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Printer.Quote = printer.QuoteSingle
	original.Verify.Jobs = 3

	data, err := original.ToYAML()
	require.NoError(t, err)

	decoded, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	var nilConfig *config.Config
	data, err = nilConfig.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Contains(t, string(data), "# header\n\nprinter:\n")
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.Clone())

	original := config.NewConfig()
	original.Verify.Ignore = []string{"a/**"}

	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	clone.Verify.Ignore[0] = "b/**"
	clone.Verify.Extensions[0] = ".mts"
	assert.Equal(t, "a/**", original.Verify.Ignore[0])
	assert.Equal(t, ".ts", original.Verify.Extensions[0])
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	cfg, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	cfg, err = config.FromYAML(full)
	require.NoError(t, err)
	assert.Equal(t, config.NewConfig(), cfg)
	assert.Contains(t, string(full), "max_parse_failure_ratio: 0.2")
}
