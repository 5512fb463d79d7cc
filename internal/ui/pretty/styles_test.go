package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
)

func TestNewStyles_ColorDisabledIsPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, render := range map[string]func(...string) string{
		"Bold":       styles.Bold.Render,
		"Failure":    styles.Failure.Render,
		"Stage":      styles.Stage.Render,
		"DiffAdd":    styles.DiffAdd.Render,
		"DiffRemove": styles.DiffRemove.Render,
		"Location":   styles.Location.Render,
	} {
		assert.Equal(t, "reprint-identity", render("reprint-identity"), "%s should not add formatting", name)
	}
}

func TestNewStyles_ColorEnabledKeepsText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Without a TTY lipgloss may drop the escape codes; the text survives.
	assert.Contains(t, styles.Failure.Render("failed"), "failed")
	assert.Contains(t, styles.Success.Render("passed"), "passed")
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mode   string
		writer io.Writer
		want   bool
	}{
		{name: "always with buffer", mode: "always", writer: &bytes.Buffer{}, want: true},
		{name: "never with stdout", mode: "never", writer: os.Stdout, want: false},
		{name: "auto with buffer", mode: "auto", writer: &bytes.Buffer{}, want: false},
		{name: "unknown mode behaves like auto", mode: "sometimes", writer: &bytes.Buffer{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always overrides NO_COLOR")
}

func TestTerminalWidth_NonTTY(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	assert.Equal(t, pretty.DefaultTermWidth, pretty.TerminalWidth(f))
}
