package jsstr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/internal/jsstr"
)

func TestQuote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"blue"`, jsstr.Quote("blue", '"'))
	assert.Equal(t, `'it\'s'`, jsstr.Quote("it's", '\''))
	assert.Equal(t, `"say \"hi\""`, jsstr.Quote(`say "hi"`, '"'))
	assert.Equal(t, `"a\nb\\c"`, jsstr.Quote("a\nb\\c", '"'))
	assert.Equal(t, `"\x01"`, jsstr.Quote("\x01", '"'))
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: `"blue"`, want: "blue"},
		{raw: `'it\'s'`, want: "it's"},
		{raw: `"\x41B\u{43}"`, want: "ABC"},
		{raw: "\"\U0001F600\"", want: "\U0001F600"},
		{raw: `"\uD83D\uDE00"`, want: "\U0001F600"},
		{raw: "\"a\\\nb\"", want: "ab"},
		{raw: `"\q"`, want: "q"},
		{raw: `"\0"`, want: "\x00"},
	}

	for _, testCase := range tests {
		t.Run(testCase.raw, func(t *testing.T) {
			t.Parallel()

			got, err := jsstr.Unquote(testCase.raw)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}

	_, err := jsstr.Unquote(`"abc`)
	require.Error(t, err)

	_, err = jsstr.Unquote(`"\u12"`)
	require.ErrorIs(t, err, jsstr.ErrBadEscape)
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{raw: "6", want: 6, ok: true},
		{raw: "0xf00d", want: 61453, ok: true},
		{raw: "0b1010", want: 10, ok: true},
		{raw: "0o744", want: 484, ok: true},
		{raw: "1_000", want: 1000, ok: true},
		{raw: "1.5e3", want: 1500, ok: true},
		{raw: ".5", want: 0.5, ok: true},
		{raw: "017", want: 15, ok: true},
		{raw: "019", want: 19, ok: true},
		{raw: "0xg", ok: false},
		{raw: "", ok: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.raw, func(t *testing.T) {
			t.Parallel()

			got, ok := jsstr.ParseNumber(testCase.raw)
			assert.Equal(t, testCase.ok, ok)
			if testCase.ok {
				assert.InDelta(t, testCase.want, got, 0)
			}
		})
	}
}
