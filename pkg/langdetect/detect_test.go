package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsreprint/pkg/langdetect"
)

func TestFlavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "typescript extension",
			path:     "src/index.ts",
			content:  "x;",
			expected: langdetect.TypeScript,
		},
		{
			name:     "tsx extension",
			path:     "App.tsx",
			content:  "x;",
			expected: langdetect.TypeScript,
		},
		{
			name:     "javascript extension",
			path:     "fixtures/input.js",
			content:  "x;",
			expected: langdetect.JavaScript,
		},
		{
			name:     "qt translation file",
			path:     "strings.ts",
			content:  "<?xml version=\"1.0\"?>\n<TS version=\"2.1\"></TS>\n",
			expected: "",
		},
		{
			name:     "node shebang",
			path:     "",
			content:  "#!/usr/bin/env node\nmain();\n",
			expected: langdetect.JavaScript,
		},
		{
			name:     "interface snippet",
			content:  "interface Point {\n  x: number;\n}",
			expected: langdetect.TypeScript,
		},
		{
			name:     "annotated variable",
			content:  "let color: string = \"blue\";",
			expected: langdetect.TypeScript,
		},
		{
			name:     "type alias",
			content:  "type A = number;",
			expected: langdetect.TypeScript,
		},
		{
			name:     "arrow function",
			content:  "const add = (a, b) => a + b;",
			expected: langdetect.JavaScript,
		},
		{
			name:     "require call",
			content:  "require(\"fs\");",
			expected: langdetect.JavaScript,
		},
		{
			name:     "prose",
			content:  "Run the tests before sending a change.",
			expected: "",
		},
		{
			name:     "empty",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.Flavor(tt.path, []byte(tt.content)))
		})
	}
}

func TestFenceFlavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info     string
		expected string
	}{
		{"ts", langdetect.TypeScript},
		{"TypeScript", langdetect.TypeScript},
		{"tsx title=\"App.tsx\"", langdetect.TypeScript},
		{"{.ts}", langdetect.TypeScript},
		{"js", langdetect.JavaScript},
		{"javascript", langdetect.JavaScript},
		{"mjs", langdetect.JavaScript},
		{"go", ""},
		{"python", ""},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, langdetect.FenceFlavor(tt.info))
		})
	}
}
