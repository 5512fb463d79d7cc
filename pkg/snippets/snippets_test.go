package snippets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/langdetect"
	"github.com/yaklabco/tsreprint/pkg/snippets"
)

const readme = "# Usage\n" +
	"\n" +
	"```ts\n" +
	"let decimal: number = 6;\n" +
	"```\n" +
	"\n" +
	"```sh\n" +
	"npm install\n" +
	"```\n" +
	"\n" +
	"- item\n" +
	"\n" +
	"  ```js title=\"b.js\"\n" +
	"  foo();\n" +
	"  bar();\n" +
	"  ```\n" +
	"\n" +
	"```typescript\n" +
	"```\n"

func TestExtract(t *testing.T) {
	t.Parallel()

	got, err := snippets.Extract(context.Background(), []byte(readme))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 0, got[0].Index)
	assert.Equal(t, "ts", got[0].Info)
	assert.Equal(t, langdetect.TypeScript, got[0].Flavor)
	assert.Equal(t, 4, got[0].Line)
	assert.Equal(t, "let decimal: number = 6;\n", string(got[0].Content))
	assert.Equal(t, "README.md:4", got[0].Name("README.md"))

	assert.Equal(t, 1, got[1].Index)
	assert.Equal(t, langdetect.JavaScript, got[1].Flavor)
	assert.Equal(t, 14, got[1].Line)
	assert.Equal(t, "foo();\nbar();\n", string(got[1].Content))
}

func TestExtract_NoFences(t *testing.T) {
	t.Parallel()

	got, err := snippets.Extract(context.Background(), []byte("plain text\n\n    indented code\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := snippets.Extract(ctx, []byte(readme))
	require.ErrorIs(t, err, context.Canceled)
}
