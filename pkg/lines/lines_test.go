package lines_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsreprint/pkg/lines"
	"github.com/yaklabco/tsreprint/pkg/source"
)

func render(l lines.Lines) string {
	return l.String(lines.RenderOptions{TabWidth: 2})
}

func TestFromString(t *testing.T) {
	t.Parallel()

	l := lines.FromString("{\n  a;\n\n  b;\n}", 2)

	assert.Equal(t, 5, l.Len())
	assert.Equal(t, 2, l.Line(1).Indent)
	assert.Equal(t, "a;", l.Line(1).Text)
	assert.True(t, l.IsMultiline())
	assert.Equal(t, "{\n  a;\n\n  b;\n}", render(l))
	assert.True(t, lines.FromString("", 2).IsEmpty())
}

func TestConcat(t *testing.T) {
	t.Parallel()

	body := lines.FromString("{\n  a: 1\n}", 2)
	got := lines.Concat(lines.Text("let x = "), body, lines.Text(";"))

	assert.Equal(t, "let x = {\n  a: 1\n};", render(got))
	assert.Equal(t, "let x = {", render(lines.Concat(lines.Text("let x = "), lines.Text("{"))))
	assert.Equal(t, "a", render(lines.Concat(lines.Empty(), lines.Text("a"), lines.Empty())))
}

func TestConcatAfterLineComment(t *testing.T) {
	t.Parallel()

	comment := lines.Text("a // note").MarkLineComment()
	got := lines.Concat(comment, lines.Text(")"))

	assert.Equal(t, "a // note\n)", render(got))
	assert.False(t, got.LastLineComment())
}

func TestIndent(t *testing.T) {
	t.Parallel()

	block := lines.FromString("{\nb;\n}", 2)

	assert.Equal(t, "  {\n  b;\n  }", render(block.Indent(2)))
	assert.Equal(t, "{\n  b;\n  }", render(block.IndentTail(2)))
	assert.Equal(t, render(block), render(block.Indent(0)))
}

func TestJoin(t *testing.T) {
	t.Parallel()

	items := []lines.Lines{lines.Text("a"), lines.Text("b"), lines.Text("c")}

	assert.Equal(t, "a, b, c", render(lines.Join(lines.Text(", "), items)))
	assert.Equal(t, "a,\nb,\nc", render(lines.Join(lines.FromString(",\n", 2), items)))
	assert.Empty(t, render(lines.Join(lines.Text(", "), nil)))
}

func TestVerbatimLinesKeepTheirIndentation(t *testing.T) {
	t.Parallel()

	tmpl := lines.Verbatim("`a\n    b\nc`")
	got := lines.Concat(lines.Text("x = "), tmpl).Indent(4)

	assert.Equal(t, "    x = `a\n    b\nc`", render(got))
}

func TestRenderWithTabs(t *testing.T) {
	t.Parallel()

	l := lines.FromString("if (a) {\nb;\n}", 4).IndentTail(5)
	opts := lines.RenderOptions{TabWidth: 4, UseTabs: true, LineTerminator: "\r\n"}

	assert.Equal(t, "if (a) {\r\n\t b;\r\n\t }", l.String(opts))
}

func TestWidths(t *testing.T) {
	t.Parallel()

	l := lines.FromString("ab\n    cdef\nx", 2)

	assert.Equal(t, 8, l.Width())
	assert.Equal(t, 2, l.FirstLineWidth())
	assert.Equal(t, 1, l.LastLineWidth())
}

func TestFromSourceRelativeToBase(t *testing.T) {
	t.Parallel()

	buf := source.New("", "function f() {\n    if (a) {\n      b();\n    }\n}")
	start := 19 // "if"
	end := buf.Len() - 2

	l := lines.FromSource(buf, start, end, lines.SourceOptions{TabWidth: 2, Base: 4})

	assert.Equal(t, "if (a) {\n  b();\n}", render(l))
	assert.Equal(t, "    if (a) {\n      b();\n    }", render(l.Indent(4)))
}

func TestFromSourcePreservesOriginalWhitespace(t *testing.T) {
	t.Parallel()

	content := "{\n\tlet a;   \n  \t\n\tlet b;\n}"
	buf := source.New("", content)

	l := lines.FromSource(buf, 0, buf.Len(), lines.SourceOptions{TabWidth: 4})

	assert.Equal(t, content, l.String(lines.RenderOptions{TabWidth: 4}))
	assert.Equal(t, content, l.String(lines.RenderOptions{TabWidth: 4, UseTabs: true}))
}

func TestFromSourceLocksTemplateLines(t *testing.T) {
	t.Parallel()

	content := "x = `a\n  b\n`;"
	buf := source.New("", content)
	tmpl := buf.NewRange(4, 12)

	l := lines.FromSource(buf, 0, buf.Len(), lines.SourceOptions{
		TabWidth: 2,
		Verbatim: []source.Range{tmpl},
	})

	assert.Equal(t, "  x = `a\n  b\n`;", render(l.Indent(2)))
}

func TestFromSourceCRLF(t *testing.T) {
	t.Parallel()

	content := "a;\r\n  b;\r\n"
	buf := source.New("", content)

	l := lines.FromSource(buf, 0, buf.Len(), lines.SourceOptions{TabWidth: 2})

	assert.Equal(t, content, l.String(lines.RenderOptions{TabWidth: 2, LineTerminator: "\r\n"}))
}
