// Package snippets extracts TypeScript and JavaScript code fences from
// Markdown documents so that documentation examples can be round-tripped
// like source files.
package snippets

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/tsreprint/pkg/langdetect"
)

// Snippet is the content of one fenced code block.
type Snippet struct {
	// Index counts the extracted snippets of a document from zero.
	Index int

	// Info is the fence info string, such as "ts title=a.ts".
	Info string

	// Flavor is the parser flavor the info string names.
	Flavor string

	// Line is the 1-based line of the first content line in the document.
	Line int

	// Offset is the byte offset of the first content line.
	Offset int

	Content []byte
}

// Name identifies the snippet within the document at path.
func (s Snippet) Name(path string) string {
	return fmt.Sprintf("%s:%d", path, s.Line)
}

// Extractor finds code fences with goldmark.
type Extractor struct {
	md goldmark.Markdown
}

// New creates an Extractor that understands GitHub Flavored Markdown.
func New() *Extractor {
	return &Extractor{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Extract returns the non-empty fences whose info string names TypeScript
// or JavaScript, in document order.
func (e *Extractor) Extract(ctx context.Context, source []byte) ([]Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extract cancelled: %w", err)
	}

	doc := e.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))

	var out []Snippet
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		if snippet, ok := fromFence(fence, source); ok {
			snippet.Index = len(out)
			out = append(out, snippet)
		}

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk markdown: %w", err)
	}

	return out, nil
}

// Extract runs a default Extractor.
func Extract(ctx context.Context, source []byte) ([]Snippet, error) {
	return New().Extract(ctx, source)
}

func fromFence(fence *ast.FencedCodeBlock, source []byte) (Snippet, bool) {
	var info string
	if fence.Info != nil {
		info = string(fence.Info.Segment.Value(source))
	}

	flavor := langdetect.FenceFlavor(info)
	lines := fence.Lines()
	if flavor == "" || lines.Len() == 0 {
		return Snippet{}, false
	}

	var content bytes.Buffer
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		content.Write(segment.Value(source))
	}

	start := lines.At(0).Start

	return Snippet{
		Info:    info,
		Flavor:  flavor,
		Line:    bytes.Count(source[:start], []byte("\n")) + 1,
		Offset:  start,
		Content: content.Bytes(),
	}, true
}
