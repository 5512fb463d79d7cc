package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
	"github.com/yaklabco/tsreprint/pkg/fix"
)

// displayPath shortens path relative to the working directory when that
// does not climb out of it.
func (g *globalFlags) displayPath(path string) string {
	dir, err := g.workDir()
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// writeDiff writes the unified diff between original and modified, if any.
// It reports whether the texts differ.
func (g *globalFlags) writeDiff(w io.Writer, path, original, modified string) (bool, error) {
	diff, err := fix.UnifiedDiff(g.displayPath(path), original, modified)
	if err != nil {
		return false, err
	}
	if diff == "" {
		return false, nil
	}

	if pretty.IsColorEnabled(g.color, w) {
		diff = fix.ColorizeDiff(diff)
	}
	if _, err := io.WriteString(w, diff); err != nil {
		return true, fmt.Errorf("write diff: %w", err)
	}

	return true, nil
}
