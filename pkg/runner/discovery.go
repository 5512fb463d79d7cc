package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds the files matching opts and returns their absolute paths
// in sorted order. Files named explicitly are kept whatever their
// extension; directories contribute files with one of the configured
// extensions. Sidecar files are never returned.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, filter, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		for _, path := range discovered {
			add(path)
		}
	}

	sort.Strings(files)

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// filter decides which walked paths are kept.
type filter struct {
	workDir    string
	extensions map[string]bool
	include    []glob.Glob
	exclude    []glob.Glob
}

func newFilter(workDir string, opts Options) (*filter, error) {
	f := &filter{workDir: workDir, extensions: make(map[string]bool)}
	for _, ext := range opts.effectiveExtensions() {
		f.extensions[strings.ToLower(ext)] = true
	}

	var err error
	if f.include, err = compileGlobs(opts.IncludeGlobs); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(opts.ExcludeGlobs); err != nil {
		return nil, err
	}

	return f, nil
}

// compileGlobs compiles patterns with '/' as separator, so that "*" stays
// within one path segment and "**" crosses segments. A leading "**/" also
// matches at the top level.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		if base, ok := strings.CutSuffix(pattern, "/**"); ok {
			variants = append(variants, base)
		}

		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			out = append(out, compiled)
		}
	}

	return out, nil
}

func (f *filter) rel(path string) string {
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func matchAny(globs []glob.Glob, rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

func (f *filter) skipDir(path string) bool {
	return matchAny(f.exclude, f.rel(path))
}

func (f *filter) keepFile(path string) bool {
	if filepath.Base(path) == SidecarName {
		return false
	}
	if !f.extensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}

	rel := f.rel(path)
	if matchAny(f.exclude, rel) {
		return false
	}

	return len(f.include) == 0 || matchAny(f.include, rel)
}

func walkDirectory(ctx context.Context, root string, f *filter, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), ".") || entry.Name() == "node_modules") {
				return filepath.SkipDir
			}
			if path != root && f.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks {
					return nil
				}
				sub, err := walkDirectory(ctx, realPath, f, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if f.keepFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
