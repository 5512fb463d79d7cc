package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigName is the file name written by "tsreprint init".
const ProjectConfigName = ".tsreprint.yml"

// ConfigPaths holds the configuration files found for one invocation. An
// empty field means no file exists for that layer.
type ConfigPaths struct {
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectNames = []string{ProjectConfigName, ".tsreprint.yaml", "tsreprint.yml", "tsreprint.yaml"}
	userNames    = []string{"config.yaml", "config.yml"}

	// A project never inherits configuration from above its repository.
	repositoryMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the user and project configuration for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{Project: project}
	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, userNames)
	}

	return paths, nil
}

// UserConfigDir is $XDG_CONFIG_HOME/tsreprint, or ~/.config/tsreprint when
// XDG_CONFIG_HOME is unset. It is empty when no home directory is known.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tsreprint")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "tsreprint")
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project configuration file. The walk ends without a
// match at a repository root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := absDir(startDir)
	if err != nil {
		return "", err
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if found := firstFile(dir, projectNames); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepositoryRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	return abs, nil
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

func isRepositoryRoot(dir string) bool {
	for _, marker := range repositoryMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
