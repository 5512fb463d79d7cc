//go:build stave

package main

import (
	"bytes"
	"cmp"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"te":   Test.Engine,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"fmt":  Lint.Fmt,
	"cmp":  Bench.Corpus,
	"cmpf": Bench.Fast,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the tsreprint binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/tsreprint", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/tsreprint is up to date")
		return nil
	}
	fmt.Println("Building tsreprint...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/tsreprint", "./cmd/tsreprint")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	if err := sh.Rm("coverage.out"); err != nil {
		return err
	}
	return sh.Rm("coverage.html")
}

// Install installs tsreprint to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing tsreprint...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/tsreprint")
}

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates a test coverage report and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("open", "coverage.html")
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Golden rewrites the runner's golden status file from the fixture corpus.
func (Test) Golden() error {
	fmt.Println("Updating runner golden files...")
	return sh.RunV("go", "test", "./pkg/runner/", "-run", "TestRunner_Fixtures", "-update")
}

// Engine runs the engine packages only, without the CLI and harness.
func (Test) Engine() error {
	return sh.RunV("go", "test", "-race",
		"./pkg/source/...", "./pkg/ast/...", "./pkg/lines/...", "./pkg/comments/...",
		"./pkg/printer/...", "./pkg/patcher/...", "./pkg/parser/...", "./pkg/reprint/...")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("ok: Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Fixtures,
	)
	fmt.Println("\nok: All CI gate checks passed!")
	return nil
}

// ModTidy fails when "go mod tidy" would change go.mod or go.sum.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	tracked := []string{"go.mod", "go.sum"}

	before := make(map[string][]byte, len(tracked))
	for _, name := range tracked {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[name] = data
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for _, name := range tracked {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[name], data) {
			return fmt.Errorf("%s changed after 'go mod tidy'; commit the result", name)
		}
	}
	fmt.Println("ok: go.mod/go.sum are tidy")
	return nil
}

// Fixtures runs the built binary over the runner fixtures. tree-sitter
// needs cgo, so release builds are native rather than cross-compiled.
func (CI) Fixtures() error {
	fmt.Println("Verifying fixtures with the built binary...")
	return sh.RunV("bin/tsreprint", "verify", "--color", "never", "--syntax-check", "pkg/runner/testdata/fixtures")
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Corpus builds the binary and verifies the round trips over a source
// corpus, TSREPRINT_CORPUS or the runner fixtures by default.
func (Bench) Corpus() error {
	st.Deps(Build)
	corpus := cmp.Or(os.Getenv("TSREPRINT_CORPUS"), "pkg/runner/testdata/fixtures")
	fmt.Printf("Verifying corpus %s...\n", corpus)
	start := time.Now()
	if err := sh.RunV("bin/tsreprint", "verify", "--format", "summary", corpus); err != nil {
		return fmt.Errorf("verify corpus: %w", err)
	}
	fmt.Printf("Corpus verified in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// Fast runs the parser and printer benchmarks only.
func (Bench) Fast() error {
	fmt.Println("Running parser and printer benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/parser/...", "./pkg/printer/...", "./pkg/langdetect/...")
}

// ---------------------------------------------------------------------------
// Helpers (unexported - not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
