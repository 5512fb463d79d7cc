package cli

import (
	"errors"

	"github.com/yaklabco/tsreprint/internal/configloader"
	"github.com/yaklabco/tsreprint/pkg/fsutil"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
)

// Exit codes for tsreprint.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChecksFailed indicates a verify run with failures, or a
	// --check run that found files to rewrite.
	ExitChecksFailed = 1

	// ExitParseError indicates an input that does not parse.
	ExitParseError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrChecksFailed is returned when verification or --check found
	// problems that were already reported.
	ErrChecksFailed = errors.New("checks failed")

	// ErrUsage marks invalid flag combinations.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration errors.
	ErrConfig = errors.New("configuration error")
)

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var (
		parseErr      *typescript.ParseError
		validationErr *configloader.ValidationError
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrChecksFailed):
		return ExitChecksFailed
	case errors.As(err, &parseErr):
		return ExitParseError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig), errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory),
		errors.Is(err, fsutil.ErrModified):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// Silent reports whether err was already shown to the user.
func Silent(err error) bool {
	return errors.Is(err, ErrChecksFailed)
}
