package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
)

// Sidecar is the content of an options.json file.
type Sidecar struct {
	// Throws is the parse error message the fixtures of the directory are
	// expected to fail with.
	Throws string `json:"throws"`
}

// LoadSidecar reads the sidecar of the directory containing path. A
// missing sidecar yields nil and no error.
func LoadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), SidecarName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil //nolint:nilnil // no sidecar is not an error
	}
	if err != nil {
		return nil, fmt.Errorf("read sidecar: %w", err)
	}

	var sidecar Sidecar
	if err := json.Unmarshal(data, &sidecar); err != nil {
		return nil, fmt.Errorf("parse %s: %w", SidecarName, err)
	}

	return &sidecar, nil
}

// Expects reports whether err is the parse failure the sidecar declares.
func (s *Sidecar) Expects(err error) bool {
	if s == nil || s.Throws == "" || err == nil {
		return false
	}

	var parseErr *typescript.ParseError
	if errors.As(err, &parseErr) && parseErr.Message == s.Throws {
		return true
	}

	return err.Error() == s.Throws
}
