package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for newly created files.
const DefaultFileMode os.FileMode = 0o644

// BackupSuffix is appended to a file's path to name its backup.
const BackupSuffix = ".tsreprint.bak"

// WriteAtomic writes content to a temp file in the same directory, syncs
// it and renames it over path. On error the original file is untouched.
// A zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

// ReplaceOptions controls Replace.
type ReplaceOptions struct {
	// Backup keeps the original content in path+BackupSuffix. An existing
	// backup is never overwritten, so repeated runs keep the first original.
	Backup bool
}

// Replace writes content over the file described by snap. It returns false
// without writing when content equals what was read, and ErrModified when
// the file changed on disk in the meantime. The file mode is preserved.
func Replace(ctx context.Context, snap *Snapshot, original, content []byte, opts ReplaceOptions) (bool, error) {
	if bytes.Equal(original, content) {
		return false, nil
	}

	changed, err := snap.Changed(ctx)
	if err != nil {
		return false, err
	}
	if changed {
		return false, fmt.Errorf("%w: %s", ErrModified, snap.Path)
	}

	if opts.Backup {
		if err := writeBackup(ctx, snap.Path, original, snap.Mode); err != nil {
			return false, err
		}
	}

	if err := WriteAtomic(ctx, snap.Path, content, snap.Mode.Perm()); err != nil {
		return false, err
	}

	return true, nil
}

func writeBackup(ctx context.Context, path string, original []byte, mode os.FileMode) error {
	backup := path + BackupSuffix

	if _, err := os.Stat(backup); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backup, original, mode.Perm()); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	return nil
}
