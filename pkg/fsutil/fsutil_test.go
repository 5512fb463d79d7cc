package fsutil_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/tsreprint/pkg/fsutil"
)

func write(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ts")
	write(t, path, "let a = 1;\n", 0o600)

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "let a = 1;\n" {
		t.Errorf("content = %q", content)
	}
	if snap.Size != int64(len(content)) || snap.Mode.Perm() != 0o600 {
		t.Errorf("unexpected snapshot %+v", snap)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "nope.ts"), want: fsutil.ErrNotFound},
		{name: "directory", path: dir, want: fsutil.ErrIsDirectory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := fsutil.ReadFile(ctx, tt.path); !errors.Is(err, tt.want) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := fsutil.ReadFile(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.ts")
	write(t, path, "a", 0o644)

	_, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		t.Fatal(err)
	}

	if changed, err := snap.Changed(ctx); err != nil || changed {
		t.Fatalf("Changed() = %v, %v; want false", changed, err)
	}

	write(t, path, "bb", 0o644)
	if changed, err := snap.Changed(ctx); err != nil || !changed {
		t.Fatalf("Changed() after write = %v, %v; want true", changed, err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if changed, err := snap.Changed(ctx); err != nil || !changed {
		t.Fatalf("Changed() after delete = %v, %v; want true", changed, err)
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.ts")

	if err := fsutil.WriteAtomic(ctx, path, []byte("x;\n"), 0); err != nil {
		t.Fatalf("WriteAtomic() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != fsutil.DefaultFileMode {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestWriteAtomic_MissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "out.ts")
	if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged content is not written", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.ts")
		write(t, path, "a;\n", 0o644)
		original, snap, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}

		written, err := fsutil.Replace(ctx, snap, original, []byte("a;\n"), fsutil.ReplaceOptions{Backup: true})
		if err != nil || written {
			t.Fatalf("Replace() = %v, %v; want false, nil", written, err)
		}
		if _, err := os.Stat(path + fsutil.BackupSuffix); !os.IsNotExist(err) {
			t.Error("no backup expected for an unchanged file")
		}
	})

	t.Run("writes and keeps first backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.ts")
		write(t, path, "a ;\n", 0o600)

		for i, next := range []string{"a;\n", "b;\n"} {
			original, snap, err := fsutil.ReadFile(ctx, path)
			if err != nil {
				t.Fatal(err)
			}
			written, err := fsutil.Replace(ctx, snap, original, []byte(next), fsutil.ReplaceOptions{Backup: true})
			if err != nil || !written {
				t.Fatalf("Replace() #%d = %v, %v", i, written, err)
			}
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "b;\n" {
			t.Errorf("content = %q", got)
		}

		backup, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(backup, []byte("a ;\n")) {
			t.Errorf("backup = %q, want the first original", backup)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode not preserved: %v", info.Mode().Perm())
		}
	})

	t.Run("refuses concurrent modification", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.ts")
		write(t, path, "a;\n", 0o644)
		original, snap, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatal(err)
		}
		write(t, path, "edited elsewhere;\n", 0o644)

		_, err = fsutil.Replace(ctx, snap, original, []byte("b;\n"), fsutil.ReplaceOptions{})
		if !errors.Is(err, fsutil.ErrModified) {
			t.Fatalf("Replace() error = %v, want ErrModified", err)
		}
	})
}
