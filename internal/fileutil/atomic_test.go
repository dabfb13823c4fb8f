package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "secret.hcl")
	payload := []byte("secret = 42\n")

	if err := WriteFileAtomic(target, payload, 0o600); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("File content mismatch: got %q, want %q", data, payload)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("File permissions mismatch: got %o, want %o", info.Mode().Perm(), 0o600)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "secret.hcl" {
			t.Errorf("Unexpected file in directory: %s", entry.Name())
		}
	}
}

func TestWriteFileAtomicCreatesParents(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "world", "data", "secret.hcl")
	if err := WriteFileAtomic(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestWriteFileAtomicOverwrite(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "secret.hcl")
	if err := WriteFileAtomic(target, []byte("initial"), 0o644); err != nil {
		t.Fatalf("Initial write failed: %v", err)
	}
	if err := WriteFileAtomic(target, []byte("updated"), 0o644); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "updated" {
		t.Errorf("File content mismatch: got %q, want %q", data, "updated")
	}
}

func TestWriteFileAtomicParentIsFile(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := WriteFileAtomic(filepath.Join(blocker, "secret.hcl"), []byte("x"), 0o644); err == nil {
		t.Error("Expected error when parent path is a regular file")
	}
}

func TestSyncDir(t *testing.T) {
	t.Parallel()

	if err := syncDir(t.TempDir()); err != nil {
		t.Errorf("syncDir on existing directory: %v", err)
	}
	if err := syncDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestSyncUnsupported(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("directory sync is always skipped on windows")
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "einval", err: &os.PathError{Op: "sync", Path: "dir", Err: syscall.EINVAL}, want: true},
		{name: "enotsup", err: &os.PathError{Op: "sync", Path: "dir", Err: syscall.ENOTSUP}, want: true},
		{name: "eio", err: &os.PathError{Op: "sync", Path: "dir", Err: syscall.EIO}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := syncUnsupported(tt.err); got != tt.want {
				t.Errorf("syncUnsupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
