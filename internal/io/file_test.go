package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cover.jpg")
	dst := filepath.Join(dir, "copy.jpg")
	content := []byte{0xFF, 0xD8, 0xFF, 0x00, 0x01, 0x02, 0x03}

	if err := os.WriteFile(src, content, 0640); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile failed: %v", err)
	}

	copied, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("failed to read copy: %v", err)
	}
	if string(copied) != string(content) {
		t.Error("copy is not byte identical to the source")
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("failed to stat copy: %v", err)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("copy mode = %v, want %v", info.Mode().Perm(), os.FileMode(0640))
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyFile(context.Background(), filepath.Join(dir, "absent"), filepath.Join(dir, "out"))
	if err == nil {
		t.Error("expected error for missing source, got nil")
	}
}

func TestCopyFile_Cancelled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := CopyFile(ctx, src, filepath.Join(dir, "dst")); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(nested)
	if err != nil || !info.IsDir() {
		t.Errorf("expected directory at %s", nested)
	}

	// Idempotent on existing directories.
	if err := EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}
