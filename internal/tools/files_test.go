package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadFileContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	writeFile(t, path, "hello world")

	got, err := ReadFileContent(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("expected file content, got %q", got)
	}

	got, err = ReadFileContent(path, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "hello") || !strings.Contains(got, "truncated") {
		t.Errorf("expected truncated content with marker, got %q", got)
	}

	if _, err := ReadFileContent(filepath.Join(dir, "missing.txt"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "payload")

	dst := filepath.Join(dir, "sub", "b.txt")
	if _, err := CopyFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("expected copied content, got %q (%v)", data, err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("expected source to survive a copy")
	}

	// Copying into a directory keeps the base name.
	destDir := filepath.Join(dir, "destdir")
	if err := os.Mkdir(destDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := CopyFile(src, destDir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(destDir, "a.txt")); err != nil {
		t.Error("expected file under destination directory")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "payload")

	dst := filepath.Join(dir, "b.txt")
	if _, err := MoveFile(src, dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("expected source to be gone after move")
	}
	if _, err := os.Stat(dst); err != nil {
		t.Error("expected destination to exist after move")
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	writeFile(t, path, "x")

	msg, err := DeleteFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "doomed.txt") {
		t.Errorf("expected confirmation naming the file, got %q", msg)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}

	if _, err := DeleteFile(dir); err == nil {
		t.Error("expected refusal to delete a directory")
	}
	if _, err := DeleteFile(path); err == nil {
		t.Error("expected error deleting an already-removed file")
	}
}

func TestCreateFolderAndList(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	if _, err := CreateFolder(nested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi, err := os.Stat(nested); err != nil || !fi.IsDir() {
		t.Fatal("expected nested directory to exist")
	}

	writeFile(t, filepath.Join(dir, "z.txt"), "")
	got, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "a/") || !strings.Contains(got, "z.txt") {
		t.Errorf("expected listing with dirs first, got %q", got)
	}
	if strings.Index(got, "a/") > strings.Index(got, "z.txt") {
		t.Errorf("expected directories before files, got %q", got)
	}
}

func TestSearchFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "report-final.txt"), "")
	writeFile(t, filepath.Join(dir, "other.md"), "")

	got, err := SearchFile("REPORT", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "report-final.txt") {
		t.Errorf("expected case-insensitive match, got %q", got)
	}

	got, err = SearchFile("nosuchthing", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "No files matching") {
		t.Errorf("expected empty-result message, got %q", got)
	}
}
