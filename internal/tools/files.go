package tools

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/amadeusai/amadeus/internal/schema"
)

const (
	defaultReadChars  = 4000
	searchResultLimit = 20
	listEntryLimit    = 50
)

func expandPath(p string) string {
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// SearchFile walks root looking for names containing pattern (case-insensitive).
func SearchFile(pattern, root string) (string, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		root = home
	}
	root = expandPath(root)
	needle := strings.ToLower(pattern)

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable directories
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if strings.Contains(strings.ToLower(d.Name()), needle) {
			matches = append(matches, path)
			if len(matches) >= searchResultLimit {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("search %s: %w", root, err)
	}
	if len(matches) == 0 {
		return fmt.Sprintf("No files matching %q found under %s.", pattern, root), nil
	}
	return fmt.Sprintf("Found %d matches:\n%s", len(matches), strings.Join(matches, "\n")), nil
}

// ReadFileContent returns at most maxChars characters of a text file.
func ReadFileContent(path string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = defaultReadChars
	}
	path = expandPath(path)
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, maxChars+1)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	content := string(buf[:min(n, maxChars)])
	if n > maxChars {
		content += fmt.Sprintf("\n... (truncated at %d characters)", maxChars)
	}
	return content, nil
}

// CopyFile copies source to destination, creating parent directories.
func CopyFile(source, destination string) (string, error) {
	source = expandPath(source)
	destination = expandPath(destination)

	src, err := os.Open(source)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", source, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", source, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory; only files can be copied", source)
	}

	if fi, err := os.Stat(destination); err == nil && fi.IsDir() {
		destination = filepath.Join(destination, filepath.Base(source))
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	dst, err := os.OpenFile(destination, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create %s: %w", destination, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy to %s: %w", destination, err)
	}
	return fmt.Sprintf("Copied %s to %s.", source, destination), nil
}

// MoveFile moves or renames source to destination.
func MoveFile(source, destination string) (string, error) {
	source = expandPath(source)
	destination = expandPath(destination)

	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("stat %s: %w", source, err)
	}
	if fi, err := os.Stat(destination); err == nil && fi.IsDir() {
		destination = filepath.Join(destination, filepath.Base(source))
	}
	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}
	if err := os.Rename(source, destination); err != nil {
		return "", fmt.Errorf("move %s: %w", source, err)
	}
	return fmt.Sprintf("Moved %s to %s.", source, destination), nil
}

// DeleteFile removes a single file. Directories are refused.
func DeleteFile(path string) (string, error) {
	path = expandPath(path)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory; refusing to delete it", path)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("delete %s: %w", path, err)
	}
	return fmt.Sprintf("Deleted %s.", path), nil
}

// CreateFolder makes a directory, including parents.
func CreateFolder(path string) (string, error) {
	path = expandPath(path)
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Sprintf("%s already exists.", path), nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	return fmt.Sprintf("Created folder %s.", path), nil
}

// ListDirectory lists directory entries, directories first.
func ListDirectory(path string) (string, error) {
	if path == "" {
		path = "."
	}
	path = expandPath(path)
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", path, err)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("%s is empty.", path), nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d entries):\n", path, len(entries))
	for i, e := range entries {
		if i >= listEntryLimit {
			fmt.Fprintf(&b, "... and %d more", len(entries)-listEntryLimit)
			break
		}
		if e.IsDir() {
			fmt.Fprintf(&b, "  %s/\n", e.Name())
		} else {
			fmt.Fprintf(&b, "  %s\n", e.Name())
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// FileTools returns the filesystem tool set. delete_file requires confirmation.
func FileTools() []*schema.ToolDefinition {
	return []*schema.ToolDefinition{
		{
			Name:        "search_file",
			Description: "Searches for files by name under a directory. Args: pattern (str), root (str, optional)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"pattern": {Type: schema.ParamString, Required: true, Description: "Substring to match in file names"},
				"root":    {Type: schema.ParamString, Description: "Directory to search, defaults to home"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return SearchFile(argString(args, "pattern", ""), argString(args, "root", ""))
			},
		},
		{
			Name:        "read_file",
			Description: "Reads a text file's contents. Args: file_path (str), max_chars (int, optional)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"file_path": {Type: schema.ParamString, Required: true, Description: "Path of the file to read"},
				"max_chars": {Type: schema.ParamInteger, Description: "Maximum characters to return, defaults to 4000"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return ReadFileContent(argString(args, "file_path", ""), argInt(args, "max_chars", 0))
			},
		},
		{
			Name:        "copy_file",
			Description: "Copies a file. Args: source (str), destination (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"source":      {Type: schema.ParamString, Required: true, Description: "Path of the file to copy"},
				"destination": {Type: schema.ParamString, Required: true, Description: "Target path or directory"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return CopyFile(argString(args, "source", ""), argString(args, "destination", ""))
			},
		},
		{
			Name:        "move_file",
			Description: "Moves or renames a file. Args: source (str), destination (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"source":      {Type: schema.ParamString, Required: true, Description: "Path of the file to move"},
				"destination": {Type: schema.ParamString, Required: true, Description: "Target path or directory"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return MoveFile(argString(args, "source", ""), argString(args, "destination", ""))
			},
		},
		{
			Name:                 "delete_file",
			Description:          "Deletes a file. Args: file_path (str)",
			Category:             schema.CategorySystem,
			RequiresConfirmation: true,
			TargetParam:          "file_path",
			Parameters: map[string]schema.ParamSpec{
				"file_path":         {Type: schema.ParamString, Required: true, Description: "Path of the file to delete"},
				"skip_confirmation": {Type: schema.ParamBoolean, Description: "Delete immediately without asking"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return DeleteFile(argString(args, "file_path", ""))
			},
		},
		{
			Name:        "create_folder",
			Description: "Creates a directory, including parents. Args: path (str)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"path": {Type: schema.ParamString, Required: true, Description: "Directory path to create"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return CreateFolder(argString(args, "path", ""))
			},
		},
		{
			Name:        "list_directory",
			Description: "Lists the contents of a directory. Args: path (str, optional)",
			Category:    schema.CategorySystem,
			Parameters: map[string]schema.ParamSpec{
				"path": {Type: schema.ParamString, Description: "Directory to list, defaults to the current one"},
			},
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				return ListDirectory(argString(args, "path", ""))
			},
		},
	}
}
