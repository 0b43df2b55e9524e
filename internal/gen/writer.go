package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files next to their sources.
// It creates missing directories.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(file.Path(), file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// Stale returns the paths of files whose on-disk content differs from the
// generated content, including files that do not exist yet.
func Stale(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path())
		if errors.Is(err, fs.ErrNotExist) {
			stale = append(stale, file.Path())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file.Path(), err)
		}

		if !bytes.Equal(current, file.Content) {
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}

// writeUnformatted saves source that failed to format as
// <name>.unformatted.go in dir so the failure can be inspected.
func writeUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, name), content, filePerm)
}
