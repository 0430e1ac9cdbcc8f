package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNothingToWrite is returned by WriteResult when the run produced no file.
var ErrNothingToWrite = errors.New("no generated file")

// WriteFile writes file to path, creating parent directories as needed.
// An empty path means file.Filename inside dir.
func WriteFile(file *GeneratedFile, dir, path string) (string, error) {
	if path == "" {
		path = filepath.Join(dir, file.Filename)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, file.Content, filePerm); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}

	return path, nil
}

// WriteResult writes the file of a successful run. Relative out paths are
// resolved against the package directory; an empty out uses the configured
// file name.
func WriteResult(res *Result, out string) (string, error) {
	if res == nil || res.File == nil {
		return "", ErrNothingToWrite
	}

	if out != "" && !filepath.IsAbs(out) {
		out = filepath.Join(res.Package.Dir, out)
	}

	return WriteFile(res.File, res.Package.Dir, out)
}
