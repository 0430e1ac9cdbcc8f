package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted saves content as <name>.unformatted.go in dir so a
// rendering that gofmt rejects can still be inspected.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	name := strings.TrimSuffix(filename, ".go") + ".unformatted.go"

	return os.WriteFile(filepath.Join(dir, name), content, filePerm)
}
