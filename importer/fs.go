package importer

import (
	"os"
	"path/filepath"
)

// OSFilesystem implements Filesystem against the real filesystem.
type OSFilesystem struct{}

func (OSFilesystem) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFilesystem) Write(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (OSFilesystem) Mkdirs(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(filepath.Clean(path))
	return err == nil
}
