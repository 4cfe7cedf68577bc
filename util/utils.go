package util

import (
	"os"
	"path/filepath"
)

// ResolvePath makes a possibly-relative path absolute against the working
// directory. Fixture and data file paths supplied through the environment
// come through here.
func ResolvePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}
