package vkgraph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrFileNotFound is returned by [FindFile] when no candidate path exists.
var ErrFileNotFound = errors.New("file not found")

// FindFile returns name if it names an existing file, otherwise the first
// existing file found by joining each search path with name.
func FindFile(name string, searchPaths []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty file name: %w", ErrFileNotFound)
	}
	if isFile(name) {
		return name, nil
	}
	if !filepath.IsAbs(name) {
		for _, dir := range searchPaths {
			path := filepath.Join(dir, name)
			if isFile(path) {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrFileNotFound)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
