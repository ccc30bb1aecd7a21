// Package safeio holds the file primitives used to rewrite rule files in place.
package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned when a path resolves outside the allowed base directory.
var ErrOutsideBase = errors.New("file path is outside base directory")

// Contained reports whether filePath resolves to a location within baseDir.
func Contained(baseDir, filePath string) (bool, error) {
	baseDirAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	filePathAbs, err := filepath.Abs(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to resolve file path: %w", err)
	}
	rel, err := filepath.Rel(baseDirAbs, filePathAbs)
	if err != nil {
		return false, fmt.Errorf("failed to compute relative path: %w", err)
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) || rel == ".." {
		return false, nil
	}
	return true, nil
}

// ReadFileContained reads a file only if it is contained within baseDir.
func ReadFileContained(baseDir, filePath string) ([]byte, error) {
	ok, err := Contained(baseDir, filePath)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", filePath, ErrOutsideBase)
	}
	// #nosec G304 -- containment verified above
	return os.ReadFile(filePath)
}

// OverwriteFile replaces the content of an existing file in place. The file
// is opened write-only with truncation, never created, so its mode and
// ownership are untouched. Data is synced to disk before returning.
func OverwriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0) // #nosec G304 -- caller resolves path from the corpus
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
