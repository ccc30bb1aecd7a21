package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOverwriteFile(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "rule.yml")

	if err := os.WriteFile(testFile, []byte("level: informational\nlong trailing content that must be truncated\n"), 0o600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	newData := []byte("level: high\n")
	if err := OverwriteFile(testFile, newData); err != nil {
		t.Fatalf("OverwriteFile() failed: %v", err)
	}

	content, err := os.ReadFile(testFile)
	if err != nil {
		t.Fatalf("Failed to read test file: %v", err)
	}
	if string(content) != string(newData) {
		t.Errorf("File content mismatch: got %q, expected %q", string(content), string(newData))
	}

	stat, err := os.Stat(testFile)
	if err != nil {
		t.Fatalf("Failed to stat test file: %v", err)
	}
	if stat.Mode().Perm() != 0o600 {
		t.Errorf("File permissions changed: got %s, expected %s", stat.Mode().Perm(), os.FileMode(0o600))
	}
}

func TestOverwriteFileDoesNotCreate(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")

	if err := OverwriteFile(missing, []byte("level: high\n")); err == nil {
		t.Fatal("OverwriteFile() should fail for a missing file")
	}
	if _, err := os.Stat(missing); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OverwriteFile() created %s", missing)
	}
}

func TestReadFileContained(t *testing.T) {
	tempDir := t.TempDir()

	subDir := filepath.Join(tempDir, "subdir")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}

	testFile := filepath.Join(subDir, "test.yml")
	testData := []byte("id: 12345678-1234-1234-1234-123456789012\n")
	if err := os.WriteFile(testFile, testData, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	outsideDir := t.TempDir()
	outsideFile := filepath.Join(outsideDir, "outside.yml")
	if err := os.WriteFile(outsideFile, []byte("outside"), 0o644); err != nil {
		t.Fatalf("Failed to create outside file: %v", err)
	}

	tests := []struct {
		name      string
		baseDir   string
		filePath  string
		wantError bool
		wantData  []byte
	}{
		{
			name:     "file within baseDir",
			baseDir:  tempDir,
			filePath: testFile,
			wantData: testData,
		},
		{
			name:     "base is the file's directory",
			baseDir:  subDir,
			filePath: testFile,
			wantData: testData,
		},
		{
			name:      "path traversal attempt",
			baseDir:   subDir,
			filePath:  filepath.Join(subDir, "..", "..", "outside.yml"),
			wantError: true,
		},
		{
			name:      "file outside baseDir",
			baseDir:   tempDir,
			filePath:  outsideFile,
			wantError: true,
		},
		{
			name:      "non-existent file within baseDir",
			baseDir:   tempDir,
			filePath:  filepath.Join(tempDir, "nonexistent.yml"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFileContained(tt.baseDir, tt.filePath)

			if tt.wantError {
				if err == nil {
					t.Errorf("ReadFileContained(%q, %q) expected error but got none", tt.baseDir, tt.filePath)
				}
				return
			}
			if err != nil {
				t.Errorf("ReadFileContained(%q, %q) unexpected error: %v", tt.baseDir, tt.filePath, err)
			}
			if string(data) != string(tt.wantData) {
				t.Errorf("ReadFileContained(%q, %q) = %q, expected %q", tt.baseDir, tt.filePath, string(data), string(tt.wantData))
			}
		})
	}
}

func TestReadFileContainedOutsideError(t *testing.T) {
	base := t.TempDir()
	_, err := ReadFileContained(base, filepath.Join(filepath.Dir(base), "elsewhere.yml"))
	if !errors.Is(err, ErrOutsideBase) {
		t.Errorf("expected ErrOutsideBase, got %v", err)
	}
}
