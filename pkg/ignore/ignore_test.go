package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Layers(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte(`# build output
*.bak
deprecated/
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(`# corpus overrides
experimental/
!deprecated/keep.yml
`), 0o644))

	m, err := NewMatcher(root)
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		isDir    bool
		expected bool
	}{
		{name: "git directory", path: ".git/config", expected: true},
		{name: "plain rule", path: "sysmon/rule.yml", expected: false},
		{name: "gitignore glob", path: "sysmon/rule.yml.bak", expected: true},
		{name: "gitignore directory", path: "deprecated", isDir: true, expected: true},
		{name: "gitignore directory content", path: "deprecated/old.yml", expected: true},
		{name: "ruletuneignore directory", path: "experimental", isDir: true, expected: true},
		{name: "ruletuneignore negation", path: "deprecated/keep.yml", expected: false},
		{name: "root itself", path: ".", isDir: true, expected: false},
		{name: "dot directories are not special", path: ".scratchpad/rule.yml", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Ignored(filepath.Join(root, tt.path), tt.isDir))
		})
	}
}

func TestMatcher_UserLayer(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ruletune"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ruletune", FileName), []byte("hunting/\n"), 0o644))

	root := t.TempDir()
	m, err := NewMatcher(root)
	require.NoError(t, err)

	assert.True(t, m.Ignored(filepath.Join(root, "hunting"), true))
	assert.False(t, m.Ignored(filepath.Join(root, "builtin"), true))
}

func TestMatcher_OutsideRoot(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("*.yml\n"), 0o644))

	m, err := NewMatcher(root)
	require.NoError(t, err)

	assert.True(t, m.Ignored(filepath.Join(root, "a.yml"), false))
	assert.False(t, m.Ignored(filepath.Join(filepath.Dir(root), "a.yml"), false))
}

func TestReadIgnoreFile_Allowlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("*.yml\n"), 0o644))

	_, err := readIgnoreFile(path)
	assert.Error(t, err)
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{}, splitPath(""))
	assert.Equal(t, []string{}, splitPath("."))
	assert.Equal(t, []string{"a", "b"}, splitPath("/a//b/"))
	assert.Equal(t, []string{"a", "b.yml"}, splitPath("./a/b.yml"))
}
