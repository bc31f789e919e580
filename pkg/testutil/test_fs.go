package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/plugboot/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() filesystem.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// NewReadOnlyTestFS wraps base so every write fails
func NewReadOnlyTestFS(base afero.Fs) filesystem.FS {
	return filesystem.NewAferoFS(afero.NewReadOnlyFs(base))
}

// WriteFiles creates each path with its content, parents included
func WriteFiles(t *testing.T, fs filesystem.FS, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fs.WriteFile(path, []byte(content), 0644))
	}
}

// ReadString returns the content of path or fails the test
func ReadString(t *testing.T, fs filesystem.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
