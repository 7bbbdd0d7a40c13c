package classfiletest

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteArchive zips entries into a file named name under a temp directory
// and returns its path
func WriteArchive(t testing.TB, name string, entries map[string][]byte) string {
	t.Helper()
	archivePath := filepath.Join(t.TempDir(), name)
	f, err := os.Create(archivePath)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for entryName, data := range entries {
		w, err := zw.Create(entryName)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return archivePath
}
