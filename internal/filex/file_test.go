package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSubDir(t *testing.T) {
	tmp := t.TempDir()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dir, err := EnsureSubDir("reports")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// second call is a no-op
	again, err := EnsureSubDir("reports")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestSaveReport(t *testing.T) {
	tmp := t.TempDir()
	data := []byte("%PDF-1.4 fake")

	path, err := SaveReport(tmp, "report_1.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "report_1.pdf"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadImage(t *testing.T) {
	tmp := t.TempDir()

	path := filepath.Join(tmp, "xray.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4e, 0x47}, 0o660))

	data, err := ReadImage(path)
	require.NoError(t, err)
	assert.Len(t, data, 4)

	empty := filepath.Join(tmp, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o660))
	_, err = ReadImage(empty)
	assert.Error(t, err)

	_, err = ReadImage(filepath.Join(tmp, "missing.png"))
	assert.Error(t, err)
}
