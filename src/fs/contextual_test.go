package fs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextualFsResolvesRelativePaths(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "/work/notes.txt", []byte("hi"), 0644))

	cfs := NewContextualFs(base, "/work")

	content, err := afero.ReadFile(cfs, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))

	// Absolute paths bypass the working directory.
	content, err = afero.ReadFile(cfs, "/work/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))
}

func TestContextualFsWritesUnderWorkingDir(t *testing.T) {
	base := afero.NewMemMapFs()
	cfs := NewContextualFs(base, "/work")

	require.NoError(t, afero.WriteFile(cfs, "out.txt", []byte("data"), 0644))

	content, err := afero.ReadFile(base, "/work/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestContextualFsEmptyWorkingDir(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "plain.txt", []byte("x"), 0644))

	cfs := NewContextualFs(base, "")
	_, err := cfs.Stat("plain.txt")
	assert.NoError(t, err)
	assert.Equal(t, "", cfs.GetWorkingDir())
}
