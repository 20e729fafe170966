package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestFileStore_SaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	n, err := s.Save("1.png", strings.NewReader("pngdata"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	data, err := os.ReadFile(filepath.Join(dir, "1.png"))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(data))

	_, err = s.Save("1.png", strings.NewReader("again"))
	assert.Error(t, err, "existing files are never overwritten")

	require.NoError(t, s.Remove("1.png", "missing.png"))
	_, err = os.Stat(filepath.Join(dir, "1.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SaveFailureLeavesNoFile(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save("2.jpeg", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(s.Root(), "2.jpeg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileStore_PathRejectsTraversal(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden"} {
		_, err := s.Path(name)
		assert.Error(t, err, name)
	}
	assert.Error(t, s.Remove("../etc"))
}
