package blob

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	return s
}

func TestNew_CreatesLayout(t *testing.T) {
	s := newStore(t)

	for _, dir := range []string{s.Root(), s.DocumentsDir(), s.MapsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDocumentPath_IsDeterministic(t *testing.T) {
	s := newStore(t)

	p := s.DocumentPath("doc1", "ticket.pdf")
	assert.Equal(t, filepath.Join(s.DocumentsDir(), "doc1_ticket.pdf"), p)

	// path traversal in the original file name is neutralized
	p = s.DocumentPath("doc2", "../../etc/passwd")
	assert.Equal(t, filepath.Join(s.DocumentsDir(), "doc2_passwd"), p)
}

func TestStatAndRemove(t *testing.T) {
	s := newStore(t)

	path := s.DocumentPath("doc1", "a.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 42), 0o600))

	size, err := s.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), size)
	assert.True(t, s.Exists(path))

	require.NoError(t, s.Remove(path))
	assert.False(t, s.Exists(path))

	// removing twice is fine
	require.NoError(t, s.Remove(path))
}

func TestSizes(t *testing.T) {
	s := newStore(t)

	require.NoError(t, os.WriteFile(s.DocumentPath("d", "x.bin"), make([]byte, 100), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(s.MapsDir(), "tile.bin"), make([]byte, 50), 0o600))

	docs, err := s.DocumentsSize()
	require.NoError(t, err)
	maps, err := s.MapsSize()
	require.NoError(t, err)
	assert.Equal(t, int64(100), docs)
	assert.Equal(t, int64(50), maps)
}

func TestClear_RecreatesLayout(t *testing.T) {
	s := newStore(t)

	require.NoError(t, os.WriteFile(s.DocumentPath("d", "x.bin"), []byte("x"), 0o600))
	require.NoError(t, s.Clear())

	docs, err := s.DocumentsSize()
	require.NoError(t, err)
	assert.Zero(t, docs)

	info, err := os.Stat(s.DocumentsDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
