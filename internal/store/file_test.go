package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRoundTrip(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	_, ok, err := cache.Get("ensembl", "ENST00000375549.8")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`{"id": "ENST00000375549", "version": 8}`)
	require.NoError(t, cache.Put("ensembl", "ENST00000375549.8", payload))

	got, ok, err := cache.Get("ensembl", "ENST00000375549.8")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)

	// Entries are namespaced per provider.
	_, ok, err = cache.Get("ucsc", "ENST00000375549.8")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileCacheReplace(t *testing.T) {
	cache, err := NewFileCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put("ensembl", "key", []byte("old")))
	require.NoError(t, cache.Put("ensembl", "key", []byte("new")))

	got, ok, err := cache.Get("ensembl", "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestFileCacheLayout(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewFileCache(dir)
	require.NoError(t, err)

	require.NoError(t, cache.Put("ucsc", "chr11/track", []byte("{}")))

	// Path separators in keys are flattened.
	_, err = os.Stat(filepath.Join(dir, "ucsc", "chr11_track.json.gz"))
	assert.NoError(t, err)

	got, ok, err := cache.Get("ucsc", "chr11/track")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("{}"), got)
}

func TestNopCache(t *testing.T) {
	var cache NopCache
	require.NoError(t, cache.Put("ensembl", "key", []byte("payload")))
	_, ok, err := cache.Get("ensembl", "key")
	require.NoError(t, err)
	assert.False(t, ok)
}
