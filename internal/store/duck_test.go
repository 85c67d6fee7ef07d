package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *DuckStore {
	t.Helper()
	s, err := OpenDuck("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDuckStorePayloads(t *testing.T) {
	s := openInMemory(t)

	_, ok, err := s.Get("ensembl", "ENST00000375549.8")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`{"id": "ENST00000375549"}`)
	require.NoError(t, s.Put("ensembl", "ENST00000375549.8", payload))

	got, ok, err := s.Get("ensembl", "ENST00000375549.8")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload, got)

	// A second put replaces the entry.
	require.NoError(t, s.Put("ensembl", "ENST00000375549.8", []byte("updated")))
	got, ok, err = s.Get("ensembl", "ENST00000375549.8")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("updated"), got)
}

func TestDuckStoreAnalyses(t *testing.T) {
	s := openInMemory(t)

	first, err := s.SaveAnalysis("ENST00000375549.8:c.100del", `[{"name": "Wildtype"}]`)
	require.NoError(t, err)
	second, err := s.SaveAnalysis("ENST00000375549.8:c.53del", `[{"name": "Wildtype"}]`)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	analyses, err := s.RecentAnalyses(10)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	for _, a := range analyses {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Description)
		assert.False(t, a.CreatedAt.IsZero())
	}

	analyses, err = s.RecentAnalyses(1)
	require.NoError(t, err)
	assert.Len(t, analyses, 1)
}
