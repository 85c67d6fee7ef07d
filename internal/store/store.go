// Package store persists provider payloads and analysis history.
// Payloads are cached as gzipped JSON files or DuckDB rows behind a
// common read-through interface, and completed analyses are recorded in
// DuckDB for later inspection.
package store

// Cache stores raw provider payloads keyed by provider name and request
// key. A miss is not an error.
type Cache interface {
	// Get returns the cached payload and whether it was present.
	Get(provider, key string) ([]byte, bool, error)
	// Put stores a payload, replacing any previous entry.
	Put(provider, key string, payload []byte) error
}

// NopCache discards every payload. It backs the --no-cache mode.
type NopCache struct{}

func (NopCache) Get(provider, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NopCache) Put(provider, key string, payload []byte) error {
	return nil
}
