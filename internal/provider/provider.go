// Package provider fetches transcript annotation from the public REST
// services this tool depends on: Ensembl for transcript summaries, UCSC
// for exon tracks, MyGene for UniProt accessions and VariantValidator
// for gene cross-references. Every provider reads through a store.Cache
// so repeated lookups do not hit the network.
package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/store"
)

// Sentinel errors shared by the providers.
var (
	// ErrNotFound is returned when a provider does not know the
	// requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrVersionMismatch is returned when Ensembl serves a different
	// version of the requested transcript.
	ErrVersionMismatch = errors.New("transcript version mismatch")
)

// Client is the shared HTTP and cache layer under every provider.
type Client struct {
	httpClient *http.Client
	cache      store.Cache
	logger     *zap.Logger
}

// NewClient creates a provider client backed by the given cache. A nil
// cache disables caching.
func NewClient(cache store.Cache) *Client {
	if cache == nil {
		cache = store.NopCache{}
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// getJSON fetches url into out, reading through the cache under the
// given provider name and key.
func (c *Client) getJSON(provider, key, url string, out any) error {
	if payload, ok, err := c.cache.Get(provider, key); err != nil {
		return err
	} else if ok {
		c.logger.Debug("cache hit", zap.String("provider", provider), zap.String("key", key))
		return json.Unmarshal(payload, out)
	}

	c.logger.Debug("fetching", zap.String("provider", provider), zap.String("url", url))
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return fmt.Errorf("%s has no entry for %q: %w", provider, key, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s returned %d for %q: %s", provider, resp.StatusCode, key, body)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", provider, err)
	}
	if err := c.cache.Put(provider, key, payload); err != nil {
		// A failed cache write only costs a refetch.
		c.logger.Warn("cache write failed",
			zap.String("provider", provider), zap.String("key", key), zap.Error(err))
	}
	return json.Unmarshal(payload, out)
}
