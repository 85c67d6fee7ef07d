package hgvs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the public Mutalyzer API.
const DefaultBaseURL = "https://mutalyzer.nl/api"

// Client talks to a Mutalyzer-compatible normalization API. It is safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client for the normalization API at baseURL, or
// the public Mutalyzer API when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for request diagnostics.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// NormalizePayload is the engine's response to a normalize request,
// reduced to the fields this tool consumes.
type NormalizePayload struct {
	NormalizedDescription string `json:"normalized_description"`
	Protein               struct {
		Description string `json:"description"`
		Reference   string `json:"reference"`
		Predicted   string `json:"predicted"`
	} `json:"protein"`
	SelectorShort struct {
		Exon struct {
			// Position pairs as strings, 1-based and inclusive.
			G [][]string `json:"g"`
			C [][]string `json:"c"`
		} `json:"exon"`
		CDS struct {
			G [][]string `json:"g"`
		} `json:"cds"`
	} `json:"selector_short"`
}

// Normalize submits a description to the engine and returns the
// normalized payload.
func (c *Client) Normalize(description string) (*NormalizePayload, error) {
	u := fmt.Sprintf("%s/normalize/%s", c.baseURL, url.PathEscape(description))
	c.logger.Debug("normalizing description", zap.String("url", u))

	resp, err := c.httpClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("normalize request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("normalize %q: engine returned %d: %s", description, resp.StatusCode, body)
	}

	var payload NormalizePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode normalize response: %w", err)
	}
	return &payload, nil
}
