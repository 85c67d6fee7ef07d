package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultEnsemblBaseURL is the public Ensembl REST API.
const DefaultEnsemblBaseURL = "https://rest.ensembl.org"

// Ensembl looks up transcript summaries.
type Ensembl struct {
	client  *Client
	baseURL string
}

// NewEnsembl creates an Ensembl provider, using the public API when
// baseURL is empty.
func NewEnsembl(client *Client, baseURL string) *Ensembl {
	if baseURL == "" {
		baseURL = DefaultEnsemblBaseURL
	}
	return &Ensembl{client: client, baseURL: baseURL}
}

// Transcript is the Ensembl lookup summary for a transcript. Start and
// End are 1-based and inclusive, as served by Ensembl.
type Transcript struct {
	ID            string `json:"id"`
	Version       int    `json:"version"`
	DisplayName   string `json:"display_name"`
	AssemblyName  string `json:"assembly_name"`
	SeqRegionName string `json:"seq_region_name"`
	Start         int64  `json:"start"`
	End           int64  `json:"end"`
	Strand        int    `json:"strand"`
}

// Versioned returns the versioned transcript identifier.
func (t Transcript) Versioned() string {
	return fmt.Sprintf("%s.%d", t.ID, t.Version)
}

// Chrom returns the UCSC-style chromosome name.
func (t Transcript) Chrom() string {
	if t.SeqRegionName == "MT" {
		return "chrM"
	}
	return "chr" + t.SeqRegionName
}

// Reverse reports whether the transcript is on the reverse strand.
func (t Transcript) Reverse() bool {
	return t.Strand == -1
}

// Offset returns the genomic position of the transcript's 0-based start.
func (t Transcript) Offset() int64 {
	return t.Start - 1
}

// LookupTranscript resolves a versioned transcript ID such as
// "ENST00000375549.8". Ensembl only serves the current version, so a
// request for an outdated version is an error.
func (e *Ensembl) LookupTranscript(id string) (*Transcript, error) {
	bare, version, found := strings.Cut(id, ".")
	if !found {
		return nil, fmt.Errorf("transcript %q has no version", id)
	}
	requested, err := strconv.Atoi(version)
	if err != nil {
		return nil, fmt.Errorf("transcript %q has no version", id)
	}

	url := fmt.Sprintf("%s/lookup/id/%s?content-type=application/json", e.baseURL, bare)
	var out Transcript
	if err := e.client.getJSON("ensembl", bare, url, &out); err != nil {
		return nil, err
	}
	if out.Version != requested {
		return nil, fmt.Errorf("%w: ensembl has version %d of %s, not %d",
			ErrVersionMismatch, out.Version, bare, requested)
	}
	return &out, nil
}
