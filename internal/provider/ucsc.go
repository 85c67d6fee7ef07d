package provider

import (
	"encoding/json"
	"fmt"

	"github.com/inodb/vibe-skip/internal/bed"
)

// DefaultUCSCBaseURL is the public UCSC genome browser API.
const DefaultUCSCBaseURL = "https://api.genome.ucsc.edu"

// UCSC fetches annotation tracks from the genome browser API.
type UCSC struct {
	client  *Client
	baseURL string
}

// NewUCSC creates a UCSC provider, using the public API when baseURL is
// empty.
func NewUCSC(client *Client, baseURL string) *UCSC {
	if baseURL == "" {
		baseURL = DefaultUCSCBaseURL
	}
	return &UCSC{client: client, baseURL: baseURL}
}

// TrackItem is one item of a UCSC track. Block lists come back as
// comma-separated strings, usually with a trailing comma, and block
// starts are served under the "chromStarts" key.
type TrackItem struct {
	Name        string `json:"name"`
	Chrom       string `json:"chrom"`
	ChromStart  int64  `json:"chromStart"`
	ChromEnd    int64  `json:"chromEnd"`
	Strand      string `json:"strand"`
	ThickStart  int64  `json:"thickStart"`
	ThickEnd    int64  `json:"thickEnd"`
	BlockCount  int    `json:"blockCount"`
	BlockSizes  string `json:"blockSizes"`
	ChromStarts string `json:"chromStarts"`
}

// Beds converts the track item into an exon record and a CDS record
// spanning the thick region.
func (t TrackItem) Beds() (exons, cds *bed.Bed, err error) {
	sizes, err := bed.ParseCSV(t.BlockSizes)
	if err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", t.Name, err)
	}
	starts, err := bed.ParseCSV(t.ChromStarts)
	if err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", t.Name, err)
	}

	strand := t.Strand
	if strand == "" {
		strand = "."
	}
	exons = &bed.Bed{
		Chrom:       t.Chrom,
		ChromStart:  t.ChromStart,
		ChromEnd:    t.ChromEnd,
		Name:        t.Name,
		Strand:      strand,
		ThickStart:  t.ChromStart,
		ThickEnd:    t.ChromEnd,
		BlockSizes:  sizes,
		BlockStarts: starts,
	}
	if err := exons.Validate(); err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", t.Name, err)
	}

	cds, err = bed.New(t.Chrom, t.ThickStart, t.ThickEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("track %s: %w", t.Name, err)
	}
	cds.Name = t.Name
	cds.Strand = strand
	return exons, cds, nil
}

// GetTrack fetches the items of a track overlapping [start, end), with
// 0-based half-open coordinates.
func (u *UCSC) GetTrack(genome, chrom string, start, end int64, track string) ([]TrackItem, error) {
	url := fmt.Sprintf("%s/getData/track?genome=%s;chrom=%s;start=%d;end=%d;track=%s",
		u.baseURL, genome, chrom, start, end, track)
	key := fmt.Sprintf("%s_%s:%d-%d_%s", genome, chrom, start, end, track)

	// The items sit under a key named after the track.
	var payload map[string]json.RawMessage
	if err := u.client.getJSON("ucsc", key, url, &payload); err != nil {
		return nil, err
	}
	raw, ok := payload[track]
	if !ok {
		return nil, fmt.Errorf("ucsc track %q missing from response", track)
	}
	var items []TrackItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode ucsc track %q: %w", track, err)
	}
	return items, nil
}

// KnownGene fetches the knownGene track item for the transcript. UCSC
// names knownGene items by versioned Ensembl transcript ID.
func (u *UCSC) KnownGene(transcript *Transcript) (*TrackItem, error) {
	items, err := u.GetTrack("hg38", transcript.Chrom(), transcript.Offset(), transcript.End, "knownGene")
	if err != nil {
		return nil, err
	}
	name := transcript.Versioned()
	for _, item := range items {
		if item.Name == name {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("transcript %q in knownGene: %w", name, ErrNotFound)
}
