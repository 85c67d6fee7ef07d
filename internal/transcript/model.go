package transcript

import (
	"fmt"

	"github.com/inodb/vibe-skip/internal/bed"
)

// Model is the JSON wire representation of a transcript: the exon record
// plus whichever coding records the transcript owns.
type Model struct {
	Exons       bed.Model  `json:"exons"`
	CDS         *bed.Model `json:"cds,omitempty"`
	CodingExons *bed.Model `json:"coding_exons,omitempty"`
}

// NewModel converts a transcript to its wire representation.
func NewModel(t *Transcript) Model {
	m := Model{Exons: bed.NewModel(t.Exons)}
	if t.CDS != nil {
		cds := bed.NewModel(t.CDS)
		m.CDS = &cds
	}
	if t.Coding != nil {
		coding := bed.NewModel(t.Coding)
		m.CodingExons = &coding
	}
	return m
}

// ToTranscript converts the wire representation back to a transcript.
// When coding exons are present they are used as supplied; otherwise the
// coding exons are derived from the CDS record, when there is one.
func (m Model) ToTranscript() (*Transcript, error) {
	exons, err := m.Exons.ToBed()
	if err != nil {
		return nil, fmt.Errorf("exons: %w", err)
	}
	if m.CodingExons != nil {
		coding, err := m.CodingExons.ToBed()
		if err != nil {
			return nil, fmt.Errorf("coding exons: %w", err)
		}
		t := NewFromCoding(exons, coding)
		if m.CDS != nil {
			if t.CDS, err = m.CDS.ToBed(); err != nil {
				return nil, fmt.Errorf("cds: %w", err)
			}
			t.CDS.Name = NameCDS
		}
		return t, nil
	}
	if m.CDS != nil {
		cds, err := m.CDS.ToBed()
		if err != nil {
			return nil, fmt.Errorf("cds: %w", err)
		}
		return New(exons, cds)
	}
	return NewExonsOnly(exons), nil
}
