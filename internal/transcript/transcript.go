// Package transcript models a transcript as a set of BED records (exons,
// CDS, derived coding exons) and evaluates exon-skip therapy candidates
// against it.
package transcript

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/bed"
)

// Record names used for the owned BED records.
const (
	NameExons  = "exons"
	NameCDS    = "cds"
	NameCoding = "coding_exons"
)

// ErrRecordMismatch is returned by Compare when two transcripts do not
// own the same records in the same order.
var ErrRecordMismatch = errors.New("transcript records do not match")

// Transcript owns the annotation records of a single transcript. The
// coding exons are derived once, at construction, as the intersection of
// the exons and the CDS. Every operation mutates all owned records in
// lockstep, so the records never diverge; flows that need to mutate from
// a shared starting point clone the transcript first. A Transcript is not
// safe for concurrent use.
type Transcript struct {
	Exons  *bed.Bed
	CDS    *bed.Bed // nil when constructed from coding exons directly
	Coding *bed.Bed // nil when no coding information was supplied

	logger *zap.Logger
}

// New builds a transcript from its exons and CDS span. The coding exons
// are derived by intersecting a copy of the exons with the CDS. The
// records are renamed in place; the transcript takes ownership of them.
func New(exons, cds *bed.Bed) (*Transcript, error) {
	coding := exons.Clone()
	if err := coding.Intersect(cds); err != nil {
		return nil, fmt.Errorf("derive coding exons: %w", err)
	}
	exons.Name = NameExons
	cds.Name = NameCDS
	coding.Name = NameCoding
	return &Transcript{Exons: exons, CDS: cds, Coding: coding, logger: zap.NewNop()}, nil
}

// NewFromCoding builds a transcript from its exons and an already derived
// coding exon record, for callers that do not have the CDS span.
func NewFromCoding(exons, coding *bed.Bed) *Transcript {
	exons.Name = NameExons
	coding.Name = NameCoding
	return &Transcript{Exons: exons, Coding: coding, logger: zap.NewNop()}
}

// NewExonsOnly builds a transcript without coding information.
func NewExonsOnly(exons *bed.Bed) *Transcript {
	exons.Name = NameExons
	return &Transcript{Exons: exons, logger: zap.NewNop()}
}

// SetLogger sets the logger used by Analyze for progress and skipped
// candidates.
func (t *Transcript) SetLogger(l *zap.Logger) {
	t.logger = l
}

// Records returns the owned records, in a fixed order. Records that were
// not supplied at construction are omitted.
func (t *Transcript) Records() []*bed.Bed {
	out := make([]*bed.Bed, 0, 3)
	for _, r := range []*bed.Bed{t.Exons, t.CDS, t.Coding} {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a deep copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	out := &Transcript{Exons: t.Exons.Clone(), logger: t.logger}
	if t.CDS != nil {
		out.CDS = t.CDS.Clone()
	}
	if t.Coding != nil {
		out.Coding = t.Coding.Clone()
	}
	return out
}

// Intersect keeps only the positions of the selector in every owned
// record.
func (t *Transcript) Intersect(selector *bed.Bed) error {
	for _, r := range t.Records() {
		if err := r.Intersect(selector); err != nil {
			return fmt.Errorf("intersect %s: %w", r.Name, err)
		}
	}
	return nil
}

// Overlap keeps only the blocks that overlap the selector in every owned
// record.
func (t *Transcript) Overlap(selector *bed.Bed) error {
	for _, r := range t.Records() {
		if err := r.Overlap(selector); err != nil {
			return fmt.Errorf("overlap %s: %w", r.Name, err)
		}
	}
	return nil
}

// Subtract removes the positions of the selector from every owned record.
func (t *Transcript) Subtract(selector *bed.Bed) error {
	for _, r := range t.Records() {
		if err := r.Subtract(selector); err != nil {
			return fmt.Errorf("subtract %s: %w", r.Name, err)
		}
	}
	return nil
}

// ExonSkip removes every exon that overlaps the selector, in whole, from
// every owned record. Exons are skipped at block granularity: an exon
// that merely touches the selector is removed completely. A selector that
// overlaps no exon leaves the transcript unchanged.
func (t *Transcript) ExonSkip(selector *bed.Bed) error {
	skipped := t.Exons.Clone()
	if err := skipped.Overlap(selector); err != nil {
		return fmt.Errorf("exon skip: %w", err)
	}
	if skipped.Empty() {
		return nil
	}
	return t.Subtract(skipped)
}

// Mutate removes the given genomic ranges, the coding sequence destroyed
// by a variant set, from every owned record.
func (t *Transcript) Mutate(destroyed []bed.Range) error {
	merged := bed.MergeAll(destroyed)
	if len(merged) == 0 {
		return nil
	}
	selector, err := bed.FromBlocks(t.Exons.Chrom, merged)
	if err != nil {
		return fmt.Errorf("mutate: %w", err)
	}
	return t.Subtract(selector)
}

// Comparison scores how much of one annotation record survives relative
// to the same record on a reference transcript.
type Comparison struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Basepairs  string  `json:"basepairs"`
}

// Compare scores every owned record against the matching record of a
// reference transcript, usually the wildtype. The two transcripts must
// own the same records in the same order; anything else is a structural
// error, never a best-effort match.
func (t *Transcript) Compare(reference *Transcript) ([]Comparison, error) {
	records := t.Records()
	refRecords := reference.Records()
	if len(records) != len(refRecords) {
		return nil, fmt.Errorf("%w: %d records against %d", ErrRecordMismatch, len(records), len(refRecords))
	}
	out := make([]Comparison, 0, len(records))
	for i, rec := range records {
		ref := refRecords[i]
		if rec.Name != ref.Name {
			return nil, fmt.Errorf("%w: %q against %q", ErrRecordMismatch, rec.Name, ref.Name)
		}
		shared := rec.Clone()
		if err := shared.Intersect(ref); err != nil {
			return nil, fmt.Errorf("compare %s: %w", rec.Name, err)
		}
		n, m := shared.Size(), ref.Size()
		var pct float64
		if m > 0 {
			pct = float64(n) / float64(m)
		}
		out = append(out, Comparison{
			Name:       rec.Name,
			Percentage: pct,
			Basepairs:  fmt.Sprintf("%d/%d", n, m),
		})
	}
	return out, nil
}
