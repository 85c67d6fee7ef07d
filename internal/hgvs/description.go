package hgvs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/bed"
	"github.com/inodb/vibe-skip/internal/variant"
)

// Description binds one HGVS description to one transcript. It holds the
// engine's normalized view of the transcript (exon tables, CDS span,
// protein prediction) together with the mapping between the engine's
// internal coordinate system and the genome: genomic = internal + offset.
// It implements the engine boundary the transcript analysis runs against.
type Description struct {
	id      string
	raw     string
	client  *Client
	offset  int64
	reverse bool

	variants  []variant.Variant
	exons     []bed.Range // internal coordinates, transcript order
	coding    []bed.Range // exons clipped to the CDS, genomic order
	cExons    [][2]string // c. position pairs, aligned with exons
	reference string      // wildtype protein sequence
	predicted string      // protein sequence with the variants applied
	logger    *zap.Logger
}

// NewDescription validates and parses the description, normalizes it
// with the engine, and binds the transcript's exon tables. The offset is
// the genomic position of internal coordinate 0 (the transcript's
// 0-based genomic start) and reverse marks a reverse-strand transcript.
func NewDescription(description string, client *Client, offset int64, reverse bool) (*Description, error) {
	id, variantText, err := Split(description)
	if err != nil {
		return nil, err
	}
	cVariants, err := ParseCVariants(variantText)
	if err != nil {
		return nil, err
	}

	payload, err := client.Normalize(description)
	if err != nil {
		return nil, err
	}

	d := &Description{
		id:        id,
		raw:       description,
		client:    client,
		offset:    offset,
		reverse:   reverse,
		reference: payload.Protein.Reference,
		predicted: payload.Protein.Predicted,
		logger:    zap.NewNop(),
	}
	if err := d.bindSelector(payload); err != nil {
		return nil, err
	}
	for _, cv := range cVariants {
		v, err := d.toInternal(cv)
		if err != nil {
			return nil, err
		}
		d.variants = append(d.variants, v)
	}
	if err := variant.Sort(d.variants); err != nil {
		return nil, err
	}
	return d, nil
}

// SetLogger sets the logger for engine round-trip diagnostics.
func (d *Description) SetLogger(l *zap.Logger) {
	d.logger = l
}

// bindSelector extracts the exon and CDS tables from the normalize
// payload into internal coordinate ranges.
func (d *Description) bindSelector(payload *NormalizePayload) error {
	exonPairs := payload.SelectorShort.Exon.G
	cdsPairs := payload.SelectorShort.CDS.G
	if len(exonPairs) == 0 || len(cdsPairs) == 0 {
		return fmt.Errorf("%w: %q has no coding selector", ErrUnsupported, d.raw)
	}
	if len(payload.SelectorShort.Exon.C) != len(exonPairs) {
		return fmt.Errorf("%w: %q has mismatched exon tables", ErrUnsupported, d.raw)
	}

	d.exons = make([]bed.Range, 0, len(exonPairs))
	d.cExons = make([][2]string, 0, len(exonPairs))
	for i, pair := range exonPairs {
		r, err := pairToRange(pair)
		if err != nil {
			return fmt.Errorf("exon table: %w", err)
		}
		c := payload.SelectorShort.Exon.C[i]
		if len(c) != 2 {
			return fmt.Errorf("%w: malformed c. exon pair", ErrUnsupported)
		}
		d.exons = append(d.exons, r)
		d.cExons = append(d.cExons, [2]string{c[0], c[1]})
	}

	cds, err := pairToRange(cdsPairs[0])
	if err != nil {
		return fmt.Errorf("cds table: %w", err)
	}

	genomic := append([]bed.Range(nil), d.exons...)
	sort.Slice(genomic, func(i, j int) bool {
		return genomic[i].Start < genomic[j].Start
	})
	d.coding = bed.IntersectAll(genomic, []bed.Range{cds})
	if len(d.coding) == 0 {
		return fmt.Errorf("%w: CDS outside the exons", ErrUnsupported)
	}
	return nil
}

// pairToRange converts a 1-based inclusive position pair to a half-open
// internal range.
func pairToRange(pair []string) (bed.Range, error) {
	if len(pair) != 2 {
		return bed.Range{}, fmt.Errorf("%w: malformed position pair", ErrUnsupported)
	}
	a, err := strconv.ParseInt(pair[0], 10, 64)
	if err != nil {
		return bed.Range{}, fmt.Errorf("%w: position %q", ErrUnsupported, pair[0])
	}
	b, err := strconv.ParseInt(pair[1], 10, 64)
	if err != nil {
		return bed.Range{}, fmt.Errorf("%w: position %q", ErrUnsupported, pair[1])
	}
	if b < a {
		a, b = b, a
	}
	return bed.Range{Start: a - 1, End: b}, nil
}

// toInternal converts a parsed c. variant to an internal-coordinate
// variant by walking the coding exons.
func (d *Description) toInternal(cv CVariant) (variant.Variant, error) {
	a, err := CDSToInternal(cv.Start-1, d.coding, d.reverse)
	if err != nil {
		return variant.Variant{}, err
	}
	b, err := CDSToInternal(cv.End-1, d.coding, d.reverse)
	if err != nil {
		return variant.Variant{}, err
	}
	lo, hi := min(a, b), max(a, b)
	switch cv.Type {
	case "substitution":
		return variant.New(lo, lo+1, cv.Alt, cv.Ref)
	case "deletion":
		return variant.NewDeletion(lo, hi+1)
	case "insertion":
		// The insertion point sits between the two flanking bases.
		return variant.New(hi, hi, cv.Alt, "")
	case "deletion_insertion":
		return variant.New(lo, hi+1, cv.Alt, "")
	default:
		return variant.Variant{}, fmt.Errorf("%w: variant type %q", ErrUnsupported, cv.Type)
	}
}

// Description returns the input HGVS description.
func (d *Description) Description() string {
	return d.raw
}

// Protein returns the engine's wildtype and predicted protein
// sequences for the input description.
func (d *Description) Protein() (reference, predicted string) {
	return d.reference, d.predicted
}

// Variants returns the input variant set in internal coordinates.
func (d *Description) Variants() []variant.Variant {
	return append([]variant.Variant(nil), d.variants...)
}

// Exons returns the exon table in internal coordinates, in transcript
// order.
func (d *Description) Exons() []bed.Range {
	return append([]bed.Range(nil), d.exons...)
}

// CExons returns the c. position pairs of the exon table, aligned with
// Exons.
func (d *Description) CExons() [][2]string {
	return append([][2]string(nil), d.cExons...)
}

// Offset returns the genomic position of internal coordinate 0.
func (d *Description) Offset() int64 {
	return d.offset
}

// SkipDeletion returns the deletion that removes the exons from first to
// last (0-based in transcript order, inclusive) and its c. description.
func (d *Description) SkipDeletion(first, last int) (variant.Variant, string, error) {
	if first < 0 || last >= len(d.exons) || first > last {
		return variant.Variant{}, "", fmt.Errorf("%w: exon window %d-%d", ErrUnsupported, first, last)
	}
	span := d.exons[first]
	for _, exon := range d.exons[first+1 : last+1] {
		span.Start = min(span.Start, exon.Start)
		span.End = max(span.End, exon.End)
	}
	deletion, err := variant.NewDeletion(span.Start, span.End)
	if err != nil {
		return variant.Variant{}, "", err
	}
	hgvs := fmt.Sprintf("%s:c.%s_%sdel", d.id, d.cExons[first][0], d.cExons[last][1])
	return deletion, hgvs, nil
}

// CDSEffect determines the genomic ranges whose coding annotation a
// variant set destroys: the engine predicts the mutated protein, the
// changed residues are mapped back to c. positions, and those are walked
// out to the genome.
func (d *Description) CDSEffect(variants []variant.Variant) ([]bed.Range, error) {
	if len(variants) == 0 {
		return nil, nil
	}
	rendered, ok, err := d.Render(variants)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Nothing in the set touches the coding sequence.
		return nil, nil
	}

	payload, err := d.client.Normalize(rendered)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("predicted protein effect",
		zap.String("description", rendered),
		zap.String("protein", payload.Protein.Description))

	var destroyed []bed.Range
	for _, span := range ChangedProteinPositions(payload.Protein.Reference, payload.Protein.Predicted) {
		cStart := span.Start*3 + 1
		cEnd := span.End * 3
		a, err := CDSToInternal(cStart-1, d.coding, d.reverse)
		if err != nil {
			return nil, err
		}
		b, err := CDSToInternal(cEnd-1, d.coding, d.reverse)
		if err != nil {
			return nil, err
		}
		lo, hi := min(a, b), max(a, b)
		destroyed = append(destroyed, bed.Range{
			Start: lo + d.offset,
			End:   hi + 1 + d.offset,
		})
	}
	return bed.MergeAll(destroyed), nil
}

// Render writes a variant set as a c. description. Variants that do not
// touch the coding sequence are clamped to it or, when nothing remains,
// dropped; ok reports whether any variant survived.
func (d *Description) Render(variants []variant.Variant) (string, bool, error) {
	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		text, ok, err := d.renderVariant(v)
		if err != nil {
			return "", false, err
		}
		if ok {
			parts = append(parts, text)
		}
	}
	switch len(parts) {
	case 0:
		return "", false, nil
	case 1:
		return fmt.Sprintf("%s:c.%s", d.id, parts[0]), true, nil
	default:
		return fmt.Sprintf("%s:c.[%s]", d.id, strings.Join(parts, ";")), true, nil
	}
}

func (d *Description) renderVariant(v variant.Variant) (string, bool, error) {
	if v.IsInsertion() {
		pos := v.Start
		if !d.reverse {
			pos--
		}
		s, err := InternalToCDS(pos, d.coding, d.reverse)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("%d_%dins%s", s+1, s+2, v.Inserted), true, nil
	}

	// Clamp the span to its coding part; a variant that destroys no
	// coding sequence has no c. rendering.
	covered := bed.IntersectAll(d.coding, []bed.Range{{Start: v.Start, End: v.End}})
	if len(covered) == 0 {
		return "", false, nil
	}
	a, err := InternalToCDS(covered[0].Start, d.coding, d.reverse)
	if err != nil {
		return "", false, err
	}
	b, err := InternalToCDS(covered[len(covered)-1].End-1, d.coding, d.reverse)
	if err != nil {
		return "", false, err
	}
	s, e := min(a, b)+1, max(a, b)+1

	switch {
	case v.IsSubstitution():
		return fmt.Sprintf("%d%s>%s", s, v.Deleted, v.Inserted), true, nil
	case v.IsDeletion():
		if s == e {
			return fmt.Sprintf("%ddel", s), true, nil
		}
		return fmt.Sprintf("%d_%ddel", s, e), true, nil
	default:
		if s == e {
			return fmt.Sprintf("%ddelins%s", s, v.Inserted), true, nil
		}
		return fmt.Sprintf("%d_%ddelins%s", s, e, v.Inserted), true, nil
	}
}
