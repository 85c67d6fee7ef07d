package bed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for record validation and set operations.
var (
	// ErrInvalidRecord is wrapped by every constructor and mutation error
	// that would leave a record violating the BED invariants.
	ErrInvalidRecord = errors.New("invalid bed record")
	// ErrStrandMismatch is returned when two records on concrete,
	// differing strands are intersected.
	ErrStrandMismatch = errors.New("strand mismatch")
	// ErrThickBounds is returned by Update when the thick bounds no longer
	// track the record bounds and cannot be carried onto the new blocks.
	ErrThickBounds = errors.New("thick bounds do not track record bounds")
)

// Bed is a single BED12 record. Coordinates are 0-based and half-open.
// Block positions are stored UCSC-style: sizes plus starts relative to
// ChromStart. Constructors and mutating operations maintain the BED
// invariants; callers that poke fields directly should call Validate.
type Bed struct {
	Chrom       string   // Reference sequence name
	ChromStart  int64    // Record start
	ChromEnd    int64    // Record end (exclusive)
	Name        string   // Display name, "." if unset
	Score       int64    // Display score
	Strand      string   // "+", "-" or "."
	ThickStart  int64    // Start of the thickly drawn (coding) region
	ThickEnd    int64    // End of the thickly drawn region (exclusive)
	ItemRGB     [3]uint8 // Display color
	BlockSizes  []int64  // Size of each block
	BlockStarts []int64  // Block starts relative to ChromStart
}

// New returns a record spanning [chromStart, chromEnd) with default
// annotation fields and a single block covering the whole record.
func New(chrom string, chromStart, chromEnd int64) (*Bed, error) {
	b := &Bed{
		Chrom:       chrom,
		ChromStart:  chromStart,
		ChromEnd:    chromEnd,
		Name:        ".",
		Score:       0,
		Strand:      ".",
		ThickStart:  chromStart,
		ThickEnd:    chromEnd,
		BlockSizes:  []int64{chromEnd - chromStart},
		BlockStarts: []int64{0},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// FromBlocks returns a record whose bounds are derived from the given
// absolute block ranges. Blocks must be sorted, disjoint and non-empty.
func FromBlocks(chrom string, blocks []Range) (*Bed, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrInvalidRecord)
	}
	b := &Bed{
		Chrom:  chrom,
		Name:   ".",
		Strand: ".",
	}
	b.setBlocks(blocks)
	b.ThickStart = b.ChromStart
	b.ThickEnd = b.ChromEnd
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// BlockCount returns the number of blocks in the record.
func (b *Bed) BlockCount() int {
	return len(b.BlockSizes)
}

// Blocks returns the absolute genomic range of every block. The slice is
// freshly allocated on each call.
func (b *Bed) Blocks() []Range {
	out := make([]Range, len(b.BlockSizes))
	for i := range b.BlockSizes {
		start := b.ChromStart + b.BlockStarts[i]
		out[i] = Range{Start: start, End: start + b.BlockSizes[i]}
	}
	return out
}

// Size returns the total number of positions covered by the blocks.
func (b *Bed) Size() int64 {
	var total int64
	for _, s := range b.BlockSizes {
		total += s
	}
	return total
}

// Empty reports whether the record covers no positions.
func (b *Bed) Empty() bool {
	return b.Size() == 0
}

// Clone returns a deep copy of the record.
func (b *Bed) Clone() *Bed {
	out := *b
	out.BlockSizes = append([]int64(nil), b.BlockSizes...)
	out.BlockStarts = append([]int64(nil), b.BlockStarts...)
	return &out
}

// Equal reports whether two records describe the same region with the
// same annotation fields.
func (b *Bed) Equal(other *Bed) bool {
	if b.Chrom != other.Chrom || b.ChromStart != other.ChromStart || b.ChromEnd != other.ChromEnd {
		return false
	}
	if b.Name != other.Name || b.Score != other.Score || b.Strand != other.Strand {
		return false
	}
	if b.ThickStart != other.ThickStart || b.ThickEnd != other.ThickEnd || b.ItemRGB != other.ItemRGB {
		return false
	}
	if len(b.BlockSizes) != len(other.BlockSizes) {
		return false
	}
	for i := range b.BlockSizes {
		if b.BlockSizes[i] != other.BlockSizes[i] || b.BlockStarts[i] != other.BlockStarts[i] {
			return false
		}
	}
	return true
}

// Validate checks the BED12 invariants: ordered bounds, thick region
// inside the record, sorted disjoint blocks that start at the record
// start and end at the record end.
func (b *Bed) Validate() error {
	if b.Chrom == "" {
		return fmt.Errorf("%w: missing chrom", ErrInvalidRecord)
	}
	if b.ChromStart < 0 || b.ChromEnd < b.ChromStart {
		return fmt.Errorf("%w: bounds %d-%d", ErrInvalidRecord, b.ChromStart, b.ChromEnd)
	}
	if b.ThickStart > b.ThickEnd {
		return fmt.Errorf("%w: thick bounds %d-%d", ErrInvalidRecord, b.ThickStart, b.ThickEnd)
	}
	if b.ThickStart < b.ChromStart || b.ThickEnd > b.ChromEnd {
		return fmt.Errorf("%w: thick bounds %d-%d outside record", ErrInvalidRecord, b.ThickStart, b.ThickEnd)
	}
	switch b.Strand {
	case "+", "-", ".":
	default:
		return fmt.Errorf("%w: strand %q", ErrInvalidRecord, b.Strand)
	}
	n := len(b.BlockSizes)
	if n == 0 || n != len(b.BlockStarts) {
		return fmt.Errorf("%w: %d block sizes, %d block starts", ErrInvalidRecord, n, len(b.BlockStarts))
	}
	if b.BlockStarts[0] != 0 {
		return fmt.Errorf("%w: first block starts at %d", ErrInvalidRecord, b.BlockStarts[0])
	}
	span := b.ChromEnd - b.ChromStart
	for i := 0; i < n; i++ {
		if b.BlockSizes[i] < 0 {
			return fmt.Errorf("%w: negative block size", ErrInvalidRecord)
		}
		if b.BlockSizes[i] == 0 && span != 0 {
			return fmt.Errorf("%w: zero-length block in non-empty record", ErrInvalidRecord)
		}
		if i > 0 && b.BlockStarts[i-1]+b.BlockSizes[i-1] > b.BlockStarts[i] {
			return fmt.Errorf("%w: blocks out of order", ErrInvalidRecord)
		}
	}
	if b.BlockStarts[n-1]+b.BlockSizes[n-1] != span {
		return fmt.Errorf("%w: last block ends at %d, record spans %d", ErrInvalidRecord, b.BlockStarts[n-1]+b.BlockSizes[n-1], span)
	}
	return nil
}

// Intersect keeps only the positions of b that other also covers,
// mutating b in place. Records on different chromosomes share nothing,
// so b collapses to a zero-length record at its old start. Two concrete,
// differing strands are an error; "." matches either strand. The thick
// bounds are clamped into the new record bounds.
func (b *Bed) Intersect(other *Bed) error {
	if b.Chrom != other.Chrom {
		b.zeroOut()
		return nil
	}
	if b.Strand != other.Strand && b.Strand != "." && other.Strand != "." {
		return fmt.Errorf("%w: %q and %q", ErrStrandMismatch, b.Strand, other.Strand)
	}
	b.replaceBlocks(IntersectAll(b.Blocks(), other.Blocks()))
	return nil
}

// Overlap keeps only the blocks of b that overlap at least one block of
// other, mutating b in place. Blocks are kept or dropped whole. Strands
// follow the same rule as Intersect: two concrete, differing strands
// are an error and "." matches either.
func (b *Bed) Overlap(other *Bed) error {
	if b.Chrom != other.Chrom {
		b.zeroOut()
		return nil
	}
	if b.Strand != other.Strand && b.Strand != "." && other.Strand != "." {
		return fmt.Errorf("%w: %q and %q", ErrStrandMismatch, b.Strand, other.Strand)
	}
	sel := other.Blocks()
	var kept []Range
	for _, blk := range b.Blocks() {
		if overlapsAny(blk, sel) {
			kept = append(kept, blk)
		}
	}
	b.replaceBlocks(kept)
	return nil
}

// Subtract removes every position of other from b, mutating b in place.
func (b *Bed) Subtract(other *Bed) error {
	if b.Chrom != other.Chrom {
		return nil
	}
	b.replaceBlocks(SubtractAll(b.Blocks(), other.Blocks()))
	return nil
}

// Update replaces the blocks of b with the given absolute ranges. The
// record bounds are recomputed and the thick bounds follow them; if the
// thick bounds had been customized they cannot be carried over and
// ErrThickBounds is returned.
func (b *Bed) Update(blocks []Range) error {
	if b.ThickStart != b.ChromStart || b.ThickEnd != b.ChromEnd {
		return fmt.Errorf("%w: %d-%d inside %d-%d", ErrThickBounds, b.ThickStart, b.ThickEnd, b.ChromStart, b.ChromEnd)
	}
	if len(blocks) == 0 {
		b.zeroOut()
		return nil
	}
	b.setBlocks(blocks)
	b.ThickStart = b.ChromStart
	b.ThickEnd = b.ChromEnd
	return b.Validate()
}

// replaceBlocks installs the given absolute blocks, collapsing to a
// zero-length record when none remain and clamping the thick bounds.
func (b *Bed) replaceBlocks(blocks []Range) {
	if len(blocks) == 0 {
		b.zeroOut()
		return
	}
	b.setBlocks(blocks)
	b.ThickStart = min(max(b.ThickStart, b.ChromStart), b.ChromEnd)
	b.ThickEnd = min(max(b.ThickEnd, b.ChromStart), b.ChromEnd)
}

// setBlocks recomputes the record bounds and relative block lists from
// absolute ranges. Blocks must be sorted and disjoint.
func (b *Bed) setBlocks(blocks []Range) {
	b.ChromStart = blocks[0].Start
	b.ChromEnd = blocks[len(blocks)-1].End
	b.BlockSizes = make([]int64, len(blocks))
	b.BlockStarts = make([]int64, len(blocks))
	for i, blk := range blocks {
		b.BlockSizes[i] = blk.Len()
		b.BlockStarts[i] = blk.Start - b.ChromStart
	}
}

// zeroOut collapses the record to a zero-length placeholder at its
// current start. The result is still a valid, serializable record.
func (b *Bed) zeroOut() {
	b.ChromEnd = b.ChromStart
	b.ThickStart = b.ChromStart
	b.ThickEnd = b.ChromStart
	b.BlockSizes = []int64{0}
	b.BlockStarts = []int64{0}
}

// String renders the record as a 12-column BED line.
func (b *Bed) String() string {
	sizes := make([]string, len(b.BlockSizes))
	starts := make([]string, len(b.BlockStarts))
	for i := range b.BlockSizes {
		sizes[i] = strconv.FormatInt(b.BlockSizes[i], 10)
		starts[i] = strconv.FormatInt(b.BlockStarts[i], 10)
	}
	fields := []string{
		b.Chrom,
		strconv.FormatInt(b.ChromStart, 10),
		strconv.FormatInt(b.ChromEnd, 10),
		b.Name,
		strconv.FormatInt(b.Score, 10),
		b.Strand,
		strconv.FormatInt(b.ThickStart, 10),
		strconv.FormatInt(b.ThickEnd, 10),
		fmt.Sprintf("%d,%d,%d", b.ItemRGB[0], b.ItemRGB[1], b.ItemRGB[2]),
		strconv.Itoa(b.BlockCount()),
		strings.Join(sizes, ","),
		strings.Join(starts, ","),
	}
	return strings.Join(fields, "\t")
}

// Parse reads a BED line with 3 to 12 tab-separated columns. Missing
// columns take their defaults; list columns tolerate a trailing comma.
func Parse(line string) (*Bed, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(fields) < 3 || len(fields) > 12 {
		return nil, fmt.Errorf("%w: %d fields", ErrInvalidRecord, len(fields))
	}
	chromStart, err := parseInt(fields[1], "chromStart")
	if err != nil {
		return nil, err
	}
	chromEnd, err := parseInt(fields[2], "chromEnd")
	if err != nil {
		return nil, err
	}
	b := &Bed{
		Chrom:       fields[0],
		ChromStart:  chromStart,
		ChromEnd:    chromEnd,
		Name:        ".",
		Strand:      ".",
		ThickStart:  chromStart,
		ThickEnd:    chromEnd,
		BlockSizes:  []int64{chromEnd - chromStart},
		BlockStarts: []int64{0},
	}
	if len(fields) > 3 {
		b.Name = fields[3]
	}
	if len(fields) > 4 && fields[4] != "." {
		if b.Score, err = parseInt(fields[4], "score"); err != nil {
			return nil, err
		}
	}
	if len(fields) > 5 {
		b.Strand = fields[5]
	}
	if len(fields) > 6 {
		if b.ThickStart, err = parseInt(fields[6], "thickStart"); err != nil {
			return nil, err
		}
	}
	if len(fields) > 7 {
		if b.ThickEnd, err = parseInt(fields[7], "thickEnd"); err != nil {
			return nil, err
		}
	}
	if len(fields) > 8 {
		if b.ItemRGB, err = parseRGB(fields[8]); err != nil {
			return nil, err
		}
	}
	if len(fields) > 9 {
		count, err := parseInt(fields[9], "blockCount")
		if err != nil {
			return nil, err
		}
		if len(fields) < 12 {
			return nil, fmt.Errorf("%w: blockCount without block lists", ErrInvalidRecord)
		}
		if b.BlockSizes, err = parseIntList(fields[10], "blockSizes"); err != nil {
			return nil, err
		}
		if b.BlockStarts, err = parseIntList(fields[11], "blockStarts"); err != nil {
			return nil, err
		}
		if int(count) != len(b.BlockSizes) {
			return nil, fmt.Errorf("%w: blockCount %d, %d block sizes", ErrInvalidRecord, count, len(b.BlockSizes))
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func parseInt(s, field string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidRecord, field, s)
	}
	return v, nil
}

// ParseCSV reads a comma-separated integer list as found in BED text and
// UCSC track payloads, tolerating a trailing comma.
func ParseCSV(s string) ([]int64, error) {
	parts := strings.Split(strings.TrimSuffix(s, ","), ",")
	out := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer list", ErrInvalidRecord, s)
		}
		out[i] = v
	}
	return out, nil
}

func parseIntList(s, field string) ([]int64, error) {
	out, err := ParseCSV(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidRecord, field, s)
	}
	return out, nil
}

// parseRGB reads an "r,g,b" triple. A bare "0" is accepted as an alias
// for black, matching common BED files.
func parseRGB(s string) ([3]uint8, error) {
	var rgb [3]uint8
	if s == "0" || s == "." {
		return rgb, nil
	}
	parts := strings.Split(strings.TrimSuffix(s, ","), ",")
	if len(parts) != 3 {
		return rgb, fmt.Errorf("%w: itemRgb %q", ErrInvalidRecord, s)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return rgb, fmt.Errorf("%w: itemRgb %q", ErrInvalidRecord, s)
		}
		rgb[i] = uint8(v)
	}
	return rgb, nil
}
