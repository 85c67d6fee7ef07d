package bed

import "fmt"

// Model is the JSON wire representation of a Bed record, using the
// conventional BED column names as keys. Optional columns are pointers
// so that an absent field and an explicit zero can be told apart.
type Model struct {
	Chrom       string   `json:"chrom"`
	ChromStart  int64    `json:"chromStart"`
	ChromEnd    int64    `json:"chromEnd"`
	Name        string   `json:"name,omitempty"`
	Score       int64    `json:"score"`
	Strand      string   `json:"strand,omitempty"`
	ThickStart  *int64   `json:"thickStart,omitempty"`
	ThickEnd    *int64   `json:"thickEnd,omitempty"`
	ItemRGB     [3]uint8 `json:"itemRgb"`
	BlockCount  int      `json:"blockCount,omitempty"`
	BlockSizes  []int64  `json:"blockSizes,omitempty"`
	BlockStarts []int64  `json:"blockStarts,omitempty"`
}

// NewModel converts a record to its wire representation.
func NewModel(b *Bed) Model {
	thickStart, thickEnd := b.ThickStart, b.ThickEnd
	return Model{
		Chrom:       b.Chrom,
		ChromStart:  b.ChromStart,
		ChromEnd:    b.ChromEnd,
		Name:        b.Name,
		Score:       b.Score,
		Strand:      b.Strand,
		ThickStart:  &thickStart,
		ThickEnd:    &thickEnd,
		ItemRGB:     b.ItemRGB,
		BlockCount:  b.BlockCount(),
		BlockSizes:  append([]int64(nil), b.BlockSizes...),
		BlockStarts: append([]int64(nil), b.BlockStarts...),
	}
}

// ToBed converts the wire representation back to a validated record.
// Absent optional fields take the BED defaults.
func (m Model) ToBed() (*Bed, error) {
	b := &Bed{
		Chrom:       m.Chrom,
		ChromStart:  m.ChromStart,
		ChromEnd:    m.ChromEnd,
		Name:        m.Name,
		Score:       m.Score,
		Strand:      m.Strand,
		ThickStart:  m.ChromStart,
		ThickEnd:    m.ChromEnd,
		ItemRGB:     m.ItemRGB,
		BlockSizes:  append([]int64(nil), m.BlockSizes...),
		BlockStarts: append([]int64(nil), m.BlockStarts...),
	}
	if b.Name == "" {
		b.Name = "."
	}
	if b.Strand == "" {
		b.Strand = "."
	}
	if m.ThickStart != nil {
		b.ThickStart = *m.ThickStart
	}
	if m.ThickEnd != nil {
		b.ThickEnd = *m.ThickEnd
	}
	if len(b.BlockSizes) == 0 && len(b.BlockStarts) == 0 {
		b.BlockSizes = []int64{b.ChromEnd - b.ChromStart}
		b.BlockStarts = []int64{0}
	}
	if m.BlockCount != 0 && m.BlockCount != len(b.BlockSizes) {
		return nil, fmt.Errorf("%w: blockCount %d, %d block sizes", ErrInvalidRecord, m.BlockCount, len(b.BlockSizes))
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}
