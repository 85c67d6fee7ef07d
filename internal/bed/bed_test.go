package bed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transcriptRecord builds the four-exon record used across the set
// operation tests: chr1:0-100 with blocks 0-10, 20-40, 50-60, 70-100.
func transcriptRecord(t *testing.T) *Bed {
	t.Helper()
	b, err := FromBlocks("chr1", []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}})
	require.NoError(t, err)
	return b
}

func selector(t *testing.T, chrom string, start, end int64) *Bed {
	t.Helper()
	b, err := New(chrom, start, end)
	require.NoError(t, err)
	return b
}

func TestNewDefaults(t *testing.T) {
	b, err := New("chr1", 0, 11)
	require.NoError(t, err)

	assert.Equal(t, ".", b.Name)
	assert.Equal(t, int64(0), b.Score)
	assert.Equal(t, ".", b.Strand)
	assert.Equal(t, int64(0), b.ThickStart)
	assert.Equal(t, int64(11), b.ThickEnd)
	assert.Equal(t, [3]uint8{0, 0, 0}, b.ItemRGB)
	assert.Equal(t, 1, b.BlockCount())
	assert.Equal(t, []Range{{0, 11}}, b.Blocks())
	assert.Equal(t, int64(11), b.Size())

	line := "chr1\t0\t11\t.\t0\t.\t0\t11\t0,0,0\t1\t11\t0"
	assert.Equal(t, line, b.String())

	parsed, err := Parse(line)
	require.NoError(t, err)
	assert.True(t, b.Equal(parsed), "record should round-trip through its BED line")
}

func TestNewInvalid(t *testing.T) {
	_, err := New("chr1", 11, 0)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = New("", 0, 11)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr bool
		check   func(*testing.T, *Bed)
	}{
		{
			name: "three fields",
			line: "chr1\t10\t20",
			check: func(t *testing.T, b *Bed) {
				assert.Equal(t, ".", b.Name)
				assert.Equal(t, int64(10), b.ThickStart)
				assert.Equal(t, int64(20), b.ThickEnd)
				assert.Equal(t, []Range{{10, 20}}, b.Blocks())
			},
		},
		{
			name: "twelve fields",
			line: "chr1\t0\t100\tENST00000000001\t0\t+\t23\t72\t0,0,0\t4\t10,20,10,30\t0,20,50,70",
			check: func(t *testing.T, b *Bed) {
				assert.Equal(t, "ENST00000000001", b.Name)
				assert.Equal(t, "+", b.Strand)
				assert.Equal(t, int64(23), b.ThickStart)
				assert.Equal(t, int64(72), b.ThickEnd)
				assert.Equal(t, []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}}, b.Blocks())
			},
		},
		{
			name: "trailing commas",
			line: "chr1\t0\t100\t.\t0\t.\t0\t100\t0\t2\t10,80,\t0,20,",
			check: func(t *testing.T, b *Bed) {
				assert.Equal(t, []int64{10, 80}, b.BlockSizes)
				assert.Equal(t, []int64{0, 20}, b.BlockStarts)
			},
		},
		{
			name: "dot score and bare rgb",
			line: "chr1\t5\t15\tname\t.\t-\t5\t15\t0",
			check: func(t *testing.T, b *Bed) {
				assert.Equal(t, int64(0), b.Score)
				assert.Equal(t, [3]uint8{0, 0, 0}, b.ItemRGB)
				assert.Equal(t, "-", b.Strand)
			},
		},
		{
			name: "zero length record",
			line: "chr1\t7\t7\t.\t0\t.\t7\t7\t0,0,0\t1\t0\t0",
			check: func(t *testing.T, b *Bed) {
				assert.True(t, b.Empty())
				assert.Equal(t, int64(7), b.ChromStart)
			},
		},
		{name: "too few fields", line: "chr1\t10", wantErr: true},
		{name: "bad start", line: "chr1\tx\t20", wantErr: true},
		{name: "inverted bounds", line: "chr1\t20\t10", wantErr: true},
		{name: "count without lists", line: "chr1\t0\t10\t.\t0\t.\t0\t10\t0\t1", wantErr: true},
		{name: "count mismatch", line: "chr1\t0\t100\t.\t0\t.\t0\t100\t0\t3\t10,80\t0,20", wantErr: true},
		{name: "first block not at start", line: "chr1\t0\t100\t.\t0\t.\t0\t100\t0\t1\t90\t10", wantErr: true},
		{name: "last block short", line: "chr1\t0\t100\t.\t0\t.\t0\t100\t0\t2\t10,20\t0,20", wantErr: true},
		{name: "overlapping blocks", line: "chr1\t0\t100\t.\t0\t.\t0\t100\t0\t2\t30,80\t0,20", wantErr: true},
		{name: "thick outside record", line: "chr1\t10\t100\t.\t0\t.\t0\t100\t0\t1\t90\t0", wantErr: true},
		{name: "bad strand", line: "chr1\t0\t10\t.\t0\t?", wantErr: true},
		{name: "bad rgb", line: "chr1\t0\t10\t.\t0\t.\t0\t10\t1,2", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecord)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, b)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	b := transcriptRecord(t)
	b.Name = "ENST00000000001"
	b.Strand = "-"
	b.ThickStart = 23
	b.ThickEnd = 72
	b.ItemRGB = [3]uint8{128, 0, 255}
	require.NoError(t, b.Validate())

	parsed, err := Parse(b.String())
	require.NoError(t, err)
	assert.True(t, b.Equal(parsed))
	assert.Equal(t, 12, len(strings.Split(b.String(), "\t")))
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name       string
		selector   *Bed
		wantBlocks []Range
	}{
		{
			name:       "full overlap keeps every block",
			selector:   selector(t, "chr1", 0, 100),
			wantBlocks: []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}},
		},
		{
			name:       "clip to one block",
			selector:   selector(t, "chr1", 5, 15),
			wantBlocks: []Range{{5, 10}},
		},
		{
			name:       "single base of two blocks",
			selector:   selector(t, "chr1", 9, 21),
			wantBlocks: []Range{{9, 10}, {20, 21}},
		},
		{
			name:       "coding region",
			selector:   selector(t, "chr1", 23, 72),
			wantBlocks: []Range{{23, 40}, {50, 60}, {70, 72}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := transcriptRecord(t)
			require.NoError(t, b.Intersect(tt.selector))
			require.NoError(t, b.Validate())
			assert.Equal(t, tt.wantBlocks, b.Blocks())
			assert.Equal(t, tt.wantBlocks[0].Start, b.ChromStart)
			assert.Equal(t, tt.wantBlocks[len(tt.wantBlocks)-1].End, b.ChromEnd)
		})
	}
}

func TestIntersectOtherChromZeroes(t *testing.T) {
	b := transcriptRecord(t)
	require.NoError(t, b.Intersect(selector(t, "chr2", 0, 100)))

	require.NoError(t, b.Validate())
	assert.True(t, b.Empty())
	assert.Equal(t, int64(0), b.ChromStart)
	assert.Equal(t, int64(0), b.ChromEnd)
	assert.Equal(t, int64(0), b.ThickStart)
	assert.Equal(t, int64(0), b.ThickEnd)
	assert.Equal(t, []int64{0}, b.BlockSizes)
	assert.Equal(t, []int64{0}, b.BlockStarts)

	// The zeroed record still serializes and parses.
	parsed, err := Parse(b.String())
	require.NoError(t, err)
	assert.True(t, b.Equal(parsed))
}

func TestIntersectZeroKeepsOldStart(t *testing.T) {
	b, err := New("chr1", 100, 200)
	require.NoError(t, err)
	require.NoError(t, b.Intersect(selector(t, "chr2", 0, 10)))
	assert.Equal(t, int64(100), b.ChromStart)
	assert.Equal(t, int64(100), b.ChromEnd)
}

func TestIntersectStrand(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr bool
	}{
		{name: "both wildcard", a: ".", b: "."},
		{name: "wildcard receiver", a: ".", b: "+"},
		{name: "wildcard argument", a: "-", b: "."},
		{name: "same strand", a: "+", b: "+"},
		{name: "opposite strands", a: "+", b: "-", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := transcriptRecord(t)
			b.Strand = tt.a
			sel := selector(t, "chr1", 0, 100)
			sel.Strand = tt.b
			err := b.Intersect(sel)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStrandMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIntersectClampsThick(t *testing.T) {
	b := transcriptRecord(t)
	b.ThickStart = 23
	b.ThickEnd = 72
	require.NoError(t, b.Intersect(selector(t, "chr1", 50, 60)))

	assert.Equal(t, []Range{{50, 60}}, b.Blocks())
	assert.Equal(t, int64(50), b.ThickStart)
	assert.Equal(t, int64(60), b.ThickEnd)
	require.NoError(t, b.Validate())
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name       string
		selector   *Bed
		wantBlocks []Range
	}{
		{
			name:       "keeps whole touched block",
			selector:   selector(t, "chr1", 5, 15),
			wantBlocks: []Range{{0, 10}},
		},
		{
			name:       "keeps both touched blocks",
			selector:   selector(t, "chr1", 9, 21),
			wantBlocks: []Range{{0, 10}, {20, 40}},
		},
		{
			name:       "intron selector drops everything",
			selector:   selector(t, "chr1", 10, 20),
			wantBlocks: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := transcriptRecord(t)
			require.NoError(t, b.Overlap(tt.selector))
			require.NoError(t, b.Validate())
			if tt.wantBlocks == nil {
				assert.True(t, b.Empty())
				return
			}
			assert.Equal(t, tt.wantBlocks, b.Blocks())
		})
	}
}

func TestOverlapOtherChromZeroes(t *testing.T) {
	b := transcriptRecord(t)
	require.NoError(t, b.Overlap(selector(t, "chr2", 0, 100)))
	assert.True(t, b.Empty())
}

func TestOverlapStrand(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr bool
	}{
		{name: "both wildcard", a: ".", b: "."},
		{name: "wildcard receiver", a: ".", b: "+"},
		{name: "wildcard argument", a: "-", b: "."},
		{name: "same strand", a: "+", b: "+"},
		{name: "opposite strands", a: "+", b: "-", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := transcriptRecord(t)
			b.Strand = tt.a
			sel := selector(t, "chr1", 0, 100)
			sel.Strand = tt.b
			err := b.Overlap(sel)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrStrandMismatch)
				assert.Equal(t, []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}}, b.Blocks())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name       string
		selector   *Bed
		wantSizes  []int64
		wantStarts []int64
	}{
		{
			name:       "everything leaves a zero record",
			selector:   selector(t, "chr1", 0, 100),
			wantSizes:  []int64{0},
			wantStarts: []int64{0},
		},
		{
			name:       "clip first block",
			selector:   selector(t, "chr1", 5, 15),
			wantSizes:  []int64{5, 20, 10, 30},
			wantStarts: []int64{0, 20, 50, 70},
		},
		{
			name:       "clip two blocks",
			selector:   selector(t, "chr1", 9, 21),
			wantSizes:  []int64{9, 19, 10, 30},
			wantStarts: []int64{0, 21, 50, 70},
		},
		{
			name:       "other chromosome is untouched",
			selector:   selector(t, "chr2", 0, 100),
			wantSizes:  []int64{10, 20, 10, 30},
			wantStarts: []int64{0, 20, 50, 70},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := transcriptRecord(t)
			require.NoError(t, b.Subtract(tt.selector))
			require.NoError(t, b.Validate())
			assert.Equal(t, tt.wantSizes, b.BlockSizes)
			assert.Equal(t, tt.wantStarts, b.BlockStarts)
		})
	}
}

func TestUpdate(t *testing.T) {
	b := transcriptRecord(t)
	require.NoError(t, b.Update([]Range{{5, 15}, {30, 35}}))

	assert.Equal(t, int64(5), b.ChromStart)
	assert.Equal(t, int64(35), b.ChromEnd)
	assert.Equal(t, int64(5), b.ThickStart)
	assert.Equal(t, int64(35), b.ThickEnd)
	assert.Equal(t, []Range{{5, 15}, {30, 35}}, b.Blocks())
}

func TestUpdateCustomThick(t *testing.T) {
	b := transcriptRecord(t)
	b.ThickStart = 23
	b.ThickEnd = 72
	err := b.Update([]Range{{5, 15}})
	assert.ErrorIs(t, err, ErrThickBounds)
}

func TestUpdateEmptyZeroes(t *testing.T) {
	b := transcriptRecord(t)
	require.NoError(t, b.Update(nil))
	assert.True(t, b.Empty())
	assert.Equal(t, int64(0), b.ChromStart)
}

func TestCloneIsIndependent(t *testing.T) {
	b := transcriptRecord(t)
	c := b.Clone()
	require.NoError(t, c.Subtract(selector(t, "chr1", 0, 50)))

	assert.Equal(t, []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}}, b.Blocks())
	assert.Equal(t, []Range{{50, 60}, {70, 100}}, c.Blocks())
}
