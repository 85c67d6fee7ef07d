package hgvs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	id, variants, err := Split("ENST00000375549.8:c.53del")
	require.NoError(t, err)
	assert.Equal(t, "ENST00000375549.8", id)
	assert.Equal(t, "53del", variants)
}

func TestSplitErrors(t *testing.T) {
	cases := []struct {
		name        string
		description string
		expected    error
	}{
		{"no separator", "ENST00000375549.8", ErrNotHGVS},
		{"two separators", "ENST00000375549.8:c.53del:extra", ErrNotHGVS},
		{"refseq transcript", "NM_000094.4:c.53del", ErrNotEnsembl},
		{"genomic coordinates", "ENST00000375549.8:g.53del", ErrNotCdot},
		{"protein coordinates", "ENST00000375549.8:p.Arg18del", ErrNotCdot},
		{"empty variant", "ENST00000375549.8:c.", ErrNotHGVS},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Split(tc.description)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestParseCVariants(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected []CVariant
	}{
		{
			"single base deletion",
			"53del",
			[]CVariant{{Start: 53, End: 53, Type: "deletion"}},
		},
		{
			"range deletion",
			"53_169del",
			[]CVariant{{Start: 53, End: 169, Type: "deletion"}},
		},
		{
			"substitution",
			"100A>T",
			[]CVariant{{Start: 100, End: 100, Type: "substitution", Ref: "A", Alt: "T"}},
		},
		{
			"insertion",
			"100_101insGATA",
			[]CVariant{{Start: 100, End: 101, Type: "insertion", Alt: "GATA"}},
		},
		{
			"delins",
			"100_102delinsTT",
			[]CVariant{{Start: 100, End: 102, Type: "deletion_insertion", Alt: "TT"}},
		},
		{
			"single base delins",
			"100delinsTT",
			[]CVariant{{Start: 100, End: 100, Type: "deletion_insertion", Alt: "TT"}},
		},
		{
			"allele",
			"[53del;100A>T]",
			[]CVariant{
				{Start: 53, End: 53, Type: "deletion"},
				{Start: 100, End: 100, Type: "substitution", Ref: "A", Alt: "T"},
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCVariants(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseCVariantsErrors(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected error
	}{
		{"unterminated allele", "[53del;100A>T", ErrNotHGVS},
		{"inverted deletion", "169_53del", ErrNotHGVS},
		{"duplication", "53dup", ErrUnsupported},
		{"inversion", "53_169inv", ErrUnsupported},
		{"intronic position", "53+1del", ErrUnsupported},
		{"non adjacent insertion", "100_105insGATA", ErrUnsupported},
		{"lowercase bases", "100a>t", ErrUnsupported},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCVariants(tc.text)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}
