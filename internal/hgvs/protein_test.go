package hgvs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/vibe-skip/internal/bed"
)

func TestChangedProteinPositions(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		observed  string
		expected  []bed.Range
	}{
		{"no protein", "", "", nil},
		{"no change", "A", "A", nil},
		{"single change", "A", "T", []bed.Range{{Start: 0, End: 1}}},
		{"change on second position", "AAA", "ATA", []bed.Range{{Start: 1, End: 2}}},
		{"deletion in a repeat", "AA", "A", []bed.Range{{Start: 1, End: 2}}},
		{"longer deletion in a repeat", "AAA", "A", []bed.Range{{Start: 1, End: 3}}},
		{"delins", "AAA", "ATC", []bed.Range{{Start: 1, End: 3}}},
		{"insertion is ignored", "AAA", "AATA", nil},
		{"delins equivalent to an insertion", "AAA", "ATAGAA", nil},
		{"delins equivalent to a deletion", "AAA", "AGGGA", []bed.Range{{Start: 1, End: 2}}},
		{"truncated tail", "MKWVTFISLL", "MKWVTF", []bed.Range{{Start: 6, End: 10}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ChangedProteinPositions(tc.reference, tc.observed))
		})
	}
}
