package hgvs

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-skip/internal/bed"
)

// ErrOutOfRange is returned when a position falls outside the coding
// exons it is mapped against.
var ErrOutOfRange = errors.New("position outside the coding region")

// CDSToInternal maps a 0-based CDS offset to its internal coordinate by
// walking the coding exons, which must be sorted in genomic order. On a
// reverse-strand transcript the CDS runs from the last exon backwards,
// so the walk mirrors within each exon.
func CDSToInternal(pos int64, exons []bed.Range, reverse bool) (int64, error) {
	if pos < 0 {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
	}
	remaining := pos
	if reverse {
		for i := len(exons) - 1; i >= 0; i-- {
			if remaining < exons[i].Len() {
				return exons[i].End - 1 - remaining, nil
			}
			remaining -= exons[i].Len()
		}
	} else {
		for _, exon := range exons {
			if remaining < exon.Len() {
				return exon.Start + remaining, nil
			}
			remaining -= exon.Len()
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
}

// InternalToCDS is the inverse of CDSToInternal: it maps an internal
// coordinate inside a coding exon back to its 0-based CDS offset.
func InternalToCDS(pos int64, exons []bed.Range, reverse bool) (int64, error) {
	var walked int64
	if reverse {
		for i := len(exons) - 1; i >= 0; i-- {
			if exons[i].Contains(pos) {
				return walked + exons[i].End - 1 - pos, nil
			}
			walked += exons[i].Len()
		}
	} else {
		for _, exon := range exons {
			if exon.Contains(pos) {
				return walked + pos - exon.Start, nil
			}
			walked += exon.Len()
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrOutOfRange, pos)
}
