package hgvs

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/inodb/vibe-skip/internal/bed"
)

// ChangedProteinPositions diffs the reference protein against the
// predicted protein and returns the 0-based residue spans of the
// reference that are deleted or replaced. Pure insertions do not destroy
// reference residues and are ignored.
func ChangedProteinPositions(reference, observed string) []bed.Range {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(reference, observed, false)

	var out []bed.Range
	var pos int64
	for _, d := range diffs {
		length := int64(len(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			pos += length
		case diffmatchpatch.DiffDelete:
			// Replacements show up as a deletion plus an insertion, so
			// recording deletions covers both.
			if n := len(out); n > 0 && out[n-1].End == pos {
				out[n-1].End = pos + length
			} else {
				out = append(out, bed.Range{Start: pos, End: pos + length})
			}
			pos += length
		case diffmatchpatch.DiffInsert:
			// Inserted residues have no reference position.
		}
	}
	return out
}
