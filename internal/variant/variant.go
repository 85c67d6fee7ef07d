// Package variant models sequence edits as half-open coordinate spans and
// implements the deletion-combination algebra used to merge a patient
// variant with an exon-skip deletion.
package variant

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for variant construction and combination.
var (
	// ErrInvalidVariant is returned for inverted spans and for deleted
	// sequences attached to multi-base spans.
	ErrInvalidVariant = errors.New("invalid variant")
	// ErrOverlappingVariants is returned when variants that share
	// positions are ordered: position order is only a partial order.
	ErrOverlappingVariants = errors.New("overlapping variants cannot be ordered")
	// ErrCombineConflict is returned when a variant partially overlaps
	// the deletion it is combined with.
	ErrCombineConflict = errors.New("variant partially overlaps the deletion")
)

// Variant is a single edit on a sequence: the half-open span
// [Start, End) is replaced by Inserted. Deleted optionally records the
// replaced base and is only meaningful for spans of at most one base.
type Variant struct {
	Start    int64  // Span start
	End      int64  // Span end (exclusive)
	Inserted string // Replacement sequence, may be empty
	Deleted  string // Reference base for single-base records
}

// New returns a validated variant. The span must not be inverted and a
// deleted sequence may only accompany a span of at most one base, so
// that it names the single reference base being replaced.
func New(start, end int64, inserted, deleted string) (Variant, error) {
	if end < start {
		return Variant{}, fmt.Errorf("%w: span %d-%d is inverted", ErrInvalidVariant, start, end)
	}
	if deleted != "" && end-start > 1 {
		return Variant{}, fmt.Errorf("%w: deleted sequence %q on a %d base span", ErrInvalidVariant, deleted, end-start)
	}
	return Variant{Start: start, End: end, Inserted: inserted, Deleted: deleted}, nil
}

// NewDeletion returns a variant that removes [start, end) without
// inserting anything.
func NewDeletion(start, end int64) (Variant, error) {
	return New(start, end, "", "")
}

// Span returns the number of reference positions the variant touches.
func (v Variant) Span() int64 {
	return v.End - v.Start
}

// IsDeletion reports whether the variant removes sequence without a
// replacement.
func (v Variant) IsDeletion() bool {
	return v.Inserted == ""
}

// IsInsertion reports whether the variant inserts between two positions
// without touching the reference.
func (v Variant) IsInsertion() bool {
	return v.Start == v.End
}

// IsSubstitution reports whether the variant replaces a single known
// reference base.
func (v Variant) IsSubstitution() bool {
	return v.Span() == 1 && v.Deleted != "" && v.Inserted != ""
}

// String renders the variant for logs and error messages.
func (v Variant) String() string {
	return fmt.Sprintf("Variant(%d, %d, ins=%q, del=%q)", v.Start, v.End, v.Inserted, v.Deleted)
}

// Before reports whether v lies entirely before other.
func (v Variant) Before(other Variant) bool {
	return v.End <= other.Start
}

// After reports whether v lies entirely after other.
func (v Variant) After(other Variant) bool {
	return v.Start >= other.End
}

// Inside reports whether v lies entirely within other.
func (v Variant) Inside(other Variant) bool {
	return v.Start >= other.Start && v.End <= other.End
}

// Overlaps reports whether v and other share positions: one starts or
// ends within the other, or one contains the other. Two identical
// variants overlap.
func (v Variant) Overlaps(other Variant) bool {
	startsIn := v.Start >= other.Start && v.Start < other.End
	endsIn := v.End > other.Start && v.End <= other.End
	return startsIn || endsIn || v.Inside(other) || other.Inside(v)
}

// Sort orders variants by start position, in place. Overlapping
// variants have no defined order, so any overlapping pair is an error
// and the slice must be considered unordered.
func Sort(variants []Variant) error {
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Start < variants[j].Start
	})
	for i := 1; i < len(variants); i++ {
		if variants[i-1].Overlaps(variants[i]) {
			return fmt.Errorf("%w: %s and %s", ErrOverlappingVariants, variants[i-1], variants[i])
		}
	}
	return nil
}

// CombineDeletion merges a deletion into a set of variants. Variants
// before the deletion are kept, variants the deletion swallows are
// dropped, and the deletion takes its place in position order. A
// deletion that lies inside an existing deletion adds nothing and the
// set is returned unchanged. A variant that partially overlaps the
// deletion cannot be merged and is an error. The input slice is not
// modified.
func CombineDeletion(variants []Variant, deletion Variant) ([]Variant, error) {
	sorted := append([]Variant(nil), variants...)
	if err := Sort(sorted); err != nil {
		return nil, err
	}
	out := make([]Variant, 0, len(sorted)+1)
	for i, v := range sorted {
		switch {
		case v.Before(deletion):
			out = append(out, v)
		case v.Inside(deletion):
			// Swallowed by the deletion.
		case v.After(deletion):
			out = append(out, deletion)
			out = append(out, sorted[i:]...)
			return out, nil
		case v.IsDeletion() && deletion.Inside(v):
			// Already covered by the existing deletion.
			out = append(out, sorted[i:]...)
			return out, nil
		default:
			return nil, fmt.Errorf("%w: %s and %s", ErrCombineConflict, v, deletion)
		}
	}
	out = append(out, deletion)
	return out, nil
}
