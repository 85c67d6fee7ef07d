// Package bed models genomic regions as BED records built from half-open ranges.
package bed

import "sort"

// Range is a half-open genomic interval [Start, End).
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of positions covered by the range.
func (r Range) Len() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range covers no positions.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos int64) bool {
	return pos >= r.Start && pos < r.End
}

// Overlaps reports whether r and other share at least one position.
// Ranges that only touch at an endpoint do not overlap.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the positions shared by r and other. The result is
// empty when the ranges do not overlap.
func (r Range) Intersect(other Range) Range {
	out := Range{Start: max(r.Start, other.Start), End: min(r.End, other.End)}
	if out.End < out.Start {
		out.End = out.Start
	}
	return out
}

// IntersectAll returns the pairwise intersections of two sorted, disjoint
// range lists. Empty intersections are dropped.
func IntersectAll(a, b []Range) []Range {
	var out []Range
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if x := a[i].Intersect(b[j]); !x.Empty() {
			out = append(out, x)
		}
		// Advance whichever list ends first at this position.
		if a[i].End <= b[j].End {
			i++
		} else {
			j++
		}
	}
	return out
}

// MergeAll sorts the ranges and coalesces every overlapping or adjacent
// pair, dropping empty ranges. The input slice is not modified.
func MergeAll(ranges []Range) []Range {
	sorted := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.Empty() {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	var out []Range
	for _, r := range sorted {
		if n := len(out); n > 0 && r.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, r.End)
			continue
		}
		out = append(out, r)
	}
	return out
}

// SubtractAll removes every position covered by subtrahends from minuend.
// Both lists must be sorted by Start and internally disjoint. Zero-length
// subtrahends and leftovers are dropped.
func SubtractAll(minuend, subtrahends []Range) []Range {
	var out []Range
	j := 0
	for _, m := range minuend {
		cur := m
		// Skip subtrahends that end before this block starts.
		for j < len(subtrahends) && subtrahends[j].End <= cur.Start {
			j++
		}
		k := j
		for k < len(subtrahends) && subtrahends[k].Start < cur.End {
			s := subtrahends[k]
			if s.Empty() {
				k++
				continue
			}
			if s.Start > cur.Start {
				out = append(out, Range{Start: cur.Start, End: s.Start})
			}
			if s.End >= cur.End {
				// The subtrahend may reach into the next block, so keep it.
				cur.Start = cur.End
				break
			}
			cur.Start = s.End
			k++
		}
		if cur.End > cur.Start {
			out = append(out, cur)
		}
	}
	return out
}

// overlapsAny reports whether r overlaps at least one range in list.
func overlapsAny(r Range, list []Range) bool {
	for _, o := range list {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
