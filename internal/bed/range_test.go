package bed

import "testing"

func TestRangeOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want bool
	}{
		{"identical", Range{0, 10}, Range{0, 10}, true},
		{"contained", Range{0, 10}, Range{3, 5}, true},
		{"partial", Range{0, 10}, Range{5, 15}, true},
		{"adjacent left", Range{0, 10}, Range{10, 20}, false},
		{"adjacent right", Range{10, 20}, Range{0, 10}, false},
		{"disjoint", Range{0, 10}, Range{20, 30}, false},
		{"single base", Range{9, 10}, Range{9, 10}, true},
		{"empty never overlaps", Range{5, 5}, Range{0, 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestRangeIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Range
		want Range
	}{
		{"identical", Range{0, 10}, Range{0, 10}, Range{0, 10}},
		{"contained", Range{0, 10}, Range{3, 5}, Range{3, 5}},
		{"partial", Range{0, 10}, Range{5, 15}, Range{5, 10}},
		{"adjacent is empty", Range{0, 10}, Range{10, 20}, Range{10, 10}},
		{"disjoint is empty", Range{0, 10}, Range{20, 30}, Range{20, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if tt.want.Empty() != got.Empty() {
				t.Errorf("Empty() = %v, want %v", got.Empty(), tt.want.Empty())
			}
		})
	}
}

func TestIntersectAll(t *testing.T) {
	exons := []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}}
	tests := []struct {
		name string
		a, b []Range
		want []Range
	}{
		{"single selector", exons, []Range{{23, 72}}, []Range{{23, 40}, {50, 60}, {70, 72}}},
		{"no overlap", exons, []Range{{10, 20}}, nil},
		{"single base per block", exons, []Range{{9, 21}}, []Range{{9, 10}, {20, 21}}},
		{"empty selector", exons, nil, nil},
		{"self", exons, exons, exons},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntersectAll(tt.a, tt.b)
			if !rangesEqual(got, tt.want) {
				t.Errorf("IntersectAll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubtractAll(t *testing.T) {
	exons := []Range{{0, 10}, {20, 40}, {50, 60}, {70, 100}}
	tests := []struct {
		name       string
		minuend    []Range
		subtrahend []Range
		want       []Range
	}{
		{"everything", exons, []Range{{0, 100}}, nil},
		{"clip first block", exons, []Range{{5, 15}}, []Range{{0, 5}, {20, 40}, {50, 60}, {70, 100}}},
		{"clip two blocks", exons, []Range{{9, 21}}, []Range{{0, 9}, {21, 40}, {50, 60}, {70, 100}}},
		{"split a block", exons, []Range{{25, 30}}, []Range{{0, 10}, {20, 25}, {30, 40}, {50, 60}, {70, 100}}},
		{"nothing", exons, []Range{{10, 20}}, exons},
		{"spanning subtrahend", exons, []Range{{5, 55}}, []Range{{0, 5}, {55, 60}, {70, 100}}},
		{"exact block", exons, []Range{{20, 40}}, []Range{{0, 10}, {50, 60}, {70, 100}}},
		{"empty minuend", nil, exons, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractAll(tt.minuend, tt.subtrahend)
			if !rangesEqual(got, tt.want) {
				t.Errorf("SubtractAll = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeAll(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Range
		want   []Range
	}{
		{"empty", nil, nil},
		{"single", []Range{{0, 10}}, []Range{{0, 10}}},
		{"disjoint", []Range{{0, 10}, {20, 30}}, []Range{{0, 10}, {20, 30}}},
		{"unsorted", []Range{{20, 30}, {0, 10}}, []Range{{0, 10}, {20, 30}}},
		{"overlapping", []Range{{0, 10}, {5, 15}}, []Range{{0, 15}}},
		{"adjacent", []Range{{0, 10}, {10, 20}}, []Range{{0, 20}}},
		{"contained", []Range{{0, 20}, {5, 10}}, []Range{{0, 20}}},
		{"drops empty", []Range{{5, 5}, {0, 10}}, []Range{{0, 10}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeAll(tt.ranges)
			if !rangesEqual(got, tt.want) {
				t.Errorf("MergeAll(%v) = %v, want %v", tt.ranges, got, tt.want)
			}
		})
	}
}

func TestSubtractAllEmptySubtrahend(t *testing.T) {
	// A zero-length subtrahend covers no positions and must not split blocks.
	got := SubtractAll([]Range{{0, 10}}, []Range{{5, 5}})
	if !rangesEqual(got, []Range{{0, 10}}) {
		t.Errorf("SubtractAll = %v, want [{0 10}]", got)
	}
}

func rangesEqual(a, b []Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
