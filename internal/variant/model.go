package variant

import "fmt"

// Model is the deletion-insertion wire structure used by the HGVS
// normalization engine. Every variant is expressed as a span of the
// reference being replaced by inserted sequence.
type Model struct {
	Location Location `json:"location"`
	Type     string   `json:"type"`
	Source   string   `json:"source"`
	Inserted []Seq    `json:"inserted"`
	Deleted  []Seq    `json:"deleted,omitempty"`
}

// Location is a half-open span on the reference.
type Location struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Point is a single position on the reference.
type Point struct {
	Position int64 `json:"position"`
}

// Seq is a literal sequence with its origin.
type Seq struct {
	Sequence string `json:"sequence"`
	Source   string `json:"source"`
}

// ModelType is the variant type every record carries on the wire.
const ModelType = "deletion_insertion"

// Model returns the wire representation of the variant. The inserted
// list is always present, empty for pure deletions; the deleted list is
// only attached when a single reference base was captured.
func (v Variant) Model() Model {
	m := Model{
		Location: Location{
			Start: Point{Position: v.Start},
			End:   Point{Position: v.End},
		},
		Type:     ModelType,
		Source:   "reference",
		Inserted: []Seq{},
	}
	if v.Inserted != "" {
		m.Inserted = []Seq{{Sequence: v.Inserted, Source: "description"}}
	}
	if v.Deleted != "" {
		m.Deleted = []Seq{{Sequence: v.Deleted, Source: "description"}}
	}
	return m
}

// FromModel converts a wire record back to a validated variant.
// Sequence lists with several entries are concatenated.
func FromModel(m Model) (Variant, error) {
	if m.Type != "" && m.Type != ModelType {
		return Variant{}, fmt.Errorf("%w: model type %q", ErrInvalidVariant, m.Type)
	}
	var inserted, deleted string
	for _, s := range m.Inserted {
		inserted += s.Sequence
	}
	for _, s := range m.Deleted {
		deleted += s.Sequence
	}
	return New(m.Location.Start.Position, m.Location.End.Position, inserted, deleted)
}
