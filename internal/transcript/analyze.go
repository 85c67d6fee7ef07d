package transcript

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/bed"
	"github.com/inodb/vibe-skip/internal/variant"
)

// Engine is the boundary to the external HGVS normalization engine. It
// binds one input description to one transcript: the variant set and exon
// table use the engine's internal coordinate system, and CDSEffect maps a
// variant set to the genomic ranges whose coding annotation it destroys.
type Engine interface {
	// Description returns the input HGVS description.
	Description() string
	// Variants returns the input variant set in internal coordinates.
	Variants() []variant.Variant
	// Exons returns the exon table in internal coordinates, in
	// transcript order.
	Exons() []bed.Range
	// SkipDeletion returns the deletion that skips the exons from first
	// to last (0-based, inclusive) and its HGVS c. description.
	SkipDeletion(first, last int) (variant.Variant, string, error)
	// CDSEffect returns the genomic ranges destroyed by a variant set.
	CDSEffect(variants []variant.Variant) ([]bed.Range, error)
}

// Therapy is a candidate intervention: a name, its HGVS description, and
// the variant set it would leave on the transcript.
type Therapy struct {
	Name        string            `json:"name"`
	Hgvs        string            `json:"hgvs"`
	Description string            `json:"description"`
	Variants    []variant.Variant `json:"variants"`
}

// Result pairs a therapy with its comparison against the wildtype.
type Result struct {
	Therapy    Therapy      `json:"therapy"`
	Comparison []Comparison `json:"comparison"`
}

// Score is the scalar summary used to rank results: the mean percentage
// across the compared records.
func (r Result) Score() float64 {
	if len(r.Comparison) == 0 {
		return 0
	}
	var total float64
	for _, c := range r.Comparison {
		total += c.Percentage
	}
	return total / float64(len(r.Comparison))
}

// How many adjacent exons a single candidate therapy may skip.
const maxSkipWindow = 2

// Analyze evaluates the input description and every exon-skip candidate
// against the receiver, which is treated as the wildtype and is not
// mutated. The result list holds the wildtype baseline first, then the
// input variant, then one entry per candidate skip, sorted so the
// highest-scoring candidate comes first. Candidates whose deletion cannot
// be combined with the input variants are logged and dropped.
func (t *Transcript) Analyze(engine Engine) ([]Result, error) {
	wildtypeCmp, err := t.Compare(t)
	if err != nil {
		return nil, err
	}
	results := []Result{{
		Therapy: Therapy{
			Name:        "Wildtype",
			Description: "The annotations of the wildtype transcript.",
		},
		Comparison: wildtypeCmp,
	}}

	inputVariants := engine.Variants()
	inputCmp, err := t.compareMutated(inputVariants, engine)
	if err != nil {
		return nil, fmt.Errorf("input variant: %w", err)
	}
	results = append(results, Result{
		Therapy: Therapy{
			Name:        "Input",
			Hgvs:        engine.Description(),
			Description: "The annotations based on the supplied variants.",
			Variants:    inputVariants,
		},
		Comparison: inputCmp,
	})

	// The first and last exon can never be skipped.
	exons := engine.Exons()
	for window := 1; window <= maxSkipWindow; window++ {
		for first := 1; first+window <= len(exons)-1; first++ {
			last := first + window - 1
			result, ok, err := t.skipCandidate(engine, inputVariants, first, last)
			if err != nil {
				return nil, err
			}
			if ok {
				results = append(results, result)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results, nil
}

// skipCandidate evaluates skipping the exons from first to last. A
// candidate whose deletion partially overlaps an input variant is not a
// valid therapy and is reported as not ok, without error.
func (t *Transcript) skipCandidate(engine Engine, inputVariants []variant.Variant, first, last int) (Result, bool, error) {
	deletion, hgvs, err := engine.SkipDeletion(first, last)
	if err != nil {
		return Result{}, false, fmt.Errorf("skip exons %d-%d: %w", first+1, last+1, err)
	}
	combined, err := variant.CombineDeletion(inputVariants, deletion)
	if err != nil {
		t.logger.Debug("dropping exon skip candidate",
			zap.String("hgvs", hgvs),
			zap.Error(err))
		return Result{}, false, nil
	}
	cmp, err := t.compareMutated(combined, engine)
	if err != nil {
		return Result{}, false, fmt.Errorf("skip exons %d-%d: %w", first+1, last+1, err)
	}
	exons := exonString(numberRange(first+1, last+1))
	return Result{
		Therapy: Therapy{
			Name:        "Skip " + exons,
			Hgvs:        hgvs,
			Description: fmt.Sprintf("The annotations based on the supplied variants, in combination with skipping %s.", exons),
			Variants:    combined,
		},
		Comparison: cmp,
	}, true, nil
}

// compareMutated applies the destroyed ranges of a variant set to a copy
// of the wildtype and compares the copy against it.
func (t *Transcript) compareMutated(variants []variant.Variant, engine Engine) ([]Comparison, error) {
	destroyed, err := engine.CDSEffect(variants)
	if err != nil {
		return nil, err
	}
	mutated := t.Clone()
	if err := mutated.Mutate(destroyed); err != nil {
		return nil, err
	}
	return mutated.Compare(t)
}

// numberRange returns the 1-based exon numbers from first to last,
// inclusive.
func numberRange(first, last int) []int {
	out := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		out = append(out, n)
	}
	return out
}

// exonString words a list of exon numbers: "exon 2", "exons 3 and 5",
// "exons 3, 4, 5 and 6".
func exonString(numbers []int) string {
	words := make([]string, len(numbers))
	for i, n := range numbers {
		words[i] = fmt.Sprint(n)
	}
	switch len(words) {
	case 0:
		return ""
	case 1:
		return "exon " + words[0]
	default:
		head := strings.Join(words[:len(words)-1], ", ")
		return fmt.Sprintf("exons %s and %s", head, words[len(words)-1])
	}
}
