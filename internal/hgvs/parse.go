// Package hgvs binds transcripts to a Mutalyzer-compatible HGVS
// normalization engine: it validates and parses the supported subset of
// c. descriptions, maps positions between the CDS and the engine's
// internal coordinate system, and turns variant sets into the genomic
// ranges of coding sequence they destroy.
package hgvs

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Validation errors for HGVS input. The messages are part of the HTTP
// contract and surface verbatim to clients.
var (
	ErrNotHGVS     = errors.New("Not a valid HGVS description")
	ErrNotEnsembl  = errors.New("Not an ensembl transcript")
	ErrNotCdot     = errors.New("Only 'c.' coordinates are supported")
	ErrUnsupported = errors.New("unsupported variant description")
)

// CVariant is a single parsed c. variant. Positions are 1-based and
// inclusive, as written in HGVS.
type CVariant struct {
	Start int64
	End   int64
	Type  string // "deletion", "substitution", "insertion" or "deletion_insertion"
	Ref   string // reference base for substitutions
	Alt   string // inserted sequence
}

// Patterns for the supported c. variant subset. Anything else belongs to
// the external engine's full grammar and is rejected here.
var (
	reDeletion     = regexp.MustCompile(`^(\d+)(?:_(\d+))?del$`)
	reSubstitution = regexp.MustCompile(`^(\d+)([ACGT])>([ACGT])$`)
	reInsertion    = regexp.MustCompile(`^(\d+)_(\d+)ins([ACGT]+)$`)
	reDelIns       = regexp.MustCompile(`^(\d+)(?:_(\d+))?delins([ACGT]+)$`)
)

// Split validates a description of the form "ENST00000375549.8:c.53del"
// and returns the transcript ID and the variant text.
func Split(description string) (id, variants string, err error) {
	parts := strings.Split(description, ":")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrNotHGVS, description)
	}
	id = parts[0]
	if !strings.HasPrefix(id, "ENST") {
		return "", "", fmt.Errorf("%w: %q", ErrNotEnsembl, id)
	}
	if !strings.HasPrefix(parts[1], "c.") {
		return "", "", fmt.Errorf("%w: %q", ErrNotCdot, description)
	}
	variants = strings.TrimPrefix(parts[1], "c.")
	if variants == "" {
		return "", "", fmt.Errorf("%w: %q", ErrNotHGVS, description)
	}
	return id, variants, nil
}

// ParseCVariants parses the variant part of a c. description. Multiple
// variants are written as an allele: "[53del;100A>T]".
func ParseCVariants(text string) ([]CVariant, error) {
	parts := []string{text}
	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			return nil, fmt.Errorf("%w: %q", ErrNotHGVS, text)
		}
		parts = strings.Split(text[1:len(text)-1], ";")
	}
	out := make([]CVariant, 0, len(parts))
	for _, part := range parts {
		cv, err := parseCVariant(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, cv)
	}
	return out, nil
}

func parseCVariant(text string) (CVariant, error) {
	if m := reDeletion.FindStringSubmatch(text); m != nil {
		start, end, err := parsePositions(m[1], m[2])
		if err != nil {
			return CVariant{}, err
		}
		return CVariant{Start: start, End: end, Type: "deletion"}, nil
	}
	if m := reSubstitution.FindStringSubmatch(text); m != nil {
		pos, _ := strconv.ParseInt(m[1], 10, 64)
		return CVariant{Start: pos, End: pos, Type: "substitution", Ref: m[2], Alt: m[3]}, nil
	}
	if m := reInsertion.FindStringSubmatch(text); m != nil {
		start, end, err := parsePositions(m[1], m[2])
		if err != nil {
			return CVariant{}, err
		}
		if end != start+1 {
			return CVariant{}, fmt.Errorf("%w: insertion site %d_%d is not between adjacent bases", ErrUnsupported, start, end)
		}
		return CVariant{Start: start, End: end, Type: "insertion", Alt: m[3]}, nil
	}
	if m := reDelIns.FindStringSubmatch(text); m != nil {
		start, end, err := parsePositions(m[1], m[2])
		if err != nil {
			return CVariant{}, err
		}
		return CVariant{Start: start, End: end, Type: "deletion_insertion", Alt: m[3]}, nil
	}
	return CVariant{}, fmt.Errorf("%w: %q", ErrUnsupported, text)
}

func parsePositions(first, second string) (start, end int64, err error) {
	start, err = strconv.ParseInt(first, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: position %q", ErrNotHGVS, first)
	}
	end = start
	if second != "" {
		if end, err = strconv.ParseInt(second, 10, 64); err != nil {
			return 0, 0, fmt.Errorf("%w: position %q", ErrNotHGVS, second)
		}
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: end %d before start %d", ErrNotHGVS, end, start)
	}
	return start, end, nil
}
