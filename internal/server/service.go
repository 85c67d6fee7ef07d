// Package server wires the providers, the normalization engine and the
// transcript analysis into one service, and exposes it over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-skip/internal/bed"
	"github.com/inodb/vibe-skip/internal/hgvs"
	"github.com/inodb/vibe-skip/internal/provider"
	"github.com/inodb/vibe-skip/internal/store"
	"github.com/inodb/vibe-skip/internal/transcript"
	"github.com/inodb/vibe-skip/internal/variant"
)

// Service runs the analysis pipeline: resolve the transcript through
// Ensembl and UCSC, bind the description to the normalization engine,
// and evaluate the exon-skip candidates.
type Service struct {
	ensembl   *provider.Ensembl
	ucsc      *provider.UCSC
	mygene    *provider.MyGene
	validator *provider.VariantValidator
	engine    *hgvs.Client

	history *store.DuckStore
	logger  *zap.Logger
}

// NewService assembles a service from its providers and engine client.
func NewService(ensembl *provider.Ensembl, ucsc *provider.UCSC, mygene *provider.MyGene,
	validator *provider.VariantValidator, engine *hgvs.Client) *Service {
	return &Service{
		ensembl:   ensembl,
		ucsc:      ucsc,
		mygene:    mygene,
		validator: validator,
		engine:    engine,
		logger:    zap.NewNop(),
	}
}

// SetLogger sets the logger for pipeline diagnostics.
func (s *Service) SetLogger(l *zap.Logger) {
	s.logger = l
}

// SetHistory enables recording of analyze runs. Without it runs are not
// recorded.
func (s *Service) SetHistory(h *store.DuckStore) {
	s.history = h
}

// FetchTranscript resolves a versioned transcript ID to its annotation
// records and the Ensembl summary.
func (s *Service) FetchTranscript(id string) (*transcript.Transcript, *provider.Transcript, error) {
	summary, err := s.ensembl.LookupTranscript(id)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	item, err := s.ucsc.KnownGene(summary)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	exons, cds, err := item.Beds()
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	t, err := transcript.New(exons, cds)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	t.SetLogger(s.logger)
	return t, summary, nil
}

// Analyze runs the full pipeline for one HGVS description and returns
// the ranked results.
func (s *Service) Analyze(description string) ([]transcript.Result, error) {
	id, _, err := hgvs.Split(description)
	if err != nil {
		return nil, err
	}

	t, summary, err := s.FetchTranscript(id)
	if err != nil {
		return nil, err
	}

	d, err := hgvs.NewDescription(description, s.engine, summary.Offset(), summary.Reverse())
	if err != nil {
		return nil, err
	}
	d.SetLogger(s.logger)

	results, err := t.Analyze(d)
	if err != nil {
		return nil, err
	}
	s.recordAnalysis(description, results)
	return results, nil
}

// recordAnalysis saves a run to the history store. A failed save only
// loses history, never the response.
func (s *Service) recordAnalysis(description string, results []transcript.Result) {
	if s.history == nil {
		return
	}
	payload, err := json.Marshal(results)
	if err != nil {
		s.logger.Warn("encode analysis history", zap.Error(err))
		return
	}
	id, err := s.history.SaveAnalysis(description, string(payload))
	if err != nil {
		s.logger.Warn("save analysis history", zap.Error(err))
		return
	}
	s.logger.Debug("analysis recorded", zap.String("id", id))
}

// Links validates the description and assembles its external resource
// URLs.
func (s *Service) Links(description string) (*provider.LinkSet, error) {
	if _, _, err := hgvs.Split(description); err != nil {
		return nil, err
	}
	links, err := s.validator.LookupLinks(s.mygene, "hg38", description)
	if err != nil {
		return nil, err
	}
	urls := links.URLs()
	return &urls, nil
}

// ExonSkip applies an exon skip to a client-supplied transcript model.
func (s *Service) ExonSkip(model transcript.Model, selector bed.Model) (*transcript.Model, error) {
	t, err := model.ToTranscript()
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	sel, err := selector.ToBed()
	if err != nil {
		return nil, fmt.Errorf("selector: %w", err)
	}
	if err := t.ExonSkip(sel); err != nil {
		return nil, err
	}
	out := transcript.NewModel(t)
	return &out, nil
}

// validationErrors are client mistakes, not service failures.
var validationErrors = []error{
	hgvs.ErrNotHGVS,
	hgvs.ErrNotEnsembl,
	hgvs.ErrNotCdot,
	hgvs.ErrUnsupported,
	hgvs.ErrOutOfRange,
	bed.ErrInvalidRecord,
	bed.ErrStrandMismatch,
	bed.ErrThickBounds,
	variant.ErrInvalidVariant,
	variant.ErrOverlappingVariants,
	variant.ErrCombineConflict,
	transcript.ErrRecordMismatch,
	provider.ErrVersionMismatch,
}

// isValidationError reports whether the error is the client's fault.
func isValidationError(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
