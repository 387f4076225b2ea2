// Package concept defines the legal concept extraction port.  Concept tagging
// is best-effort: an absent or failing extractor degrades to an empty tag
// list, never to an ingestion error.
package concept

import "context"

// Extractor derives legal concept tags from opinion text.  Implementations
// are external collaborators (a lexicon matcher ships in
// internal/infrastructure/concepts; an LLM-backed service could satisfy the
// same port).
type Extractor interface {
	ExtractConcepts(ctx context.Context, text string) ([]string, error)
}

type nopExtractor struct{}

func (nopExtractor) ExtractConcepts(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

// NewNopExtractor returns an Extractor that tags nothing.  Used when no
// concept collaborator is configured.
func NewNopExtractor() Extractor { return nopExtractor{} }
