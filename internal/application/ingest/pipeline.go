package ingest

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
)

// extractionOutcome aggregates the counters of one parallel extraction pass.
type extractionOutcome struct {
	caseOpinions     int64
	extractionFailed int64
}

// extractAll classifies and extracts the corpus with up to workers goroutines.
// Results are positional: results[i] is the precedent extracted from corpus[i]
// or nil when the document is not a case opinion or extraction failed.  Per
// document failures are logged and counted, never propagated, so one bad
// document cannot abort the batch.  The positional result slice keeps the
// later single-writer phase in corpus order regardless of goroutine timing.
func (s *ingestService) extractAll(ctx context.Context, corpus []document.Document, workers int) ([]*precedent.Precedent, extractionOutcome) {
	results := make([]*precedent.Precedent, len(corpus))
	var outcome extractionOutcome

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range corpus {
		i := i
		g.Go(func() error {
			doc := corpus[i]
			if !document.IsCaseOpinion(doc) {
				s.metrics.DocumentsClassifiedTotal.WithLabelValues(string(document.Classify(doc))).Inc()
				return nil
			}
			atomic.AddInt64(&outcome.caseOpinions, 1)
			s.metrics.DocumentsClassifiedTotal.WithLabelValues(string(document.TypeCaseOpinion)).Inc()

			p, err := s.extractor.Extract(ctx, doc)
			if err != nil {
				atomic.AddInt64(&outcome.extractionFailed, 1)
				s.metrics.ExtractionFailuresTotal.WithLabelValues().Inc()
				s.logger.Warn("skipping document, extraction failed",
					logging.String("document_id", doc.ID),
					logging.Err(err))
				return nil
			}
			results[i] = p
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	return results, outcome
}
