package ingest

import (
	"context"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	"github.com/lexatlas/precedent-intelligence/internal/domain/concept"
	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

const defaultWorkers = 8

// Report summarizes one corpus ingestion pass.
type Report struct {
	Documents         int           `json:"documents"`
	CaseOpinions      int           `json:"case_opinions"`
	PrecedentsStored  int           `json:"precedents_stored"`
	DuplicatesSkipped int           `json:"duplicates_skipped"`
	ExtractionFailed  int           `json:"extraction_failed"`
	CitationsEnriched int           `json:"citations_enriched"`
	Elapsed           time.Duration `json:"elapsed"`
}

// Service is the corpus ingestion entry point.  IngestCorpus is idempotent:
// re-running it over the same corpus never duplicates records for a case id.
type Service interface {
	IngestCorpus(ctx context.Context, corpus []document.Document) (*Report, error)
}

// EventPublisher publishes ingestion lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// CacheInvalidator drops cached analysis results.  Ingestion calls it after a
// successful pass so rankings computed from the previous corpus never outlive
// the data they came from.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Deps carries the collaborators of the ingestion service.  Citations,
// Concepts, Events, Cache and Metrics are optional; absence degrades to no
// enrichment, empty concept lists, no events, no invalidation and no-op
// metrics.
type Deps struct {
	Repo      precedent.Repository
	Citations citation.Provider
	Concepts  concept.Extractor
	Events    EventPublisher
	Cache     CacheInvalidator
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger
	Workers   int
}

type ingestService struct {
	repo      precedent.Repository
	citations citation.Provider
	extractor *Extractor
	enricher  *Enricher
	events    EventPublisher
	cache     CacheInvalidator
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	workers   int
}

// NewService wires the ingestion service.
func NewService(deps Deps) (Service, error) {
	if deps.Repo == nil {
		return nil, apperrors.New(apperrors.ErrCodeBadRequest, "precedent repository is required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.Default()
	}
	if deps.Metrics == nil {
		deps.Metrics = prometheus.NewNopAppMetrics()
	}
	if deps.Workers <= 0 {
		deps.Workers = defaultWorkers
	}
	logger := deps.Logger.Named("ingest")
	return &ingestService{
		repo:      deps.Repo,
		citations: deps.Citations,
		extractor: NewExtractor(deps.Concepts, deps.Logger),
		enricher:  NewEnricher(deps.Repo, deps.Events, deps.Logger),
		events:    deps.Events,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    logger,
		workers:   deps.Workers,
	}, nil
}

// IngestCorpus runs the batch pipeline: build the citation network, classify
// and extract in parallel, persist through a single writer, then run the
// enrichment pass.
func (s *ingestService) IngestCorpus(ctx context.Context, corpus []document.Document) (*Report, error) {
	if len(corpus) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeCorpusEmpty, "corpus contains no documents")
	}
	start := time.Now()

	network := s.buildNetwork(ctx, corpus)

	results, outcome := s.extractAll(ctx, corpus, s.workers)
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeIngestInterrupted, "corpus ingestion canceled")
	}

	stored, duplicates := 0, 0
	for _, p := range results {
		if p == nil {
			continue
		}
		fresh, err := s.repo.Save(ctx, p)
		if err != nil {
			outcome.extractionFailed++
			s.logger.Warn("skipping precedent, save failed",
				logging.String("case_id", string(p.CaseID)),
				logging.Err(err))
			continue
		}
		if fresh {
			stored++
			s.metrics.PrecedentsStoredTotal.WithLabelValues().Inc()
		} else {
			duplicates++
		}
	}

	enriched, err := s.enricher.Enrich(ctx, network)
	if err != nil {
		return nil, err
	}
	s.metrics.PrecedentsEnrichedTotal.WithLabelValues().Add(float64(enriched))

	if total, err := s.repo.Count(ctx); err == nil {
		s.metrics.PrecedentDatabaseSize.WithLabelValues().Set(float64(total))
	}

	report := &Report{
		Documents:         len(corpus),
		CaseOpinions:      int(outcome.caseOpinions),
		PrecedentsStored:  stored,
		DuplicatesSkipped: duplicates,
		ExtractionFailed:  int(outcome.extractionFailed),
		CitationsEnriched: enriched,
		Elapsed:           time.Since(start),
	}
	s.metrics.IngestDuration.WithLabelValues().Observe(report.Elapsed.Seconds())
	s.logger.Info("corpus ingestion complete",
		logging.Int("documents", report.Documents),
		logging.Int("case_opinions", report.CaseOpinions),
		logging.Int("stored", report.PrecedentsStored),
		logging.Int("duplicates", report.DuplicatesSkipped),
		logging.Int("failed", report.ExtractionFailed),
		logging.Duration("elapsed", report.Elapsed))

	s.invalidateCache(ctx)
	s.publishReport(ctx, report)
	return report, nil
}

// invalidateCache drops cached analysis results after the corpus changed.
// Failure degrades to a warning: stale entries then expire with their TTL.
func (s *ingestService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("analysis cache not invalidated, stale results persist until TTL",
			logging.Err(err))
	}
}

// buildNetwork fetches the citation network.  Provider absence or failure is
// "no enrichment", never an ingestion error.
func (s *ingestService) buildNetwork(ctx context.Context, corpus []document.Document) citation.Network {
	if s.citations == nil {
		return nil
	}
	network, err := s.citations.BuildNetwork(ctx, corpus)
	if err != nil {
		s.logger.Warn("citation network unavailable, ingesting without enrichment",
			logging.Err(err))
		return nil
	}
	return network
}

func (s *ingestService) publishReport(ctx context.Context, report *Report) {
	if s.events == nil {
		return
	}
	payload := kafka.CorpusIngestedPayload{
		Documents:         report.Documents,
		CaseOpinions:      report.CaseOpinions,
		PrecedentsStored:  report.PrecedentsStored,
		ExtractionFailed:  report.ExtractionFailed,
		CitationsEnriched: report.CitationsEnriched,
		Elapsed:           report.Elapsed,
		IngestedAt:        time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, kafka.TopicCorpusIngested, "corpus", payload); err != nil {
		s.logger.Warn("ingestion event not published", logging.Err(err))
	}
}
