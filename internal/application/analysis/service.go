package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// Result confidence formula constants.
const (
	confidenceBase        = 0.3
	confidencePerControl  = 0.3
	confidencePerPersuade = 0.1
	confidencePerConflict = 0.2
)

// Service is the public query-time entry point.
type Service interface {
	// AnalyzeIssue analyzes one legal issue against the precedent database.
	// userFacts is optional; when present the reasoning chain applies the
	// extracted rules to it.
	AnalyzeIssue(ctx context.Context, issue string, jurisdiction ptypes.Jurisdiction, userFacts string) (*ptypes.AnalysisResult, error)

	// Statistics returns the monotonically increasing analysis counters.
	Statistics(ctx context.Context) (ptypes.Statistics, error)
}

// ResultCache caches assembled analysis results.  Implementations must treat
// a miss as (nil, false, nil); cache failures degrade to recomputation.
type ResultCache interface {
	Get(ctx context.Context, key string) (*ptypes.AnalysisResult, bool, error)
	Set(ctx context.Context, key string, result *ptypes.AnalysisResult) error
}

// EventPublisher publishes analysis lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// Deps carries the collaborators of the analysis service.  Cache, Events and
// Metrics are optional.
type Deps struct {
	Repo    precedent.Repository
	Cache   ResultCache
	Events  EventPublisher
	Metrics *prometheus.AppMetrics
	Logger  logging.Logger
}

type analysisService struct {
	repo      precedent.Repository
	retriever *retriever
	cache     ResultCache
	events    EventPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger

	precedentsAnalyzed       atomic.Int64
	controllingFound         atomic.Int64
	conflictsResolved        atomic.Int64
	reasoningChainsGenerated atomic.Int64
}

// NewService wires the analysis service.
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
	return &analysisService{
		repo:      deps.Repo,
		retriever: &retriever{repo: deps.Repo},
		cache:     deps.Cache,
		events:    deps.Events,
		metrics:   deps.Metrics,
		logger:    deps.Logger.Named("analysis"),
	}, nil
}

func (s *analysisService) AnalyzeIssue(ctx context.Context, issue string, jurisdiction ptypes.Jurisdiction, userFacts string) (*ptypes.AnalysisResult, error) {
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return nil, apperrors.New(apperrors.ErrCodeIssueEmpty, "legal issue must not be empty")
	}
	start := time.Now()

	cacheKey := fmt.Sprintf("%s|%s|%s", issue, jurisdiction, userFacts)
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
			s.logger.Warn("analysis cache read failed", logging.Err(err))
		} else if ok {
			s.metrics.AnalysisCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			s.metrics.AnalysisCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	candidates, err := s.retriever.retrieve(ctx, issue, jurisdiction)
	if err != nil {
		s.metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeAnalysisFailed, "retrieving precedents")
	}
	s.metrics.CandidatesRetrieved.WithLabelValues().Observe(float64(len(candidates)))

	result := s.assemble(issue, jurisdiction, userFacts, candidates)

	s.precedentsAnalyzed.Add(int64(len(candidates)))
	s.controllingFound.Add(int64(len(result.ControllingPrecedents)))
	s.conflictsResolved.Add(int64(len(result.ConflictingPrecedents)))
	s.metrics.ConflictsFoundTotal.WithLabelValues().Add(float64(len(result.ConflictingPrecedents)))
	if len(candidates) > 0 {
		s.reasoningChainsGenerated.Add(1)
		s.metrics.ReasoningChainsTotal.WithLabelValues().Inc()
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result); err != nil {
			s.logger.Warn("analysis cache write failed", logging.Err(err))
		}
	}

	elapsed := time.Since(start)
	s.metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	s.metrics.AnalysisDuration.WithLabelValues().Observe(elapsed.Seconds())
	s.logger.Info("issue analysis complete",
		logging.String("jurisdiction", string(jurisdiction)),
		logging.Int("candidates", len(candidates)),
		logging.Int("controlling", len(result.ControllingPrecedents)),
		logging.Int("persuasive", len(result.PersuasivePrecedents)),
		logging.Int("conflicting", len(result.ConflictingPrecedents)),
		logging.Float64("confidence", result.ConfidenceScore),
		logging.Duration("elapsed", elapsed))

	s.publishResult(ctx, result)
	return result, nil
}

// assemble classifies the candidates, builds the reasoning chain from the
// controlling and persuasive precedents, and computes the summaries.
func (s *analysisService) assemble(issue string, jurisdiction ptypes.Jurisdiction, userFacts string, candidates []candidate) *ptypes.AnalysisResult {
	result := &ptypes.AnalysisResult{
		LegalIssue:   issue,
		Jurisdiction: jurisdiction,
		AnalyzedAt:   time.Now().UTC(),
	}

	if len(candidates) == 0 {
		result.Summary = fmt.Sprintf("No precedents found for %q in %s.", issue, jurisdictionLabel(jurisdiction))
		result.ConfidenceScore = 0.0
		result.JurisdictionAnalysis = analyzeJurisdictions(nil)
		result.TemporalAnalysis = analyzeTemporal(nil)
		return result
	}

	var applicable []*precedent.Precedent
	for _, c := range candidates {
		treatment := classify(c.precedent, jurisdiction)
		dto := c.precedent.ToDTO(treatment)
		switch treatment {
		case ptypes.TypeControlling:
			result.ControllingPrecedents = append(result.ControllingPrecedents, dto)
			applicable = append(applicable, c.precedent)
		case ptypes.TypePersuasive:
			result.PersuasivePrecedents = append(result.PersuasivePrecedents, dto)
			applicable = append(applicable, c.precedent)
		default:
			// Superseded precedents never control or persuade; they are
			// surfaced alongside explicit conflicts for downstream review.
			result.ConflictingPrecedents = append(result.ConflictingPrecedents, dto)
		}
	}

	result.ReasoningChain = buildReasoningChain(issue, applicable, userFacts)
	result.ConfidenceScore = resultConfidence(
		len(result.ControllingPrecedents),
		len(result.PersuasivePrecedents),
		len(result.ConflictingPrecedents))
	result.Summary = fmt.Sprintf(
		"Found %d controlling, %d persuasive, and %d conflicting precedents for %q in %s.",
		len(result.ControllingPrecedents),
		len(result.PersuasivePrecedents),
		len(result.ConflictingPrecedents),
		issue, jurisdictionLabel(jurisdiction))

	combined := make([]ptypes.PrecedentDTO, 0, len(candidates))
	combined = append(combined, result.ControllingPrecedents...)
	combined = append(combined, result.PersuasivePrecedents...)
	combined = append(combined, result.ConflictingPrecedents...)
	result.JurisdictionAnalysis = analyzeJurisdictions(combined)
	result.TemporalAnalysis = analyzeTemporal(combined)

	return result
}

// resultConfidence applies the documented formula, clamped into [0,1].
func resultConfidence(controlling, persuasive, conflicting int) float64 {
	score := confidenceBase +
		confidencePerControl*float64(controlling) +
		confidencePerPersuade*float64(persuasive) -
		confidencePerConflict*float64(conflicting)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func jurisdictionLabel(j ptypes.Jurisdiction) string {
	if j == "" {
		return "any jurisdiction"
	}
	return string(j)
}

func (s *analysisService) Statistics(ctx context.Context) (ptypes.Statistics, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return ptypes.Statistics{}, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "counting precedents")
	}
	return ptypes.Statistics{
		PrecedentsAnalyzed:         s.precedentsAnalyzed.Load(),
		ControllingPrecedentsFound: s.controllingFound.Load(),
		PrecedentConflictsResolved: s.conflictsResolved.Load(),
		ReasoningChainsGenerated:   s.reasoningChainsGenerated.Load(),
		TotalPrecedentsInDatabase:  total,
	}, nil
}

func (s *analysisService) publishResult(ctx context.Context, result *ptypes.AnalysisResult) {
	if s.events == nil {
		return
	}
	payload := kafka.IssueAnalyzedPayload{
		LegalIssue:      result.LegalIssue,
		Jurisdiction:    string(result.Jurisdiction),
		ControllingHits: len(result.ControllingPrecedents),
		PersuasiveHits:  len(result.PersuasivePrecedents),
		ConflictingHits: len(result.ConflictingPrecedents),
		ConfidenceScore: result.ConfidenceScore,
		AnalyzedAt:      result.AnalyzedAt,
	}
	if err := s.events.Publish(ctx, kafka.TopicIssueAnalyzed, result.LegalIssue, payload); err != nil {
		s.logger.Warn("analysis event not published", logging.Err(err))
	}
}
