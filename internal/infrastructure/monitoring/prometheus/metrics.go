package prometheus

import "time"

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	// Ingestion
	DocumentsClassifiedTotal CounterVec
	ExtractionFailuresTotal  CounterVec
	PrecedentsStoredTotal    CounterVec
	PrecedentsEnrichedTotal  CounterVec
	IngestDuration           HistogramVec
	PrecedentDatabaseSize    GaugeVec

	// Analysis
	AnalysesTotal        CounterVec
	AnalysisDuration     HistogramVec
	CandidatesRetrieved  HistogramVec
	AnalysisCacheTotal   CounterVec
	ConflictsFoundTotal  CounterVec
	ReasoningChainsTotal CounterVec
}

var (
	httpDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	ingestDurationBuckets  = []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300, 600}
	candidateCountBuckets  = []float64{0, 1, 2, 5, 10, 15, 20}
	analysisLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
)

// NewAppMetrics registers all metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", httpDurationBuckets, "method", "path")

	m.DocumentsClassifiedTotal = collector.RegisterCounter("documents_classified_total", "Documents classified during ingestion", "document_type")
	m.ExtractionFailuresTotal = collector.RegisterCounter("extraction_failures_total", "Documents skipped because extraction failed")
	m.PrecedentsStoredTotal = collector.RegisterCounter("precedents_stored_total", "Precedents written to the repository")
	m.PrecedentsEnrichedTotal = collector.RegisterCounter("precedents_enriched_total", "Precedents revised by citation enrichment")
	m.IngestDuration = collector.RegisterHistogram("ingest_duration_seconds", "Corpus ingestion duration", ingestDurationBuckets)
	m.PrecedentDatabaseSize = collector.RegisterGauge("precedent_database_size", "Precedents currently stored")

	m.AnalysesTotal = collector.RegisterCounter("analyses_total", "Issue analyses performed", "outcome")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Issue analysis duration", analysisLatencyBuckets)
	m.CandidatesRetrieved = collector.RegisterHistogram("analysis_candidates_retrieved", "Candidates cleared by the relevance threshold", candidateCountBuckets)
	m.AnalysisCacheTotal = collector.RegisterCounter("analysis_cache_total", "Analysis cache lookups", "result")
	m.ConflictsFoundTotal = collector.RegisterCounter("precedent_conflicts_total", "Conflicting precedents surfaced")
	m.ReasoningChainsTotal = collector.RegisterCounter("reasoning_chains_total", "Reasoning chains generated")

	return m
}

// ObserveHTTPRequest records one served request.
func (m *AppMetrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// NewNopAppMetrics returns metrics wired to a collector that records nothing.
func NewNopAppMetrics() *AppMetrics {
	return NewAppMetrics(NewNopCollector())
}
