package kafka

import (
	"encoding/json"
	"time"
)

// Topic constants.
const (
	TopicCorpusIngested    = "corpus.ingested"
	TopicPrecedentEnriched = "precedent.enriched"
	TopicIssueAnalyzed     = "analysis.completed"
)

// EventEnvelope standardizes event messages.
type EventEnvelope struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	Source        string            `json:"source"`
	Timestamp     time.Time         `json:"timestamp"`
	SchemaVersion string            `json:"schema_version"`
	Payload       json.RawMessage   `json:"payload"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// CorpusIngestedPayload describes one completed corpus ingestion pass.
type CorpusIngestedPayload struct {
	Documents         int           `json:"documents"`
	CaseOpinions      int           `json:"case_opinions"`
	PrecedentsStored  int           `json:"precedents_stored"`
	ExtractionFailed  int           `json:"extraction_failed"`
	CitationsEnriched int           `json:"citations_enriched"`
	Elapsed           time.Duration `json:"elapsed_ns"`
	IngestedAt        time.Time     `json:"ingested_at"`
}

// PrecedentEnrichedPayload describes one precedent revised by the citation
// enrichment pass.
type PrecedentEnrichedPayload struct {
	CaseID            string    `json:"case_id"`
	AuthorityScore    float64   `json:"authority_score"`
	CitationsReceived int       `json:"citations_received"`
	Superseded        bool      `json:"superseded"`
	EnrichedAt        time.Time `json:"enriched_at"`
}

// IssueAnalyzedPayload describes one completed issue analysis.
type IssueAnalyzedPayload struct {
	LegalIssue      string    `json:"legal_issue"`
	Jurisdiction    string    `json:"jurisdiction"`
	ControllingHits int       `json:"controlling_hits"`
	PersuasiveHits  int       `json:"persuasive_hits"`
	ConflictingHits int       `json:"conflicting_hits"`
	ConfidenceScore float64   `json:"confidence_score"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}
