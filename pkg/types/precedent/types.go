// Package precedent defines the shared value types of the precedent-analysis
// domain: strength and treatment enums, jurisdiction helpers, and the DTOs
// returned by the public analysis entry point.  No business logic lives here.
package precedent

import (
	"strings"
	"time"
)

// CaseID is a string alias for a stable case identifier.
type CaseID string

// Strength is the derived authority category of a precedent.
type Strength string

const (
	StrengthVeryStrong Strength = "very_strong"
	StrengthStrong     Strength = "strong"
	StrengthModerate   Strength = "moderate"
	StrengthWeak       Strength = "weak"
	StrengthVeryWeak   Strength = "very_weak"
)

// IsValid checks if the Strength is a known category.
func (s Strength) IsValid() bool {
	switch s {
	case StrengthVeryStrong, StrengthStrong, StrengthModerate, StrengthWeak, StrengthVeryWeak:
		return true
	default:
		return false
	}
}

// StrengthForAuthority buckets an authority score into a Strength category.
// The thresholds are fixed for output compatibility: ≥0.95 very_strong,
// ≥0.8 strong, ≥0.6 moderate, ≥0.4 weak, else very_weak.
func StrengthForAuthority(authority float64) Strength {
	switch {
	case authority >= 0.95:
		return StrengthVeryStrong
	case authority >= 0.8:
		return StrengthStrong
	case authority >= 0.6:
		return StrengthModerate
	case authority >= 0.4:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}

// Type is the query-time treatment of a precedent relative to a target
// jurisdiction.  Only TypeSuperseded is ever persisted (set during citation
// enrichment); the rest are transient annotations on analysis DTOs.
type Type string

const (
	TypeControlling     Type = "controlling"
	TypePersuasive      Type = "persuasive"
	TypeDistinguishable Type = "distinguishable"
	TypeSuperseded      Type = "superseded"
	TypeConflicting     Type = "conflicting"
)

// IsValid checks if the Type is a known treatment.
func (t Type) IsValid() bool {
	switch t {
	case TypeControlling, TypePersuasive, TypeDistinguishable, TypeSuperseded, TypeConflicting:
		return true
	default:
		return false
	}
}

// CitationContext tags an outbound citation with how the citing opinion
// treats the cited one.  The vocabulary mirrors standard citator treatments;
// ContextOverruling is the only tag with enrichment-time side effects.
type CitationContext string

const (
	ContextAffirming      CitationContext = "affirming"
	ContextFollowing      CitationContext = "following"
	ContextDistinguishing CitationContext = "distinguishing"
	ContextCriticizing    CitationContext = "criticizing"
	ContextOverruling     CitationContext = "overruling"
	ContextNeutral        CitationContext = "neutral"
)

// Jurisdiction is an underscore-delimited hierarchical jurisdiction code,
// e.g. "US_Federal", "US_Federal_9th_Circuit", "US_State_Ohio".
type Jurisdiction string

// IsFederal reports whether the jurisdiction belongs to the federal hierarchy.
func (j Jurisdiction) IsFederal() bool {
	return strings.HasPrefix(string(j), "US_Federal")
}

// Contains reports whether one jurisdiction string contains the other, in
// either direction.  Used for the partial-proximity relevance bonus.
func (j Jurisdiction) Contains(other Jurisdiction) bool {
	a, b := string(j), string(other)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// PrecedentDTO is the formatted precedent record embedded in analysis results.
// It is a read-only snapshot; mutating it never affects the stored record.
type PrecedentDTO struct {
	CaseID        CaseID       `json:"case_id"`
	CaseName      string       `json:"case_name"`
	Court         string       `json:"court"`
	Jurisdiction  Jurisdiction `json:"jurisdiction"`
	DecisionDate  *time.Time   `json:"decision_date,omitempty"`
	Holding       string       `json:"holding,omitempty"`
	LegalIssues   []string     `json:"legal_issues,omitempty"`
	Authority     float64      `json:"precedent_authority"`
	Strength      Strength     `json:"precedent_strength"`
	Treatment     Type         `json:"precedent_type"`
	Citations     int          `json:"citations_received"`
	RelevanceNote string       `json:"relevance_note,omitempty"`
}

// ReasoningChain is the ordered issue → rules → application → conclusion
// chain produced for one analysis.
type ReasoningChain struct {
	IssueIdentification  string   `json:"issue_identification"`
	ApplicablePrecedents []string `json:"applicable_precedents"`
	RuleExtraction       []string `json:"rule_extraction"`
	RuleApplication      []string `json:"rule_application"`
	Conclusion           string   `json:"conclusion"`
	ConfidenceScore      float64  `json:"confidence_score"`
	AlternativeReasoning string   `json:"alternative_reasoning,omitempty"`
}

// JurisdictionAnalysis summarizes the jurisdictional spread of a result set.
type JurisdictionAnalysis struct {
	Distribution  map[Jurisdiction]int `json:"distribution"`
	FederalCount  int                  `json:"federal_count"`
	StateCount    int                  `json:"state_count"`
	CoverageRatio float64              `json:"coverage_ratio"`
}

// TemporalAnalysis summarizes the decision-date spread of a result set.
// Sufficient is false when no decision dates were parseable; numeric fields
// are then meaningless and must be ignored.
type TemporalAnalysis struct {
	Sufficient    bool        `json:"sufficient"`
	EarliestYear  int         `json:"earliest_year,omitempty"`
	LatestYear    int         `json:"latest_year,omitempty"`
	SpanYears     int         `json:"span_years,omitempty"`
	RecentCount   int         `json:"decided_since_2015,omitempty"`
	DecadeBuckets map[int]int `json:"decade_buckets,omitempty"`
}

// AnalysisResult is the immutable result of one precedent analysis request.
type AnalysisResult struct {
	LegalIssue            string               `json:"legal_issue"`
	Jurisdiction          Jurisdiction         `json:"jurisdiction"`
	ControllingPrecedents []PrecedentDTO       `json:"controlling_precedents"`
	PersuasivePrecedents  []PrecedentDTO       `json:"persuasive_precedents"`
	ConflictingPrecedents []PrecedentDTO       `json:"conflicting_precedents"`
	ReasoningChain        ReasoningChain       `json:"legal_reasoning_chain"`
	Summary               string               `json:"precedent_summary"`
	ConfidenceScore       float64              `json:"confidence_score"`
	JurisdictionAnalysis  JurisdictionAnalysis `json:"jurisdiction_analysis"`
	TemporalAnalysis      TemporalAnalysis     `json:"temporal_analysis"`
	AnalyzedAt            time.Time            `json:"analyzed_at"`
}

// Statistics carries the monotonically increasing observability counters
// exposed by the analysis service.  Counters reset only on process restart.
type Statistics struct {
	PrecedentsAnalyzed         int64 `json:"precedents_analyzed"`
	ControllingPrecedentsFound int64 `json:"controlling_precedents_found"`
	PrecedentConflictsResolved int64 `json:"precedent_conflicts_resolved"`
	ReasoningChainsGenerated   int64 `json:"legal_reasoning_chains_generated"`
	TotalPrecedentsInDatabase  int64 `json:"total_precedents_in_database"`
}
