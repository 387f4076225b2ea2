// Package precedent implements the Precedent aggregate: the per-opinion
// record built during corpus ingestion, its invariants, and the repository
// port that stores it.  All business rules that concern a single precedent
// live here; extraction and scoring pipelines live in the application layer.
package precedent

import (
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// Extraction output caps.  Fixed for output-shape compatibility with the
// surrounding application; see the extractor in internal/application/ingest.
const (
	MaxLegalIssues     = 5
	MaxLegalPrinciples = 3
)

// networkAuthorityWeight scales the citation network's authority score when
// revising a precedent's authority during enrichment.
const networkAuthorityWeight = 0.3

// Precedent is one judicial opinion already classified as a case.
//
// Lifecycle: created once per corpus ingestion pass; authority and citation
// fields are revised during a citation-enrichment pass after creation; never
// mutated at query time (queries only annotate transient treatment onto DTO
// snapshots).
type Precedent struct {
	CaseID       ptypes.CaseID       `json:"case_id"`
	CaseName     string              `json:"case_name"`
	Court        string              `json:"court"`
	Jurisdiction ptypes.Jurisdiction `json:"jurisdiction"`
	DecisionDate *time.Time          `json:"decision_date,omitempty"`

	LegalIssues     []string `json:"legal_issues"`
	Holding         string   `json:"holding"`
	LegalPrinciples []string `json:"legal_principles"`
	LegalConcepts   []string `json:"legal_concepts"`

	// InitialAuthority is the court-rank authority assigned at extraction
	// time.  Enrichment always revises from this snapshot, never from the
	// previously revised value, which is what makes re-running enrichment
	// idempotent.
	InitialAuthority float64 `json:"initial_authority"`

	Authority float64         `json:"precedent_authority"`
	Strength  ptypes.Strength `json:"precedent_strength"`

	// Treatment is persisted only as TypeSuperseded (set during enrichment
	// when an overruling citation is present); every other treatment value is
	// a transient query-time annotation and is never written back.
	Treatment ptypes.Type `json:"precedent_type,omitempty"`

	CitationsReceived int             `json:"citations_received"`
	CitingCases       []ptypes.CaseID `json:"citing_cases"`
	CitedCases        []string        `json:"cited_cases"`
	OverrulingCases   []string        `json:"overruling_cases"`

	CreatedAt  time.Time  `json:"created_at"`
	EnrichedAt *time.Time `json:"enriched_at,omitempty"`
}

// New constructs a Precedent with its initial court-rank authority.  CaseID
// and CaseName are the mandatory identity fields; extraction that cannot
// derive them must signal failure instead of calling New.
func New(caseID ptypes.CaseID, caseName string, initialAuthority float64) (*Precedent, error) {
	if caseID == "" {
		return nil, apperrors.New(apperrors.ErrCodePrecedentInvalid, "case_id must not be empty")
	}
	if caseName == "" {
		return nil, apperrors.New(apperrors.ErrCodePrecedentInvalid, "case_name must not be empty")
	}
	p := &Precedent{
		CaseID:           caseID,
		CaseName:         caseName,
		Court:            "Unknown Court",
		InitialAuthority: clamp01(initialAuthority),
		CreatedAt:        time.Now().UTC(),
	}
	p.setAuthority(p.InitialAuthority)
	return p, nil
}

// setAuthority clamps the score into [0,1] and keeps Strength consistent.
// Strength is a pure function of Authority; they are never set independently.
func (p *Precedent) setAuthority(score float64) {
	p.Authority = clamp01(score)
	p.Strength = ptypes.StrengthForAuthority(p.Authority)
}

// ApplyNetworkEntry revises the precedent from its citation network entry:
// citation counts are taken fresh from the entry, authority is revised from
// the extraction-time snapshot, and any overruling outbound citation marks
// the precedent superseded.  Calling it again with the same entry yields the
// identical state.
func (p *Precedent) ApplyNetworkEntry(entry citation.NetworkEntry) {
	p.CitationsReceived = len(entry.InboundCitations)

	p.CitingCases = make([]ptypes.CaseID, len(entry.InboundCitations))
	copy(p.CitingCases, entry.InboundCitations)

	p.CitedCases = make([]string, 0, len(entry.OutboundCitations))
	for _, c := range entry.OutboundCitations {
		p.CitedCases = append(p.CitedCases, c.CitationString)
	}

	p.setAuthority(p.InitialAuthority + entry.AuthorityScore*networkAuthorityWeight)

	p.OverrulingCases = nil
	for _, c := range entry.OverrulingCitations() {
		ref := string(c.TargetCaseID)
		if ref == "" {
			ref = c.CitationString
		}
		p.OverrulingCases = append(p.OverrulingCases, ref)
	}
	if len(p.OverrulingCases) > 0 {
		p.Treatment = ptypes.TypeSuperseded
	} else if p.Treatment == ptypes.TypeSuperseded {
		p.Treatment = ""
	}

	now := time.Now().UTC()
	p.EnrichedAt = &now
}

// IsSuperseded reports whether the precedent has been overruled.  Any entry
// in OverrulingCases implies superseded regardless of the Treatment field.
func (p *Precedent) IsSuperseded() bool {
	return p.Treatment == ptypes.TypeSuperseded || len(p.OverrulingCases) > 0
}

// Validate checks the aggregate invariants.
func (p *Precedent) Validate() error {
	if p.CaseID == "" {
		return apperrors.New(apperrors.ErrCodePrecedentInvalid, "case_id must not be empty")
	}
	if p.CaseName == "" {
		return apperrors.New(apperrors.ErrCodePrecedentInvalid, "case_name must not be empty")
	}
	if p.Authority < 0 || p.Authority > 1 {
		return apperrors.Newf(apperrors.ErrCodePrecedentInvalid, "authority %v out of [0,1]", p.Authority)
	}
	if p.Strength != ptypes.StrengthForAuthority(p.Authority) {
		return apperrors.New(apperrors.ErrCodePrecedentInvalid, "strength inconsistent with authority")
	}
	if len(p.OverrulingCases) > 0 && p.Treatment != ptypes.TypeSuperseded {
		return apperrors.New(apperrors.ErrCodePrecedentInvalid, "overruled precedent must be superseded")
	}
	if len(p.LegalIssues) > MaxLegalIssues {
		return apperrors.Newf(apperrors.ErrCodePrecedentInvalid, "at most %d legal issues", MaxLegalIssues)
	}
	if len(p.LegalPrinciples) > MaxLegalPrinciples {
		return apperrors.Newf(apperrors.ErrCodePrecedentInvalid, "at most %d legal principles", MaxLegalPrinciples)
	}
	return nil
}

// Clone returns a deep copy.  Repositories hand out clones so that query-time
// annotation can never reach stored state.
func (p *Precedent) Clone() *Precedent {
	if p == nil {
		return nil
	}
	out := *p
	out.LegalIssues = append([]string(nil), p.LegalIssues...)
	out.LegalPrinciples = append([]string(nil), p.LegalPrinciples...)
	out.LegalConcepts = append([]string(nil), p.LegalConcepts...)
	out.CitingCases = append([]ptypes.CaseID(nil), p.CitingCases...)
	out.CitedCases = append([]string(nil), p.CitedCases...)
	out.OverrulingCases = append([]string(nil), p.OverrulingCases...)
	if p.DecisionDate != nil {
		d := *p.DecisionDate
		out.DecisionDate = &d
	}
	if p.EnrichedAt != nil {
		e := *p.EnrichedAt
		out.EnrichedAt = &e
	}
	return &out
}

// ToDTO produces the read-only snapshot embedded in analysis results,
// annotated with the supplied query-time treatment.
func (p *Precedent) ToDTO(treatment ptypes.Type) ptypes.PrecedentDTO {
	dto := ptypes.PrecedentDTO{
		CaseID:       p.CaseID,
		CaseName:     p.CaseName,
		Court:        p.Court,
		Jurisdiction: p.Jurisdiction,
		Holding:      p.Holding,
		LegalIssues:  append([]string(nil), p.LegalIssues...),
		Authority:    p.Authority,
		Strength:     p.Strength,
		Treatment:    treatment,
		Citations:    p.CitationsReceived,
	}
	if p.DecisionDate != nil {
		d := *p.DecisionDate
		dto.DecisionDate = &d
	}
	return dto
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
