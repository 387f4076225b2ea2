// Package citation defines the citation-network model consumed during
// precedent enrichment, and the Provider port implemented by external
// collaborators (graph database, static fixtures).  The network is read-only
// from this core's perspective.
package citation

import (
	"context"

	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// OutboundCitation is one citation made by an opinion, tagged with how the
// citing opinion treats the cited one.
type OutboundCitation struct {
	// CitationString is the raw citation text as it appears in the opinion.
	CitationString string `json:"citation_string"`

	// TargetCaseID is the resolved case identifier of the cited opinion,
	// empty when resolution failed.
	TargetCaseID ptypes.CaseID `json:"target_case_id,omitempty"`

	// Context tags the treatment; ContextOverruling triggers superseded
	// marking during enrichment.
	Context ptypes.CitationContext `json:"citation_context"`
}

// NetworkEntry is the per-case view of the citation graph.
type NetworkEntry struct {
	// InboundCitations lists the case ids of opinions citing this one.
	InboundCitations []ptypes.CaseID `json:"inbound_citations"`

	// OutboundCitations lists the citations this opinion makes.
	OutboundCitations []OutboundCitation `json:"outbound_citations"`

	// AuthorityScore is the provider's normalized [0,1] network authority for
	// this case, derived from the citation graph topology.
	AuthorityScore float64 `json:"authority_score"`
}

// Network maps case id → network entry for one corpus.
type Network map[ptypes.CaseID]NetworkEntry

// Provider builds the citation network for a document corpus.  Implementations
// are external collaborators; the core consumes their output read-only and
// degrades to no enrichment when a provider is absent or a case has no entry.
type Provider interface {
	BuildNetwork(ctx context.Context, corpus []document.Document) (Network, error)
}

// StaticProvider is a map-backed Provider for tests and file-based corpora
// whose citation data was precomputed.
type StaticProvider struct {
	network Network
}

// NewStaticProvider wraps an already-built Network in the Provider interface.
func NewStaticProvider(network Network) *StaticProvider {
	if network == nil {
		network = Network{}
	}
	return &StaticProvider{network: network}
}

// BuildNetwork returns the wrapped network regardless of the corpus.
func (p *StaticProvider) BuildNetwork(_ context.Context, _ []document.Document) (Network, error) {
	return p.network, nil
}

// OverrulingCitations returns the outbound citations tagged with the
// overruling context.  A non-empty result marks the case superseded during
// enrichment.
func (e NetworkEntry) OverrulingCitations() []OutboundCitation {
	var out []OutboundCitation
	for _, c := range e.OutboundCitations {
		if c.Context == ptypes.ContextOverruling {
			out = append(out, c)
		}
	}
	return out
}
