package neo4j

import (
	"context"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// networkQuery returns, per case node, its inbound citing case ids, its
// outbound citation edges with treatment context, and the precomputed
// authority score stored on the node.
const networkQuery = `
MATCH (c:Case)
WHERE c.case_id IN $case_ids
OPTIONAL MATCH (citing:Case)-[:CITES]->(c)
WITH c, collect(DISTINCT citing.case_id) AS inbound
OPTIONAL MATCH (c)-[r:CITES]->(target:Case)
RETURN c.case_id AS case_id,
       inbound,
       collect({citation_string: r.citation_string,
                target_case_id: target.case_id,
                context: r.context}) AS outbound,
       coalesce(c.authority_score, 0.0) AS authority_score`

// CitationProvider implements citation.Provider against a Neo4j citation
// graph.  Cases absent from the graph simply have no network entry, which the
// enrichment layer treats as "no adjustment".
type CitationProvider struct {
	driver Driver
	logger logging.Logger
}

// NewCitationProvider wires a provider over an already connected driver.
func NewCitationProvider(driver Driver, logger logging.Logger) *CitationProvider {
	if logger == nil {
		logger = logging.Default()
	}
	return &CitationProvider{driver: driver, logger: logger}
}

var _ citation.Provider = (*CitationProvider)(nil)

// BuildNetwork queries the graph for every corpus document that carries a
// case id and assembles the per-case network entries.
func (p *CitationProvider) BuildNetwork(ctx context.Context, corpus []document.Document) (citation.Network, error) {
	caseIDs := make([]string, 0, len(corpus))
	for _, doc := range corpus {
		if doc.ID != "" {
			caseIDs = append(caseIDs, doc.ID)
		}
	}
	if len(caseIDs) == 0 {
		return citation.Network{}, nil
	}

	session := p.driver.NewSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	raw, err := session.ExecuteRead(ctx, func(tx Transaction) (any, error) {
		res, err := tx.Run(ctx, networkQuery, map[string]any{"case_ids": caseIDs})
		if err != nil {
			return nil, err
		}

		network := citation.Network{}
		for res.Next(ctx) {
			record := res.Record()
			id, ok := stringValue(record.AsMap(), "case_id")
			if !ok {
				continue
			}
			network[ptypes.CaseID(id)] = entryFromRecord(record.AsMap())
		}
		if err := res.Err(); err != nil {
			return nil, err
		}
		return network, nil
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNetworkUnavailable, "querying citation network")
	}

	network := raw.(citation.Network)
	p.logger.Debug("citation network built",
		logging.Int("corpus_cases", len(caseIDs)),
		logging.Int("network_entries", len(network)))
	return network, nil
}

func entryFromRecord(fields map[string]any) citation.NetworkEntry {
	entry := citation.NetworkEntry{}

	if inbound, ok := fields["inbound"].([]any); ok {
		for _, v := range inbound {
			if id, ok := v.(string); ok && id != "" {
				entry.InboundCitations = append(entry.InboundCitations, ptypes.CaseID(id))
			}
		}
	}

	if outbound, ok := fields["outbound"].([]any); ok {
		for _, v := range outbound {
			edge, ok := v.(map[string]any)
			if !ok {
				continue
			}
			citationString, _ := stringValue(edge, "citation_string")
			targetID, _ := stringValue(edge, "target_case_id")
			if citationString == "" && targetID == "" {
				continue
			}
			contextTag, _ := stringValue(edge, "context")
			entry.OutboundCitations = append(entry.OutboundCitations, citation.OutboundCitation{
				CitationString: citationString,
				TargetCaseID:   ptypes.CaseID(targetID),
				Context:        citationContext(contextTag),
			})
		}
	}

	if score, ok := fields["authority_score"].(float64); ok {
		entry.AuthorityScore = clamp01(score)
	}
	return entry
}

func citationContext(tag string) ptypes.CitationContext {
	switch ptypes.CitationContext(tag) {
	case ptypes.ContextAffirming, ptypes.ContextFollowing, ptypes.ContextDistinguishing,
		ptypes.ContextCriticizing, ptypes.ContextOverruling, ptypes.ContextNeutral:
		return ptypes.CitationContext(tag)
	default:
		return ptypes.ContextNeutral
	}
}

func stringValue(fields map[string]any, key string) (string, bool) {
	v, ok := fields[key].(string)
	return v, ok && v != ""
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
