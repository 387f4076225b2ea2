package ingest

import (
	"context"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
)

// Enricher runs the citation-enrichment pass: for every stored precedent with
// a network entry it revises citation counts, authority and superseded status.
// Precedents without an entry keep their extraction-time state.  The pass is
// idempotent because the entity always revises from its extraction-time
// authority snapshot and counts are taken fresh from the network every run.
type Enricher struct {
	repo   precedent.Repository
	events EventPublisher
	logger logging.Logger
}

// NewEnricher wires an Enricher.  A nil events publisher disables enrichment
// events; a nil logger falls back to the process default.
func NewEnricher(repo precedent.Repository, events EventPublisher, logger logging.Logger) *Enricher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Enricher{repo: repo, events: events, logger: logger.Named("enricher")}
}

// Enrich applies the citation network to the stored corpus and returns the
// number of precedents revised.  A nil or empty network is "no enrichment",
// not an error.  Per-precedent update failures are logged and skipped so one
// bad record cannot abort the pass.
func (e *Enricher) Enrich(ctx context.Context, network citation.Network) (int, error) {
	if len(network) == 0 {
		e.logger.Info("citation network empty, skipping enrichment")
		return 0, nil
	}

	all, err := e.repo.All(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "listing precedents for enrichment")
	}

	enriched := 0
	for _, p := range all {
		entry, ok := network[p.CaseID]
		if !ok {
			continue
		}
		p.ApplyNetworkEntry(entry)
		if err := e.repo.Update(ctx, p); err != nil {
			e.logger.Error("enrichment update failed",
				logging.String("case_id", string(p.CaseID)),
				logging.Err(err))
			continue
		}
		enriched++
		e.publishEnriched(ctx, p)
	}

	e.logger.Info("citation enrichment complete",
		logging.Int("precedents", len(all)),
		logging.Int("enriched", enriched))
	return enriched, nil
}

func (e *Enricher) publishEnriched(ctx context.Context, p *precedent.Precedent) {
	if e.events == nil {
		return
	}
	payload := kafka.PrecedentEnrichedPayload{
		CaseID:            string(p.CaseID),
		AuthorityScore:    p.Authority,
		CitationsReceived: p.CitationsReceived,
		Superseded:        p.IsSuperseded(),
		EnrichedAt:        time.Now().UTC(),
	}
	if err := e.events.Publish(ctx, kafka.TopicPrecedentEnriched, string(p.CaseID), payload); err != nil {
		e.logger.Warn("enrichment event not published",
			logging.String("case_id", string(p.CaseID)),
			logging.Err(err))
	}
}
