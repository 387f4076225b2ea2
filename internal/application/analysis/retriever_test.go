package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func buildPrecedent(t *testing.T, id string, authority float64, mutate func(*precedent.Precedent)) *precedent.Precedent {
	t.Helper()
	p, err := precedent.New(ptypes.CaseID(id), "Case "+id, authority)
	require.NoError(t, err)
	if mutate != nil {
		mutate(p)
	}
	return p
}

func seedRepo(t *testing.T, ps ...*precedent.Precedent) precedent.Repository {
	t.Helper()
	repo := precedent.NewMemoryRepository()
	for _, p := range ps {
		_, err := repo.Save(context.Background(), p)
		require.NoError(t, err)
	}
	return repo
}

func TestRetrieve_IssueWordOverlap(t *testing.T) {
	t.Parallel()

	p := buildPrecedent(t, "a", 0.9, func(p *precedent.Precedent) {
		p.LegalIssues = []string{"breach of contract liquidated damages"}
	})
	r := &retriever{repo: seedRepo(t, p)}

	// Five overlapping issue words at 0.3 each clears the threshold.
	got, err := r.retrieve(context.Background(), "breach of contract with liquidated damages clause", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1.5, got[0].relevance, 1e-9)
}

func TestRetrieve_JurisdictionBonusAloneNeverQualifies(t *testing.T) {
	t.Parallel()

	p := buildPrecedent(t, "a", 0.9, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_Federal"
		p.LegalIssues = []string{"maritime salvage rights"}
	})
	r := &retriever{repo: seedRepo(t, p)}

	got, err := r.retrieve(context.Background(), "zoning variance setback requirements", "US_Federal")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieve_ExactAndPartialJurisdictionBonus(t *testing.T) {
	t.Parallel()

	exact := buildPrecedent(t, "exact", 0.5, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_Federal"
		p.LegalIssues = []string{"negligence standard"}
	})
	partial := buildPrecedent(t, "partial", 0.5, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_Federal_9th_Circuit"
		p.LegalIssues = []string{"negligence standard"}
	})
	r := &retriever{repo: seedRepo(t, exact, partial)}

	got, err := r.retrieve(context.Background(), "negligence standard of care", "US_Federal")
	require.NoError(t, err)
	require.Len(t, got, 2)

	scores := map[ptypes.CaseID]float64{}
	for _, c := range got {
		scores[c.precedent.CaseID] = c.relevance
	}
	// Two overlapping issue words at 0.3 each, plus the jurisdiction bonus.
	assert.InDelta(t, 0.6+1.0, scores["exact"], 1e-9)
	assert.InDelta(t, 0.6+0.5, scores["partial"], 1e-9)
}

func TestRetrieve_ConceptContainment(t *testing.T) {
	t.Parallel()

	p := buildPrecedent(t, "a", 0.9, func(p *precedent.Precedent) {
		p.LegalIssues = []string{"liquidated damages enforceability"}
		p.LegalConcepts = []string{"contract_damages", "remedies"}
	})
	r := &retriever{repo: seedRepo(t, p)}

	got, err := r.retrieve(context.Background(), "liquidated damages in contract disputes", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Two issue words (0.3 each) plus the concept containment bonus.
	assert.InDelta(t, 0.6+0.4, got[0].relevance, 1e-9)
}

func TestRetrieve_HoldingOverlap(t *testing.T) {
	t.Parallel()

	p := buildPrecedent(t, "a", 0.9, func(p *precedent.Precedent) {
		p.LegalIssues = []string{"arbitration clause enforceability"}
		p.Holding = "arbitration provisions survive contract termination"
	})
	r := &retriever{repo: seedRepo(t, p)}

	got, err := r.retrieve(context.Background(), "arbitration clause enforceability", "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Three issue-description words at 0.3 plus one holding token ("arbitration") at 0.2.
	assert.InDelta(t, 0.9+0.2, got[0].relevance, 1e-9)
}

func TestRetrieve_RankingAndCap(t *testing.T) {
	t.Parallel()

	var ps []*precedent.Precedent
	for i := 0; i < 25; i++ {
		authority := 0.4 + float64(i%5)*0.1
		p := buildPrecedent(t, fmt.Sprintf("case_%02d", i), authority, func(p *precedent.Precedent) {
			p.LegalIssues = []string{"breach of contract damages award"}
		})
		ps = append(ps, p)
	}
	r := &retriever{repo: seedRepo(t, ps...)}

	got, err := r.retrieve(context.Background(), "breach of contract damages", "")
	require.NoError(t, err)
	require.Len(t, got, maxCandidates)

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].precedent.Authority, got[i].precedent.Authority)
	}
	// Equal authority keeps repository encounter order.
	assert.Equal(t, ptypes.CaseID("case_04"), got[0].precedent.CaseID)
	assert.Equal(t, ptypes.CaseID("case_09"), got[1].precedent.CaseID)
}

func TestRetrieve_TiesBrokenByCitations(t *testing.T) {
	t.Parallel()

	lessCited := buildPrecedent(t, "less", 0.8, func(p *precedent.Precedent) {
		p.LegalIssues = []string{"easement by prescription elements"}
	})
	moreCited := buildPrecedent(t, "more", 0.8, func(p *precedent.Precedent) {
		p.LegalIssues = []string{"easement by prescription elements"}
		p.CitingCases = []ptypes.CaseID{"x", "y", "z"}
	})
	r := &retriever{repo: seedRepo(t, lessCited, moreCited)}

	got, err := r.retrieve(context.Background(), "easement by prescription elements", "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ptypes.CaseID("more"), got[0].precedent.CaseID)
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tokens := tokenize("Breach of contract, with liquidated-damages clause!")
	for _, w := range []string{"breach", "of", "contract", "with", "liquidated", "damages", "clause"} {
		_, ok := tokens[w]
		assert.True(t, ok, w)
	}
	assert.Len(t, tokens, 7)
}
