package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

const supremeCourtOpinion = `Smith v. Jones
Supreme Court of the United States
Decided: March 15, 2019

The issue is whether a liquidated damages clause in a commercial contract is enforceable when actual damages are readily calculable. The plaintiff argued breach of contract.

We hold that a liquidated damages clause is unenforceable as a penalty when actual damages are readily ascertainable at the time of contracting.

It is well established that contract remedies are compensatory rather than punitive.`

func TestExtract_SupremeCourtOpinion(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		ID:      "smith_v_jones_2019",
		Title:   "Smith v. Jones",
		Content: supremeCourtOpinion,
	})
	require.NoError(t, err)

	assert.Equal(t, ptypes.CaseID("smith_v_jones_2019"), p.CaseID)
	assert.Equal(t, "Smith v. Jones", p.CaseName)
	assert.Equal(t, "United States Supreme Court", p.Court)
	assert.Equal(t, ptypes.Jurisdiction("US_Federal"), p.Jurisdiction)

	require.NotNil(t, p.DecisionDate)
	assert.Equal(t, time.Date(2019, 3, 15, 0, 0, 0, 0, time.UTC), *p.DecisionDate)

	// Highest court rank plus the federal bonus, clamped to 1.0.
	assert.Equal(t, 1.0, p.Authority)
	assert.Equal(t, ptypes.StrengthVeryStrong, p.Strength)

	require.NotEmpty(t, p.LegalIssues)
	assert.Contains(t, p.LegalIssues[0], "liquidated damages clause")
	assert.Contains(t, p.Holding, "unenforceable as a penalty")
	require.NotEmpty(t, p.LegalPrinciples)
	assert.Contains(t, p.LegalPrinciples[0], "compensatory")
}

func TestExtract_CircuitCourt(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		ID:    "acme_v_zenith_2021",
		Title: "Acme Corp v. Zenith Inc",
		Content: `United States Court of Appeals for the Ninth Circuit
Filed: 6/2/2021
We hold that the arbitration clause survives termination of the agreement.`,
	})
	require.NoError(t, err)

	assert.Equal(t, ptypes.Jurisdiction("US_Federal_9th_Circuit"), p.Jurisdiction)
	assert.True(t, p.Jurisdiction.IsFederal())
	assert.InDelta(t, 0.95, p.Authority, 1e-9)
	require.NotNil(t, p.DecisionDate)
	assert.Equal(t, 2021, p.DecisionDate.Year())
}

func TestExtract_StateSupremeCourt(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		ID:    "miller_v_estate_2015",
		Title: "Miller v. Estate of Carr",
		Content: `Supreme Court of Ohio
Decided: January 8, 2015
We hold that the statute of limitations was tolled during the defendant's absence.`,
	})
	require.NoError(t, err)

	assert.Equal(t, ptypes.Jurisdiction("US_State_Ohio"), p.Jurisdiction)
	assert.False(t, p.Jurisdiction.IsFederal())
	assert.InDelta(t, 0.9, p.Authority, 1e-9)
}

func TestExtract_UnknownCourtAndNoDate(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		ID:      "doe_v_roe",
		Title:   "Doe v. Roe",
		Content: "The parties dispute ownership of the property. Judgment for plaintiff.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Unknown Court", p.Court)
	assert.Equal(t, ptypes.Jurisdiction(""), p.Jurisdiction)
	assert.Nil(t, p.DecisionDate)
	assert.Equal(t, rankUnknownCourt, p.Authority)
	assert.Empty(t, p.LegalIssues)
	assert.Empty(t, p.Holding)
}

func TestExtract_BareYearFallback(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		ID:      "old_v_older",
		Title:   "Old v. Older",
		Content: "In 1987 the trial court entered judgment for the defendant.",
	})
	require.NoError(t, err)
	require.NotNil(t, p.DecisionDate)
	assert.Equal(t, 1987, p.DecisionDate.Year())
}

func TestExtract_DerivesCaseIDWhenDocumentHasNone(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	p, err := ex.Extract(context.Background(), document.Document{
		Title:   "Brown v. Board of Education",
		Content: "Supreme Court of the United States. Decided: May 17, 1954. We hold that separate educational facilities are inherently unequal.",
	})
	require.NoError(t, err)
	assert.Equal(t, ptypes.CaseID("brown_v_board_of_education_1954"), p.CaseID)
}

func TestExtract_FailsWithoutIdentity(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	_, err := ex.Extract(context.Background(), document.Document{
		Content: "we hold that nothing here names the parties",
	})
	require.Error(t, err)
}

func TestExtract_CapsExtractedSentences(t *testing.T) {
	t.Parallel()
	ex := NewExtractor(nil, nil)

	content := "A v. B. Superior Court. "
	issues := []string{
		"The issue is whether the first question about notice requirements matters here.",
		"The issue is whether the second question about damages calculations matters here.",
		"The issue is whether the third question about venue selection matters here.",
		"The issue is whether the fourth question about expert testimony matters here.",
		"The issue is whether the fifth question about jury instructions matters here.",
		"The issue is whether the sixth question about appellate standards matters here.",
	}
	for _, s := range issues {
		content += s + " "
	}

	p, err := ex.Extract(context.Background(), document.Document{ID: "a_v_b", Title: "A v. B", Content: content})
	require.NoError(t, err)
	assert.Len(t, p.LegalIssues, maxIssues)
}

func TestExtractDecisionDate_PrecedenceOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want *time.Time
	}{
		{
			name: "decided phrase wins over earlier bare year",
			text: "In 1990 the district court ruled. Decided: April 3, 2002.",
			want: timePtr(2002, time.April, 3),
		},
		{
			name: "slash date before long form",
			text: "Argued January 1, 2010. Entered 3/14/2011 on the docket.",
			want: timePtr(2011, time.March, 14),
		},
		{
			name: "no date",
			text: "no temporal information here",
			want: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := extractDecisionDate(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func timePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestCircuitJurisdiction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want ptypes.Jurisdiction
	}{
		{"Ninth", "US_Federal_9th_Circuit"},
		{"ninth circuit", "US_Federal_9th_Circuit"},
		{"2nd", "US_Federal_2nd_Circuit"},
		{"District of Columbia", "US_Federal_DC_Circuit"},
		{"D.C.", "US_Federal_DC_Circuit"},
		{"Eleventh", "US_Federal_11th_Circuit"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, circuitJurisdiction(tt.raw), tt.raw)
	}
}
