package precedent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexatlas/precedent-intelligence/internal/domain/citation"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func TestNew(t *testing.T) {
	t.Parallel()

	p, err := New("smith_v_jones_2019", "Smith v. Jones", 0.75)
	require.NoError(t, err)
	assert.Equal(t, ptypes.CaseID("smith_v_jones_2019"), p.CaseID)
	assert.Equal(t, 0.75, p.InitialAuthority)
	assert.Equal(t, 0.75, p.Authority)
	assert.Equal(t, ptypes.StrengthModerate, p.Strength)
	assert.Equal(t, "Unknown Court", p.Court)

	_, err = New("", "Smith v. Jones", 0.5)
	assert.Error(t, err)
	_, err = New("smith_v_jones_2019", "", 0.5)
	assert.Error(t, err)
}

func TestNew_ClampsInitialAuthority(t *testing.T) {
	t.Parallel()

	p, err := New("a", "A v. B", 1.7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Authority)
	assert.Equal(t, ptypes.StrengthVeryStrong, p.Strength)

	p, err = New("b", "B v. C", -0.2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Authority)
	assert.Equal(t, ptypes.StrengthVeryWeak, p.Strength)
}

func TestApplyNetworkEntry(t *testing.T) {
	t.Parallel()

	p, err := New("roe_v_doe_1990", "Roe v. Doe", 0.7)
	require.NoError(t, err)

	entry := citation.NetworkEntry{
		InboundCitations: []ptypes.CaseID{"a_v_b_2001", "c_v_d_2005"},
		OutboundCitations: []citation.OutboundCitation{
			{CitationString: "123 U.S. 456", Context: ptypes.ContextFollowing},
			{CitationString: "789 F.2d 12", TargetCaseID: "e_v_f_1980", Context: ptypes.ContextNeutral},
		},
		AuthorityScore: 0.5,
	}
	p.ApplyNetworkEntry(entry)

	assert.Equal(t, 2, p.CitationsReceived)
	assert.Equal(t, []ptypes.CaseID{"a_v_b_2001", "c_v_d_2005"}, p.CitingCases)
	assert.Equal(t, []string{"123 U.S. 456", "789 F.2d 12"}, p.CitedCases)
	assert.InDelta(t, 0.85, p.Authority, 1e-9)
	assert.Equal(t, ptypes.StrengthStrong, p.Strength)
	assert.Empty(t, p.OverrulingCases)
	assert.False(t, p.IsSuperseded())
	require.NotNil(t, p.EnrichedAt)
}

func TestApplyNetworkEntry_CapsAuthorityAtOne(t *testing.T) {
	t.Parallel()

	p, err := New("marbury_v_madison_1803", "Marbury v. Madison", 0.95)
	require.NoError(t, err)

	p.ApplyNetworkEntry(citation.NetworkEntry{AuthorityScore: 1.0})
	assert.Equal(t, 1.0, p.Authority)
	assert.Equal(t, ptypes.StrengthVeryStrong, p.Strength)
}

func TestApplyNetworkEntry_Overruling(t *testing.T) {
	t.Parallel()

	p, err := New("plessy_v_ferguson_1896", "Plessy v. Ferguson", 0.9)
	require.NoError(t, err)

	entry := citation.NetworkEntry{
		OutboundCitations: []citation.OutboundCitation{
			{CitationString: "163 U.S. 537", TargetCaseID: "brown_v_board_1954", Context: ptypes.ContextOverruling},
			{CitationString: "60 U.S. 393", Context: ptypes.ContextOverruling},
		},
	}
	p.ApplyNetworkEntry(entry)

	assert.Equal(t, []string{"brown_v_board_1954", "60 U.S. 393"}, p.OverrulingCases)
	assert.Equal(t, ptypes.TypeSuperseded, p.Treatment)
	assert.True(t, p.IsSuperseded())
}

func TestApplyNetworkEntry_Idempotent(t *testing.T) {
	t.Parallel()

	p, err := New("roe_v_doe_1990", "Roe v. Doe", 0.7)
	require.NoError(t, err)

	entry := citation.NetworkEntry{
		InboundCitations: []ptypes.CaseID{"a_v_b_2001"},
		AuthorityScore:   0.4,
	}
	p.ApplyNetworkEntry(entry)
	first := p.Authority
	p.ApplyNetworkEntry(entry)

	assert.Equal(t, first, p.Authority)
	assert.Equal(t, 1, p.CitationsReceived)
	assert.InDelta(t, 0.82, p.Authority, 1e-9)
}

func TestApplyNetworkEntry_ClearsStaleSuperseded(t *testing.T) {
	t.Parallel()

	p, err := New("x_v_y_2000", "X v. Y", 0.6)
	require.NoError(t, err)

	p.ApplyNetworkEntry(citation.NetworkEntry{
		OutboundCitations: []citation.OutboundCitation{
			{CitationString: "1 U.S. 1", Context: ptypes.ContextOverruling},
		},
	})
	require.True(t, p.IsSuperseded())

	p.ApplyNetworkEntry(citation.NetworkEntry{})
	assert.False(t, p.IsSuperseded())
	assert.Empty(t, p.OverrulingCases)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Precedent {
		p, err := New("a_v_b_2010", "A v. B", 0.5)
		if err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name   string
		mutate func(*Precedent)
		wantOK bool
	}{
		{"valid", func(*Precedent) {}, true},
		{"missing case id", func(p *Precedent) { p.CaseID = "" }, false},
		{"authority out of range", func(p *Precedent) { p.Authority = 1.2 }, false},
		{"strength drift", func(p *Precedent) { p.Strength = ptypes.StrengthVeryStrong }, false},
		{"overruled but not superseded", func(p *Precedent) { p.OverrulingCases = []string{"x"} }, false},
		{"too many issues", func(p *Precedent) {
			p.LegalIssues = []string{"a", "b", "c", "d", "e", "f"}
		}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	p, err := New("a_v_b_2010", "A v. B", 0.5)
	require.NoError(t, err)
	p.LegalIssues = []string{"breach of contract"}
	d := time.Date(2010, 6, 1, 0, 0, 0, 0, time.UTC)
	p.DecisionDate = &d

	c := p.Clone()
	c.LegalIssues[0] = "negligence"
	*c.DecisionDate = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "breach of contract", p.LegalIssues[0])
	assert.Equal(t, 2010, p.DecisionDate.Year())
}

func TestToDTO(t *testing.T) {
	t.Parallel()

	p, err := New("a_v_b_2010", "A v. B", 0.85)
	require.NoError(t, err)
	p.Jurisdiction = "US_Federal_9th_Circuit"
	p.Holding = "The court held that the contract was enforceable."
	p.CitationsReceived = 12

	dto := p.ToDTO(ptypes.TypeControlling)
	assert.Equal(t, ptypes.TypeControlling, dto.Treatment)
	assert.Equal(t, 0.85, dto.Authority)
	assert.Equal(t, ptypes.StrengthStrong, dto.Strength)
	assert.Equal(t, 12, dto.Citations)
	// The DTO is a snapshot; stored state stays untouched.
	assert.Equal(t, ptypes.Type(""), p.Treatment)
}
