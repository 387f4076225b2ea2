package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*precedent.Precedent)
		target ptypes.Jurisdiction
		want   ptypes.Type
	}{
		{
			name: "same jurisdiction with binding authority",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_State_Ohio"
			},
			target: "US_State_Ohio",
			want:   ptypes.TypeControlling,
		},
		{
			name: "different jurisdiction is persuasive",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_Federal"
			},
			target: "US_State_Ohio",
			want:   ptypes.TypePersuasive,
		},
		{
			name: "federal target with highest national court",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_Federal"
				p.Court = "United States Supreme Court"
			},
			target: "US_Federal_2nd_Circuit",
			want:   ptypes.TypeControlling,
		},
		{
			name: "state target ignores highest national court rule",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_Federal"
				p.Court = "United States Supreme Court"
			},
			target: "US_State_Ohio",
			want:   ptypes.TypePersuasive,
		},
		{
			name: "same circuit with binding authority",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_Federal_9th_Circuit"
			},
			target: "US_Federal_9th_Circuit_District_OR",
			want:   ptypes.TypeControlling,
		},
		{
			name: "different circuit is persuasive",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_Federal_2nd_Circuit"
			},
			target: "US_Federal_9th_Circuit",
			want:   ptypes.TypePersuasive,
		},
		{
			name: "conflicting treatment passes through",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_State_Texas"
				p.Treatment = ptypes.TypeConflicting
			},
			target: "US_State_Ohio",
			want:   ptypes.TypeConflicting,
		},
		{
			name: "superseded never controls",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = "US_State_Ohio"
				p.OverrulingCases = []string{"later_case_2021"}
				p.Treatment = ptypes.TypeSuperseded
			},
			target: "US_State_Ohio",
			want:   ptypes.TypeSuperseded,
		},
		{
			name: "empty jurisdiction is ineligible for controlling",
			mutate: func(p *precedent.Precedent) {
				p.Jurisdiction = ""
			},
			target: "",
			want:   ptypes.TypePersuasive,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := buildPrecedent(t, "case", 0.85, tt.mutate)
			assert.Equal(t, tt.want, classify(p, tt.target))
		})
	}
}

func TestClassify_AuthorityExactness(t *testing.T) {
	t.Parallel()

	binding := buildPrecedent(t, "binding", 0.85, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_State_Ohio"
	})
	assert.Equal(t, ptypes.TypeControlling, classify(binding, "US_State_Ohio"))

	weak := buildPrecedent(t, "weak", 0.79, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_State_Ohio"
	})
	assert.Equal(t, ptypes.TypePersuasive, classify(weak, "US_State_Ohio"))

	boundary := buildPrecedent(t, "boundary", 0.8, func(p *precedent.Precedent) {
		p.Jurisdiction = "US_State_Ohio"
	})
	assert.Equal(t, ptypes.TypeControlling, classify(boundary, "US_State_Ohio"))
}

func TestCircuitID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		jurisdiction ptypes.Jurisdiction
		want         string
	}{
		{"US_Federal_9th_Circuit", "9th"},
		{"US_Federal_2nd_Circuit", "2nd"},
		{"US_Federal_DC_Circuit", "dc"},
		{"US_Federal", ""},
		{"US_State_Ohio", ""},
		{"", ""},
		{"US_Federal_9th_Circuit_District_OR", "9th"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, circuitID(tt.jurisdiction), string(tt.jurisdiction))
	}
}
