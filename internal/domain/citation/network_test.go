package citation

import (
	"context"
	"testing"

	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func TestStaticProviderReturnsWrappedNetwork(t *testing.T) {
	net := Network{
		"case_a": {
			InboundCitations: []ptypes.CaseID{"case_b", "case_c"},
			AuthorityScore:   0.5,
		},
	}
	p := NewStaticProvider(net)

	got, err := p.BuildNetwork(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	entry, ok := got["case_a"]
	if !ok {
		t.Fatal("expected entry for case_a")
	}
	if len(entry.InboundCitations) != 2 {
		t.Errorf("inbound = %d, want 2", len(entry.InboundCitations))
	}
}

func TestStaticProviderNilNetwork(t *testing.T) {
	p := NewStaticProvider(nil)
	got, err := p.BuildNetwork(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildNetwork: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil empty network")
	}
}

func TestOverrulingCitations(t *testing.T) {
	entry := NetworkEntry{
		OutboundCitations: []OutboundCitation{
			{CitationString: "Old v. Older, 1 U.S. 1", Context: ptypes.ContextFollowing},
			{CitationString: "New v. Newer, 2 U.S. 2", TargetCaseID: "new_v_newer", Context: ptypes.ContextOverruling},
			{CitationString: "Aside v. Note, 3 U.S. 3", Context: ptypes.ContextDistinguishing},
		},
	}

	got := entry.OverrulingCitations()
	if len(got) != 1 {
		t.Fatalf("overruling citations = %d, want 1", len(got))
	}
	if got[0].TargetCaseID != "new_v_newer" {
		t.Errorf("target = %q, want new_v_newer", got[0].TargetCaseID)
	}
}
