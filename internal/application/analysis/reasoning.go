package analysis

import (
	"fmt"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

const (
	reasoningPrecedentLimit = 5
	ruleApplicationLimit    = 3
	chainConfidenceCeiling  = 0.9
	chainConfidencePerCase  = 0.1
	chainConfidenceBase     = 0.3
)

// buildReasoningChain synthesizes the issue → rules → application →
// conclusion chain from the top ranked precedents.  Deterministic given its
// inputs; no external calls.
func buildReasoningChain(issue string, ranked []*precedent.Precedent, userFacts string) ptypes.ReasoningChain {
	top := ranked
	if len(top) > reasoningPrecedentLimit {
		top = top[:reasoningPrecedentLimit]
	}

	names := make([]string, 0, len(top))
	rules := make([]string, 0, len(top))
	for _, p := range top {
		names = append(names, p.CaseName)
		if p.Holding != "" {
			rules = append(rules, fmt.Sprintf("Rule from %s: %s", p.CaseName, p.Holding))
		}
		for _, principle := range p.LegalPrinciples {
			rules = append(rules, principle)
		}
	}

	applications := rules
	if len(applications) > ruleApplicationLimit {
		applications = applications[:ruleApplicationLimit]
	}
	if userFacts != "" {
		wrapped := make([]string, 0, len(applications))
		for _, rule := range applications {
			wrapped = append(wrapped, fmt.Sprintf("Applying %s to the facts: %s", rule, userFacts))
		}
		applications = wrapped
	} else {
		applications = append([]string(nil), applications...)
	}

	confidence := chainConfidencePerCase*float64(len(top)) + chainConfidenceBase
	if confidence > chainConfidenceCeiling {
		confidence = chainConfidenceCeiling
	}

	return ptypes.ReasoningChain{
		IssueIdentification:  fmt.Sprintf("Whether %s", issue),
		ApplicablePrecedents: names,
		RuleExtraction:       rules,
		RuleApplication:      applications,
		Conclusion: fmt.Sprintf(
			"Based on %d applicable precedents, the issue of %q should be resolved consistently with the extracted rules.",
			len(top), issue),
		ConfidenceScore: confidence,
	}
}
