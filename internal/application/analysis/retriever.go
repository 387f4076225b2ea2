// Package analysis implements query-time precedent analysis: relevance
// retrieval, controlling/persuasive/conflicting classification, reasoning
// chain synthesis and result assembly.  All operations are read-only against
// the precedent repository and safe for concurrent queries.
package analysis

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// Relevance scoring weights.  Additive, not probabilistic; fixed for ranking
// compatibility.
const (
	issueWordWeight          = 0.3
	holdingOverlapWeight     = 0.2
	conceptMatchWeight       = 0.4
	exactJurisdictionBonus   = 1.0
	partialJurisdictionBonus = 0.5

	relevanceThreshold = 1.0
	maxCandidates      = 20
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// tokenize lowercases text and splits it into its word set.
func tokenize(text string) map[string]struct{} {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// candidate pairs a precedent with its relevance score.  Encounter order is
// the repository's insertion order and breaks ranking ties.
type candidate struct {
	precedent *precedent.Precedent
	relevance float64
}

// retriever scores and ranks precedents against a free-text issue.
type retriever struct {
	repo precedent.Repository
}

// retrieve returns the top candidates for the issue, capped at maxCandidates.
// A precedent qualifies when its total score clears the relevance threshold
// and at least part of the score came from textual overlap; the jurisdiction
// bonus alone never qualifies a precedent, so an issue with zero token overlap
// against the whole database retrieves nothing.
func (r *retriever) retrieve(ctx context.Context, issue string, jurisdiction ptypes.Jurisdiction) ([]candidate, error) {
	issueTokens := tokenize(issue)

	all, err := r.repo.All(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "listing precedents for retrieval")
	}

	candidates := make([]candidate, 0, len(all))
	for _, p := range all {
		textual := textualScore(p, issueTokens)
		total := textual + jurisdictionScore(p.Jurisdiction, jurisdiction)
		if total < relevanceThreshold || textual <= 0 {
			continue
		}
		candidates = append(candidates, candidate{precedent: p, relevance: total})
	}

	// Rank by authority, then citation count; ties keep encounter order.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].precedent, candidates[j].precedent
		if a.Authority != b.Authority {
			return a.Authority > b.Authority
		}
		return len(a.CitingCases) > len(b.CitingCases)
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates, nil
}

// textualScore accumulates the text-derived components: issue-description
// word overlap, holding+principles overlap, and concept containment.
func textualScore(p *precedent.Precedent, issueTokens map[string]struct{}) float64 {
	score := 0.0

	seen := make(map[string]struct{})
	for _, desc := range p.LegalIssues {
		for w := range tokenize(desc) {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := issueTokens[w]; ok {
				score += issueWordWeight
			}
		}
	}

	substantive := tokenize(p.Holding + " " + strings.Join(p.LegalPrinciples, " "))
	for w := range substantive {
		if _, ok := issueTokens[w]; ok {
			score += holdingOverlapWeight
		}
	}

	for _, tag := range p.LegalConcepts {
		if conceptContainsToken(tag, issueTokens) {
			score += conceptMatchWeight
			break
		}
	}

	return score
}

// conceptContainsToken reports whether the concept tag textually contains any
// issue token.
func conceptContainsToken(tag string, issueTokens map[string]struct{}) bool {
	lower := strings.ToLower(tag)
	for w := range issueTokens {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// jurisdictionScore is the proximity bonus: exact match beats a substring
// relationship in either direction.
func jurisdictionScore(have, want ptypes.Jurisdiction) float64 {
	if have == "" || want == "" {
		return 0
	}
	if have == want {
		return exactJurisdictionBonus
	}
	if have.Contains(want) {
		return partialJurisdictionBonus
	}
	return 0
}
