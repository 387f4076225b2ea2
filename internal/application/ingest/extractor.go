// Package ingest implements the corpus ingestion pipeline: classify documents,
// extract precedent records from case opinions, enrich them from the citation
// network, and persist them through the precedent repository.
package ingest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/lexatlas/precedent-intelligence/internal/domain/concept"
	"github.com/lexatlas/precedent-intelligence/internal/domain/document"
	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	"github.com/lexatlas/precedent-intelligence/internal/infrastructure/monitoring/logging"
	apperrors "github.com/lexatlas/precedent-intelligence/pkg/errors"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// Court-rank authorities.  The federal bonus is added on top and the entity
// clamps the result into [0,1].
const (
	rankHighestCourt  = 1.0
	rankStateSupreme  = 0.9
	rankCircuitCourt  = 0.85
	rankStateAppeals  = 0.75
	rankDistrictCourt = 0.65
	rankTrialCourt    = 0.5
	rankUnknownCourt  = 0.45

	federalAuthorityBonus = 0.1
)

// Sentence caps on extracted substance.
const (
	maxIssues     = precedent.MaxLegalIssues
	maxHoldings   = 1
	maxPrinciples = precedent.MaxLegalPrinciples
)

var (
	caseNamePattern = regexp.MustCompile(`[A-Z][A-Za-z0-9'.&\- ]{1,60}\s+v\.?\s+[A-Z][A-Za-z0-9'.&\- ]{1,60}`)

	decidedDatePattern  = regexp.MustCompile(`(?i)(?:decided|filed)[:\s]+([A-Za-z]+\s+\d{1,2},\s+\d{4}|\d{1,2}/\d{1,2}/\d{4})`)
	slashDatePattern    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	longFormDatePattern = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),\s+(\d{4})\b`)
	bareYearPattern     = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

	issuePattern     = regexp.MustCompile(`(?i)(?:the (?:issue|question)(?: presented)? is whether|at issue is whether|whether)\s+([^.?!]{10,240})`)
	holdingPattern   = regexp.MustCompile(`(?i)(?:we hold that|the court holds that|it is held that|we conclude that)\s+([^.?!]{10,300})`)
	principlePattern = regexp.MustCompile(`(?i)(?:the rule is that|it is well established that|it is a fundamental principle that|under the doctrine of)\s+([^.?!]{10,240})`)

	circuitPattern     = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\s+circuit\b`)
	circuitWordPattern = regexp.MustCompile(`(?i)\b(first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|eleventh|d\.?c\.?)\s+circuit\b`)

	slugCleanPattern     = regexp.MustCompile(`[^a-z0-9]+`)
	circuitDigitsPattern = regexp.MustCompile(`^\d{1,2}(?:st|nd|rd|th)`)
)

var circuitOrdinals = map[string]string{
	"first": "1st", "second": "2nd", "third": "3rd", "fourth": "4th",
	"fifth": "5th", "sixth": "6th", "seventh": "7th", "eighth": "8th",
	"ninth": "9th", "tenth": "10th", "eleventh": "11th",
}

// courtRule matches one known court name fragment and carries its rank and
// jurisdiction.  Rules are tried in order; the first match wins, so the more
// specific federal rules sit above the generic state ones.
type courtRule struct {
	pattern      *regexp.Regexp
	court        string
	rank         float64
	jurisdiction func(match []string) ptypes.Jurisdiction
}

var courtRules = []courtRule{
	{
		pattern: regexp.MustCompile(`(?i)supreme court of the united states|united states supreme court|u\.s\. supreme court`),
		court:   "United States Supreme Court",
		rank:    rankHighestCourt,
		jurisdiction: func([]string) ptypes.Jurisdiction {
			return "US_Federal"
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)(?:united states )?court of appeals for the (\w+|district of columbia) circuit`),
		rank:    rankCircuitCourt,
		jurisdiction: func(match []string) ptypes.Jurisdiction {
			return circuitJurisdiction(match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)\b((?:\d{1,2}(?:st|nd|rd|th)|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|eleventh|d\.?c\.?)\s+circuit)\b`),
		rank:    rankCircuitCourt,
		jurisdiction: func(match []string) ptypes.Jurisdiction {
			return circuitJurisdiction(match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)united states district court`),
		court:   "United States District Court",
		rank:    rankDistrictCourt,
		jurisdiction: func([]string) ptypes.Jurisdiction {
			return "US_Federal"
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)supreme court of ([A-Za-z ]{3,30}?)(?:\s|,|\.|$)`),
		rank:    rankStateSupreme,
		jurisdiction: func(match []string) ptypes.Jurisdiction {
			return stateJurisdiction(match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)([A-Za-z ]{3,30}?) supreme court`),
		rank:    rankStateSupreme,
		jurisdiction: func(match []string) ptypes.Jurisdiction {
			return stateJurisdiction(match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)court of appeals of ([A-Za-z ]{3,30}?)(?:\s|,|\.|$)`),
		rank:    rankStateAppeals,
		jurisdiction: func(match []string) ptypes.Jurisdiction {
			return stateJurisdiction(match[1])
		},
	},
	{
		pattern: regexp.MustCompile(`(?i)superior court|county court|municipal court|court of common pleas`),
		rank:    rankTrialCourt,
		jurisdiction: func([]string) ptypes.Jurisdiction {
			return ""
		},
	},
}

// circuitJurisdiction builds the circuit jurisdiction code from a matched
// circuit identifier such as "Ninth", "9th" or "District of Columbia".
func circuitJurisdiction(raw string) ptypes.Jurisdiction {
	id := strings.ToLower(strings.TrimSpace(raw))
	id = strings.TrimSuffix(id, " circuit")
	if ord, ok := circuitOrdinals[id]; ok {
		return ptypes.Jurisdiction("US_Federal_" + ord + "_Circuit")
	}
	if strings.HasPrefix(id, "d") && strings.Contains(id, "c") || id == "district of columbia" {
		return "US_Federal_DC_Circuit"
	}
	if m := circuitDigitsPattern.FindString(id); m != "" {
		return ptypes.Jurisdiction("US_Federal_" + m + "_Circuit")
	}
	return "US_Federal"
}

// stateJurisdiction builds a state jurisdiction code from a matched state name.
func stateJurisdiction(raw string) ptypes.Jurisdiction {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	parts := strings.Fields(strings.Title(strings.ToLower(name)))
	return ptypes.Jurisdiction("US_State_" + strings.Join(parts, "_"))
}

// Extractor turns a classified case opinion into a Precedent record.  It is
// stateless and safe for concurrent use.
type Extractor struct {
	concepts concept.Extractor
	logger   logging.Logger
}

// NewExtractor wires an Extractor.  A nil concept extractor degrades to empty
// concept lists; a nil logger falls back to the process default.
func NewExtractor(concepts concept.Extractor, logger logging.Logger) *Extractor {
	if concepts == nil {
		concepts = concept.NewNopExtractor()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{concepts: concepts, logger: logger.Named("extractor")}
}

// Extract builds a Precedent from a document already classified as a case
// opinion.  It fails only when the mandatory identity fields cannot be
// derived; everything else degrades to documented fallbacks.
func (e *Extractor) Extract(ctx context.Context, doc document.Document) (*precedent.Precedent, error) {
	caseName := extractCaseName(doc)
	if caseName == "" {
		return nil, apperrors.Newf(apperrors.ErrCodeExtractionFailed, "document %s: no case name found", doc.ID)
	}

	decisionDate := extractDecisionDate(doc.Content)

	caseID := ptypes.CaseID(doc.ID)
	if caseID == "" {
		caseID = deriveCaseID(caseName, decisionDate)
	}

	court, rank, jurisdiction := identifyCourt(doc.Content)
	initial := rank
	if jurisdiction.IsFederal() {
		initial += federalAuthorityBonus
	}

	p, err := precedent.New(caseID, caseName, initial)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExtractionFailed, "document "+doc.ID)
	}
	p.Court = court
	p.Jurisdiction = jurisdiction
	p.DecisionDate = decisionDate
	p.LegalIssues = extractSentences(doc.Content, issuePattern, maxIssues)
	if holdings := extractSentences(doc.Content, holdingPattern, maxHoldings); len(holdings) > 0 {
		p.Holding = holdings[0]
	}
	p.LegalPrinciples = extractSentences(doc.Content, principlePattern, maxPrinciples)

	concepts, err := e.concepts.ExtractConcepts(ctx, doc.Content)
	if err != nil {
		// Concept tagging is best effort; absence degrades to an empty list.
		e.logger.Warn("concept extraction unavailable",
			logging.String("case_id", string(caseID)),
			logging.Err(err))
		concepts = nil
	}
	p.LegalConcepts = concepts

	return p, nil
}

// extractCaseName looks for an "X v. Y" caption in the title first, then in
// the opening of the body.
func extractCaseName(doc document.Document) string {
	if m := caseNamePattern.FindString(doc.Title); m != "" {
		return strings.TrimSpace(m)
	}
	head := doc.Content
	if len(head) > 400 {
		head = head[:400]
	}
	if m := caseNamePattern.FindString(head); m != "" {
		return strings.TrimSpace(m)
	}
	if strings.TrimSpace(doc.Title) != "" {
		return strings.TrimSpace(doc.Title)
	}
	return ""
}

// deriveCaseID slugs the case name, appending the decision year when known.
func deriveCaseID(caseName string, date *time.Time) ptypes.CaseID {
	slug := slugCleanPattern.ReplaceAllString(strings.ToLower(caseName), "_")
	slug = strings.Trim(slug, "_")
	if date != nil {
		slug = fmt.Sprintf("%s_%d", slug, date.Year())
	}
	return ptypes.CaseID(slug)
}

// extractDecisionDate tries the documented patterns in precedence order:
// explicit decided/filed phrases, slash dates, long-form dates, then a bare
// four-digit year.  The first successful pattern wins; total failure returns
// nil and is not fatal.
func extractDecisionDate(text string) *time.Time {
	if m := decidedDatePattern.FindStringSubmatch(text); m != nil {
		if d := parseDatePhrase(m[1]); d != nil {
			return d
		}
	}
	if m := slashDatePattern.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse("1/2/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3])); err == nil {
			d = d.UTC()
			return &d
		}
	}
	if m := longFormDatePattern.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %s", strings.Title(strings.ToLower(m[1])), m[2], m[3])); err == nil {
			d = d.UTC()
			return &d
		}
	}
	if m := bareYearPattern.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse("2006", m[1]); err == nil {
			d = d.UTC()
			return &d
		}
	}
	return nil
}

func parseDatePhrase(phrase string) *time.Time {
	phrase = strings.TrimSpace(phrase)
	for _, layout := range []string{"January 2, 2006", "1/2/2006"} {
		if d, err := time.Parse(layout, phrase); err == nil {
			d = d.UTC()
			return &d
		}
	}
	if m := longFormDatePattern.FindStringSubmatch(phrase); m != nil {
		if d, err := time.Parse("January 2, 2006", fmt.Sprintf("%s %s, %s", strings.Title(strings.ToLower(m[1])), m[2], m[3])); err == nil {
			d = d.UTC()
			return &d
		}
	}
	return nil
}

// identifyCourt matches the body against the known court name fragments and
// returns the court label, its rank authority and its jurisdiction code.
// Unmatched text yields "Unknown Court" with the lowest rank.
func identifyCourt(text string) (string, float64, ptypes.Jurisdiction) {
	for _, rule := range courtRules {
		m := rule.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		court := rule.court
		if court == "" {
			court = normalizeCourtLabel(m[0])
		}
		return court, rule.rank, rule.jurisdiction(m)
	}
	return "Unknown Court", rankUnknownCourt, ""
}

func normalizeCourtLabel(raw string) string {
	return strings.Join(strings.Fields(strings.Title(strings.ToLower(strings.TrimSpace(raw)))), " ")
}

// extractSentences collects up to max distinct starter-phrase matches.
func extractSentences(text string, pattern *regexp.Regexp, max int) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, max)
	out := make([]string, 0, max)
	for _, m := range matches {
		s := strings.TrimSpace(m[1])
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
