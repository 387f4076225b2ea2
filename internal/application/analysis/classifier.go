package analysis

import (
	"regexp"
	"strings"

	"github.com/lexatlas/precedent-intelligence/internal/domain/precedent"
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

// controllingAuthorityThreshold is the minimum authority for a same
// jurisdiction or same circuit precedent to bind.
const controllingAuthorityThreshold = 0.8

// circuitIDPattern extracts the circuit identifier from a jurisdiction code:
// an ordinal number or "DC" immediately followed by "_Circuit".
var circuitIDPattern = regexp.MustCompile(`(?i)(\d{1,2}(?:st|nd|rd|th)|DC)_Circuit`)

// highestCourtPattern identifies the highest national court from its label.
var highestCourtPattern = regexp.MustCompile(`(?i)supreme court of the united states|united states supreme court|u\.s\. supreme court`)

// circuitID returns the circuit identifier embedded in a jurisdiction code,
// lowercased, or "" when the code carries none.  An unparseable or empty code
// is "no match", never an error; such precedents are simply ineligible for
// circuit-based controlling status.
func circuitID(j ptypes.Jurisdiction) string {
	m := circuitIDPattern.FindStringSubmatch(string(j))
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// isHighestNationalCourt reports whether the precedent issued from the
// highest national court.
func isHighestNationalCourt(p *precedent.Precedent) bool {
	return highestCourtPattern.MatchString(p.Court)
}

// classify decides the query-time treatment of one retrieved precedent
// relative to the target jurisdiction.  Pure function; the stored record is
// never touched.
//
// A precedent controls when it shares the target jurisdiction with binding
// authority, when the target is federal and the precedent came from the
// highest national court, or when both sit in the same circuit with binding
// authority.  Superseded precedents never control and are surfaced as
// conflicts for downstream resolution.
func classify(p *precedent.Precedent, target ptypes.Jurisdiction) ptypes.Type {
	if p.IsSuperseded() {
		return ptypes.TypeSuperseded
	}

	if p.Jurisdiction != "" && p.Jurisdiction == target && p.Authority >= controllingAuthorityThreshold {
		return ptypes.TypeControlling
	}
	if target.IsFederal() && isHighestNationalCourt(p) {
		return ptypes.TypeControlling
	}
	if tc := circuitID(target); tc != "" && tc == circuitID(p.Jurisdiction) && p.Authority >= controllingAuthorityThreshold {
		return ptypes.TypeControlling
	}

	if p.Treatment == ptypes.TypeConflicting {
		return ptypes.TypeConflicting
	}
	return ptypes.TypePersuasive
}
