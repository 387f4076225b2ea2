package analysis

import (
	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

const recentDecisionYear = 2015

// analyzeJurisdictions summarizes the jurisdictional spread of the combined
// result set.
func analyzeJurisdictions(dtos []ptypes.PrecedentDTO) ptypes.JurisdictionAnalysis {
	out := ptypes.JurisdictionAnalysis{
		Distribution: make(map[ptypes.Jurisdiction]int),
	}
	for _, dto := range dtos {
		out.Distribution[dto.Jurisdiction]++
		if dto.Jurisdiction.IsFederal() {
			out.FederalCount++
		} else {
			out.StateCount++
		}
	}
	if len(dtos) > 0 {
		out.CoverageRatio = float64(len(out.Distribution)) / float64(len(dtos))
	}
	return out
}

// analyzeTemporal summarizes the decision-date spread of the combined result
// set.  When no decision dates were parseable it returns the explicit
// insufficient-data marker instead of zeros.
func analyzeTemporal(dtos []ptypes.PrecedentDTO) ptypes.TemporalAnalysis {
	out := ptypes.TemporalAnalysis{}
	for _, dto := range dtos {
		if dto.DecisionDate == nil {
			continue
		}
		year := dto.DecisionDate.Year()
		if !out.Sufficient {
			out.Sufficient = true
			out.EarliestYear, out.LatestYear = year, year
			out.DecadeBuckets = make(map[int]int)
		}
		if year < out.EarliestYear {
			out.EarliestYear = year
		}
		if year > out.LatestYear {
			out.LatestYear = year
		}
		if year >= recentDecisionYear {
			out.RecentCount++
		}
		out.DecadeBuckets[year/10*10]++
	}
	if out.Sufficient {
		out.SpanYears = out.LatestYear - out.EarliestYear
	}
	return out
}
