package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	ptypes "github.com/lexatlas/precedent-intelligence/pkg/types/precedent"
)

func dtoWith(j ptypes.Jurisdiction, year int) ptypes.PrecedentDTO {
	dto := ptypes.PrecedentDTO{Jurisdiction: j}
	if year > 0 {
		d := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
		dto.DecisionDate = &d
	}
	return dto
}

func TestAnalyzeJurisdictions(t *testing.T) {
	t.Parallel()

	got := analyzeJurisdictions([]ptypes.PrecedentDTO{
		dtoWith("US_Federal", 0),
		dtoWith("US_Federal", 0),
		dtoWith("US_Federal_9th_Circuit", 0),
		dtoWith("US_State_Ohio", 0),
	})

	assert.Equal(t, 2, got.Distribution["US_Federal"])
	assert.Equal(t, 1, got.Distribution["US_Federal_9th_Circuit"])
	assert.Equal(t, 3, got.FederalCount)
	assert.Equal(t, 1, got.StateCount)
	assert.InDelta(t, 0.75, got.CoverageRatio, 1e-9)
}

func TestAnalyzeJurisdictions_Empty(t *testing.T) {
	t.Parallel()

	got := analyzeJurisdictions(nil)
	assert.Empty(t, got.Distribution)
	assert.Zero(t, got.CoverageRatio)
}

func TestAnalyzeTemporal(t *testing.T) {
	t.Parallel()

	got := analyzeTemporal([]ptypes.PrecedentDTO{
		dtoWith("US_Federal", 1987),
		dtoWith("US_Federal", 2016),
		dtoWith("US_Federal", 2021),
		dtoWith("US_State_Ohio", 0),
	})

	assert.True(t, got.Sufficient)
	assert.Equal(t, 1987, got.EarliestYear)
	assert.Equal(t, 2021, got.LatestYear)
	assert.Equal(t, 34, got.SpanYears)
	assert.Equal(t, 2, got.RecentCount)
	assert.Equal(t, 1, got.DecadeBuckets[1980])
	assert.Equal(t, 1, got.DecadeBuckets[2010])
	assert.Equal(t, 1, got.DecadeBuckets[2020])
}

func TestAnalyzeTemporal_InsufficientData(t *testing.T) {
	t.Parallel()

	got := analyzeTemporal([]ptypes.PrecedentDTO{
		dtoWith("US_Federal", 0),
		dtoWith("US_State_Ohio", 0),
	})
	assert.False(t, got.Sufficient)
	assert.Zero(t, got.EarliestYear)
	assert.Nil(t, got.DecadeBuckets)
}
