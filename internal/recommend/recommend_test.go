package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/weather"
)

func names(plants []catalog.PlantRecord) []string {
	out := make([]string, len(plants))
	for i, p := range plants {
		out[i] = p.Name
	}
	return out
}

func report(condition string, rain int) *weather.Report {
	return &weather.Report{Condition: condition, RainProbability: rain}
}

var (
	conditions = []string{"Sunny", "Partly Cloudy", "Cloudy", "Overcast", "Rainy", "Hot", "Pleasant", "Thunderstorm", ""}
	spaceTypes = []string{"", "balcony", "rooftop", "concrete_court", "garden", "outdoor-space"}
)

func TestDeriveConditions(t *testing.T) {
	tests := []struct {
		w    *weather.Report
		sun  catalog.Sunlight
		rain RainLevel
	}{
		{nil, catalog.FullSun, RainMedium},
		{report("Sunny", 5), catalog.FullSun, RainLow},
		{report("Partly Cloudy", 30), catalog.PartialSun, RainLow},
		{report("OVERCAST", 31), catalog.PartialSun, RainMedium},
		{report("Rainy", 70), catalog.FullSun, RainMedium},
		{report("Thunderstorm", 71), catalog.FullSun, RainHigh},
	}
	for _, tt := range tests {
		c := DeriveConditions(tt.w)
		assert.Equal(t, tt.sun, c.Sunlight)
		assert.Equal(t, tt.rain, c.Rain)
	}
}

func TestRecommendNoWeather(t *testing.T) {
	res := RecommendDetailed(catalog.Default(), space.Context{}, nil)
	assert.Equal(t, PassPrimary, res.Pass)
	assert.Equal(t, []string{"Basil", "Marigold", "Rosemary", "Tomato", "Cilantro"}, names(res.Plants))
}

func TestRecommendHighRain(t *testing.T) {
	res := RecommendDetailed(catalog.Default(), space.Context{SpaceType: "balcony"}, report("Sunny", 80))
	assert.Equal(t, PassPrimary, res.Pass)
	assert.Equal(t, []string{"Basil", "Mint", "Lettuce", "Spinach", "Tomato", "Cilantro"}, names(res.Plants))
}

func TestRecommendConcreteOverride(t *testing.T) {
	sp := space.Context{SpaceType: "concrete_court"}
	w := report("Overcast", 20)

	c := DeriveConditions(w)
	assert.Equal(t, catalog.PartialSun, c.Sunlight)
	assert.Equal(t, RainLow, c.Rain)

	primary := Primary(catalog.Default(), sp, c)
	assert.Equal(t, []string{"Marigold", "Rosemary"}, names(primary))

	res := RecommendDetailed(catalog.Default(), sp, w)
	assert.Equal(t, PassRelaxed, res.Pass)
	require.NotEmpty(t, res.Plants)
	for _, p := range res.Plants {
		assert.NotEqual(t, catalog.Shade, p.Sunlight, p.Name)
	}
	assert.Equal(t, []string{"Mint", "Lettuce", "Spinach", "Cilantro"}, names(res.Plants))
}

func TestRecommendFallback(t *testing.T) {
	cat, err := catalog.New([]catalog.PlantRecord{
		{ID: 1, Name: "Fern", Sunlight: catalog.Shade, Water: catalog.High, Maintenance: catalog.High},
		{ID: 2, Name: "Moss", Sunlight: catalog.Shade, Water: catalog.High, Maintenance: catalog.Low},
	})
	require.NoError(t, err)

	res := RecommendDetailed(cat, space.Context{}, report("Sunny", 10))
	assert.Equal(t, PassFallback, res.Pass)
	assert.Equal(t, []string{"Moss", "Fern"}, names(res.Plants))
}

func TestRecommendIsPure(t *testing.T) {
	w := report("Cloudy", 50)
	a := Recommend(catalog.Default(), space.Context{SpaceType: "garden"}, w)
	b := Recommend(catalog.Default(), space.Context{SpaceType: "garden"}, w)
	assert.Equal(t, a, b)
	assert.Equal(t, "Cloudy", w.Condition)
	assert.Len(t, catalog.Default().All(), 12)
}

// Primary-pass output under heavy rain only holds thirsty plants.
func TestPropertyHighRainPrimary(t *testing.T) {
	for _, st := range spaceTypes {
		for _, cond := range conditions {
			for rain := 71; rain <= 100; rain++ {
				sp := space.Context{SpaceType: st}
				c := DeriveConditions(report(cond, rain))
				for _, p := range Primary(catalog.Default(), sp, c) {
					assert.Contains(t, []catalog.Level{catalog.High, catalog.Medium}, p.Water,
						"%s with %s/%d/%s", p.Name, cond, rain, st)
				}
			}
		}
	}
}

func TestPropertyNonEmptyAndOrdered(t *testing.T) {
	check := func(sp space.Context, w *weather.Report) {
		got := Recommend(catalog.Default(), sp, w)
		require.NotEmpty(t, got)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t,
				catalog.MaintenanceRank(got[i-1].Maintenance),
				catalog.MaintenanceRank(got[i].Maintenance),
			)
		}
	}

	for _, st := range spaceTypes {
		sp := space.Context{SpaceType: st}
		check(sp, nil)
		for _, cond := range conditions {
			for rain := 0; rain <= 100; rain += 5 {
				check(sp, report(cond, rain))
			}
		}
	}
}

func TestStableTies(t *testing.T) {
	got := Recommend(catalog.Default(), space.Context{}, report("Sunny", 80))
	var lowIDs []int
	for _, p := range got {
		if p.Maintenance == catalog.Low {
			lowIDs = append(lowIDs, p.ID)
		}
	}
	assert.IsIncreasing(t, lowIDs)
}

func TestTopN(t *testing.T) {
	all := catalog.Default().All()
	assert.Len(t, TopN(all, 6), 6)
	assert.Len(t, TopN(all[:2], 6), 2)
	assert.Empty(t, TopN(all, -1))
	assert.Equal(t, all[0], TopN(all, 1)[0])
}
