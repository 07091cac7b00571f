package weather

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same fraction of the requested range.
type fixedRand struct{ frac float64 }

func (r fixedRand) Float64() float64 { return r.frac }
func (r fixedRand) IntN(n int) int   { return int(r.frac * float64(n)) }

var (
	lowRand  = fixedRand{0}
	highRand = fixedRand{0.9999}
)

func date(month time.Month) time.Time {
	return time.Date(2025, month, 15, 12, 0, 0, 0, time.UTC)
}

// ============================================================
// Seasons
// ============================================================

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, Winter},
		{time.February, Winter},
		{time.March, Summer},
		{time.May, Summer},
		{time.June, Monsoon},
		{time.September, Monsoon},
		{time.October, Winter},
		{time.December, Winter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonFor(date(tt.month)), tt.month.String())
	}
}

// ============================================================
// City lookup
// ============================================================

func TestLookupMumbaiMonsoon(t *testing.T) {
	for _, rng := range []Rand{lowRand, highRand, NewRand(42)} {
		s := NewSynthesizer(nil, rng)
		r := s.Lookup("Mumbai", date(time.July))

		assert.Equal(t, "Mumbai", r.City)
		assert.Equal(t, "Rainy", r.Condition)
		assert.Equal(t, Monsoon, r.Season)
		assert.GreaterOrEqual(t, r.RainProbability, 70)
		assert.Less(t, r.RainProbability, 90)
		assert.LessOrEqual(t, r.RainProbability, 100)
		assert.GreaterOrEqual(t, r.Humidity, 20)
		assert.LessOrEqual(t, r.Humidity, 100)
		assert.InDelta(t, 28, r.Temperature, 3)
		assert.Equal(t, r.Temperature+2, r.FeelsLike)
		assert.GreaterOrEqual(t, r.WindSpeed, 5)
		assert.Less(t, r.WindSpeed, 20)
	}
}

func TestLookupJitterBounds(t *testing.T) {
	s := NewSynthesizer(nil, lowRand)
	r := s.Lookup("Mumbai", date(time.July))
	assert.Equal(t, 25, r.Temperature)
	assert.Equal(t, 80, r.Humidity)
	assert.Equal(t, 5, r.WindSpeed)
	assert.Equal(t, 70, r.RainProbability)

	s = NewSynthesizer(nil, highRand)
	r = s.Lookup("Mumbai", date(time.July))
	assert.Equal(t, 30, r.Temperature)
	assert.Equal(t, 99, r.Humidity)
	assert.Equal(t, 19, r.WindSpeed)
	assert.Equal(t, 89, r.RainProbability)
}

func TestLookupHumidityClamp(t *testing.T) {
	table := NewClimateTable(nil, map[string]map[Season]Profile{
		"Dry":   {Winter: {Temp: 20, Humidity: 22, Condition: "Cool"}},
		"Swamp": {Winter: {Temp: 20, Humidity: 98, Condition: "Cool"}},
	}, nil)

	r := NewSynthesizer(table, lowRand).Lookup("Dry", date(time.January))
	assert.Equal(t, 20, r.Humidity)

	r = NewSynthesizer(table, highRand).Lookup("Swamp", date(time.January))
	assert.Equal(t, 100, r.Humidity)
}

func TestLookupCaseInsensitive(t *testing.T) {
	s := NewSynthesizer(nil, lowRand)
	r := s.Lookup("  bangalore ", date(time.January))
	assert.Equal(t, "Bangalore", r.City)
	assert.Equal(t, "Cool and comfortable weather", r.Description)
}

func TestLookupFallback(t *testing.T) {
	s := NewSynthesizer(nil, lowRand)
	r := s.Lookup("Atlantis", date(time.April))
	assert.Equal(t, "Atlantis", r.City)
	assert.Equal(t, "Hot", r.Condition)
	assert.Equal(t, "Hot summer weather", r.Description)
	assert.Equal(t, 29, r.Temperature)
}

func TestLookupForecast(t *testing.T) {
	s := NewSynthesizer(nil, NewRand(7))
	r := s.Lookup("Pune", date(time.August))

	require.Len(t, r.Forecast, 7)
	for i, d := range r.Forecast {
		assert.Equal(t, ForecastDays[i], d.Day)
		assert.Equal(t, 8, d.High-d.Low)
		assert.InDelta(t, 26, d.High-3, 4)
		assert.Contains(t, seasonConditions[Monsoon], d.Condition)
		assert.Equal(t, "🌧️", d.Icon)
		assert.Equal(t, 60+5*i, d.RainProbability)
	}
}

func TestLookupGrowingConditions(t *testing.T) {
	// Delhi summer: 38°C / 45% base.
	r := NewSynthesizer(nil, lowRand).Lookup("Delhi", date(time.May))
	assert.Equal(t, 35, r.Temperature)
	assert.Contains(t, r.GrowingConditions.Challenges, "High temperatures may stress some plants")
	assert.Contains(t, r.GrowingConditions.Challenges, "Low humidity may stress plants")
	assert.Contains(t, r.GrowingConditions.Recommendations, "Summer season - choose heat-tolerant varieties")

	r = NewSynthesizer(nil, highRand).Lookup("Delhi", date(time.May))
	assert.Equal(t, 40, r.Temperature)
	assert.Contains(t, r.GrowingConditions.Challenges, "Very high temperatures may stress plants")

	r = NewSynthesizer(nil, lowRand).Lookup("Kolkata", date(time.July))
	assert.Contains(t, r.GrowingConditions.Favorable, "Ideal temperature range for most plants")
	assert.Contains(t, r.GrowingConditions.Favorable, "Monsoon season - natural watering for plants")
	assert.Contains(t, r.GrowingConditions.Recommendations, "Ensure proper drainage to prevent waterlogging")

	r = NewSynthesizer(nil, lowRand).Lookup("Lucknow", date(time.December))
	assert.Equal(t, 13, r.Temperature)
	assert.Contains(t, r.GrowingConditions.Challenges, "Cool temperatures may slow plant growth")
	assert.Contains(t, r.GrowingConditions.Favorable, "Cool weather ideal for many vegetables")
}

func TestLookupCache(t *testing.T) {
	s := NewSynthesizer(nil, NewRand(99), WithCache(time.Minute))
	a := s.Lookup("Chennai", date(time.March))
	b := s.Lookup("chennai", date(time.March))
	assert.Equal(t, a, b)

	uncached := NewSynthesizer(nil, NewRand(99))
	assert.Nil(t, uncached.cache)
}

func TestLookupCacheReturnsCopies(t *testing.T) {
	s := NewSynthesizer(nil, NewRand(99), WithCache(time.Minute))
	a := s.Lookup("Chennai", date(time.December))
	want := a.Forecast[0]
	wantFavorable := slices.Clone(a.GrowingConditions.Favorable)
	require.NotEmpty(t, wantFavorable)

	a.Forecast[0].High = -100
	a.GrowingConditions.Favorable[0] = "changed"

	b := s.Lookup("Chennai", date(time.December))
	assert.Equal(t, want, b.Forecast[0])
	assert.Equal(t, wantFavorable, b.GrowingConditions.Favorable)

	b.Forecast[1].Condition = "changed"
	c := s.Lookup("Chennai", date(time.December))
	assert.NotEqual(t, "changed", c.Forecast[1].Condition)
}

func TestCities(t *testing.T) {
	cities := DefaultTable().Cities()
	require.Len(t, cities, 10)
	assert.Equal(t, "Mumbai", cities[0])
	assert.Equal(t, "Lucknow", cities[9])
}
