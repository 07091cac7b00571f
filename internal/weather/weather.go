package weather

import (
	"math/rand/v2"
	"slices"
	"time"
)

// Season is the climate season used to pick a profile from the table.
type Season string

const (
	Summer  Season = "summer"
	Monsoon Season = "monsoon"
	Winter  Season = "winter"
)

// SeasonFor maps a date to its season: March to May is summer, June to
// September is monsoon, everything else is winter.
func SeasonFor(t time.Time) Season {
	switch m := t.Month(); {
	case m >= time.March && m <= time.May:
		return Summer
	case m >= time.June && m <= time.September:
		return Monsoon
	default:
		return Winter
	}
}

// Source records which entry path produced a report.
type Source string

const (
	SourceCity   Source = "city"
	SourceManual Source = "manual"
)

// Report is a synthetic weather report with a seven day forecast.
type Report struct {
	City              string            `json:"city"`
	Temperature       int               `json:"temperature"`
	FeelsLike         int               `json:"feelsLike"`
	Humidity          int               `json:"humidity"`
	Condition         string            `json:"condition"`
	Description       string            `json:"description"`
	WindSpeed         int               `json:"windSpeed"`
	RainProbability   int               `json:"rainProbability"`
	Forecast          []ForecastDay     `json:"forecast"`
	GrowingConditions GrowingConditions `json:"growingConditions"`
	Source            Source            `json:"source,omitempty"`
	Season            Season            `json:"season,omitempty"`
	GeneratedAt       time.Time         `json:"generatedAt"`
}

type ForecastDay struct {
	Day             string `json:"day"`
	High            int    `json:"high"`
	Low             int    `json:"low"`
	Condition       string `json:"condition"`
	Icon            string `json:"icon"`
	RainProbability int    `json:"rainProbability"`
}

// GrowingConditions is the qualitative assessment attached to a report.
type GrowingConditions struct {
	Favorable       []string `json:"favorable"`
	Challenges      []string `json:"challenges"`
	Recommendations []string `json:"recommendations"`
}

// clone returns a copy of r that shares no slices with it.
func (r Report) clone() Report {
	r.Forecast = slices.Clone(r.Forecast)
	g := &r.GrowingConditions
	g.Favorable = slices.Clone(g.Favorable)
	g.Challenges = slices.Clone(g.Challenges)
	g.Recommendations = slices.Clone(g.Recommendations)
	return r
}

// ForecastDays are the labels of the seven forecast entries, in order.
var ForecastDays = [7]string{"Today", "Tomorrow", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Rand is the random source used for jitter. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source. A zero seed seeds from the clock.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
