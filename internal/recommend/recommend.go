// Package recommend filters and ranks catalog plants for a space and the
// weather over it.
package recommend

import (
	"sort"
	"strings"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/weather"
)

// RainLevel is the coarse rain expectation derived from a report.
type RainLevel string

const (
	RainLow    RainLevel = "low"
	RainMedium RainLevel = "medium"
	RainHigh   RainLevel = "high"
)

// Conditions are the growing conditions the filter keys on.
type Conditions struct {
	Sunlight catalog.Sunlight
	Rain     RainLevel
}

// Pass records which filtering stage produced a result.
type Pass string

const (
	PassPrimary  Pass = "primary"
	PassRelaxed  Pass = "relaxed"
	PassFallback Pass = "fallback"
)

// Result is a ranked recommendation list and how it was reached.
type Result struct {
	Plants     []catalog.PlantRecord
	Conditions Conditions
	Pass       Pass
}

// minPrimary is the smallest primary result kept before relaxing.
const minPrimary = 3

// DeriveConditions maps a report to sunlight and rain levels. A nil report
// yields full sun and medium rain.
func DeriveConditions(w *weather.Report) Conditions {
	c := Conditions{Sunlight: catalog.FullSun, Rain: RainMedium}
	if w == nil {
		return c
	}

	cond := strings.ToLower(w.Condition)
	switch {
	case strings.Contains(cond, "sunny"):
		c.Sunlight = catalog.FullSun
	case strings.Contains(cond, "cloudy"), strings.Contains(cond, "overcast"):
		c.Sunlight = catalog.PartialSun
	}

	switch {
	case w.RainProbability > 70:
		c.Rain = RainHigh
	case w.RainProbability > 30:
		c.Rain = RainMedium
	default:
		c.Rain = RainLow
	}
	return c
}

// Primary returns the plants passing both the sunlight and water rules,
// before any relaxation, in catalog order.
func Primary(cat *catalog.Catalog, sp space.Context, c Conditions) []catalog.PlantRecord {
	var out []catalog.PlantRecord
	for _, p := range cat.All() {
		if sunlightMatch(p, sp, c.Sunlight) && waterMatch(p, c.Rain) {
			out = append(out, p)
		}
	}
	return out
}

func sunlightMatch(p catalog.PlantRecord, sp space.Context, sun catalog.Sunlight) bool {
	return p.Sunlight == sun ||
		(sun == catalog.FullSun && p.Sunlight == catalog.PartialSun) ||
		(sp.IsConcrete() && p.Sunlight != catalog.Shade)
}

func waterMatch(p catalog.PlantRecord, rain RainLevel) bool {
	switch rain {
	case RainHigh:
		return p.Water == catalog.High || p.Water == catalog.Medium
	case RainMedium:
		return p.Water != catalog.High
	case RainLow:
		return p.Water == catalog.Low
	}
	return false
}

// Recommend returns the ranked plants for a space and optional weather. The
// result is never empty for a non-empty catalog.
func Recommend(cat *catalog.Catalog, sp space.Context, w *weather.Report) []catalog.PlantRecord {
	return RecommendDetailed(cat, sp, w).Plants
}

// RecommendDetailed is Recommend with the derived conditions and the pass
// that produced the list.
func RecommendDetailed(cat *catalog.Catalog, sp space.Context, w *weather.Report) Result {
	c := DeriveConditions(w)
	res := Result{Conditions: c, Pass: PassPrimary}

	plants := Primary(cat, sp, c)
	if len(plants) < minPrimary {
		res.Pass = PassRelaxed
		plants = plants[:0]
		for _, p := range cat.All() {
			if p.Sunlight == c.Sunlight || p.Sunlight == catalog.PartialSun {
				plants = append(plants, p)
			}
		}
	}
	if len(plants) == 0 {
		res.Pass = PassFallback
		plants = cat.All()
	}

	sort.SliceStable(plants, func(i, j int) bool {
		return catalog.MaintenanceRank(plants[i].Maintenance) < catalog.MaintenanceRank(plants[j].Maintenance)
	})
	res.Plants = plants
	return res
}

// TopN returns at most n plants from the head of a ranked list.
func TopN(plants []catalog.PlantRecord, n int) []catalog.PlantRecord {
	if n < 0 {
		n = 0
	}
	if len(plants) < n {
		n = len(plants)
	}
	out := make([]catalog.PlantRecord, n)
	copy(out, plants[:n])
	return out
}
