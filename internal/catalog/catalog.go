package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by ByID when no plant carries the requested id.
var ErrNotFound = errors.New("plant not found")

type PlantType string

const (
	Vegetable PlantType = "Vegetable"
	Herb      PlantType = "Herb"
	Flower    PlantType = "Flower"
	Fungus    PlantType = "Fungus"
)

type Sunlight string

const (
	FullSun    Sunlight = "full"
	PartialSun Sunlight = "partial"
	Shade      Sunlight = "shade"
)

type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

type GrowthSpeed string

const (
	Fast     GrowthSpeed = "fast"
	Moderate GrowthSpeed = "medium"
	Slow     GrowthSpeed = "slow"
)

type Season string

const (
	Summer     Season = "summer"
	Cool       Season = "cool"
	AllSeasons Season = "all"
)

// PlantRecord is one immutable catalog entry.
type PlantRecord struct {
	ID              int         `json:"id"`
	Name            string      `json:"name"`
	Type            PlantType   `json:"type"`
	Sunlight        Sunlight    `json:"sunlight"`
	Water           Level       `json:"water"`
	Maintenance     Level       `json:"maintenance"`
	GrowthSpeed     GrowthSpeed `json:"growthSpeed"`
	GrowthDuration  string      `json:"growthDuration"`
	Season          Season      `json:"season"`
	Description     string      `json:"description"`
	SpaceTips       string      `json:"spaceTips"`
	FullDescription string      `json:"fullDescription,omitempty"`
}

// Catalog is a read-only plant collection. The zero value is empty.
type Catalog struct {
	plants []PlantRecord
	byID   map[int]int
}

// New builds a catalog from records. Records are copied; duplicate ids are rejected.
func New(records []PlantRecord) (*Catalog, error) {
	c := &Catalog{
		plants: make([]PlantRecord, len(records)),
		byID:   make(map[int]int, len(records)),
	}
	copy(c.plants, records)
	for i, p := range c.plants {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate plant id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

var defaultCatalog = mustNew(builtinPlants)

func mustNew(records []PlantRecord) *Catalog {
	c, err := New(records)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in twelve-plant catalog.
func Default() *Catalog {
	return defaultCatalog
}

// All returns every plant in declaration order. The slice is a copy.
func (c *Catalog) All() []PlantRecord {
	out := make([]PlantRecord, len(c.plants))
	copy(out, c.plants)
	return out
}

func (c *Catalog) ByID(id int) (PlantRecord, error) {
	i, ok := c.byID[id]
	if !ok {
		return PlantRecord{}, fmt.Errorf("plant %d: %w", id, ErrNotFound)
	}
	return c.plants[i], nil
}

func (c *Catalog) Len() int {
	return len(c.plants)
}

// MaintenanceRank orders maintenance levels: low=1, medium=2, high=3.
// Unknown levels sort last.
func MaintenanceRank(l Level) int {
	switch l {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	}
	return 4
}

// Filter narrows a recommendation list. Empty fields and "all" mean no constraint.
type Filter struct {
	Sunlight    string
	GrowthSpeed string
	Maintenance string
	Season      string
}

func (f Filter) Apply(plants []PlantRecord) []PlantRecord {
	var out []PlantRecord
	for _, p := range plants {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f Filter) Match(p PlantRecord) bool {
	return matches(f.Sunlight, string(p.Sunlight)) &&
		matches(f.GrowthSpeed, string(p.GrowthSpeed)) &&
		matches(f.Maintenance, string(p.Maintenance)) &&
		matches(f.Season, string(p.Season))
}

func matches(want, got string) bool {
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, got)
}

// Emoji returns a display glyph for a plant type.
func Emoji(t PlantType) string {
	switch t {
	case Vegetable:
		return "🥬"
	case Herb:
		return "🌿"
	case Flower:
		return "🌼"
	case Fungus:
		return "🍄"
	}
	return "🌱"
}
