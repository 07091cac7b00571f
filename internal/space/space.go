package space

import "strings"

// Context describes the growing area being planned.
type Context struct {
	SpaceType   string       `json:"spaceType"`
	SpaceName   string       `json:"spaceName"`
	Measurement *Measurement `json:"measurement,omitempty"`
}

// Default labels applied when a context field is blank.
const (
	DefaultSpaceType = "outdoor-space"
	DefaultSpaceName = "My Space"
)

// Normalized fills blank fields with their defaults.
func (c Context) Normalized() Context {
	if strings.TrimSpace(c.SpaceType) == "" {
		c.SpaceType = DefaultSpaceType
	}
	if strings.TrimSpace(c.SpaceName) == "" {
		c.SpaceName = DefaultSpaceName
	}
	return c
}

// IsConcrete reports whether the space type names a paved surface. The match
// ignores case because unknown type IDs are stored as typed.
func (c Context) IsConcrete() bool {
	return strings.Contains(strings.ToLower(c.SpaceType), "concrete")
}

// Type is one entry of the space type picker.
type Type struct {
	ID              string
	Name            string
	Description     string
	Icon            string
	Characteristics []string
}

// Types are offered by the first wizard step, in display order.
var Types = []Type{
	{"balcony", "Balcony", "Small outdoor space with limited area", "🏠",
		[]string{"Limited space", "Partial sunlight", "Wind exposure"}},
	{"window_seat", "Window Seat", "Indoor space near a window", "🪟",
		[]string{"Indoor growing", "Filtered light", "Climate controlled"}},
	{"terrace", "Terrace/Rooftop", "Open rooftop area with full sun exposure", "🏢",
		[]string{"Full sunlight", "Large space", "Weather exposed"}},
	{"garden", "Garden", "Outdoor ground-level growing space", "🌳",
		[]string{"Ground soil", "Natural drainage", "Full growing space"}},
	{"indoor", "Indoor Room", "Interior room with artificial lighting", "🏡",
		[]string{"Artificial light", "Climate controlled", "Limited natural light"}},
	{"greenhouse", "Greenhouse", "Controlled environment for optimal growing", "🏠",
		[]string{"Controlled climate", "Extended season", "Optimal conditions"}},
	{"concrete", "Concrete / Court", "Flat paved surface such as a court or lot", "🏀",
		[]string{"Reflected heat", "Containers only", "Good sun"}},
}

// TypeByID looks up a picker entry.
func TypeByID(id string) (Type, bool) {
	for _, t := range Types {
		if t.ID == id {
			return t, true
		}
	}
	return Type{}, false
}
