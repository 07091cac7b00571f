package weather

import "strings"

// Profile is the base climate of one city in one season.
type Profile struct {
	Temp        int
	Humidity    int
	Condition   string
	Description string
}

// ClimateTable holds per-city seasonal profiles and a fallback set used for
// unknown cities. It is read-only once built and shared by every view that
// looks weather up by city.
type ClimateTable struct {
	cities   map[string]map[Season]Profile
	order    []string
	fallback map[Season]Profile
}

// NewClimateTable builds a table. City order is preserved for display.
func NewClimateTable(order []string, cities map[string]map[Season]Profile, fallback map[Season]Profile) *ClimateTable {
	return &ClimateTable{cities: cities, order: order, fallback: fallback}
}

// Find resolves a city by exact then case-insensitive name. The second
// return value reports whether a city profile was found.
func (t *ClimateTable) Find(city string, season Season) (string, Profile, bool) {
	if byseason, ok := t.cities[city]; ok {
		return city, byseason[season], true
	}
	for name, byseason := range t.cities {
		if strings.EqualFold(name, city) {
			return name, byseason[season], true
		}
	}
	return city, t.fallback[season], false
}

// Cities returns the known city names in table order.
func (t *ClimateTable) Cities() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

var defaultTable = NewClimateTable(
	[]string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Pune", "Hyderabad", "Ahmedabad", "Jaipur", "Lucknow"},
	map[string]map[Season]Profile{
		"Mumbai": {
			Summer:  {32, 75, "Hot", "Hot and humid weather"},
			Monsoon: {28, 90, "Rainy", "Heavy monsoon rains"},
			Winter:  {25, 65, "Pleasant", "Cool and pleasant weather"},
		},
		"Delhi": {
			Summer:  {38, 45, "Hot", "Very hot and dry weather"},
			Monsoon: {32, 80, "Humid", "Hot and humid with occasional rain"},
			Winter:  {15, 55, "Cool", "Cold and foggy mornings"},
		},
		"Bangalore": {
			Summer:  {30, 60, "Pleasant", "Warm and pleasant weather"},
			Monsoon: {26, 85, "Rainy", "Moderate rain with cool weather"},
			Winter:  {22, 70, "Cool", "Cool and comfortable weather"},
		},
		"Chennai": {
			Summer:  {35, 70, "Hot", "Hot and humid weather"},
			Monsoon: {30, 85, "Rainy", "Heavy rains and high humidity"},
			Winter:  {27, 75, "Warm", "Warm and humid weather"},
		},
		"Kolkata": {
			Summer:  {36, 80, "Hot", "Very hot and humid weather"},
			Monsoon: {30, 90, "Rainy", "Heavy monsoon with high humidity"},
			Winter:  {20, 65, "Pleasant", "Cool and dry weather"},
		},
		"Pune": {
			Summer:  {33, 55, "Hot", "Hot and dry weather"},
			Monsoon: {26, 85, "Rainy", "Pleasant rains and cool weather"},
			Winter:  {23, 60, "Pleasant", "Cool and pleasant weather"},
		},
		"Hyderabad": {
			Summer:  {35, 50, "Hot", "Hot and dry weather"},
			Monsoon: {28, 80, "Rainy", "Moderate rains with humidity"},
			Winter:  {24, 65, "Pleasant", "Cool and comfortable weather"},
		},
		"Ahmedabad": {
			Summer:  {40, 40, "Very Hot", "Extremely hot and dry weather"},
			Monsoon: {32, 75, "Humid", "Hot with moderate humidity"},
			Winter:  {22, 50, "Pleasant", "Cool and dry weather"},
		},
		"Jaipur": {
			Summer:  {39, 35, "Very Hot", "Very hot and dry weather"},
			Monsoon: {31, 70, "Warm", "Warm with light rains"},
			Winter:  {18, 45, "Cool", "Cold and dry weather"},
		},
		"Lucknow": {
			Summer:  {37, 60, "Hot", "Hot and humid weather"},
			Monsoon: {31, 85, "Rainy", "Heavy rains with high humidity"},
			Winter:  {16, 65, "Cool", "Cold and foggy weather"},
		},
	},
	map[Season]Profile{
		Summer:  {32, 60, "Hot", "Hot summer weather"},
		Monsoon: {28, 80, "Rainy", "Monsoon season with rains"},
		Winter:  {22, 65, "Pleasant", "Cool winter weather"},
	},
)

// DefaultTable returns the built-in table of ten Indian cities.
func DefaultTable() *ClimateTable {
	return defaultTable
}
