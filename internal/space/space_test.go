package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type constRand int

func (r constRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

func TestContextNormalized(t *testing.T) {
	c := Context{}.Normalized()
	assert.Equal(t, DefaultSpaceType, c.SpaceType)
	assert.Equal(t, DefaultSpaceName, c.SpaceName)

	c = Context{SpaceType: "concrete_court", SpaceName: "Court"}.Normalized()
	assert.Equal(t, "concrete_court", c.SpaceType)
	assert.True(t, c.IsConcrete())
	assert.False(t, Context{SpaceType: "balcony"}.IsConcrete())
	assert.True(t, Context{SpaceType: "Concrete_Slab"}.IsConcrete())
	assert.True(t, Context{SpaceType: "PAVED CONCRETE"}.IsConcrete())
}

func TestTypeByID(t *testing.T) {
	ty, ok := TypeByID("terrace")
	require.True(t, ok)
	assert.Equal(t, "Terrace/Rooftop", ty.Name)

	_, ok = TypeByID("moon")
	assert.False(t, ok)
}

// ============================================================
// Measurement
// ============================================================

func TestAddSegmentIgnoresShortLines(t *testing.T) {
	var m Measurement
	assert.False(t, m.AddSegment(4))
	assert.False(t, m.AddSegment(10))
	assert.True(t, m.AddSegment(10.6))
	assert.Equal(t, []float64{11}, m.Segments)
}

func TestRealLengthsAndArea(t *testing.T) {
	m := Measurement{Segments: []float64{200, 300, 50}, ReferenceLength: 2}
	require.NoError(t, m.Validate())

	assert.Equal(t, []float64{2, 3, 0.5}, m.RealLengths())
	assert.Equal(t, 6.0, m.Area())
}

func TestRealLengthsRounding(t *testing.T) {
	m := Measurement{Segments: []float64{300, 100}, ReferenceLength: 1}
	assert.Equal(t, []float64{1, 0.33}, m.RealLengths())
	assert.Equal(t, 0.33, m.Area())
}

func TestAreaNeedsTwoSegments(t *testing.T) {
	m := Measurement{Segments: []float64{120}, ReferenceLength: 1.5}
	assert.Equal(t, []float64{1.5}, m.RealLengths())
	assert.Zero(t, m.Area())
}

func TestMeasurementValidate(t *testing.T) {
	var m Measurement
	assert.ErrorIs(t, m.Validate(), ErrNoSegments)
	assert.Nil(t, m.RealLengths())

	m.AddSegment(50)
	assert.ErrorIs(t, m.Validate(), ErrNoReference)
	assert.Nil(t, m.RealLengths())
}

func TestRemoveSegment(t *testing.T) {
	m := Measurement{Segments: []float64{20, 30, 40}}
	m.RemoveSegment(1)
	assert.Equal(t, []float64{20, 40}, m.Segments)
	m.RemoveSegment(7)
	assert.Len(t, m.Segments, 2)
}

// ============================================================
// Assessment
// ============================================================

func TestAssessArea(t *testing.T) {
	tests := []struct {
		area float64
		want string
		cap  string
	}{
		{0, "measurement_needed", "Unknown"},
		{1.99, "container_gardening", "5-10 containers"},
		{2, "small_garden", "15-25 plants"},
		{9.5, "small_garden", "15-25 plants"},
		{10, "medium_garden", "50-100 plants"},
		{49.99, "medium_garden", "50-100 plants"},
		{50, "large_garden", "200+ plants"},
		{199, "large_garden", "200+ plants"},
		{200, "field_scale", "500+ plants"},
		{5000, "field_scale", "500+ plants"},
	}
	for _, tt := range tests {
		a := AssessArea(tt.area)
		assert.Equal(t, tt.want, a.GardeningType, "area %v", tt.area)
		assert.Equal(t, tt.cap, a.PlantCapacity, "area %v", tt.area)
		assert.NotEmpty(t, a.Recommendations)
	}
}

func TestAssessMeasurement(t *testing.T) {
	m := &Measurement{Segments: []float64{100, 400}, ReferenceLength: 3}
	a := Assess(m)
	assert.Equal(t, 36.0, a.Area)
	assert.Equal(t, "medium_garden", a.GardeningType)
	assert.Equal(t, 2, a.Measurements)
}

// ============================================================
// Sunlight
// ============================================================

func TestSunlight(t *testing.T) {
	tests := []struct {
		spaceType string
		rng       constRand
		hours     int
		zones     int
	}{
		{"balcony", 0, 4, 3},
		{"balcony", 9, 7, 3},
		{"terrace", 0, 6, 3},
		{"rooftop", 3, 9, 3},
		{"garden", 4, 9, 4},
		{"window_seat", 0, 3, 2},
		{"greenhouse", 2, 6, 3},
	}
	for _, tt := range tests {
		p := Sunlight(tt.spaceType, tt.rng)
		assert.Equal(t, tt.spaceType, p.SpaceType)
		assert.Equal(t, tt.hours, p.TotalSunHours, tt.spaceType)
		assert.Len(t, p.Zones, tt.zones, tt.spaceType)
		assert.Len(t, p.Recommendations, 3)
	}
}
