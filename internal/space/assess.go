package space

// Assessment sizes a measured space into a gardening tier.
type Assessment struct {
	GardeningType   string   `json:"gardeningType"`
	PlantCapacity   string   `json:"plantCapacity"`
	Layout          string   `json:"layout"`
	Recommendations []string `json:"recommendations"`
	Area            float64  `json:"area"`
	Measurements    int      `json:"measurements"`
}

type tier struct {
	below           float64
	gardeningType   string
	plantCapacity   string
	layout          string
	recommendations []string
}

// tiers are ordered by their exclusive upper bound in square metres.
var tiers = []tier{
	{2, "container_gardening", "5-10 containers", "Vertical and container-based", []string{
		"Perfect for container gardening with pots and planters",
		"Use vertical space with hanging planters and wall-mounted systems",
		"Focus on herbs, small vegetables, and compact plants",
		"Consider tiered plant stands to maximize space",
		"Recommended: Cherry tomatoes, lettuce, herbs, peppers in containers",
	}},
	{10, "small_garden", "15-25 plants", "Mixed raised beds and containers", []string{
		"Ideal for raised bed gardening or large containers",
		"Mix of container and ground planting possible",
		"Plan for 2-3 raised beds or multiple container zones",
		"Good space for herb garden and small vegetable plots",
		"Consider companion planting to maximize yield",
	}},
	{50, "medium_garden", "50-100 plants", "Zone-based with pathways", []string{
		"Excellent space for diverse vegetable garden",
		"Plan multiple growing zones with different crops",
		"Include pathways for easy access and maintenance",
		"Space for composting area and tool storage",
		"Can grow larger plants like tomatoes, cucumbers, squash",
	}},
	{200, "large_garden", "200+ plants", "Multi-zone with permanent structures", []string{
		"Substantial space for extensive vegetable production",
		"Plan crop rotation zones for soil health",
		"Include permanent structures like greenhouse or shed",
		"Space for fruit trees or berry bushes",
		"Consider irrigation system for efficient watering",
	}},
}

var fieldScale = tier{0, "field_scale", "500+ plants", "Field rows with machinery access", []string{
	"Field-scale growing possible",
	"Consider mechanized tools for maintenance",
	"Plan for crop rotation and cover crops",
	"Irrigation system essential",
	"Opportunity for cash crop production",
	"Include storage and processing areas",
}}

// Assess picks the tier for a measurement.
func Assess(m *Measurement) Assessment {
	area := m.Area()
	a := AssessArea(area)
	a.Measurements = len(m.Segments)
	return a
}

// AssessArea picks the tier for an area in square metres.
func AssessArea(area float64) Assessment {
	if area <= 0 {
		return Assessment{
			GardeningType:   "measurement_needed",
			PlantCapacity:   "Unknown",
			Layout:          "Cannot determine without measurements",
			Recommendations: []string{"Please add width and length measurements for accurate analysis"},
		}
	}

	t := fieldScale
	for _, candidate := range tiers {
		if area < candidate.below {
			t = candidate
			break
		}
	}
	recs := make([]string, len(t.recommendations))
	copy(recs, t.recommendations)
	return Assessment{
		GardeningType:   t.gardeningType,
		PlantCapacity:   t.plantCapacity,
		Layout:          t.layout,
		Recommendations: recs,
		Area:            area,
	}
}
