package space

// Zone is a rectangular light region, in percent of the image.
type Zone struct {
	Type   string `json:"type"`
	Top    int    `json:"top"`
	Left   int    `json:"left"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Hours  int    `json:"hours"`
}

// SunlightProfile is a synthetic estimate of direct sun on a space.
type SunlightProfile struct {
	SpaceType       string   `json:"spaceType"`
	TotalSunHours   int      `json:"totalSunHours"`
	Zones           []Zone   `json:"zones"`
	Recommendations []string `json:"recommendations"`
}

// IntN is the slice of a random source Sunlight needs.
type IntN interface {
	IntN(n int) int
}

type sunRule struct {
	base, spread    int
	zones           []Zone
	recommendations []string
}

var balconyZones = []Zone{
	{"sunny", 10, 70, 25, 30, 6},
	{"partial", 40, 20, 50, 40, 4},
	{"shade", 10, 10, 15, 80, 2},
}

var sunRules = map[string]sunRule{
	"balcony": {4, 4, balconyZones, []string{
		"Use vertical space with hanging planters",
		"Consider railing planters for maximum sun exposure",
		"Rotate plants weekly for even growth",
	}},
	"terrace": {6, 4, []Zone{
		{"sunny", 5, 5, 90, 60, 8},
		{"partial", 65, 20, 60, 30, 5},
		{"shade", 5, 5, 15, 20, 2},
	}, []string{
		"Perfect for container gardening",
		"Use raised beds for better soil control",
		"Provide afternoon shade for sensitive plants",
	}},
	"garden": {5, 5, []Zone{
		{"sunny", 15, 15, 70, 50, 7},
		{"partial", 65, 10, 80, 30, 4},
		{"shade", 10, 10, 30, 40, 2},
		{"sunny", 50, 60, 35, 45, 6},
	}, []string{
		"Mix sun-loving and shade-tolerant plants",
		"Create microclimates with strategic planting",
		"Use companion planting for pest control",
	}},
	"window": {3, 3, []Zone{
		{"partial", 20, 10, 80, 60, 4},
		{"shade", 80, 10, 80, 15, 1},
	}, []string{
		"Ideal for herbs and small greens",
		"Rotate plants regularly for even light",
		"Use reflective surfaces to maximize light",
	}},
}

var defaultSunRule = sunRule{4, 3, balconyZones, []string{
	"Assess your space for optimal plant placement",
	"Consider sunlight patterns throughout the day",
	"Start with easy-to-grow plants",
}}

// Sunlight estimates daily sun hours and light zones for a space type.
// "window_seat" is treated as "window" and "rooftop" as "terrace".
func Sunlight(spaceType string, rng IntN) SunlightProfile {
	key := spaceType
	switch spaceType {
	case "window_seat":
		key = "window"
	case "rooftop":
		key = "terrace"
	}
	rule, ok := sunRules[key]
	if !ok {
		rule = defaultSunRule
	}

	zones := make([]Zone, len(rule.zones))
	copy(zones, rule.zones)
	recs := make([]string, len(rule.recommendations))
	copy(recs, rule.recommendations)

	return SunlightProfile{
		SpaceType:       spaceType,
		TotalSunHours:   rule.base + rng.IntN(rule.spread),
		Zones:           zones,
		Recommendations: recs,
	}
}
