package weather

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// conditionInfo is the per-condition default set used by manual entry.
type conditionInfo struct {
	description string
	rain        int
	icon        string
}

// Conditions lists the labels accepted by manual entry, in display order.
var Conditions = []string{
	"Sunny", "Partly Cloudy", "Cloudy", "Overcast", "Rainy", "Drizzle",
	"Thunderstorm", "Foggy", "Windy", "Hot", "Cool",
}

var conditionDefaults = map[string]conditionInfo{
	"Sunny":         {"Clear and sunny skies", 5, "☀️"},
	"Partly Cloudy": {"Partly cloudy with some sun", 15, "⛅"},
	"Cloudy":        {"Cloudy skies throughout the day", 25, "☁️"},
	"Overcast":      {"Completely overcast with no sun", 35, "☁️"},
	"Rainy":         {"Rainy conditions expected", 80, "🌧️"},
	"Drizzle":       {"Light drizzle throughout the day", 60, "🌦️"},
	"Thunderstorm":  {"Thunderstorms with heavy rain", 90, "⛈️"},
	"Foggy":         {"Foggy conditions with limited visibility", 20, "🌫️"},
	"Windy":         {"Windy conditions throughout the day", 10, "💨"},
	"Hot":           {"Hot and sunny weather", 5, "🌡️"},
	"Cool":          {"Cool and pleasant weather", 15, "🌤️"},
}

var unknownCondition = conditionInfo{"Pleasant weather conditions", 20, "☀️"}

func defaultsFor(condition string) conditionInfo {
	if c, ok := conditionDefaults[condition]; ok {
		return c
	}
	return unknownCondition
}

// Icon returns the display icon for a condition label.
func Icon(condition string) string { return defaultsFor(condition).icon }

// DefaultDescription returns the description used when manual entry leaves it blank.
func DefaultDescription(condition string) string { return defaultsFor(condition).description }

// DefaultRainProbability returns the rain chance used when manual entry leaves it blank.
func DefaultRainProbability(condition string) int { return defaultsFor(condition).rain }

// Field names used as FieldErrors keys.
const (
	FieldCity            = "city"
	FieldTemperature     = "temperature"
	FieldFeelsLike       = "feelsLike"
	FieldHumidity        = "humidity"
	FieldCondition       = "condition"
	FieldWindSpeed       = "windSpeed"
	FieldRainProbability = "rainProbability"
)

// FieldErrors maps a field name to a user facing message. An empty map means
// the input is valid.
type FieldErrors map[string]string

func (fe FieldErrors) OK() bool { return len(fe) == 0 }

// ManualInput is the raw text of the manual weather form. Blank optional
// fields are filled with condition-keyed defaults.
type ManualInput struct {
	City            string
	Temperature     string
	FeelsLike       string
	Humidity        string
	Condition       string
	Description     string
	WindSpeed       string
	RainProbability string
}

type rangeRule struct {
	required   bool
	min, max   float64
	missingMsg string
	rangeMsg   string
}

var fieldRules = map[string]rangeRule{
	FieldTemperature: {
		required: true, min: -50, max: 60,
		missingMsg: "Temperature is required",
		rangeMsg:   "Temperature must be between -50°C and 60°C",
	},
	FieldFeelsLike: {
		min: -60, max: 70,
		rangeMsg: "Feels like temperature must be between -60°C and 70°C",
	},
	FieldHumidity: {
		required: true, min: 0, max: 100,
		missingMsg: "Humidity is required",
		rangeMsg:   "Humidity must be between 0% and 100%",
	},
	FieldWindSpeed: {
		min: 0, max: 300,
		rangeMsg: "Wind speed must be between 0 and 300 km/h",
	},
	FieldRainProbability: {
		min: 0, max: 100,
		rangeMsg: "Rain probability must be between 0% and 100%",
	},
}

// ValidateField checks a single field and returns its message, or "" when
// the value is acceptable. It backs inline validation in forms.
func ValidateField(field, value string) string {
	value = strings.TrimSpace(value)

	switch field {
	case FieldCity:
		if value == "" {
			return "City name is required"
		}
		return ""
	case FieldCondition:
		if value == "" {
			return ""
		}
		if _, ok := conditionDefaults[value]; !ok {
			return "Select a weather condition"
		}
		return ""
	}

	rule, ok := fieldRules[field]
	if !ok {
		return ""
	}
	if value == "" {
		if rule.required {
			return rule.missingMsg
		}
		return ""
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) {
		if rule.required {
			return rule.missingMsg
		}
		return rule.rangeMsg
	}
	if f < rule.min || f > rule.max {
		return rule.rangeMsg
	}
	return ""
}

// Validate checks every field of in. It never mutates in.
func Validate(in ManualInput) FieldErrors {
	errs := FieldErrors{}
	fields := []struct{ name, value string }{
		{FieldCity, in.City},
		{FieldTemperature, in.Temperature},
		{FieldFeelsLike, in.FeelsLike},
		{FieldHumidity, in.Humidity},
		{FieldCondition, in.Condition},
		{FieldWindSpeed, in.WindSpeed},
		{FieldRainProbability, in.RainProbability},
	}
	for _, f := range fields {
		if msg := ValidateField(f.name, f.value); msg != "" {
			errs[f.name] = msg
		}
	}
	return errs
}

// parseInt truncates a validated numeric field toward zero.
func parseInt(s string) int {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return int(math.Trunc(f))
}

// FromManual builds a report from manual input. On validation failure it
// returns the field errors and a zero report. Day 0 of the forecast follows
// the input exactly; the remaining days are jittered.
func (s *Synthesizer) FromManual(in ManualInput, now time.Time) (Report, FieldErrors) {
	if errs := Validate(in); !errs.OK() {
		return Report{}, errs
	}

	condition := strings.TrimSpace(in.Condition)
	if condition == "" {
		condition = "Sunny"
	}
	defaults := defaultsFor(condition)

	temp := parseInt(in.Temperature)
	humidity := parseInt(in.Humidity)

	feelsLike := temp + 2
	if strings.TrimSpace(in.FeelsLike) != "" {
		feelsLike = parseInt(in.FeelsLike)
	}
	wind := 5
	if strings.TrimSpace(in.WindSpeed) != "" {
		wind = parseInt(in.WindSpeed)
	}
	rain := defaults.rain
	if strings.TrimSpace(in.RainProbability) != "" {
		rain = parseInt(in.RainProbability)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = defaults.description
	}

	s.mu.Lock()
	forecast := s.manualForecast(temp, condition, rain)
	s.mu.Unlock()

	return Report{
		City:              strings.TrimSpace(in.City),
		Temperature:       temp,
		FeelsLike:         feelsLike,
		Humidity:          humidity,
		Condition:         condition,
		Description:       description,
		WindSpeed:         wind,
		RainProbability:   rain,
		Forecast:          forecast,
		GrowingConditions: manualGrowingConditions(temp, humidity, condition),
		Source:            SourceManual,
		Season:            SeasonFor(now),
		GeneratedAt:       now,
	}, nil
}

// manualForecast must be called with s.mu held.
func (s *Synthesizer) manualForecast(temp int, condition string, rain int) []ForecastDay {
	days := make([]ForecastDay, len(ForecastDays))
	days[0] = ForecastDay{
		Day:             ForecastDays[0],
		High:            temp + 2,
		Low:             temp - 3,
		Condition:       condition,
		Icon:            Icon(condition),
		RainProbability: rain,
	}
	for i := 1; i < len(ForecastDays); i++ {
		v := s.rng.IntN(6) - 3
		c := Conditions[s.rng.IntN(len(Conditions))]
		days[i] = ForecastDay{
			Day:             ForecastDays[i],
			High:            temp + v + 2,
			Low:             temp + v - 3,
			Condition:       c,
			Icon:            Icon(c),
			RainProbability: s.rng.IntN(60) + 10,
		}
	}
	return days
}

func manualGrowingConditions(temp, humidity int, condition string) GrowingConditions {
	var gc GrowingConditions

	switch {
	case temp >= 20 && temp <= 30:
		gc.Favorable = append(gc.Favorable, "Ideal temperature range for most plants")
	case temp > 30:
		gc.Challenges = append(gc.Challenges, "High temperatures may stress some plants")
		gc.Recommendations = append(gc.Recommendations, "Provide afternoon shade and extra watering")
	case temp < 15:
		gc.Challenges = append(gc.Challenges, "Cool temperatures may slow plant growth")
		gc.Recommendations = append(gc.Recommendations, "Consider cold-hardy plants or indoor growing")
	}

	switch {
	case humidity >= 40 && humidity <= 70:
		gc.Favorable = append(gc.Favorable, "Good humidity levels for plant growth")
	case humidity > 70:
		gc.Challenges = append(gc.Challenges, "High humidity may increase disease risk")
		gc.Recommendations = append(gc.Recommendations, "Ensure good air circulation around plants")
	default:
		gc.Challenges = append(gc.Challenges, "Low humidity may stress plants")
		gc.Recommendations = append(gc.Recommendations, "Consider increasing humidity around plants")
	}

	switch condition {
	case "Sunny":
		gc.Favorable = append(gc.Favorable, "Excellent light conditions for photosynthesis")
	case "Rainy", "Thunderstorm":
		gc.Challenges = append(gc.Challenges, "Excessive moisture may cause root rot")
		gc.Recommendations = append(gc.Recommendations, "Ensure proper drainage for potted plants")
	case "Cloudy", "Overcast":
		gc.Challenges = append(gc.Challenges, "Limited sunlight may slow growth")
		gc.Recommendations = append(gc.Recommendations, "Consider supplemental lighting for indoor plants")
	}

	return gc
}
