package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ManualInput {
	return ManualInput{
		City:        "Goa",
		Temperature: "25",
		Humidity:    "65",
		Condition:   "Sunny",
	}
}

func TestFromManualDefaults(t *testing.T) {
	s := NewSynthesizer(nil, NewRand(1))
	r, errs := s.FromManual(validInput(), date(time.June))
	require.True(t, errs.OK(), "unexpected errors: %v", errs)

	assert.Equal(t, "Goa", r.City)
	assert.Equal(t, 25, r.Temperature)
	assert.Equal(t, 27, r.FeelsLike)
	assert.Equal(t, 65, r.Humidity)
	assert.Equal(t, 5, r.WindSpeed)
	assert.Equal(t, 5, r.RainProbability)
	assert.Equal(t, "Clear and sunny skies", r.Description)
	assert.Equal(t, SourceManual, r.Source)
}

func TestFromManualOverrides(t *testing.T) {
	in := validInput()
	in.FeelsLike = "31"
	in.WindSpeed = "12.7"
	in.RainProbability = "40"
	in.Description = "Muggy afternoon"
	in.Condition = "Cloudy"

	r, errs := NewSynthesizer(nil, NewRand(1)).FromManual(in, date(time.June))
	require.True(t, errs.OK())
	assert.Equal(t, 31, r.FeelsLike)
	assert.Equal(t, 12, r.WindSpeed)
	assert.Equal(t, 40, r.RainProbability)
	assert.Equal(t, "Muggy afternoon", r.Description)
	assert.Contains(t, r.GrowingConditions.Challenges, "Limited sunlight may slow growth")
}

func TestFromManualForecast(t *testing.T) {
	in := validInput()
	in.Condition = "Rainy"

	r, errs := NewSynthesizer(nil, NewRand(3)).FromManual(in, date(time.June))
	require.True(t, errs.OK())
	require.Len(t, r.Forecast, 7)

	today := r.Forecast[0]
	assert.Equal(t, "Today", today.Day)
	assert.Equal(t, "Rainy", today.Condition)
	assert.Equal(t, "🌧️", today.Icon)
	assert.Equal(t, 80, today.RainProbability)
	assert.Equal(t, 27, today.High)
	assert.Equal(t, 22, today.Low)

	for _, d := range r.Forecast[1:] {
		assert.Equal(t, 5, d.High-d.Low)
		assert.InDelta(t, 27, d.High, 3)
		assert.Contains(t, Conditions, d.Condition)
		assert.Equal(t, Icon(d.Condition), d.Icon)
		assert.GreaterOrEqual(t, d.RainProbability, 10)
		assert.Less(t, d.RainProbability, 70)
	}
}

func TestFromManualBlankConditionIsSunny(t *testing.T) {
	in := validInput()
	in.Condition = ""
	r, errs := NewSynthesizer(nil, lowRand).FromManual(in, date(time.June))
	require.True(t, errs.OK())
	assert.Equal(t, "Sunny", r.Condition)
}

func TestFromManualInvalid(t *testing.T) {
	in := validInput()
	in.Temperature = "75"
	r, errs := NewSynthesizer(nil, lowRand).FromManual(in, date(time.June))
	assert.False(t, errs.OK())
	assert.Equal(t, "Temperature must be between -50°C and 60°C", errs[FieldTemperature])
	assert.Empty(t, r.City)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ManualInput)
		field string
		want  string
	}{
		{"blank city", func(in *ManualInput) { in.City = "   " }, FieldCity, "City name is required"},
		{"missing temperature", func(in *ManualInput) { in.Temperature = "" }, FieldTemperature, "Temperature is required"},
		{"garbage temperature", func(in *ManualInput) { in.Temperature = "warm" }, FieldTemperature, "Temperature is required"},
		{"cold temperature", func(in *ManualInput) { in.Temperature = "-51" }, FieldTemperature, "Temperature must be between -50°C and 60°C"},
		{"feels like", func(in *ManualInput) { in.FeelsLike = "71" }, FieldFeelsLike, "Feels like temperature must be between -60°C and 70°C"},
		{"missing humidity", func(in *ManualInput) { in.Humidity = "" }, FieldHumidity, "Humidity is required"},
		{"humidity range", func(in *ManualInput) { in.Humidity = "101" }, FieldHumidity, "Humidity must be between 0% and 100%"},
		{"wind range", func(in *ManualInput) { in.WindSpeed = "301" }, FieldWindSpeed, "Wind speed must be between 0 and 300 km/h"},
		{"negative wind", func(in *ManualInput) { in.WindSpeed = "-1" }, FieldWindSpeed, "Wind speed must be between 0 and 300 km/h"},
		{"rain range", func(in *ManualInput) { in.RainProbability = "120" }, FieldRainProbability, "Rain probability must be between 0% and 100%"},
		{"unknown condition", func(in *ManualInput) { in.Condition = "Blizzard" }, FieldCondition, "Select a weather condition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.edit(&in)
			errs := Validate(in)
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.want, errs[tt.field])
		})
	}
}

func TestValidateBoundaries(t *testing.T) {
	in := ManualInput{
		City:            "Edge",
		Temperature:     "-50",
		FeelsLike:       "70",
		Humidity:        "0",
		WindSpeed:       "300",
		RainProbability: "100",
	}
	assert.True(t, Validate(in).OK())
}

func TestManualGrowingConditions(t *testing.T) {
	gc := manualGrowingConditions(33, 75, "Thunderstorm")
	assert.Contains(t, gc.Challenges, "High temperatures may stress some plants")
	assert.Contains(t, gc.Challenges, "High humidity may increase disease risk")
	assert.Contains(t, gc.Challenges, "Excessive moisture may cause root rot")
	assert.Empty(t, gc.Favorable)

	gc = manualGrowingConditions(10, 30, "Foggy")
	assert.Contains(t, gc.Challenges, "Cool temperatures may slow plant growth")
	assert.Contains(t, gc.Challenges, "Low humidity may stress plants")
	assert.Len(t, gc.Recommendations, 2)

	gc = manualGrowingConditions(17, 45, "Windy")
	assert.Equal(t, []string{"Good humidity levels for plant growth"}, gc.Favorable)
	assert.Empty(t, gc.Challenges)
}

func TestConditionDefaults(t *testing.T) {
	assert.Equal(t, 90, DefaultRainProbability("Thunderstorm"))
	assert.Equal(t, "Foggy conditions with limited visibility", DefaultDescription("Foggy"))
	assert.Equal(t, 20, DefaultRainProbability("Sleet"))
	assert.Equal(t, "Pleasant weather conditions", DefaultDescription("Sleet"))
	for _, c := range Conditions {
		_, ok := conditionDefaults[c]
		assert.True(t, ok, c)
	}
}
