package weather

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var seasonConditions = map[Season][]string{
	Summer:  {"Sunny", "Hot", "Partly Cloudy"},
	Monsoon: {"Rainy", "Cloudy", "Thunderstorm", "Drizzle"},
	Winter:  {"Pleasant", "Cool", "Partly Cloudy", "Clear"},
}

var seasonIcons = map[Season]string{
	Summer:  "☀️",
	Monsoon: "🌧️",
	Winter:  "🌤️",
}

// Synthesizer produces synthetic weather reports from a climate table and a
// random source. It is safe for concurrent use.
type Synthesizer struct {
	table  *ClimateTable
	logger *slog.Logger

	mu  sync.Mutex
	rng Rand

	cache *cache.Cache
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithCache keeps city lookups for ttl so repeated lookups of the same city in
// the same season return the same report. A zero ttl disables caching.
func WithCache(ttl time.Duration) Option {
	return func(s *Synthesizer) {
		if ttl > 0 {
			s.cache = cache.New(ttl, ttl*2)
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Synthesizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSynthesizer returns a synthesizer. A nil table selects DefaultTable and a
// nil rng selects a clock-seeded source.
func NewSynthesizer(table *ClimateTable, rng Rand, opts ...Option) *Synthesizer {
	if table == nil {
		table = DefaultTable()
	}
	if rng == nil {
		rng = NewRand(0)
	}
	s := &Synthesizer{
		table:  table,
		rng:    rng,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synthesizer) Table() *ClimateTable {
	return s.table
}

// Lookup synthesizes the current weather for city at now. Unknown cities fall
// back to the generic seasonal profile.
func (s *Synthesizer) Lookup(city string, now time.Time) Report {
	city = strings.TrimSpace(city)
	season := SeasonFor(now)

	key := strings.ToLower(city) + "|" + string(season)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v.(Report).clone()
		}
	}

	name, p, found := s.table.Find(city, season)
	if !found {
		s.logger.Debug("city not in climate table, using fallback profile",
			"city", city,
			"season", season,
		)
	}

	s.mu.Lock()
	temp := p.Temp + s.rng.IntN(6) - 3
	humidity := clamp(p.Humidity+s.rng.IntN(20)-10, 20, 100)
	wind := 5 + s.rng.IntN(15)
	rain := clamp(cityRain(season, s.rng), 0, 100)
	forecast := s.cityForecast(season, p.Temp)
	s.mu.Unlock()

	r := Report{
		City:              name,
		Temperature:       temp,
		FeelsLike:         temp + 2,
		Humidity:          humidity,
		Condition:         p.Condition,
		Description:       p.Description,
		WindSpeed:         wind,
		RainProbability:   rain,
		Forecast:          forecast,
		GrowingConditions: cityGrowingConditions(temp, humidity, season),
		Source:            SourceCity,
		Season:            season,
		GeneratedAt:       now,
	}

	if s.cache != nil {
		s.cache.Set(key, r.clone(), cache.DefaultExpiration)
	}
	return r
}

func cityRain(season Season, rng Rand) int {
	switch season {
	case Monsoon:
		return 70 + rng.IntN(20)
	case Winter:
		return 10 + rng.IntN(20)
	default:
		return 20 + rng.IntN(30)
	}
}

// cityForecast must be called with s.mu held.
func (s *Synthesizer) cityForecast(season Season, baseTemp int) []ForecastDay {
	conds := seasonConditions[season]
	days := make([]ForecastDay, len(ForecastDays))
	for i, label := range ForecastDays {
		t := baseTemp + s.rng.IntN(8) - 4
		days[i] = ForecastDay{
			Day:             label,
			High:            t + 3,
			Low:             t - 5,
			Condition:       conds[s.rng.IntN(len(conds))],
			Icon:            seasonIcons[season],
			RainProbability: clamp(forecastRain(season, i), 0, 100),
		}
	}
	return days
}

func forecastRain(season Season, day int) int {
	switch season {
	case Monsoon:
		return 60 + day*5
	case Winter:
		return 15 + day*2
	default:
		return 25 + day*3
	}
}

func cityGrowingConditions(temp, humidity int, season Season) GrowingConditions {
	var gc GrowingConditions

	switch {
	case temp >= 20 && temp <= 30:
		gc.Favorable = append(gc.Favorable, "Ideal temperature range for most plants")
	case temp > 35:
		gc.Challenges = append(gc.Challenges, "Very high temperatures may stress plants")
		gc.Recommendations = append(gc.Recommendations, "Provide shade during peak hours and increase watering")
	case temp > 30:
		gc.Challenges = append(gc.Challenges, "High temperatures may stress some plants")
		gc.Recommendations = append(gc.Recommendations, "Provide afternoon shade and extra watering")
	case temp < 15:
		gc.Challenges = append(gc.Challenges, "Cool temperatures may slow plant growth")
		gc.Recommendations = append(gc.Recommendations, "Consider cold-hardy plants or indoor growing")
	}

	switch {
	case humidity >= 50 && humidity <= 70:
		gc.Favorable = append(gc.Favorable, "Good humidity levels for plant growth")
	case humidity > 80:
		gc.Challenges = append(gc.Challenges, "High humidity may increase disease risk")
		gc.Recommendations = append(gc.Recommendations, "Ensure good air circulation around plants")
	case humidity < 40:
		gc.Challenges = append(gc.Challenges, "Low humidity may stress plants")
		gc.Recommendations = append(gc.Recommendations, "Consider increasing humidity around plants")
	}

	switch season {
	case Monsoon:
		gc.Favorable = append(gc.Favorable, "Monsoon season - natural watering for plants")
		gc.Recommendations = append(gc.Recommendations,
			"Ensure proper drainage to prevent waterlogging",
			"Perfect time for leafy greens and herbs",
		)
	case Winter:
		gc.Favorable = append(gc.Favorable, "Cool weather ideal for many vegetables")
		gc.Recommendations = append(gc.Recommendations, "Great time for root vegetables and flowers")
	default:
		gc.Recommendations = append(gc.Recommendations,
			"Summer season - choose heat-tolerant varieties",
			"Mulch soil to conserve moisture",
		)
	}

	return gc
}
