package wizard

import (
	"sync"
	"time"
)

// Op names an asynchronous wizard operation.
type Op string

const (
	OpWeatherLookup   Op = "weather_lookup"
	OpCityEntry       Op = "city_entry"
	OpImageAnalysis   Op = "image_analysis"
	OpRecommendations Op = "recommendations"
	OpMeasurement     Op = "measurement"
)

// Guard holds one in-flight flag per operation. A second TryBegin for an
// operation that has not called Done is refused.
type Guard struct {
	mu   sync.Mutex
	busy map[Op]bool
}

func (g *Guard) TryBegin(op Op) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy == nil {
		g.busy = make(map[Op]bool)
	}
	if g.busy[op] {
		return false
	}
	g.busy[op] = true
	return true
}

func (g *Guard) Done(op Op) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, op)
}

func (g *Guard) Busy(op Op) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy[op]
}

// Delays are the simulated processing times of each operation.
type Delays struct {
	WeatherLookup   time.Duration `mapstructure:"weather_lookup"`
	CityEntry       time.Duration `mapstructure:"city_entry"`
	ImageAnalysis   time.Duration `mapstructure:"image_analysis"`
	Recommendations time.Duration `mapstructure:"recommendations"`
	Measurement     time.Duration `mapstructure:"measurement"`
}

var DefaultDelays = Delays{
	WeatherLookup:   800 * time.Millisecond,
	CityEntry:       1000 * time.Millisecond,
	ImageAnalysis:   2000 * time.Millisecond,
	Recommendations: 1500 * time.Millisecond,
	Measurement:     3000 * time.Millisecond,
}

// For returns the delay of op.
func (d Delays) For(op Op) time.Duration {
	switch op {
	case OpWeatherLookup:
		return d.WeatherLookup
	case OpCityEntry:
		return d.CityEntry
	case OpImageAnalysis:
		return d.ImageAnalysis
	case OpRecommendations:
		return d.Recommendations
	case OpMeasurement:
		return d.Measurement
	}
	return 0
}
