package store

import (
	"math"
	"time"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/weather"
)

// User is the signed-in session. No credentials are kept.
type User struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// GardenEntry is a plant the user chose to grow, with the context it was
// chosen in. The plant's fields are stored flat next to the entry's own. The
// entry ID takes the "id" key, so the catalog id is kept as "plantId".
type GardenEntry struct {
	catalog.PlantRecord
	ID                string          `json:"id"`
	PlantID           int             `json:"plantId"`
	Added             time.Time       `json:"dateAdded"`
	SpaceType         string          `json:"spaceType"`
	SpaceName         string          `json:"spaceName"`
	WeatherConditions *weather.Report `json:"weatherConditions,omitempty"`
	SetupName         string          `json:"setupName,omitempty"`
}

// Plant returns the catalog record the entry was created from.
func (g GardenEntry) Plant() catalog.PlantRecord {
	p := g.PlantRecord
	p.ID = g.PlantID
	return p
}

// PartOfSetup reports whether the entry was saved as a complete setup.
func (g GardenEntry) PartOfSetup() bool {
	return g.SetupName != ""
}

// DaysGrowing is the number of started days since the plant was added.
func (g GardenEntry) DaysGrowing(now time.Time) int {
	d := now.Sub(g.Added)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// ImageAnalysis is what the classifier concluded about an upload.
type ImageAnalysis struct {
	FileName       string   `json:"fileName"`
	Size           int64    `json:"size"`
	MIMEType       string   `json:"mimeType"`
	SpaceTypeGuess string   `json:"spaceTypeGuess"`
	Generic        bool     `json:"generic,omitempty"`
	Tips           []string `json:"tips,omitempty"`
}

// HistoryEntry records one completed analysis.
type HistoryEntry struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	PlantsFound     int             `json:"plantsFound"`
	SpaceType       string          `json:"spaceType"`
	SpaceName       string          `json:"spaceName"`
	Location        string          `json:"location"`
	Weather         *weather.Report `json:"weather,omitempty"`
	Image           *ImageAnalysis  `json:"image,omitempty"`
	FileName        string          `json:"fileName,omitempty"`
	Recommendations []int           `json:"recommendations,omitempty"`
}

// SpaceAnalysis is a saved measurement run.
type SpaceAnalysis struct {
	ID          string            `json:"id"`
	Date        time.Time         `json:"date"`
	SpaceType   string            `json:"spaceType"`
	FileName    string            `json:"fileName,omitempty"`
	Measurement space.Measurement `json:"measurement"`
	RealLengths []float64         `json:"realLengths"`
	Assessment  space.Assessment  `json:"assessment"`
}

type Setting struct {
	Key   string
	Value string
}
