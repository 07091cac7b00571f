package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/sprout/internal/store"
)

type jsonExport[T any] struct {
	ExportedAt string `json:"exported_at"`
	Count      int    `json:"count"`
	Entries    []T    `json:"entries"`
}

type gardenJSON struct {
	ID          string `json:"id"`
	PlantID     int    `json:"plant_id"`
	Plant       string `json:"plant"`
	Type        string `json:"type"`
	SpaceName   string `json:"space_name"`
	SpaceType   string `json:"space_type"`
	SetupName   string `json:"setup_name,omitempty"`
	Added       string `json:"added"`
	DaysGrowing int    `json:"days_growing"`
	City        string `json:"city,omitempty"`
}

type historyJSON struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	SpaceName       string `json:"space_name"`
	SpaceType       string `json:"space_type"`
	Location        string `json:"location,omitempty"`
	PlantsFound     int    `json:"plants_found"`
	Condition       string `json:"condition,omitempty"`
	RainProbability *int   `json:"rain_probability,omitempty"`
	FileName        string `json:"file_name,omitempty"`
	Recommendations []int  `json:"recommendations,omitempty"`
}

// GardenToJSON writes the garden to path. Days growing is computed at now.
func GardenToJSON(entries []store.GardenEntry, now time.Time, path string) error {
	out := jsonExport[gardenJSON]{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(entries),
	}
	for _, e := range entries {
		g := gardenJSON{
			ID:          e.ID,
			PlantID:     e.PlantID,
			Plant:       e.Name,
			Type:        string(e.Type),
			SpaceName:   e.SpaceName,
			SpaceType:   e.SpaceType,
			SetupName:   e.SetupName,
			Added:       e.Added.Local().Format(time.RFC3339),
			DaysGrowing: e.DaysGrowing(now),
		}
		if e.WeatherConditions != nil {
			g.City = e.WeatherConditions.City
		}
		out.Entries = append(out.Entries, g)
	}
	return writeJSON(path, out)
}

func HistoryToJSON(entries []store.HistoryEntry, now time.Time, path string) error {
	out := jsonExport[historyJSON]{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(entries),
	}
	for _, e := range entries {
		h := historyJSON{
			ID:              e.ID,
			Date:            e.Date.Local().Format(time.RFC3339),
			SpaceName:       e.SpaceName,
			SpaceType:       e.SpaceType,
			Location:        e.Location,
			PlantsFound:     e.PlantsFound,
			FileName:        e.FileName,
			Recommendations: e.Recommendations,
		}
		if e.Weather != nil {
			rain := e.Weather.RainProbability
			h.Condition = e.Weather.Condition
			h.RainProbability = &rain
		}
		out.Entries = append(out.Entries, h)
	}
	return writeJSON(path, out)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
