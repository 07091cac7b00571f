package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/sprout/internal/store"
)

var gardenHeader = []string{"ID", "Plant", "Type", "Space", "Space Type", "Setup", "Added", "Days Growing", "Water", "Sunlight", "Maintenance"}

var historyHeader = []string{"ID", "Date", "Space", "Space Type", "Location", "Plants Found", "Condition", "Rain (%)", "File"}

// GardenToCSV writes the garden to path. Days growing is computed at now.
func GardenToCSV(entries []store.GardenEntry, now time.Time, path string) error {
	return writeCSV(path, gardenHeader, len(entries), func(i int) []string {
		e := entries[i]
		return []string{
			e.ID,
			e.Name,
			string(e.Type),
			e.SpaceName,
			e.SpaceType,
			e.SetupName,
			e.Added.Local().Format(time.RFC3339),
			strconv.Itoa(e.DaysGrowing(now)),
			string(e.Water),
			string(e.Sunlight),
			string(e.Maintenance),
		}
	})
}

func HistoryToCSV(entries []store.HistoryEntry, path string) error {
	return writeCSV(path, historyHeader, len(entries), func(i int) []string {
		e := entries[i]
		condition, rain := "", ""
		if e.Weather != nil {
			condition = e.Weather.Condition
			rain = strconv.Itoa(e.Weather.RainProbability)
		}
		return []string{
			e.ID,
			e.Date.Local().Format(time.RFC3339),
			e.SpaceName,
			e.SpaceType,
			e.Location,
			strconv.Itoa(e.PlantsFound),
			condition,
			rain,
			e.FileName,
		}
	})
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
