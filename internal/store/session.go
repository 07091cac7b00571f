package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sadopc/sprout/internal/events"
	"github.com/sadopc/sprout/internal/weather"
)

// spaceAnalysisLimit caps the measurement history.
const spaceAnalysisLimit = 20

// CurrentUser returns the signed-in user, or nil.
func (s *Store) CurrentUser() (*User, error) {
	var u User
	found, err := s.LoadInto(KeyUser, &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SaveUser(u User) error {
	if u.LoggedInAt.IsZero() {
		u.LoggedInAt = s.now()
	}
	return s.Save(KeyUser, u)
}

// Garden returns the garden in insertion order.
func (s *Store) Garden() ([]GardenEntry, error) {
	var g []GardenEntry
	if _, err := s.LoadInto(KeyGarden, &g); err != nil {
		return nil, err
	}
	for i := range g {
		g[i].PlantRecord.ID = g[i].PlantID
	}
	return g, nil
}

// AddGardenEntries appends entries, assigning IDs and timestamps where
// missing, and returns them as stored.
func (s *Store) AddGardenEntries(entries ...GardenEntry) ([]GardenEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	now := s.now()
	added := make([]GardenEntry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.Added.IsZero() {
			e.Added = now
		}
		if e.PlantID == 0 {
			e.PlantID = e.PlantRecord.ID
		}
		added[i] = e
	}

	var g []GardenEntry
	err := s.update(KeyGarden, &g, func(bool) (any, error) {
		return append(g, added...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add garden entries: %w", err)
	}
	s.publish(events.GardenChanged, nil)
	return added, nil
}

// RemoveGardenEntry deletes the entry with id, keeping the order of the rest.
func (s *Store) RemoveGardenEntry(id string) error {
	var g []GardenEntry
	err := s.update(KeyGarden, &g, func(bool) (any, error) {
		for i, e := range g {
			if e.ID == id {
				return append(g[:i:i], g[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("garden entry %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}
	s.publish(events.GardenChanged, nil)
	return nil
}

// History returns the analysis history, most recent first.
func (s *Store) History() ([]HistoryEntry, error) {
	var h []HistoryEntry
	if _, err := s.LoadInto(KeyHistory, &h); err != nil {
		return nil, err
	}
	return h, nil
}

// AppendHistory puts e at the front of the history and drops the oldest
// entries beyond the limit.
func (s *Store) AppendHistory(e HistoryEntry) (HistoryEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}

	var h []HistoryEntry
	err := s.update(KeyHistory, &h, func(bool) (any, error) {
		next := make([]HistoryEntry, 0, len(h)+1)
		next = append(next, e)
		next = append(next, h...)
		if len(next) > s.historyLimit {
			next = next[:s.historyLimit]
		}
		return next, nil
	})
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("append history: %w", err)
	}

	s.logger.Debug("analysis recorded", "id", e.ID, "plants", e.PlantsFound)
	s.publish(events.AnalysisCompleted, e)
	return e, nil
}

func (s *Store) DeleteHistory(id string) error {
	var h []HistoryEntry
	err := s.update(KeyHistory, &h, func(bool) (any, error) {
		for i, e := range h {
			if e.ID == id {
				return append(h[:i:i], h[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("history entry %q: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}
	s.publish(events.HistoryChanged, nil)
	return nil
}

// ClearHistory stores an empty history.
func (s *Store) ClearHistory() error {
	if err := s.Save(KeyHistory, []HistoryEntry{}); err != nil {
		return err
	}
	s.publish(events.HistoryChanged, nil)
	return nil
}

// DashboardWeather returns the last submitted report, or nil.
func (s *Store) DashboardWeather() (*weather.Report, error) {
	var r weather.Report
	found, err := s.LoadInto(KeyDashboardWeather, &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

func (s *Store) SaveDashboardWeather(r weather.Report) error {
	if err := s.Save(KeyDashboardWeather, r); err != nil {
		return err
	}
	s.publish(events.WeatherUpdated, r)
	return nil
}

// SaveDashboardWeatherAt stores r only when the dashboard report is still at
// version. It returns ErrVersionConflict when another report was stored first.
func (s *Store) SaveDashboardWeatherAt(r weather.Report, version int64) error {
	if err := s.SaveIfVersion(KeyDashboardWeather, r, version); err != nil {
		return err
	}
	s.publish(events.WeatherUpdated, r)
	return nil
}

// SpaceAnalyses returns saved measurement runs, most recent first.
func (s *Store) SpaceAnalyses() ([]SpaceAnalysis, error) {
	var a []SpaceAnalysis
	if _, err := s.LoadInto(KeySpaceAnalysis, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) AppendSpaceAnalysis(a SpaceAnalysis) (SpaceAnalysis, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Date.IsZero() {
		a.Date = s.now()
	}

	var list []SpaceAnalysis
	err := s.update(KeySpaceAnalysis, &list, func(bool) (any, error) {
		next := append([]SpaceAnalysis{a}, list...)
		if len(next) > spaceAnalysisLimit {
			next = next[:spaceAnalysisLimit]
		}
		return next, nil
	})
	if err != nil {
		return SpaceAnalysis{}, fmt.Errorf("append space analysis: %w", err)
	}
	return a, nil
}
