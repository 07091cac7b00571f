package store

import (
	"fmt"
	"strconv"
)

// Setting keys seeded by the first migration.
const (
	SettingDefaultCity         = "default_city"
	SettingUseDashboardWeather = "use_dashboard_weather"
	SettingExportDir           = "export_dir"
)

// Preferences survive logout; ClearAll does not touch them.
type Preferences struct {
	DefaultCity         string
	UseDashboardWeather bool
	ExportDir           string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (s *Store) Preferences() (Preferences, error) {
	all, err := s.GetAllSettings()
	if err != nil {
		return Preferences{}, err
	}
	p := Preferences{UseDashboardWeather: true}
	for _, st := range all {
		switch st.Key {
		case SettingDefaultCity:
			p.DefaultCity = st.Value
		case SettingUseDashboardWeather:
			if b, err := strconv.ParseBool(st.Value); err == nil {
				p.UseDashboardWeather = b
			}
		case SettingExportDir:
			p.ExportDir = st.Value
		}
	}
	return p, nil
}

func (s *Store) SavePreferences(p Preferences) error {
	values := map[string]string{
		SettingDefaultCity:         p.DefaultCity,
		SettingUseDashboardWeather: strconv.FormatBool(p.UseDashboardWeather),
		SettingExportDir:           p.ExportDir,
	}
	for k, v := range values {
		if err := s.SetSetting(k, v); err != nil {
			return err
		}
	}
	return nil
}
