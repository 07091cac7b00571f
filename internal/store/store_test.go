package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/events"
	"github.com/sadopc/sprout/internal/weather"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := NewMemory(opts...)
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func plant(t *testing.T, id int) catalog.PlantRecord {
	t.Helper()
	p, err := catalog.Default().ByID(id)
	if err != nil {
		t.Fatalf("plant %d: %v", id, err)
	}
	return p
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	path := t.TempDir() + "/sub/sprout.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveUser(User{Name: "ana", Email: "ana@example.com"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	u, err := s2.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Email != "ana@example.com" {
		t.Fatalf("expected user to survive reopen, got %+v", u)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)

	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Documents
// ============================================================

func TestLoadAbsent(t *testing.T) {
	s := newTestStore(t)
	raw, found, err := s.Load(KeyUser)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, raw)
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)

	values := map[string]any{
		KeyUser:             map[string]any{"name": "ana", "email": "ana@example.com"},
		KeyGarden:           []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}},
		KeyHistory:          []any{},
		KeyDashboardWeather: map[string]any{"city": "Mumbai", "temperature": 28.0},
		"scratch":           "plain string",
	}
	for k, v := range values {
		require.NoError(t, s.Save(k, v))

		raw, found, err := s.Load(k)
		require.NoError(t, err)
		require.True(t, found, k)

		var got any
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, v, got, k)
	}
}

func TestRoundTripTyped(t *testing.T) {
	s := newTestStore(t)
	r := weather.Report{
		City:            "Pune",
		Temperature:     24,
		Condition:       "Pleasant",
		RainProbability: 15,
		Forecast:        []weather.ForecastDay{{Day: "Mon", High: 27, Low: 19, Condition: "Sunny"}},
		GeneratedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveDashboardWeather(r))

	got, err := s.DashboardWeather()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, r, *got)
}

func TestSaveBumpsVersion(t *testing.T) {
	s := newTestStore(t)

	v, err := s.Version(KeyGarden)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, s.Save(KeyGarden, []int{1}))
	require.NoError(t, s.Save(KeyGarden, []int{1, 2}))

	v, err = s.Version(KeyGarden)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestSaveDashboardWeatherAt(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SaveDashboardWeatherAt(weather.Report{City: "Delhi"}, 0))

	v, err := s.Version(KeyDashboardWeather)
	require.NoError(t, err)
	require.NoError(t, s.SaveDashboardWeather(weather.Report{City: "Pune"}))

	err = s.SaveDashboardWeatherAt(weather.Report{City: "Chennai"}, v)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := s.DashboardWeather()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pune", got.City)
}

func TestSaveIfVersion(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveIfVersion(KeyUser, User{Name: "a"}, 0))
	err := s.SaveIfVersion(KeyUser, User{Name: "b"}, 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
	require.NoError(t, s.SaveIfVersion(KeyUser, User{Name: "b"}, 1))

	u, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "b", u.Name)
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(KeyUser, User{Name: "a"}))
	require.NoError(t, s.Remove(KeyUser))
	require.NoError(t, s.Remove(KeyUser))

	_, found, err := s.Load(KeyUser)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClearAll(t *testing.T) {
	var logs bytes.Buffer
	s := newTestStore(t, WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	require.NoError(t, s.SaveUser(User{Name: "a", Email: "a@b.co"}))
	_, err := s.AddGardenEntries(GardenEntry{PlantRecord: plant(t, 1)})
	require.NoError(t, err)
	_, err = s.AppendHistory(HistoryEntry{PlantsFound: 3})
	require.NoError(t, err)
	require.NoError(t, s.SaveDashboardWeather(weather.Report{City: "Delhi"}))
	require.NoError(t, s.SetSetting(SettingDefaultCity, "Delhi"))

	require.NoError(t, s.ClearAll())
	assert.Contains(t, logs.String(), "documents cleared")
	assert.Contains(t, logs.String(), KeyGarden)

	keys, err := s.keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	city, err := s.GetSetting(SettingDefaultCity)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", city)
}

func TestCorruptDocumentTreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	_, err := s.db.Exec(`INSERT INTO documents (key, value) VALUES (?, ?)`, KeyHistory, "{not json")
	require.NoError(t, err)

	h, err := s.History()
	require.NoError(t, err)
	assert.Empty(t, h)

	// A write over a corrupt document starts from empty.
	_, err = s.AppendHistory(HistoryEntry{PlantsFound: 2})
	require.NoError(t, err)
	h, err = s.History()
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestLoadIntoResetsOnTypeMismatch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(KeyUser, []int{1, 2}))

	u := User{Name: "stale"}
	found, err := s.LoadInto(KeyUser, &u)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, User{}, u)
}

// ============================================================
// Garden
// ============================================================

func TestGardenRemoveKeepsOrder(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddGardenEntries(
		GardenEntry{PlantRecord: plant(t, 1), SpaceType: "balcony"},
		GardenEntry{PlantRecord: plant(t, 2), SpaceType: "balcony"},
		GardenEntry{PlantRecord: plant(t, 3), SpaceType: "balcony"},
	)
	require.NoError(t, err)
	require.Len(t, added, 3)

	require.NoError(t, s.RemoveGardenEntry(added[1].ID))

	g, err := s.Garden()
	require.NoError(t, err)
	require.Len(t, g, 2)
	assert.Equal(t, added[0].ID, g[0].ID)
	assert.Equal(t, added[2].ID, g[1].ID)
	assert.Equal(t, 1, g[0].PlantID)
	assert.Equal(t, 3, g[1].PlantID)
}

func TestGardenEntryStoredFlat(t *testing.T) {
	s := newTestStore(t)
	p := plant(t, 2)
	added, err := s.AddGardenEntries(GardenEntry{PlantRecord: p, SpaceType: "balcony"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, added[0].PlantID)

	raw, found, err := s.Load(KeyGarden)
	require.NoError(t, err)
	require.True(t, found)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(raw, &docs))
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.NotContains(t, doc, "plant")
	assert.Equal(t, added[0].ID, doc["id"])
	assert.Equal(t, float64(p.ID), doc["plantId"])
	assert.Equal(t, p.Name, doc["name"])
	assert.Equal(t, string(p.Sunlight), doc["sunlight"])
	assert.Equal(t, "balcony", doc["spaceType"])

	g, err := s.Garden()
	require.NoError(t, err)
	require.Len(t, g, 1)
	assert.Equal(t, p, g[0].Plant())
	assert.Equal(t, p.Name, g[0].Name)
}

func TestAddGardenEntriesAssignsIDs(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithClock(func() time.Time { return now }))

	added, err := s.AddGardenEntries(GardenEntry{PlantRecord: plant(t, 4)}, GardenEntry{PlantRecord: plant(t, 4)})
	require.NoError(t, err)
	assert.NotEmpty(t, added[0].ID)
	assert.NotEqual(t, added[0].ID, added[1].ID)
	assert.Equal(t, now, added[0].Added)

	none, err := s.AddGardenEntries()
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRemoveGardenEntryNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddGardenEntries(GardenEntry{PlantRecord: plant(t, 1)})
	require.NoError(t, err)

	err = s.RemoveGardenEntry("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	g, err := s.Garden()
	require.NoError(t, err)
	assert.Len(t, g, 1)
}

func TestDaysGrowing(t *testing.T) {
	added := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e := GardenEntry{Added: added}

	assert.Equal(t, 0, e.DaysGrowing(added))
	assert.Equal(t, 1, e.DaysGrowing(added.Add(time.Hour)))
	assert.Equal(t, 1, e.DaysGrowing(added.Add(24*time.Hour)))
	assert.Equal(t, 2, e.DaysGrowing(added.Add(25*time.Hour)))
	assert.False(t, e.PartOfSetup())
}

// ============================================================
// History
// ============================================================

func TestHistoryCap(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 13; i++ {
		_, err := s.AppendHistory(HistoryEntry{ID: fmt.Sprintf("h%d", i), PlantsFound: i})
		require.NoError(t, err)
	}

	h, err := s.History()
	require.NoError(t, err)
	require.Len(t, h, DefaultHistoryLimit)
	for i, e := range h {
		assert.Equal(t, fmt.Sprintf("h%d", 13-i), e.ID)
	}
}

func TestHistoryCustomLimit(t *testing.T) {
	s := newTestStore(t, WithHistoryLimit(2))
	for i := 0; i < 5; i++ {
		_, err := s.AppendHistory(HistoryEntry{})
		require.NoError(t, err)
	}
	h, err := s.History()
	require.NoError(t, err)
	assert.Len(t, h, 2)
}

func TestDeleteAndClearHistory(t *testing.T) {
	s := newTestStore(t)
	a, err := s.AppendHistory(HistoryEntry{SpaceName: "a"})
	require.NoError(t, err)
	b, err := s.AppendHistory(HistoryEntry{SpaceName: "b"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteHistory(a.ID))
	assert.ErrorIs(t, s.DeleteHistory(a.ID), ErrNotFound)

	h, err := s.History()
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, b.ID, h[0].ID)

	require.NoError(t, s.ClearHistory())
	h, err = s.History()
	require.NoError(t, err)
	assert.Empty(t, h)
}

// ============================================================
// Notifications
// ============================================================

func TestStorePublishesChanges(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()
	sub, err := bus.Subscribe(8)
	require.NoError(t, err)

	s := newTestStore(t, WithBus(bus))

	require.NoError(t, s.SaveDashboardWeather(weather.Report{City: "Chennai"}))
	ev := <-sub.C()
	assert.Equal(t, events.WeatherUpdated, ev.Topic)
	assert.Equal(t, "Chennai", ev.Payload.(weather.Report).City)

	e, err := s.AppendHistory(HistoryEntry{PlantsFound: 4})
	require.NoError(t, err)
	ev = <-sub.C()
	assert.Equal(t, events.AnalysisCompleted, ev.Topic)
	assert.Equal(t, e.ID, ev.Payload.(HistoryEntry).ID)

	require.NoError(t, s.DeleteHistory(e.ID))
	assert.Equal(t, events.HistoryChanged, (<-sub.C()).Topic)

	_, err = s.AddGardenEntries(GardenEntry{PlantRecord: plant(t, 2)})
	require.NoError(t, err)
	assert.Equal(t, events.GardenChanged, (<-sub.C()).Topic)
}

func TestFailedWriteDoesNotPublish(t *testing.T) {
	bus := events.NewBus(nil)
	defer bus.Close()
	sub, err := bus.Subscribe(4)
	require.NoError(t, err)

	s := newTestStore(t, WithBus(bus))
	assert.Error(t, s.DeleteHistory("nope"))
	assert.Empty(t, sub.C())
}

// ============================================================
// Space analyses
// ============================================================

func TestAppendSpaceAnalysis(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < spaceAnalysisLimit+3; i++ {
		_, err := s.AppendSpaceAnalysis(SpaceAnalysis{SpaceType: fmt.Sprint(i)})
		require.NoError(t, err)
	}
	list, err := s.SpaceAnalyses()
	require.NoError(t, err)
	require.Len(t, list, spaceAnalysisLimit)
	assert.Equal(t, fmt.Sprint(spaceAnalysisLimit+2), list[0].SpaceType)
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := newTestStore(t)

	defaults := map[string]string{
		SettingDefaultCity:         "",
		SettingUseDashboardWeather: "true",
		SettingExportDir:           "",
	}
	for k, expected := range defaults {
		val, err := s.GetSetting(k)
		if err != nil {
			t.Fatalf("GetSetting(%q): %v", k, err)
		}
		if val != expected {
			t.Fatalf("GetSetting(%q) = %q, want %q", k, val, expected)
		}
	}
}

func TestSetSettingOverwrite(t *testing.T) {
	s := newTestStore(t)

	s.SetSetting("key", "v1")
	s.SetSetting("key", "v2")
	val, _ := s.GetSetting("key")
	if val != "v2" {
		t.Fatalf("expected v2, got %s", val)
	}
}

func TestGetSettingNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSetting("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing setting")
	}
}

func TestGetAllSettingsSorted(t *testing.T) {
	s := newTestStore(t)
	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 3 {
		t.Fatalf("expected at least 3 default settings, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Key >= all[i].Key {
			t.Fatalf("settings not sorted: %s >= %s", all[i-1].Key, all[i].Key)
		}
	}
}

func TestPreferences(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Preferences()
	require.NoError(t, err)
	assert.Equal(t, Preferences{UseDashboardWeather: true}, p)

	want := Preferences{DefaultCity: "Kolkata", UseDashboardWeather: false, ExportDir: "/tmp/out"}
	require.NoError(t, s.SavePreferences(want))

	p, err = s.Preferences()
	require.NoError(t, err)
	assert.Equal(t, want, p)
}

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
}
