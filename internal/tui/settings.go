package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/store"
)

var settingLabels = map[string]string{
	store.SettingDefaultCity:         "Default city",
	store.SettingUseDashboardWeather: "Reuse dashboard weather",
	store.SettingExportDir:           "Export directory",
}

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	defaultCity  *string
	reuseWeather *bool
	exportDir    *string
}

func newSettingsModel(s *store.Store) settingsModel {
	city, dir := "", ""
	reuse := true
	return settingsModel{
		store:        s,
		defaultCity:  &city,
		reuseWeather: &reuse,
		exportDir:    &dir,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	st := s.store
	return func() tea.Msg {
		settings, _ := st.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	prefs, err := s.store.Preferences()
	if err != nil {
		return s, errorCmd("Settings error", err)
	}
	*s.defaultCity = prefs.DefaultCity
	*s.reuseWeather = prefs.UseDashboardWeather
	*s.exportDir = prefs.ExportDir

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Default city").
				Description("Prefilled in weather lookups").
				Value(s.defaultCity),
			huh.NewConfirm().Title("Reuse dashboard weather").
				Description("Skip the weather step when the dashboard already has a report").
				Value(s.reuseWeather),
		).Title("Analysis"),
		huh.NewGroup(
			huh.NewInput().Title("Export directory").
				Placeholder("home directory").
				Value(s.exportDir),
		).Title("Export"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		if err := s.saveSettings(); err != nil {
			return s, errorCmd("Settings error", err)
		}
		return s, tea.Batch(s.refresh(), statusCmd("Settings saved", false))
	}

	return s, cmd
}

func (s settingsModel) saveSettings() error {
	return s.store.SavePreferences(store.Preferences{
		DefaultCity:         *s.defaultCity,
		UseDashboardWeather: *s.reuseWeather,
		ExportDir:           expandHome(*s.exportDir),
	})
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings · L logs out and clears your session data")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(26).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingLabel(k string) string {
	if l, ok := settingLabels[k]; ok {
		return l
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingUseDashboardWeather:
		if b, err := strconv.ParseBool(v); err == nil {
			if b {
				return "yes"
			}
			return "no"
		}
	case store.SettingDefaultCity, store.SettingExportDir:
		if v == "" {
			return "not set"
		}
	}
	return v
}
