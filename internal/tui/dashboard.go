package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

// recentLimit is how many analyses the dashboard lists.
const recentLimit = 3

type dashboardModel struct {
	store  *store.Store
	wiz    *wizard.Controller
	guard  *wizard.Guard
	delays wizard.Delays
	now    func() time.Time
	width  int
	height int

	user     *store.User
	garden   []store.GardenEntry
	history  []store.HistoryEntry
	weather  *weather.Report
	prefs    store.Preferences
	cursor   int
	forecast barchart.Model

	formActive bool
	form       *huh.Form
	city       *string

	busy        bool
	seq         int
	pendingCity string
	pendingVer  int64
	spinner     spinner.Model
}

func newDashboardModel(d Deps, guard *wizard.Guard) dashboardModel {
	city := ""
	return dashboardModel{
		store:    d.Store,
		wiz:      d.Wizard,
		guard:    guard,
		delays:   d.Delays,
		now:      d.Now,
		city:     &city,
		forecast: barchart.New(40, 8),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(successStyle)),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.buildChart()
}

type dashboardDataMsg struct {
	user    *store.User
	garden  []store.GardenEntry
	history []store.HistoryEntry
	weather *weather.Report
	prefs   store.Preferences
}

func (d dashboardModel) loadData() tea.Cmd {
	s := d.store
	return func() tea.Msg {
		user, _ := s.CurrentUser()
		garden, _ := s.Garden()
		history, _ := s.History()
		w, _ := s.DashboardWeather()
		prefs, _ := s.Preferences()

		return dashboardDataMsg{
			user:    user,
			garden:  garden,
			history: history,
			weather: w,
			prefs:   prefs,
		}
	}
}

// leave drops the pending lookup from view. The lookup itself still
// completes and is saved.
func (d dashboardModel) leave() dashboardModel {
	d.seq++
	d.busy = false
	return d
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if d.formActive && d.form != nil {
		return d.updateForm(msg)
	}

	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.user = msg.user
		d.garden = msg.garden
		d.history = msg.history
		d.weather = msg.weather
		d.prefs = msg.prefs
		if d.cursor >= len(d.garden) {
			d.cursor = max(len(d.garden)-1, 0)
		}
		d.buildChart()
		return d, nil

	case settledMsg:
		return d.finishLookup(msg)

	case spinner.TickMsg:
		if !d.busy {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.garden)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Delete):
			return d.removeSelected()
		case key.Matches(msg, keys.Weather), key.Matches(msg, keys.City):
			return d.showForm()
		}
	}
	return d, nil
}

func (d dashboardModel) removeSelected() (dashboardModel, tea.Cmd) {
	if len(d.garden) == 0 {
		return d, nil
	}
	e := d.garden[d.cursor]
	if err := d.store.RemoveGardenEntry(e.ID); err != nil {
		return d, errorCmd("Remove error", err)
	}
	return d, tea.Batch(
		d.loadData(),
		statusCmd(fmt.Sprintf("Removed %s from your garden", e.Name), false),
	)
}

func (d dashboardModel) showForm() (dashboardModel, tea.Cmd) {
	if d.guard.Busy(wizard.OpWeatherLookup) {
		return d, statusCmd("Weather lookup already in progress", false)
	}
	switch {
	case d.weather != nil:
		*d.city = d.weather.City
	case d.prefs.DefaultCity != "":
		*d.city = d.prefs.DefaultCity
	}

	d.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City").
				Placeholder("Mumbai").
				Suggestions(d.wiz.Synthesizer().Table().Cities()).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("please enter a city name")
					}
					return nil
				}).
				Value(d.city),
		).Title("Weather"),
	).WithShowHelp(true).WithShowErrors(true)

	d.formActive = true
	return d, d.form.Init()
}

func (d dashboardModel) updateForm(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			d.formActive = false
			d.form = nil
			return d, nil
		}
	}

	form, cmd := d.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		d.form = f
	}

	if d.form.State == huh.StateCompleted {
		d.formActive = false
		return d.startLookup(strings.TrimSpace(*d.city))
	}

	return d, cmd
}

func (d dashboardModel) startLookup(city string) (dashboardModel, tea.Cmd) {
	if !d.guard.TryBegin(wizard.OpWeatherLookup) {
		return d, statusCmd("Weather lookup already in progress", false)
	}
	ver, err := d.wiz.WeatherVersion()
	if err != nil {
		d.guard.Done(wizard.OpWeatherLookup)
		return d, errorCmd("Weather error", err)
	}
	d.busy = true
	d.pendingCity = city
	d.pendingVer = ver
	return d, tea.Batch(
		d.spinner.Tick,
		settleAfter(wizard.OpWeatherLookup, d.seq, d.delays.WeatherLookup),
	)
}

func (d dashboardModel) finishLookup(msg settledMsg) (dashboardModel, tea.Cmd) {
	defer d.guard.Done(wizard.OpWeatherLookup)

	r, err := d.wiz.RefreshDashboard(d.pendingCity, d.pendingVer)
	if msg.seq != d.seq {
		return d, nil
	}
	d.busy = false
	if errors.Is(err, store.ErrVersionConflict) {
		return d, tea.Batch(d.loadData(), statusCmd("Weather changed during the lookup, showing the newer report", false))
	}
	if err != nil {
		return d, errorCmd("Weather error", err)
	}
	d.weather = &r
	d.buildChart()
	return d, statusCmd("Weather updated for "+r.City, false)
}

func (d *dashboardModel) buildChart() {
	if d.weather == nil || len(d.weather.Forecast) == 0 {
		return
	}
	chartWidth := d.width/2 - 8
	if chartWidth < 28 {
		chartWidth = 28
	}

	d.forecast = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for _, f := range d.weather.Forecast {
		style := lipgloss.NewStyle().Foreground(colorAccent)
		if f.RainProbability >= 50 {
			style = lipgloss.NewStyle().Foreground(colorRain)
		}
		bars = append(bars, barchart.BarData{
			Label: truncate(f.Day, 4),
			Values: []barchart.BarValue{{
				Name:  f.Condition,
				Value: float64(max(f.High, 0)),
				Style: style,
			}},
		})
	}

	d.forecast.PushAll(bars)
	d.forecast.Draw()
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	welcome := d.renderWelcome()

	half := contentWidth / 2
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderWeatherPanel(half),
		d.renderForecastPanel(contentWidth-half),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		welcome,
		top,
		d.renderGardenPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderWelcome() string {
	name := "gardener"
	if d.user != nil {
		name = d.user.Name
	}
	setups := map[string]bool{}
	for _, e := range d.garden {
		if e.PartOfSetup() {
			setups[e.SetupName] = true
		}
	}
	stats := mutedStyle.Render(fmt.Sprintf("  %s · %s · %s",
		plural(len(d.garden), "plant"),
		plural(len(setups), "setup"),
		plural(len(d.history), "analysis"),
	))
	return " " + titleStyle.Render("Welcome back, "+name+"!") + stats
}

func (d dashboardModel) renderWeatherPanel(w int) string {
	title := titleStyle.Render("Weather")

	if d.busy {
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			d.spinner.View()+" Looking up "+d.pendingCity+"...",
		))
	}

	if d.weather == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No weather yet"),
			mutedStyle.Render("Press w to look up your city"),
		))
	}

	r := d.weather
	rows := []string{
		title + "  " + highlightStyle.Render(r.City),
		fmt.Sprintf("%s %s  %s", weather.Icon(r.Condition), r.Condition, accentStyle.Render(fmt.Sprintf("%d°C", r.Temperature))),
		mutedStyle.Render(r.Description),
		fmt.Sprintf("Feels like %d°C · Humidity %d%% · Wind %d km/h", r.FeelsLike, r.Humidity, r.WindSpeed),
		fmt.Sprintf("Rain %d%%", r.RainProbability),
	}
	if gc := r.GrowingConditions; len(gc.Favorable) > 0 {
		rows = append(rows, successStyle.Render("✓ "+gc.Favorable[0]))
	}
	if gc := r.GrowingConditions; len(gc.Challenges) > 0 {
		rows = append(rows, warningStyle.Render("! "+gc.Challenges[0]))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderForecastPanel(w int) string {
	title := titleStyle.Render("7-day forecast")
	if d.weather == nil || len(d.weather.Forecast) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No forecast"),
		))
	}
	var lows []string
	for _, f := range d.weather.Forecast {
		lows = append(lows, fmt.Sprintf("%d/%d", f.High, f.Low))
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		d.forecast.View(),
		mutedStyle.Render(strings.Join(lows, " ")),
	))
}

func (d dashboardModel) renderGardenPanel(w int) string {
	title := titleStyle.Render("My Garden")
	if len(d.garden) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No plants yet. Press 2 to analyze a space."),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := d.now()
	rows := []string{title}
	for i, e := range d.garden {
		line := fmt.Sprintf("%s %-18s %-16s %s",
			catalog.Emoji(e.Type),
			truncate(e.Name, 18),
			truncate(e.SpaceName, 16),
			plural(e.DaysGrowing(now), "day"),
		)
		if e.PartOfSetup() {
			line += tagStyle.Render(e.SetupName)
		}
		rows = append(rows, cursorRow(i == d.cursor, line))
	}
	rows = append(rows, "", mutedStyle.Render("  d: remove  w: weather"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Analyses")
	if len(d.history) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No analyses yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	rows := []string{title}
	for _, h := range d.history[:min(len(d.history), recentLimit)] {
		rows = append(rows, fmt.Sprintf("  %s  %-18s %-14s %s",
			formatDateTime(h.Date),
			truncate(h.SpaceName, 18),
			truncate(h.Location, 14),
			plural(h.PlantsFound, "plant"),
		))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
