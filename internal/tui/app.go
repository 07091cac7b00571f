package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/account"
	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/events"
	"github.com/sadopc/sprout/internal/export"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

// Deps are the services the views run against. Store is required; the rest
// default to in-process instances over Store.
type Deps struct {
	Store   *store.Store
	Wizard  *wizard.Controller
	Account *account.Service
	Bus     *events.Bus
	Delays  wizard.Delays
	// Rand jitters the sunlight estimate of the measurement view.
	Rand space.IntN
	Now  func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Rand == nil {
		d.Rand = weather.NewRand(0)
	}
	if d.Wizard == nil {
		synth := weather.NewSynthesizer(weather.DefaultTable(), weather.NewRand(0))
		d.Wizard = wizard.New(d.Store, catalog.Default(), synth, wizard.WithClock(d.Now))
	}
	if d.Account == nil {
		d.Account = account.NewService(d.Store, nil)
	}
	return d
}

// App is the root Bubble Tea model.
type App struct {
	deps   Deps
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	user     *store.User
	gating   bool
	returnTo viewState
	gate     authModel

	dashboard dashboardModel
	analyze   analyzeModel
	history   historyModel
	measure   measureModel
	guides    guidesModel
	settings  settingsModel

	sub *events.Subscription

	help        help.Model
	status      string
	statusIsErr bool
}

func NewApp(d Deps) App {
	d = d.withDefaults()

	h := help.New()
	h.ShowAll = false

	guard := &wizard.Guard{}

	a := App{
		deps:       d,
		activeView: viewDashboard,
		gate:       newAuthModel(d.Account),
		dashboard:  newDashboardModel(d, guard),
		analyze:    newAnalyzeModel(d, guard),
		history:    newHistoryModel(d),
		measure:    newMeasureModel(d, guard),
		guides:     newGuidesModel(),
		settings:   newSettingsModel(d.Store),
		help:       h,
	}

	if u, err := d.Account.Current(); err == nil {
		a.user = u
	}
	if d.Bus != nil {
		if sub, err := d.Bus.Subscribe(16, events.WeatherUpdated, events.AnalysisCompleted, events.HistoryChanged, events.GardenChanged); err == nil {
			a.sub = sub
		}
	}
	return a
}

// Close releases the bus subscription.
func (a App) Close() {
	if a.sub != nil {
		a.sub.Close()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.Init(),
		a.settings.refresh(),
		waitForEvent(a.sub),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.gate.setSize(a.width, contentHeight)
		a.dashboard.setSize(a.width, contentHeight)
		a.analyze.setSize(a.width, contentHeight)
		a.history.setSize(a.width, contentHeight)
		a.measure.setSize(a.width, contentHeight)
		a.guides.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Logout):
			if a.user == nil {
				return a, nil
			}
			return a, a.logout()
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewAnalyze)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewHistory)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewMeasure)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewGuides)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case settledMsg:
		var cmd tea.Cmd
		switch msg.op {
		case wizard.OpWeatherLookup:
			a.dashboard, cmd = a.dashboard.update(msg)
		case wizard.OpMeasurement:
			a.measure, cmd = a.measure.update(msg)
		default:
			a.analyze, cmd = a.analyze.update(msg)
		}
		return a, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		cmds = append(cmds, cmd)
		a.analyze, cmd = a.analyze.update(msg)
		cmds = append(cmds, cmd)
		a.measure, cmd = a.measure.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case busEventMsg:
		cmds = append(cmds, waitForEvent(a.sub), a.dashboard.loadData())
		switch msg.event.Topic {
		case events.AnalysisCompleted, events.HistoryChanged:
			cmds = append(cmds, a.history.refresh())
		}
		return a, tea.Batch(cmds...)

	case signedInMsg:
		u := msg.user
		a.user = &u
		a.gating = false
		a.activeView = a.returnTo
		a.status = "Welcome, " + u.Name
		a.statusIsErr = false
		a.analyze = a.analyze.reset()
		return a, tea.Batch(a.refreshCurrentView(), a.dashboard.loadData())

	case signedOutMsg:
		a.user = nil
		a.gating = false
		a.analyze = a.analyze.reset()
		a.history = a.history.reset()
		a.measure = a.measure.reset()
		if a.activeView.requiresUser() {
			a.activeView = viewDashboard
		}
		a.status = "Logged out"
		a.statusIsErr = false
		return a, a.dashboard.loadData()

	case rerunMsg:
		a = a.leave(a.activeView)
		a.analyze = a.analyze.resume(msg.ctx)
		a.activeView = viewAnalyze
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusIsErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// switchTo activates v, routing through the sign-in gate when v needs a
// user. The gate returns to v after a successful sign-in.
func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	if v != a.activeView {
		a = a.leave(a.activeView)
	}
	a.activeView = v
	if v.requiresUser() && a.user == nil {
		a.gating = true
		a.returnTo = v
		a.gate = a.gate.reset()
		return a, nil
	}
	a.gating = false
	return a, a.refreshCurrentView()
}

// leave discards pending results of v. Store writes already issued by v
// are kept.
func (a App) leave(v viewState) App {
	switch v {
	case viewDashboard:
		a.dashboard = a.dashboard.leave()
	case viewAnalyze:
		a.analyze = a.analyze.leave()
	case viewMeasure:
		a.measure = a.measure.leave()
	}
	return a
}

func (a App) logout() tea.Cmd {
	acct := a.deps.Account
	return func() tea.Msg {
		if err := acct.Logout(); err != nil {
			return statusMsg{text: fmt.Sprintf("Logout error: %v", err), isError: true}
		}
		return signedOutMsg{}
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if a.gating {
		if k, ok := msg.(tea.KeyMsg); ok && !a.gate.formActive && key.Matches(k, keys.Back) {
			return a.switchTo(viewDashboard)
		}
		a.gate, cmd = a.gate.update(msg)
		return a, cmd
	}
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewAnalyze:
		a.analyze, cmd = a.analyze.update(msg)
	case viewHistory:
		a.history, cmd = a.history.update(msg)
	case viewMeasure:
		a.measure, cmd = a.measure.update(msg)
	case viewGuides:
		a.guides, cmd = a.guides.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.gating {
		return a.gate.formActive
	}
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.formActive
	case viewAnalyze:
		return a.analyze.formActive
	case viewHistory:
		return a.history.formActive
	case viewMeasure:
		return a.measure.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewAnalyze:
		return a.analyze.refresh()
	case viewHistory:
		return a.history.refresh()
	case viewMeasure:
		return a.measure.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch {
	case a.gating:
		content = a.gate.view(viewNames[a.returnTo])
	case a.activeView == viewDashboard:
		content = a.dashboard.view()
	case a.activeView == viewAnalyze:
		content = a.analyze.view()
	case a.activeView == viewHistory:
		content = a.history.view()
	case a.activeView == viewMeasure:
		content = a.measure.view()
	case a.activeView == viewGuides:
		content = a.guides.view()
	case a.activeView == viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("🌱 sprout")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusIsErr {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	who := mutedStyle.Render(" ○ guest")
	if a.user != nil {
		who = successStyle.Render(" ● " + a.user.Name)
	}

	left := footerStyle.Render(helpView)
	right := status + who

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

type exportChoice struct {
	label  string
	garden bool
	ext    string
}

var exportChoices = []exportChoice{
	{"Garden (CSV)", true, "csv"},
	{"Garden (JSON)", true, "json"},
	{"History (CSV)", false, "csv"},
	{"History (JSON)", false, "json"},
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, c := range exportChoices {
		rows = append(rows, cursorRow(i == a.exportCursor, c.label))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportChoices)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportChoices[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) exportDir() string {
	if prefs, err := a.deps.Store.Preferences(); err == nil && prefs.ExportDir != "" {
		return prefs.ExportDir
	}
	home, _ := os.UserHomeDir()
	return home
}

func (a App) doExport(c exportChoice) tea.Cmd {
	s := a.deps.Store
	now := a.deps.Now()
	dir := a.exportDir()
	return func() tea.Msg {
		dateStr := now.Format("2006-01-02")

		if c.garden {
			entries, err := s.Garden()
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			path := filepath.Join(dir, fmt.Sprintf("sprout-garden-%s.%s", dateStr, c.ext))
			if c.ext == "csv" {
				err = export.GardenToCSV(entries, now, path)
			} else {
				err = export.GardenToJSON(entries, now, path)
			}
			if err != nil {
				return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
			}
			return exportDoneMsg{path: path}
		}

		entries, err := s.History()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(dir, fmt.Sprintf("sprout-history-%s.%s", dateStr, c.ext))
		if c.ext == "csv" {
			err = export.HistoryToCSV(entries, path)
		} else {
			err = export.HistoryToJSON(entries, now, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
