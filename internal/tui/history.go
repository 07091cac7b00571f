package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

type historyModel struct {
	store  *store.Store
	wiz    *wizard.Controller
	width  int
	height int

	entries []store.HistoryEntry
	cursor  int
	chart   barchart.Model

	formActive bool
	form       *huh.Form
	confirmed  *bool
}

func newHistoryModel(d Deps) historyModel {
	ok := false
	return historyModel{
		store:     d.Store,
		wiz:       d.Wizard,
		chart:     barchart.New(60, 8),
		confirmed: &ok,
	}
}

func (h *historyModel) setSize(w, hgt int) {
	h.width = w
	h.height = hgt
	h.buildChart()
}

func (h historyModel) reset() historyModel {
	h.entries = nil
	h.cursor = 0
	h.formActive = false
	h.form = nil
	h.buildChart()
	return h
}

type historyDataMsg struct {
	entries []store.HistoryEntry
}

func (h historyModel) refresh() tea.Cmd {
	s := h.store
	return func() tea.Msg {
		entries, err := s.History()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("History error: %v", err), isError: true}
		}
		return historyDataMsg{entries: entries}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if h.formActive && h.form != nil {
		return h.updateForm(msg)
	}

	switch msg := msg.(type) {
	case historyDataMsg:
		h.entries = msg.entries
		if h.cursor >= len(h.entries) {
			h.cursor = max(len(h.entries)-1, 0)
		}
		h.buildChart()
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if h.cursor > 0 {
				h.cursor--
			}
		case key.Matches(msg, keys.Down):
			if h.cursor < len(h.entries)-1 {
				h.cursor++
			}
		case key.Matches(msg, keys.Enter):
			if len(h.entries) == 0 {
				return h, nil
			}
			ctx := h.wiz.Rerun(h.entries[h.cursor])
			return h, func() tea.Msg { return rerunMsg{ctx: ctx} }
		case key.Matches(msg, keys.Delete):
			if len(h.entries) == 0 {
				return h, nil
			}
			e := h.entries[h.cursor]
			if err := h.store.DeleteHistory(e.ID); err != nil {
				return h, errorCmd("Delete error", err)
			}
			return h, tea.Batch(h.refresh(), statusCmd("Analysis deleted", false))
		case key.Matches(msg, keys.Clear):
			if len(h.entries) == 0 {
				return h, nil
			}
			return h.showConfirm()
		}
	}
	return h, nil
}

func (h historyModel) showConfirm() (historyModel, tea.Cmd) {
	*h.confirmed = false
	h.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear all %s?", plural(len(h.entries), "analysis"))).
				Description("Saved garden plants are kept.").
				Affirmative("Clear").
				Negative("Keep").
				Value(h.confirmed),
		),
	).WithShowHelp(true)

	h.formActive = true
	return h, h.form.Init()
}

func (h historyModel) updateForm(msg tea.Msg) (historyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			h.formActive = false
			h.form = nil
			return h, nil
		}
	}

	form, cmd := h.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		h.form = f
	}

	if h.form.State == huh.StateCompleted {
		h.formActive = false
		if !*h.confirmed {
			return h, nil
		}
		if err := h.store.ClearHistory(); err != nil {
			return h, errorCmd("Clear error", err)
		}
		return h, tea.Batch(h.refresh(), statusCmd("History cleared", false))
	}

	return h, cmd
}

// buildChart plots plants found per analysis, oldest on the left.
func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	h.chart = barchart.New(chartWidth, 8)

	var bars []barchart.BarData
	for i := len(h.entries) - 1; i >= 0; i-- {
		e := h.entries[i]
		bars = append(bars, barchart.BarData{
			Label: e.Date.Local().Format("01/02"),
			Values: []barchart.BarValue{{
				Name:  e.SpaceName,
				Value: float64(e.PlantsFound),
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4
	title := titleStyle.Render("Analysis History")

	if h.formActive && h.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", h.form.View()),
		)
	}

	if len(h.entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No analyses yet. Press 2 to analyze a space."),
		))
	}

	header := title + mutedStyle.Render("  "+plural(len(h.entries), "analysis"))

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-13s %-20s %-16s %-14s %7s  %s", "Date", "Space", "Type", "Location", "Plants", "Weather")),
		mutedStyle.Render("  " + strings.Repeat("─", min(w-6, 90))),
	}
	for i, e := range h.entries {
		rows = append(rows, cursorRow(i == h.cursor, fmt.Sprintf("%-13s %-20s %-16s %-14s %7d  %s",
			formatDateTime(e.Date),
			truncate(e.SpaceName, 20),
			truncate(spaceTypeName(e.SpaceType), 16),
			truncate(e.Location, 14),
			e.PlantsFound,
			historyWeather(e.Weather),
		)))
	}

	detail := h.renderDetail()
	nav := mutedStyle.Render("  enter: re-run  d: delete  x: clear all")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", h.chart.View(), "", strings.Join(rows, "\n"), "", detail, "", nav,
		),
	)
}

func (h historyModel) renderDetail() string {
	e := h.entries[h.cursor]
	var rows []string
	if e.Image != nil {
		rows = append(rows, fmt.Sprintf("Image: %s (%s)", highlightStyle.Render(e.Image.FileName), formatBytes(e.Image.Size)))
		if len(e.Image.Tips) > 0 {
			rows = append(rows, mutedStyle.Render("Tip: "+e.Image.Tips[0]))
		}
	}
	if e.Weather != nil {
		rows = append(rows, weatherSummary(e.Weather))
	}
	return strings.Join(rows, "\n")
}

func spaceTypeName(id string) string {
	if t, ok := space.TypeByID(id); ok {
		return t.Name
	}
	return id
}

func historyWeather(r *weather.Report) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%s %d°C", weather.Icon(r.Condition), r.Temperature)
}
