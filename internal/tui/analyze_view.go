package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/recommend"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

var busyText = map[wizard.Op]string{
	wizard.OpCityEntry:       "Fetching weather data...",
	wizard.OpImageAnalysis:   "Analyzing your image...",
	wizard.OpRecommendations: "Finding the best plants for your space...",
}

func (m analyzeModel) view() string {
	w := m.width - 4
	if !m.started || m.ctx == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Preparing a new analysis..."))
	}

	progress := m.renderProgress()

	if m.formActive && m.form != nil {
		rows := []string{progress, "", m.form.View()}
		if m.formKind == formImage && m.verdict != nil && !m.verdict.Accepted {
			rows = append(rows, "", errorStyle.Render("✗ "+m.verdict.Reason))
		}
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	var body string
	switch m.step {
	case wizard.StepSpaceType:
		body = m.renderSpaceStep()
	case wizard.StepWeather:
		body = m.renderWeatherStep()
	case wizard.StepImage:
		body = m.renderImageStep()
	case wizard.StepAnalysis:
		body = m.renderAnalysisStep()
	case wizard.StepRecommendations:
		body = m.renderResults(w)
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, progress, "", body))
}

func (m analyzeModel) renderProgress() string {
	var parts []string
	for _, s := range wizard.Steps {
		label := fmt.Sprintf("%d %s", int(s)+1, s)
		switch {
		case s < m.step:
			parts = append(parts, stepDoneStyle.Render("✓ "+label))
		case s == m.step:
			parts = append(parts, stepCurrentStyle.Render("● "+label))
		default:
			parts = append(parts, stepTodoStyle.Render("○ "+label))
		}
	}
	line := strings.Join(parts, mutedStyle.Render("  ›  "))
	if m.rerun {
		line += "  " + tagStyle.Render("re-run")
	}
	return line
}

func (m analyzeModel) renderBusy() string {
	return m.spinner.View() + " " + busyText[m.busy]
}

func (m analyzeModel) renderSpaceStep() string {
	rows := []string{titleStyle.Render("What kind of space are you working with?"), ""}
	for i, t := range space.Types {
		line := fmt.Sprintf("%s %-18s %s", t.Icon, t.Name, mutedStyle.Render(t.Description))
		rows = append(rows, cursorRow(i == m.typeCursor, line))
		if i == m.typeCursor {
			rows = append(rows, mutedStyle.Render("     "+strings.Join(t.Characteristics, " · ")))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  ↑/↓: choose  enter: select  n: start over"))
	return joinRows(rows...)
}

func (m analyzeModel) renderWeatherStep() string {
	sp := m.ctx.Space.Normalized()
	rows := []string{
		titleStyle.Render("Weather for " + sp.SpaceName),
		subtitleStyle.Render("Look up your city or enter today's conditions by hand."),
		"",
	}

	if m.busy != "" {
		rows = append(rows, m.renderBusy())
		return joinRows(rows...)
	}

	if r := m.ctx.Weather; r != nil {
		rows = append(rows, weatherSummary(r))
		rows = append(rows, "", mutedStyle.Render("  enter: continue  c: city lookup  m: manual entry  esc: back"))
	} else {
		rows = append(rows, mutedStyle.Render("No weather yet."))
		rows = append(rows, "", mutedStyle.Render("  c: city lookup  m: manual entry  esc: back"))
	}
	for _, f := range []string{weather.FieldCity, weather.FieldTemperature, weather.FieldFeelsLike, weather.FieldHumidity, weather.FieldCondition, weather.FieldWindSpeed, weather.FieldRainProbability} {
		if msg, ok := m.manualErrs[f]; ok {
			rows = append(rows, errorStyle.Render("  ✗ "+msg))
		}
	}
	return joinRows(rows...)
}

func weatherSummary(r *weather.Report) string {
	line := fmt.Sprintf("%s %s in %s, %d°C, humidity %d%%, rain %d%%",
		weather.Icon(r.Condition), r.Condition, highlightStyle.Render(r.City),
		r.Temperature, r.Humidity, r.RainProbability)
	if r.Source == weather.SourceManual {
		line += mutedStyle.Render(" (entered manually)")
	}
	return line
}

func (m analyzeModel) renderImageStep() string {
	rows := []string{
		titleStyle.Render("Show us the space"),
		subtitleStyle.Render("Pick a photo of the area you want to plant."),
		"",
	}
	if m.ctx.Weather != nil {
		rows = append(rows, weatherSummary(m.ctx.Weather), "")
	}
	if m.busy != "" {
		rows = append(rows, m.renderBusy())
		return joinRows(rows...)
	}
	if v := m.verdict; v != nil && !v.Accepted {
		rows = append(rows, errorStyle.Render("✗ "+v.Reason), "")
	}
	rows = append(rows, mutedStyle.Render("  enter: choose image  esc: back"))
	return joinRows(rows...)
}

func (m analyzeModel) renderAnalysisStep() string {
	rows := []string{titleStyle.Render("Analysis")}
	if u := m.ctx.Upload; u != nil {
		rows = append(rows, fmt.Sprintf("Image: %s (%s, %s)", highlightStyle.Render(u.Name), u.MIMEType, formatBytes(u.Size)))
		rows = append(rows, uploadVerdict(u.Result))
		if tips := classify.Tips(u.Result.SpaceTypeGuess); len(tips) > 0 {
			rows = append(rows, "", subtitleStyle.Render("Tips for this space"))
			rows = append(rows, bullets(tips, mutedStyle.Render)...)
		}
	}
	rows = append(rows, "")
	if m.busy != "" {
		rows = append(rows, m.renderBusy())
	} else {
		rows = append(rows, mutedStyle.Render("  enter: find plants  esc: back"))
	}
	return joinRows(rows...)
}

func uploadVerdict(r classify.Result) string {
	guess := r.SpaceTypeGuess
	if t, ok := space.TypeByID(guess); ok {
		guess = t.Name
	}
	line := successStyle.Render("✓ Looks like a "+guess) + " space"
	if r.Generic {
		line += mutedStyle.Render(" (generic file name, guessed broadly)")
	}
	return line
}

func (m analyzeModel) renderResults(w int) string {
	sp := m.ctx.Space.Normalized()
	cond := recommend.DeriveConditions(m.ctx.Weather)

	header := titleStyle.Render(fmt.Sprintf("Plants for %s", sp.SpaceName))
	meta := mutedStyle.Render(fmt.Sprintf("  %s · sun: %s · rain: %s",
		plural(len(m.shown), "match"), cond.Sunlight, cond.Rain))

	rows := []string{header + meta}
	switch m.ctx.Pass {
	case recommend.PassRelaxed:
		rows = append(rows, warningStyle.Render("Few exact matches for your sunlight, showing plants that fit the weather."))
	case recommend.PassFallback:
		rows = append(rows, warningStyle.Render("No close matches, showing easy-care plants."))
	}
	if f := *m.filter; f != *newFilter() {
		rows = append(rows, accentStyle.Render(fmt.Sprintf("Filters: sun %s · growth %s · care %s · season %s",
			f.Sunlight, f.GrowthSpeed, f.Maintenance, f.Season)))
	}
	rows = append(rows, "")

	if len(m.shown) == 0 {
		rows = append(rows, mutedStyle.Render("No plants match the current filters. Press f to refine."))
	}
	for i, p := range m.shown {
		line := fmt.Sprintf("%s %-20s %-10s sun:%-8s water:%-7s care:%-7s %s",
			catalog.Emoji(p.Type), truncate(p.Name, 20), p.Type,
			p.Sunlight, p.Water, p.Maintenance, p.GrowthDuration)
		if m.added[p.ID] {
			line += successStyle.Render(" ✓ added")
		}
		rows = append(rows, cursorRow(i == m.cursor, line))
		if i == m.cursor && m.expanded {
			rows = append(rows, m.renderPlantDetail(p, w)...)
		}
	}

	rows = append(rows, "", mutedStyle.Render("  enter: details  a: add  s: save top 6 as setup  f: refine  n: new analysis"))
	return joinRows(rows...)
}

func (m analyzeModel) renderPlantDetail(p catalog.PlantRecord, w int) []string {
	desc := p.Description
	if p.FullDescription != "" {
		desc = p.FullDescription
	}
	body := lipgloss.NewStyle().Width(max(w-12, 20)).Render(desc)
	var rows []string
	for _, line := range strings.Split(body, "\n") {
		rows = append(rows, "      "+mutedStyle.Render(line))
	}
	rows = append(rows, "      "+highlightStyle.Render("Tip: ")+p.SpaceTips)
	rows = append(rows, "      "+mutedStyle.Render(fmt.Sprintf("Growth: %s · Season: %s", p.GrowthSpeed, p.Season)))
	return rows
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
