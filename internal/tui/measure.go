package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/wizard"
)

// measureModel sizes a space from line segments measured on a photo.
type measureModel struct {
	store  *store.Store
	wiz    *wizard.Controller
	guard  *wizard.Guard
	delays wizard.Delays
	rng    space.IntN
	width  int
	height int

	saved    []store.SpaceAnalysis
	result   *store.SpaceAnalysis
	sunlight *space.SunlightProfile
	ignored  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	imagePath *string
	spaceType *string
	segments  *string
	refLength *string
	refObject *string

	busy    bool
	seq     int
	pending struct {
		spaceType string
		fileName  string
		m         space.Measurement
	}
	spinner spinner.Model
}

func newMeasureModel(d Deps, guard *wizard.Guard) measureModel {
	path, typ, segs, ref, obj := "", space.Types[0].ID, "", "", ""
	return measureModel{
		store:     d.Store,
		wiz:       d.Wizard,
		guard:     guard,
		delays:    d.Delays,
		rng:       d.Rand,
		imagePath: &path,
		spaceType: &typ,
		segments:  &segs,
		refLength: &ref,
		refObject: &obj,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(successStyle)),
	}
}

func (m *measureModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type measureDataMsg struct {
	saved []store.SpaceAnalysis
}

func (m measureModel) refresh() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		saved, _ := s.SpaceAnalyses()
		return measureDataMsg{saved: saved}
	}
}

func (m measureModel) leave() measureModel {
	m.seq++
	m.busy = false
	return m
}

func (m measureModel) reset() measureModel {
	m = m.leave()
	m.saved = nil
	m.result = nil
	m.sunlight = nil
	m.formActive = false
	m.form = nil
	return m
}

func (m measureModel) update(msg tea.Msg) (measureModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case measureDataMsg:
		m.saved = msg.saved
		return m, nil

	case settledMsg:
		return m.settle(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return m.showForm()
		case key.Matches(msg, keys.Back):
			m.result = nil
			m.sunlight = nil
		}
	}
	return m, nil
}

func (m measureModel) showForm() (measureModel, tea.Cmd) {
	types := make([]huh.Option[string], 0, len(space.Types))
	for _, t := range space.Types {
		types = append(types, huh.NewOption(t.Icon+" "+t.Name, t.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Photo of the space").
				Placeholder("optional, up to 15 MB").
				Validate(m.checkPhoto).
				Value(m.imagePath),
			huh.NewSelect[string]().Title("Space type").Options(types...).Value(m.spaceType),
		).Title("Space"),
		huh.NewGroup(
			huh.NewInput().
				Title("Line lengths (pixels)").
				Description("The first line is your reference, e.g. 120, 340, 210").
				Validate(validateSegments).
				Value(m.segments),
			huh.NewInput().
				Title("Reference length (metres)").
				Validate(validateReference).
				Value(m.refLength),
			huh.NewInput().
				Title("Reference object").
				Placeholder("door, tile, bench...").
				Value(m.refObject),
		).Title("Measurements"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m measureModel) checkPhoto(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil
	}
	u, err := classify.Inspect(expandHome(p))
	if err != nil {
		return err
	}
	if res := m.wiz.CheckMeasurementUpload(u); !res.Accepted {
		return errors.New(res.Reason)
	}
	return nil
}

func parseSegments(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func validateSegments(s string) error {
	segs, err := parseSegments(s)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return space.ErrNoSegments
	}
	return nil
}

func validateReference(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return space.ErrNoReference
	}
	return nil
}

func (m measureModel) updateForm(msg tea.Msg) (measureModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.start()
	}

	return m, cmd
}

func (m measureModel) start() (measureModel, tea.Cmd) {
	segs, err := parseSegments(*m.segments)
	if err != nil {
		return m, errorCmd("Measurement error", err)
	}
	ref, _ := strconv.ParseFloat(strings.TrimSpace(*m.refLength), 64)

	meas := space.Measurement{ReferenceLength: ref, ReferenceObject: strings.TrimSpace(*m.refObject)}
	m.ignored = 0
	for _, px := range segs {
		if !meas.AddSegment(px) {
			m.ignored++
		}
	}
	if err := meas.Validate(); err != nil {
		return m, statusCmd(err.Error(), true)
	}

	if !m.guard.TryBegin(wizard.OpMeasurement) {
		return m, nil
	}
	m.busy = true
	m.pending.spaceType = *m.spaceType
	m.pending.fileName = ""
	if p := strings.TrimSpace(*m.imagePath); p != "" {
		m.pending.fileName = filepath.Base(p)
	}
	m.pending.m = meas
	return m, tea.Batch(
		m.spinner.Tick,
		settleAfter(wizard.OpMeasurement, m.seq, m.delays.Measurement),
	)
}

func (m measureModel) settle(msg settledMsg) (measureModel, tea.Cmd) {
	defer m.guard.Done(wizard.OpMeasurement)

	saved, err := m.wiz.MeasureSpace(m.pending.spaceType, m.pending.fileName, m.pending.m)
	if msg.seq != m.seq {
		return m, nil
	}
	m.busy = false
	if err != nil {
		return m, errorCmd("Measurement error", err)
	}
	sun := space.Sunlight(saved.SpaceType, m.rng)
	m.result = &saved
	m.sunlight = &sun

	var notice tea.Cmd
	if m.ignored > 0 {
		notice = statusCmd(fmt.Sprintf("Ignored %s of %dpx or less", plural(m.ignored, "line"), space.MinSegmentPixels), false)
	}
	return m, tea.Batch(m.refresh(), notice)
}

func (m measureModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Measure Your Space")

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	if m.busy {
		return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", m.spinner.View()+" Measuring and assessing your space...",
		))
	}

	if m.result != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", m.renderResult(), "", m.renderSunlight(), "",
			mutedStyle.Render("  enter: measure again  esc: back"),
		))
	}

	rows := []string{
		title,
		subtitleStyle.Render("Measure lines on a photo, give the real length of the first one, and get a layout plan."),
		"",
	}
	if len(m.saved) == 0 {
		rows = append(rows, mutedStyle.Render("No measurements yet"))
	} else {
		rows = append(rows, subtitleStyle.Render("Previous measurements"))
		for _, a := range m.saved[:min(len(m.saved), 5)] {
			rows = append(rows, fmt.Sprintf("  %s  %-16s %8.2f m²  %s",
				formatDateTime(a.Date), truncate(spaceTypeName(a.SpaceType), 16),
				a.Assessment.Area, strings.ReplaceAll(a.Assessment.GardeningType, "_", " ")))
		}
	}
	rows = append(rows, "", mutedStyle.Render("  enter: new measurement"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m measureModel) renderResult() string {
	r := m.result
	a := r.Assessment

	var lengths []string
	for i, l := range r.RealLengths {
		lengths = append(lengths, fmt.Sprintf("#%d %.2fm", i+1, l))
	}

	rows := []string{
		fmt.Sprintf("%s  %s", highlightStyle.Render(spaceTypeName(r.SpaceType)), mutedStyle.Render(r.FileName)),
		"Lines: " + strings.Join(lengths, "  "),
		fmt.Sprintf("Estimated area: %s", accentStyle.Render(fmt.Sprintf("%.2f m²", a.Area))),
		fmt.Sprintf("Gardening type: %s", successStyle.Render(strings.ReplaceAll(a.GardeningType, "_", " "))),
		fmt.Sprintf("Capacity: %s", a.PlantCapacity),
		fmt.Sprintf("Layout: %s", a.Layout),
	}
	rows = append(rows, bullets(a.Recommendations, mutedStyle.Render)...)
	return strings.Join(rows, "\n")
}

func (m measureModel) renderSunlight() string {
	s := m.sunlight
	if s == nil {
		return ""
	}
	rows := []string{
		subtitleStyle.Render("Sunlight") + "  " + warningStyle.Render(fmt.Sprintf("☀ ~%d hours of direct sun", s.TotalSunHours)),
	}
	for _, z := range s.Zones {
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %dh", strings.ReplaceAll(z.Type, "_", " "), z.Hours)))
	}
	rows = append(rows, bullets(s.Recommendations, mutedStyle.Render)...)
	return strings.Join(rows, "\n")
}
