package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/weather"
	"github.com/sadopc/sprout/internal/wizard"
)

type analyzeForm int

const (
	formNone analyzeForm = iota
	formSpaceName
	formCity
	formManual
	formImage
	formRefine
)

// analyzeModel drives the wizard: space, weather, image, analysis and
// recommendations.
type analyzeModel struct {
	wiz    *wizard.Controller
	store  *store.Store
	guard  *wizard.Guard
	delays wizard.Delays
	width  int
	height int

	started bool
	ctx     *wizard.Context
	step    wizard.Step
	rerun   bool

	typeCursor int
	verdict    *classify.Result
	manualErrs weather.FieldErrors

	shown    []catalog.PlantRecord
	cursor   int
	expanded bool
	added    map[int]bool

	formActive bool
	form       *huh.Form
	formKind   analyzeForm

	// Form values as pointers (survive value copies)
	spaceName *string
	city      *string
	imagePath *string
	manual    *weather.ManualInput
	filter    *catalog.Filter

	busy          wizard.Op
	seq           int
	pendingCtx    *wizard.Context
	pendingCity   string
	pendingUpload classify.Upload
	spinner       spinner.Model
}

func newAnalyzeModel(d Deps, guard *wizard.Guard) analyzeModel {
	name, city, path := "", "", ""
	return analyzeModel{
		wiz:       d.Wizard,
		store:     d.Store,
		guard:     guard,
		delays:    d.Delays,
		added:     map[int]bool{},
		spaceName: &name,
		city:      &city,
		imagePath: &path,
		manual:    &weather.ManualInput{},
		filter:    newFilter(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(successStyle)),
	}
}

func newFilter() *catalog.Filter {
	return &catalog.Filter{Sunlight: "all", GrowthSpeed: "all", Maintenance: "all", Season: "all"}
}

func (m *analyzeModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type analyzeStartedMsg struct {
	ctx *wizard.Context
	err error
}

// refresh starts a new wizard run unless one is in progress.
func (m analyzeModel) refresh() tea.Cmd {
	if m.started {
		return nil
	}
	wiz, s := m.wiz, m.store
	return func() tea.Msg {
		prefs, err := s.Preferences()
		if err != nil {
			return analyzeStartedMsg{err: err}
		}
		ctx, err := wiz.Start(prefs.UseDashboardWeather)
		return analyzeStartedMsg{ctx: ctx, err: err}
	}
}

// reset abandons the current run. Pending results are discarded.
func (m analyzeModel) reset() analyzeModel {
	m.seq++
	m.busy = ""
	m.started = false
	m.ctx = nil
	m.step = wizard.StepSpaceType
	m.rerun = false
	m.typeCursor = 0
	m.verdict = nil
	m.manualErrs = nil
	m.shown = nil
	m.cursor = 0
	m.expanded = false
	m.added = map[int]bool{}
	m.formActive = false
	m.form = nil
	m.filter = newFilter()
	return m
}

// resume shows the recommendations of a rebuilt context.
func (m analyzeModel) resume(ctx *wizard.Context) analyzeModel {
	m = m.reset()
	m.started = true
	m.ctx = ctx
	m.step = wizard.StepRecommendations
	m.rerun = true
	m.applyFilter()
	return m
}

func (m analyzeModel) leave() analyzeModel {
	m.seq++
	m.busy = ""
	return m
}

// goTo moves to step, or to the latest earlier step whose inputs are
// present.
func (m analyzeModel) goTo(step wizard.Step) analyzeModel {
	m.seq++
	m.busy = ""
	m.step, m.ctx = m.wiz.Enter(step, m.ctx)
	m.cursor = 0
	m.expanded = false
	return m
}

func (m analyzeModel) update(msg tea.Msg) (analyzeModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case analyzeStartedMsg:
		if msg.err != nil {
			return m, errorCmd("Wizard error", msg.err)
		}
		m.started = true
		m.ctx = msg.ctx
		m.step = wizard.StepSpaceType
		return m, nil

	case settledMsg:
		return m.settle(msg)

	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.started || m.ctx == nil {
			return m, nil
		}
		if key.Matches(msg, keys.New) {
			m = m.reset()
			return m, tea.Batch(m.refresh(), statusCmd("Started a new analysis", false))
		}
		if m.busy != "" {
			return m, nil
		}
		if key.Matches(msg, keys.Back) && m.step > wizard.StepSpaceType {
			prev := m.step - 1
			if prev == wizard.StepAnalysis {
				prev = wizard.StepImage
			}
			m = m.goTo(prev)
			return m, nil
		}
		switch m.step {
		case wizard.StepSpaceType:
			return m.updateSpaceStep(msg)
		case wizard.StepWeather:
			return m.updateWeatherStep(msg)
		case wizard.StepImage:
			if key.Matches(msg, keys.Enter) {
				return m.showImageForm()
			}
		case wizard.StepAnalysis:
			if key.Matches(msg, keys.Enter) {
				return m.startOp(wizard.OpRecommendations)
			}
		case wizard.StepRecommendations:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m analyzeModel) updateSpaceStep(msg tea.KeyMsg) (analyzeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
		if m.typeCursor < len(space.Types)-1 {
			m.typeCursor++
		}
	case key.Matches(msg, keys.Enter):
		return m.showSpaceForm()
	}
	return m, nil
}

func (m analyzeModel) updateWeatherStep(msg tea.KeyMsg) (analyzeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.City):
		return m.showCityForm()
	case key.Matches(msg, keys.Manual):
		return m.showManualForm()
	case key.Matches(msg, keys.Enter):
		if m.ctx.Weather == nil {
			return m.showCityForm()
		}
		m = m.goTo(wizard.StepImage)
	}
	return m, nil
}

func (m analyzeModel) updateResults(msg tea.KeyMsg) (analyzeModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.shown)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		m.expanded = !m.expanded
	case key.Matches(msg, keys.Filter):
		return m.showRefineForm()
	case key.Matches(msg, keys.Add):
		if len(m.shown) == 0 {
			return m, nil
		}
		p := m.shown[m.cursor]
		if _, err := m.wiz.AddToGarden(m.ctx, p); err != nil {
			return m, errorCmd("Garden error", err)
		}
		m.added[p.ID] = true
		return m, statusCmd(fmt.Sprintf("Added %s to your garden", p.Name), false)
	case key.Matches(msg, keys.Save):
		saved, err := m.wiz.SaveCompleteSetup(m.ctx, m.shown)
		if err != nil {
			return m, errorCmd("Garden error", err)
		}
		if len(saved) == 0 {
			return m, statusCmd("Nothing to save with the current filters", true)
		}
		for _, e := range saved {
			m.added[e.PlantID] = true
		}
		return m, statusCmd(fmt.Sprintf("Saved %s as %q", plural(len(saved), "plant"), saved[0].SetupName), false)
	}
	return m, nil
}

func (m *analyzeModel) applyFilter() {
	if m.ctx == nil {
		m.shown = nil
		return
	}
	m.shown = m.filter.Apply(m.ctx.Recommendations)
	if m.cursor >= len(m.shown) {
		m.cursor = max(len(m.shown)-1, 0)
	}
}

// --- Async steps ---

func (m analyzeModel) startOp(op wizard.Op) (analyzeModel, tea.Cmd) {
	if !m.guard.TryBegin(op) {
		return m, nil
	}
	m.busy = op
	m.pendingCtx = m.ctx
	return m, tea.Batch(
		m.spinner.Tick,
		settleAfter(op, m.seq, m.delays.For(op)),
	)
}

// settle runs the operation whose delay elapsed. Its store writes happen
// even when the result is no longer wanted by the view.
func (m analyzeModel) settle(msg settledMsg) (analyzeModel, tea.Cmd) {
	defer m.guard.Done(msg.op)
	current := msg.seq == m.seq
	ctx := m.pendingCtx

	switch msg.op {
	case wizard.OpCityEntry:
		r, err := m.wiz.LookupCity(ctx, m.pendingCity)
		if !current {
			return m, nil
		}
		m.busy = ""
		if err != nil {
			return m, errorCmd("Weather error", err)
		}
		m = m.goTo(wizard.StepImage)
		return m, statusCmd(fmt.Sprintf("Weather for %s: %s, %d°C", r.City, r.Condition, r.Temperature), false)

	case wizard.OpImageAnalysis:
		res := m.wiz.SubmitUpload(ctx, m.pendingUpload)
		if !current {
			return m, nil
		}
		m.busy = ""
		m.verdict = &res
		if !res.Accepted {
			*m.imagePath = ""
			return m, statusCmd(res.Reason, true)
		}
		m = m.goTo(wizard.StepAnalysis)
		var cmd, notice tea.Cmd
		m, cmd = m.startOp(wizard.OpRecommendations)
		if res.Notice != "" {
			notice = statusCmd(res.Notice, false)
		}
		return m, tea.Batch(cmd, notice)

	case wizard.OpRecommendations:
		res, err := m.wiz.Analyze(ctx)
		if !current {
			return m, nil
		}
		m.busy = ""
		if err != nil {
			m = m.goTo(wizard.StepAnalysis)
			return m, errorCmd("Analysis error", err)
		}
		m = m.goTo(wizard.StepRecommendations)
		m.applyFilter()
		return m, statusCmd(fmt.Sprintf("Found %s for %s", plural(len(res.Plants), "plant"), ctx.Space.Normalized().SpaceName), false)
	}
	return m, nil
}

// --- Forms ---

func (m analyzeModel) showSpaceForm() (analyzeModel, tea.Cmd) {
	t := space.Types[m.typeCursor]
	*m.spaceName = t.Name
	if m.ctx.Space.SpaceType == t.ID && m.ctx.Space.SpaceName != "" {
		*m.spaceName = m.ctx.Space.SpaceName
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name this space").Placeholder(t.Name).Value(m.spaceName),
		).Title(t.Icon + " " + t.Name).Description(t.Description),
	).WithShowHelp(true).WithShowErrors(true)

	return m.openForm(formSpaceName)
}

func (m analyzeModel) showCityForm() (analyzeModel, tea.Cmd) {
	if *m.city == "" {
		if prefs, err := m.store.Preferences(); err == nil {
			*m.city = prefs.DefaultCity
		}
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City").
				Suggestions(m.wiz.Synthesizer().Table().Cities()).
				Validate(fieldCheck(weather.FieldCity)).
				Value(m.city),
		).Title("Look up weather"),
	).WithShowHelp(true).WithShowErrors(true)

	return m.openForm(formCity)
}

func (m analyzeModel) showManualForm() (analyzeModel, tea.Cmd) {
	in := m.manual
	if in.Condition == "" {
		in.Condition = weather.Conditions[0]
	}
	conditions := make([]huh.Option[string], 0, len(weather.Conditions))
	for _, c := range weather.Conditions {
		conditions = append(conditions, huh.NewOption(weather.Icon(c)+" "+c, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("City").Validate(fieldCheck(weather.FieldCity)).Value(&in.City),
			huh.NewInput().Title("Temperature (°C)").Validate(fieldCheck(weather.FieldTemperature)).Value(&in.Temperature),
			huh.NewInput().Title("Feels like (°C)").Placeholder("optional").Validate(fieldCheck(weather.FieldFeelsLike)).Value(&in.FeelsLike),
			huh.NewInput().Title("Humidity (%)").Validate(fieldCheck(weather.FieldHumidity)).Value(&in.Humidity),
		).Title("Current conditions"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Condition").Options(conditions...).Value(&in.Condition),
			huh.NewInput().Title("Description").Placeholder("optional").Value(&in.Description),
			huh.NewInput().Title("Wind speed (km/h)").Placeholder("optional").Validate(fieldCheck(weather.FieldWindSpeed)).Value(&in.WindSpeed),
			huh.NewInput().Title("Rain probability (%)").Placeholder("optional").
				DescriptionFunc(func() string { return rainHint(in.Condition) }, &in.Condition).
				Validate(fieldCheck(weather.FieldRainProbability)).Value(&in.RainProbability),
		).Title("Sky"),
	).WithShowHelp(true).WithShowErrors(true)

	return m.openForm(formManual)
}

// rainHint tells what a blank rain field becomes for condition.
func rainHint(condition string) string {
	return fmt.Sprintf("Blank uses %d%% for %s", weather.DefaultRainProbability(condition), strings.ToLower(condition))
}

func (m analyzeModel) showImageForm() (analyzeModel, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image of your space").
				Placeholder("~/Pictures/balcony.jpg").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("choose an image file")
					}
					return nil
				}).
				Value(m.imagePath),
		).Title("Upload").Description("JPEG, PNG or WebP, up to 10 MB. Name the file after the space for better results."),
	).WithShowHelp(true).WithShowErrors(true)

	return m.openForm(formImage)
}

func (m analyzeModel) showRefineForm() (analyzeModel, tea.Cmd) {
	f := m.filter
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Sunlight").Options(
				huh.NewOption("All", "all"),
				huh.NewOption("Full sun", string(catalog.FullSun)),
				huh.NewOption("Partial sun", string(catalog.PartialSun)),
				huh.NewOption("Shade", string(catalog.Shade)),
			).Value(&f.Sunlight),
			huh.NewSelect[string]().Title("Growth speed").Options(
				huh.NewOption("All", "all"),
				huh.NewOption("Fast", string(catalog.Fast)),
				huh.NewOption("Medium", string(catalog.Moderate)),
				huh.NewOption("Slow", string(catalog.Slow)),
			).Value(&f.GrowthSpeed),
			huh.NewSelect[string]().Title("Maintenance").Options(
				huh.NewOption("All", "all"),
				huh.NewOption("Low", string(catalog.Low)),
				huh.NewOption("Medium", string(catalog.Medium)),
				huh.NewOption("High", string(catalog.High)),
			).Value(&f.Maintenance),
			huh.NewSelect[string]().Title("Season").Options(
				huh.NewOption("All", "all"),
				huh.NewOption("Summer", string(catalog.Summer)),
				huh.NewOption("Cool", string(catalog.Cool)),
				huh.NewOption("Year round", string(catalog.AllSeasons)),
			).Value(&f.Season),
		).Title("Refine recommendations"),
	).WithShowHelp(true).WithShowErrors(true)

	return m.openForm(formRefine)
}

func (m analyzeModel) openForm(kind analyzeForm) (analyzeModel, tea.Cmd) {
	m.formKind = kind
	m.formActive = true
	return m, m.form.Init()
}

func (m analyzeModel) updateForm(msg tea.Msg) (analyzeModel, tea.Cmd) {
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
		return m.submitForm()
	}

	return m, cmd
}

func (m analyzeModel) submitForm() (analyzeModel, tea.Cmd) {
	switch m.formKind {
	case formSpaceName:
		t := space.Types[m.typeCursor]
		m.wiz.ChooseSpace(m.ctx, t.ID, *m.spaceName)
		next := wizard.StepWeather
		if m.ctx.SkipWeather && m.ctx.Weather != nil {
			next = wizard.StepImage
		}
		m = m.goTo(next)
		return m, nil

	case formCity:
		m.pendingCity = strings.TrimSpace(*m.city)
		return m.startOp(wizard.OpCityEntry)

	case formManual:
		r, errs, err := m.wiz.SubmitManual(m.ctx, *m.manual)
		if err != nil {
			return m, errorCmd("Weather error", err)
		}
		m.manualErrs = errs
		if !errs.OK() {
			return m, statusCmd("Please fix the highlighted fields", true)
		}
		m = m.goTo(wizard.StepImage)
		return m, statusCmd(fmt.Sprintf("Weather for %s saved", r.City), false)

	case formImage:
		u, err := classify.Inspect(expandHome(strings.TrimSpace(*m.imagePath)))
		if err != nil {
			return m, errorCmd("Upload error", err)
		}
		m.pendingUpload = u
		return m.startOp(wizard.OpImageAnalysis)

	case formRefine:
		m.applyFilter()
		return m, nil
	}
	return m, nil
}

// fieldCheck adapts weather field validation to a huh validator.
func fieldCheck(field string) func(string) error {
	return func(v string) error {
		if msg := weather.ValidateField(field, v); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}
