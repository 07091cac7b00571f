package wizard

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/logging"
	"github.com/sadopc/sprout/internal/recommend"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/store"
	"github.com/sadopc/sprout/internal/weather"
)

// SetupSize is how many plants a complete setup saves.
const SetupSize = 6

// Controller runs the wizard operations against the store.
type Controller struct {
	store      *store.Store
	catalog    *catalog.Catalog
	synth      *weather.Synthesizer
	classifier *classify.Classifier
	now        func() time.Time
	logger     *slog.Logger
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithClassifier(cl *classify.Classifier) Option {
	return func(c *Controller) { c.classifier = cl }
}

func New(st *store.Store, cat *catalog.Catalog, synth *weather.Synthesizer, opts ...Option) *Controller {
	c := &Controller{
		store:      st,
		catalog:    cat,
		synth:      synth,
		classifier: classify.New(classify.DefaultLimits),
		now:        time.Now,
		logger:     logging.ForService("wizard"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

func (c *Controller) Synthesizer() *weather.Synthesizer { return c.synth }

// Start returns a fresh context. With useDashboardWeather the last
// dashboard report is attached and the weather step is skipped.
func (c *Controller) Start(useDashboardWeather bool) (*Context, error) {
	ctx := &Context{}
	if !useDashboardWeather {
		return ctx, nil
	}
	w, err := c.store.DashboardWeather()
	if err != nil {
		return nil, fmt.Errorf("load dashboard weather: %w", err)
	}
	if w != nil {
		ctx.Weather = w
		ctx.SkipWeather = true
	}
	return ctx, nil
}

// Enter resolves which step to show when step is requested with ctx. A step
// whose prerequisites are missing redirects to the first step of the flow.
// A missing weather report is filled from the dashboard report when one is
// stored.
func (c *Controller) Enter(step Step, ctx *Context) (Step, *Context) {
	if ctx == nil {
		return StepSpaceType, &Context{}
	}
	if ctx.Weather == nil && step > StepWeather {
		if w, err := c.store.DashboardWeather(); err == nil && w != nil {
			ctx.Weather = w
		}
	}
	if !ctx.ready(step) {
		c.logger.Debug("redirecting wizard step", "requested", step, "shown", StepSpaceType)
		return StepSpaceType, ctx
	}
	return step, ctx
}

// ChooseSpace records the space type and name. Unknown type IDs are kept
// as given.
func (c *Controller) ChooseSpace(ctx *Context, typeID, name string) {
	ctx.Space.SpaceType = strings.TrimSpace(typeID)
	ctx.Space.SpaceName = strings.TrimSpace(name)
	if ctx.Space.SpaceName == "" {
		if t, ok := space.TypeByID(ctx.Space.SpaceType); ok {
			ctx.Space.SpaceName = t.Name
		}
	}
}

// LookupCity synthesizes a report for city and submits it.
func (c *Controller) LookupCity(ctx *Context, city string) (weather.Report, error) {
	r := c.synth.Lookup(city, c.now())
	if err := c.SubmitWeather(ctx, r); err != nil {
		return weather.Report{}, err
	}
	return r, nil
}

// WeatherVersion returns the write counter of the dashboard report.
func (c *Controller) WeatherVersion() (int64, error) {
	return c.store.Version(store.KeyDashboardWeather)
}

// RefreshDashboard synthesizes a report for city and stores it as the
// dashboard report. It fails with store.ErrVersionConflict when another
// report was stored after version was read.
func (c *Controller) RefreshDashboard(city string, version int64) (weather.Report, error) {
	r := c.synth.Lookup(city, c.now())
	if err := c.store.SaveDashboardWeatherAt(r, version); err != nil {
		return weather.Report{}, fmt.Errorf("save weather: %w", err)
	}
	c.logger.Info("dashboard weather refreshed", "city", r.City, "condition", r.Condition)
	return r, nil
}

// SubmitManual validates a manual entry and submits the resulting report.
func (c *Controller) SubmitManual(ctx *Context, in weather.ManualInput) (weather.Report, weather.FieldErrors, error) {
	r, errs := c.synth.FromManual(in, c.now())
	if !errs.OK() {
		return weather.Report{}, errs, nil
	}
	if err := c.SubmitWeather(ctx, r); err != nil {
		return weather.Report{}, nil, err
	}
	return r, nil, nil
}

// SubmitWeather attaches r to ctx and stores it as the dashboard report.
func (c *Controller) SubmitWeather(ctx *Context, r weather.Report) error {
	if err := c.store.SaveDashboardWeather(r); err != nil {
		return fmt.Errorf("save weather: %w", err)
	}
	if ctx != nil {
		ctx.Weather = &r
		ctx.SkipWeather = false
	}
	c.logger.Info("weather submitted",
		"city", r.City,
		"source", r.Source,
		"condition", r.Condition,
	)
	return nil
}

// SubmitUpload classifies u. A rejection clears any previous upload from
// ctx. On acceptance a blank space type is filled from the guess and a
// blank space name from the file name.
func (c *Controller) SubmitUpload(ctx *Context, u classify.Upload) classify.Result {
	res := c.classifier.ClassifyUpload(u, classify.PathGeneral)
	if !res.Accepted {
		ctx.Upload = nil
		c.logger.Info("upload rejected",
			"file", u.Name,
			"kind", res.Kind,
		)
		return res
	}

	ctx.Upload = &Upload{Upload: u, Result: res}
	if ctx.Space.SpaceType == "" && res.SpaceTypeGuess != classify.GuessGeneral {
		ctx.Space.SpaceType = res.SpaceTypeGuess
	}
	if ctx.Space.SpaceName == "" {
		ctx.Space.SpaceName = classify.SpaceName(u.Name)
	}
	return res
}

// CheckMeasurementUpload classifies an image for the measurement tool.
func (c *Controller) CheckMeasurementUpload(u classify.Upload) classify.Result {
	return c.classifier.ClassifyUpload(u, classify.PathMeasurement)
}

// Analyze runs the recommendation engine over ctx and records the run in
// the history.
func (c *Controller) Analyze(ctx *Context) (recommend.Result, error) {
	if ctx == nil || !ctx.ready(StepAnalysis) {
		return recommend.Result{}, ErrMissingContext
	}

	sp := ctx.Space.Normalized()
	res := recommend.RecommendDetailed(c.catalog, sp, ctx.Weather)

	entry := store.HistoryEntry{
		PlantsFound:     len(res.Plants),
		SpaceType:       sp.SpaceType,
		SpaceName:       sp.SpaceName,
		Weather:         ctx.Weather,
		Recommendations: plantIDs(res.Plants),
	}
	if ctx.Weather != nil {
		entry.Location = ctx.Weather.City
	}
	if u := ctx.Upload; u != nil {
		entry.FileName = u.Name
		entry.Image = &store.ImageAnalysis{
			FileName:       u.Name,
			Size:           u.Size,
			MIMEType:       u.MIMEType,
			SpaceTypeGuess: u.Result.SpaceTypeGuess,
			Generic:        u.Result.Generic,
			Tips:           classify.Tips(u.Result.SpaceTypeGuess),
		}
	}

	saved, err := c.store.AppendHistory(entry)
	if err != nil {
		return recommend.Result{}, fmt.Errorf("record analysis: %w", err)
	}

	ctx.Recommendations = res.Plants
	ctx.Pass = res.Pass
	ctx.AnalysisID = saved.ID

	c.logger.Info("analysis complete",
		"space_type", sp.SpaceType,
		"plants", len(res.Plants),
		"pass", res.Pass,
	)
	return res, nil
}

// Rerun rebuilds a context from a history entry and recomputes its
// recommendations without recording a new history entry.
func (c *Controller) Rerun(e store.HistoryEntry) *Context {
	ctx := &Context{
		Space:      space.Context{SpaceType: e.SpaceType, SpaceName: e.SpaceName},
		Weather:    e.Weather,
		AnalysisID: e.ID,
	}
	res := recommend.RecommendDetailed(c.catalog, ctx.Space.Normalized(), e.Weather)
	ctx.Recommendations = res.Plants
	ctx.Pass = res.Pass
	return ctx
}

func (c *Controller) gardenEntry(ctx *Context, p catalog.PlantRecord) store.GardenEntry {
	sp := ctx.Space.Normalized()
	return store.GardenEntry{
		PlantRecord:       p,
		PlantID:           p.ID,
		Added:             c.now(),
		SpaceType:         sp.SpaceType,
		SpaceName:         sp.SpaceName,
		WeatherConditions: ctx.Weather,
	}
}

// AddToGarden saves one plant with the space and weather of ctx.
func (c *Controller) AddToGarden(ctx *Context, p catalog.PlantRecord) (store.GardenEntry, error) {
	added, err := c.store.AddGardenEntries(c.gardenEntry(ctx, p))
	if err != nil {
		return store.GardenEntry{}, err
	}
	c.logger.Info("plant added to garden", "plant", p.Name)
	return added[0], nil
}

// SaveCompleteSetup saves the first SetupSize plants of shown, which is the
// list as currently filtered on screen, under one setup name.
func (c *Controller) SaveCompleteSetup(ctx *Context, shown []catalog.PlantRecord) ([]store.GardenEntry, error) {
	top := recommend.TopN(shown, SetupSize)
	if len(top) == 0 {
		return nil, nil
	}

	setup := ctx.Space.Normalized().SpaceName + " Complete Setup"
	entries := make([]store.GardenEntry, len(top))
	for i, p := range top {
		entries[i] = c.gardenEntry(ctx, p)
		entries[i].SetupName = setup
	}
	added, err := c.store.AddGardenEntries(entries...)
	if err != nil {
		return nil, err
	}
	c.logger.Info("complete setup saved", "setup", setup, "plants", len(added))
	return added, nil
}

// MeasureSpace assesses a measurement and saves the result.
func (c *Controller) MeasureSpace(spaceType, fileName string, m space.Measurement) (store.SpaceAnalysis, error) {
	if err := m.Validate(); err != nil {
		return store.SpaceAnalysis{}, err
	}
	a := store.SpaceAnalysis{
		SpaceType:   spaceType,
		FileName:    fileName,
		Measurement: m,
		RealLengths: m.RealLengths(),
		Assessment:  space.Assess(&m),
	}
	saved, err := c.store.AppendSpaceAnalysis(a)
	if err != nil {
		return store.SpaceAnalysis{}, err
	}
	c.logger.Info("space measured",
		"segments", len(m.Segments),
		"area", saved.Assessment.Area,
		"tier", saved.Assessment.GardeningType,
	)
	return saved, nil
}

func plantIDs(plants []catalog.PlantRecord) []int {
	ids := make([]int, len(plants))
	for i, p := range plants {
		ids[i] = p.ID
	}
	return ids
}
