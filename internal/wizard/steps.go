// Package wizard threads the analysis context through the steps of the
// planting wizard and performs the store writes each step triggers.
package wizard

import (
	"errors"

	"github.com/sadopc/sprout/internal/catalog"
	"github.com/sadopc/sprout/internal/classify"
	"github.com/sadopc/sprout/internal/recommend"
	"github.com/sadopc/sprout/internal/space"
	"github.com/sadopc/sprout/internal/weather"
)

// ErrMissingContext is returned when an operation runs before the steps it
// depends on. Views resolve it by redirecting, never by showing it.
var ErrMissingContext = errors.New("wizard context incomplete")

type Step int

const (
	StepSpaceType Step = iota
	StepWeather
	StepImage
	StepAnalysis
	StepRecommendations
)

var stepNames = [...]string{"Space", "Weather", "Image", "Analysis", "Recommendations"}

// Steps lists every step in order.
var Steps = []Step{StepSpaceType, StepWeather, StepImage, StepAnalysis, StepRecommendations}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "Unknown"
	}
	return stepNames[s]
}

// Next returns the following step, staying on the last one.
func (s Step) Next() Step {
	if s >= StepRecommendations {
		return StepRecommendations
	}
	return s + 1
}

// Upload is an accepted image with what the classifier said about it.
type Upload struct {
	classify.Upload
	Result classify.Result
}

// Context is the data accumulated by the wizard so far.
type Context struct {
	Space   space.Context
	Weather *weather.Report
	// SkipWeather is set when the weather came from the dashboard and the
	// weather step was not shown.
	SkipWeather bool
	Upload      *Upload

	Recommendations []catalog.PlantRecord
	Pass            recommend.Pass
	AnalysisID      string
}

// ready reports whether the prerequisites of step are present.
func (c *Context) ready(step Step) bool {
	switch step {
	case StepSpaceType:
		return true
	case StepWeather:
		return c.Space.SpaceType != ""
	case StepImage:
		return c.ready(StepWeather) && c.Weather != nil
	case StepAnalysis:
		return c.ready(StepImage) && c.Upload != nil && c.Upload.Result.Accepted
	case StepRecommendations:
		return c.ready(StepAnalysis) && c.AnalysisID != ""
	}
	return false
}
