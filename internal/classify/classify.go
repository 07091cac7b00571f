// Package classify gates image uploads on their file name, size and MIME
// type. It never looks at pixel content.
package classify

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Path selects which rule set applies to an upload.
type Path int

const (
	// PathGeneral is the wizard's image step.
	PathGeneral Path = iota
	// PathMeasurement is the measurement tool. It allows larger files and
	// does not apply the "not a space" keyword list.
	PathMeasurement
)

func (p Path) String() string {
	if p == PathMeasurement {
		return "measurement"
	}
	return "general"
}

// RejectKind says which rule rejected an upload.
type RejectKind string

const (
	RejectNone     RejectKind = ""
	RejectMIME     RejectKind = "mime"
	RejectSize     RejectKind = "size"
	RejectHuman    RejectKind = "human"
	RejectNotSpace RejectKind = "not_space"
)

// GuessGeneral is the space type attached when no keyword group matches.
const GuessGeneral = "general"

// Result is the outcome of Classify. Reason is set only on rejection and
// Notice only on acceptance.
type Result struct {
	Accepted       bool
	Kind           RejectKind
	Reason         string
	SpaceTypeGuess string
	// SpaceKeyword reports whether the name carried a recognised space word.
	SpaceKeyword bool
	// Generic reports a camera-style name such as IMG_1234 or Screenshot.
	Generic bool
	Notice  string
}

// Limits are the per-path size ceilings in bytes.
type Limits struct {
	General     int64
	Measurement int64
}

const mb = 1024 * 1024

// DefaultLimits are 10 MB for the wizard and 15 MB for the measurement tool.
var DefaultLimits = Limits{General: 10 * mb, Measurement: 15 * mb}

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// Classifier applies the rules with configurable size ceilings.
type Classifier struct {
	limits Limits
}

func New(limits Limits) *Classifier {
	if limits.General <= 0 {
		limits.General = DefaultLimits.General
	}
	if limits.Measurement <= 0 {
		limits.Measurement = DefaultLimits.Measurement
	}
	return &Classifier{limits: limits}
}

// Classify runs the rules with DefaultLimits.
func Classify(filename string, size int64, mimeType string, p Path) Result {
	return New(DefaultLimits).Classify(filename, size, mimeType, p)
}

// Classify evaluates, in order: MIME type, size ceiling, human indicators,
// the "not a space" list (general path only). Anything left is accepted.
func (c *Classifier) Classify(filename string, size int64, mimeType string, p Path) Result {
	name := strings.ToLower(filepath.Base(filename))

	if !allowedMIME[strings.ToLower(strings.TrimSpace(mimeType))] {
		return reject(RejectMIME, "Please upload a valid image file (JPEG, PNG, or WebP)")
	}

	if p == PathMeasurement {
		if size > c.limits.Measurement {
			return reject(RejectSize, "Image size should be less than 15MB for accurate space analysis")
		}
		if containsAny(name, measurementHumanKeywords) || matchesAny(name, humanPatterns) {
			return reject(RejectHuman, "Human photos not allowed. Please upload space/area images only.")
		}
	} else {
		if size > c.limits.General {
			return reject(RejectSize, "Image size should be less than 10MB")
		}
		if containsAny(name, humanKeywords) || matchesAny(name, humanPatterns) {
			return reject(RejectHuman, "Human photos, avatars, and character images are not allowed. Please upload images of outdoor growing spaces only (including empty spaces).")
		}
		if containsAny(name, notSpaceKeywords) {
			return reject(RejectNotSpace, "Please upload images of SPACES suitable for growing plants (balconies, gardens, terraces, patios, rooftops, courtyards, skateboard areas, basketball courts, or any flat outdoor concrete/paved surfaces).")
		}
	}

	res := Result{
		Accepted:       true,
		SpaceTypeGuess: GuessSpaceType(name),
	}
	if p == PathMeasurement {
		res.SpaceKeyword = containsAny(name, measurementSpaceKeywords)
	} else {
		res.SpaceKeyword = containsAny(name, spaceKeywords)
	}
	if !res.SpaceKeyword {
		res.Generic = matchesAny(name, genericPatterns)
		if !res.Generic {
			if p == PathMeasurement {
				res.Notice = "Please ensure image shows a measurable outdoor space (field, rooftop, patio, garden, etc.)"
			} else {
				res.Notice = "Please ensure this image shows an outdoor space suitable for container gardening."
			}
		}
	}
	return res
}

func reject(kind RejectKind, reason string) Result {
	return Result{Kind: kind, Reason: reason}
}

// GuessSpaceType returns the first keyword group matching name, checked in
// declaration order, or GuessGeneral.
func GuessSpaceType(name string) string {
	name = strings.ToLower(name)
	for _, g := range spaceGroups {
		if containsAny(name, g.keywords) {
			return g.name
		}
	}
	return GuessGeneral
}

// SpaceName derives a display label from a file name: the extension is
// dropped and dashes and underscores become spaces.
func SpaceName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.NewReplacer("-", " ", "_", " ").Replace(base)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
