package space

import (
	"errors"
	"math"
)

// MinSegmentPixels is the shortest line the measurement tool records.
const MinSegmentPixels = 10

var (
	ErrNoSegments  = errors.New("add at least one measurement to analyze the space")
	ErrNoReference = errors.New("specify the size of your reference measurement")
)

// Measurement is a set of line segments drawn over an image. The first
// segment is the reference whose real length is ReferenceLength metres.
type Measurement struct {
	Segments        []float64 `json:"segments"`
	ReferenceLength float64   `json:"referenceLength"`
	ReferenceObject string    `json:"referenceObject,omitempty"`
}

// AddSegment records a segment of px pixels. Segments of MinSegmentPixels or
// less are ignored and AddSegment returns false.
func (m *Measurement) AddSegment(px float64) bool {
	if px <= MinSegmentPixels {
		return false
	}
	m.Segments = append(m.Segments, math.Round(px))
	return true
}

// RemoveSegment drops the segment at index i.
func (m *Measurement) RemoveSegment(i int) {
	if i < 0 || i >= len(m.Segments) {
		return
	}
	m.Segments = append(m.Segments[:i], m.Segments[i+1:]...)
}

func (m *Measurement) Validate() error {
	if len(m.Segments) == 0 {
		return ErrNoSegments
	}
	if m.ReferenceLength <= 0 || math.IsNaN(m.ReferenceLength) {
		return ErrNoReference
	}
	return nil
}

// RealLengths converts each segment to metres using the first segment as the
// scale. Each value is rounded to two decimals. It returns nil when the
// measurement is incomplete.
func (m *Measurement) RealLengths() []float64 {
	if m.Validate() != nil || m.Segments[0] == 0 {
		return nil
	}
	pxPerUnit := m.Segments[0] / m.ReferenceLength
	out := make([]float64, len(m.Segments))
	for i, px := range m.Segments {
		out[i] = round2(px / pxPerUnit)
	}
	return out
}

// Area approximates the space as a rectangle from the first two real
// lengths. It is 0 with fewer than two segments.
func (m *Measurement) Area() float64 {
	lengths := m.RealLengths()
	if len(lengths) < 2 {
		return 0
	}
	return round2(lengths[0] * lengths[1])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
