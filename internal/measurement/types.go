package measurement

import (
	"github.com/philipparndt/camruler/pkg/geometry"
)

// MaxPoints is the capacity of the point buffer
const MaxPoints = 2

// DefaultMinReferencePixels is the shortest reference segment accepted
const DefaultMinReferencePixels = 1.0

// State is the calibration state of the controller
type State int

const (
	// Referencing collects the two reference taps
	Referencing State = iota
	// AwaitingReferenceInput waits for the real-world reference length
	AwaitingReferenceInput
	// Measuring converts every tapped pair using the calibrated ratio
	Measuring
)

func (s State) String() string {
	switch s {
	case Referencing:
		return "Referencing"
	case AwaitingReferenceInput:
		return "AwaitingReferenceInput"
	case Measuring:
		return "Measuring"
	default:
		return "Unknown"
	}
}

// View is the output surface driven by the controller
type View interface {
	// DrawPoints replaces the overlay with one marker per point and a
	// connector once two points are present. An empty slice clears it.
	DrawPoints(points []geometry.Point)
	// SetText updates the instructional or result label
	SetText(text string)
	ShowReferencePrompt()
	HideReferencePrompt()
}

// Snapshot is a copy of the controller state
type Snapshot struct {
	State                  State
	Points                 []geometry.Point
	ReferencePixelDistance float64
	ReferenceRealLength    float64
	Ratio                  float64
	RatioSet               bool
	Text                   string
}

// Measurement is the result of a converted tap pair
type Measurement struct {
	Start         geometry.Point
	End           geometry.Point
	PixelDistance float64
	RealDistance  float64
	Unit          string
}
