package measurement

import (
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/camruler/pkg/geometry"
)

// Options configures a Controller
type Options struct {
	// Unit is the label printed after a measured distance
	Unit string
	// MinReferencePixels rejects reference pairs closer than this
	MinReferencePixels float64
	Messages           Messages
	Logger             *logrus.Entry
}

// Controller interprets taps according to the calibration state. It must be
// driven from a single goroutine (the UI event loop).
type Controller struct {
	view View
	opts Options
	log  *logrus.Entry

	state    State
	points   []geometry.Point
	refPx    float64
	refReal  float64
	ratio    float64
	ratioSet bool
	text     string

	last    Measurement
	hasLast bool
}

// NewController creates a controller in the Referencing state and pushes the
// initial text and an empty drawing to the view
func NewController(view View, opts Options) *Controller {
	if opts.Unit == "" {
		opts.Unit = "unit"
	}
	if opts.MinReferencePixels <= 0 {
		opts.MinReferencePixels = DefaultMinReferencePixels
	}
	opts.Messages = opts.Messages.withDefaults()
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}

	c := &Controller{
		view:   view,
		opts:   opts,
		log:    opts.Logger.WithField("component", "measurement"),
		points: make([]geometry.Point, 0, MaxPoints),
	}
	c.restoreInitial()
	return c
}

// HandleTap registers a tap at p. It returns a *DegenerateReferenceError when
// a reference pair is too short; every other tap returns nil.
func (c *Controller) HandleTap(p geometry.Point) error {
	switch c.state {
	case AwaitingReferenceInput:
		// The prompt is modal; the pair it belongs to is already fixed.
		c.log.WithField("point", p).Debug("tap ignored while awaiting reference length")
		return nil
	case Measuring:
		if len(c.points) == MaxPoints {
			c.points = c.points[:0]
		}
	}

	if len(c.points) < MaxPoints {
		c.points = append(c.points, p)
		c.view.DrawPoints(c.Points())
	}

	if len(c.points) < MaxPoints {
		return nil
	}

	dist := c.points[0].Distance(c.points[1])

	if c.state == Referencing {
		return c.completeReference(dist)
	}

	c.completeMeasurement(dist)
	return nil
}

func (c *Controller) completeReference(dist float64) error {
	if dist < c.opts.MinReferencePixels || !isFinite(dist) {
		c.points = c.points[:0]
		c.view.DrawPoints(nil)
		c.setText(c.opts.Messages.TooClose)
		c.log.WithFields(logrus.Fields{
			"distance": dist,
			"min":      c.opts.MinReferencePixels,
		}).Warn("reference pair rejected")
		return &DegenerateReferenceError{Distance: dist, Min: c.opts.MinReferencePixels}
	}

	c.refPx = dist
	c.transition(AwaitingReferenceInput)
	c.view.ShowReferencePrompt()
	return nil
}

func (c *Controller) completeMeasurement(dist float64) {
	if !c.ratioSet || c.ratio <= 0 {
		c.log.WithField("pixels", dist).Debug("measurement ignored without a positive ratio")
		return
	}

	realDist := dist * c.ratio
	c.last = Measurement{
		Start:         c.points[0],
		End:           c.points[1],
		PixelDistance: dist,
		RealDistance:  realDist,
		Unit:          c.opts.Unit,
	}
	c.hasLast = true
	c.setText(c.opts.Messages.FormatMeasured(realDist, c.opts.Unit))
	c.log.WithFields(logrus.Fields{
		"pixels": dist,
		"real":   realDist,
		"unit":   c.opts.Unit,
	}).Debug("measured")
}

// SubmitReferenceLength parses text as the real-world length of the pending
// reference pair. A *ValidationError leaves all state unchanged.
func (c *Controller) SubmitReferenceLength(text string) error {
	if c.state != AwaitingReferenceInput {
		return ErrNoPendingReference
	}

	length, err := ParseLength(text)
	if err != nil {
		c.log.WithField("input", text).Debug("reference length rejected")
		return err
	}

	c.refReal = length
	c.ratio = length / c.refPx
	c.ratioSet = true
	c.transition(Measuring)

	c.points = c.points[:0]
	c.view.DrawPoints(nil)
	c.setText(c.opts.Messages.MeasurePrompt)
	c.view.HideReferencePrompt()

	c.log.WithFields(logrus.Fields{
		"pixels": c.refPx,
		"length": c.refReal,
		"ratio":  c.ratio,
	}).Info("calibrated")
	return nil
}

// Reset discards the calibration and every buffered point. It is safe to call
// from any state.
func (c *Controller) Reset() {
	if c.state == AwaitingReferenceInput {
		c.view.HideReferencePrompt()
	}
	c.restoreInitial()
	c.log.Debug("reset")
}

func (c *Controller) restoreInitial() {
	c.points = c.points[:0]
	c.refPx = 0
	c.refReal = 0
	c.ratio = 0
	c.ratioSet = false
	c.hasLast = false
	c.last = Measurement{}
	c.state = Referencing
	c.view.DrawPoints(nil)
	c.setText(c.opts.Messages.ReferencePrompt)
}

// SetUnit changes the label used for subsequent measurements
func (c *Controller) SetUnit(unit string) {
	if unit == "" {
		return
	}
	c.opts.Unit = unit
}

// SetMinReferencePixels changes the degenerate-reference threshold
func (c *Controller) SetMinReferencePixels(px float64) {
	if px <= 0 {
		return
	}
	c.opts.MinReferencePixels = px
}

// Unit returns the current unit label
func (c *Controller) Unit() string {
	return c.opts.Unit
}

// State returns the current calibration state
func (c *Controller) State() State {
	return c.state
}

// Ratio returns real-world units per pixel and whether calibration completed
func (c *Controller) Ratio() (float64, bool) {
	return c.ratio, c.ratioSet
}

// Points returns a copy of the buffered points
func (c *Controller) Points() []geometry.Point {
	out := make([]geometry.Point, len(c.points))
	copy(out, c.points)
	return out
}

// Text returns the text last pushed to the view
func (c *Controller) Text() string {
	return c.text
}

// LastMeasurement returns the most recent converted pair
func (c *Controller) LastMeasurement() (Measurement, bool) {
	return c.last, c.hasLast
}

// Snapshot returns a copy of the full state
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:                  c.state,
		Points:                 c.Points(),
		ReferencePixelDistance: c.refPx,
		ReferenceRealLength:    c.refReal,
		Ratio:                  c.ratio,
		RatioSet:               c.ratioSet,
		Text:                   c.text,
	}
}

func (c *Controller) transition(to State) {
	c.log.WithFields(logrus.Fields{
		"from": c.state.String(),
		"to":   to.String(),
	}).Debug("state transition")
	c.state = to
}

func (c *Controller) setText(text string) {
	c.text = text
	c.view.SetText(text)
}

// ParseLength parses a reference length. Surrounding whitespace is ignored;
// NaN and infinities are rejected.
func ParseLength(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ValidationError{Input: text, Err: err}
	}
	if !isFinite(v) {
		return 0, &ValidationError{Input: text}
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
