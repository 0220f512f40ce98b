package overlay

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/camruler/pkg/geometry"
)

// Style controls how tap markers and the connector are drawn
type Style struct {
	MarkerRadius float32
	LineWidth    float32
	Color        color.Color
}

// DefaultStyle returns yellow 5px markers joined by a 3px line
func DefaultStyle() Style {
	return Style{
		MarkerRadius: 5,
		LineWidth:    3,
		Color:        color.RGBA{255, 255, 0, 255},
	}
}

// Overlay is a transparent tap-capture surface that draws the buffered
// points and, for a complete pair, the line between them
type Overlay struct {
	widget.BaseWidget
	points []geometry.Point
	style  Style
	onTap  func(point geometry.Point)
}

// New creates an empty overlay
func New(style Style) *Overlay {
	o := &Overlay{
		points: make([]geometry.Point, 0),
		style:  style,
	}
	o.ExtendBaseWidget(o)
	return o
}

// SetOnTap sets the callback invoked with the local position of every tap
func (o *Overlay) SetOnTap(callback func(point geometry.Point)) {
	o.onTap = callback
}

// Tapped handles tap events
func (o *Overlay) Tapped(event *fyne.PointEvent) {
	if o.onTap == nil {
		return
	}
	o.onTap(geometry.NewPoint(float64(event.Position.X), float64(event.Position.Y)))
}

// SetPoints replaces the drawn points
func (o *Overlay) SetPoints(points []geometry.Point) {
	o.points = append(make([]geometry.Point, 0, len(points)), points...)
	o.Refresh()
}

// Clear removes every shape
func (o *Overlay) Clear() {
	o.SetPoints(nil)
}

// Points returns the currently drawn points
func (o *Overlay) Points() []geometry.Point {
	return append([]geometry.Point(nil), o.points...)
}

// SetStyle changes marker and line appearance
func (o *Overlay) SetStyle(style Style) {
	o.style = style
	o.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (o *Overlay) CreateRenderer() fyne.WidgetRenderer {
	r := &overlayRenderer{overlay: o}
	r.rebuild()
	return r
}

// overlayRenderer implements fyne.WidgetRenderer
type overlayRenderer struct {
	overlay *Overlay
	markers []*canvas.Circle
	line    *canvas.Line
	objects []fyne.CanvasObject
}

func (r *overlayRenderer) rebuild() {
	style := r.overlay.style
	r.markers = make([]*canvas.Circle, 0, len(r.overlay.points))
	r.line = nil
	r.objects = make([]fyne.CanvasObject, 0, len(r.overlay.points)+1)

	size := style.MarkerRadius * 2
	for _, p := range r.overlay.points {
		marker := canvas.NewCircle(style.Color)
		marker.Resize(fyne.NewSize(size, size))
		marker.Move(fyne.NewPos(float32(p.X)-style.MarkerRadius, float32(p.Y)-style.MarkerRadius))

		r.markers = append(r.markers, marker)
		r.objects = append(r.objects, marker)
	}

	if len(r.overlay.points) == 2 {
		p1, p2 := r.overlay.points[0], r.overlay.points[1]
		line := canvas.NewLine(style.Color)
		line.StrokeWidth = style.LineWidth
		line.Position1 = fyne.NewPos(float32(p1.X), float32(p1.Y))
		line.Position2 = fyne.NewPos(float32(p2.X), float32(p2.Y))

		r.line = line
		r.objects = append(r.objects, line)
	}
}

// Layout is a no-op; shapes are positioned in tap coordinates
func (r *overlayRenderer) Layout(size fyne.Size) {}

func (r *overlayRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, 0)
}

func (r *overlayRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.overlay)
}

func (r *overlayRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *overlayRenderer) Destroy() {}
