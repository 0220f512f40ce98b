package backdrop

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

// DefaultPlaceholderText is shown when the placeholder has no text configured
const DefaultPlaceholderText = "Camera mode (mobile only)"

// Placeholder is a static black backdrop with a short notice
type Placeholder struct {
	background *canvas.Rectangle
	label      *canvas.Text
	object     fyne.CanvasObject
}

// NewPlaceholder creates a placeholder backdrop
func NewPlaceholder(text string) *Placeholder {
	if text == "" {
		text = DefaultPlaceholderText
	}

	background := canvas.NewRectangle(color.Black)
	label := canvas.NewText(text, color.White)
	label.Alignment = fyne.TextAlignCenter

	return &Placeholder{
		background: background,
		label:      label,
		object:     container.NewStack(background, container.NewCenter(label)),
	}
}

// Name returns "placeholder"
func (p *Placeholder) Name() string { return "placeholder" }

// CanvasObject returns the backdrop object
func (p *Placeholder) CanvasObject() fyne.CanvasObject { return p.object }

// Text returns the notice shown on the placeholder
func (p *Placeholder) Text() string { return p.label.Text }

// Start does nothing; the placeholder is static
func (p *Placeholder) Start(ctx context.Context) error { return nil }

// Close does nothing
func (p *Placeholder) Close() error { return nil }
