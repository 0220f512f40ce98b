package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/camruler/internal/i18n"
	"github.com/philipparndt/camruler/internal/measurement"
	"github.com/philipparndt/camruler/internal/overlay"
	"github.com/philipparndt/camruler/pkg/backdrop"
	"github.com/philipparndt/camruler/pkg/geometry"
)

var _ measurement.View = &ui{}

// ui owns the widgets and implements measurement.View
type ui struct {
	overlay     *overlay.Overlay
	resultLabel *widget.Label
	resetButton *widget.Button
	prompt      *referencePrompt
	content     fyne.CanvasObject
}

func newUI(catalog *i18n.Catalog, bd backdrop.Provider, style overlay.Style) *ui {
	u := &ui{
		overlay:     overlay.New(style),
		resultLabel: widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	u.resultLabel.Wrapping = fyne.TextWrapWord
	u.resetButton = widget.NewButtonWithIcon(catalog.T(i18n.ButtonReset), theme.ViewRefreshIcon(), nil)

	// Controls box at the bottom with rounded top corners
	panel := canvas.NewRectangle(theme.OverlayBackgroundColor())
	panel.CornerRadius = 20
	controls := container.NewStack(
		panel,
		container.NewPadded(container.NewVBox(
			u.resultLabel,
			container.NewCenter(u.resetButton),
		)),
	)

	viewport := container.NewStack(bd.CanvasObject(), u.overlay)
	u.content = container.NewBorder(nil, controls, nil, nil, viewport)
	return u
}

// bind connects the widgets to the controller
func (u *ui) bind(window fyne.Window, catalog *i18n.Catalog, ctrl *measurement.Controller) {
	u.prompt = newReferencePrompt(window, catalog, ctrl.SubmitReferenceLength)
	u.overlay.SetOnTap(func(p geometry.Point) {
		// Degenerate pairs are reported to the user by the controller
		_ = ctrl.HandleTap(p)
	})
	u.resetButton.OnTapped = ctrl.Reset
}

func (u *ui) DrawPoints(points []geometry.Point) {
	u.overlay.SetPoints(points)
}

func (u *ui) SetText(text string) {
	u.resultLabel.SetText(text)
}

func (u *ui) ShowReferencePrompt() {
	if u.prompt != nil {
		u.prompt.Show()
	}
}

func (u *ui) HideReferencePrompt() {
	if u.prompt != nil {
		u.prompt.Hide()
	}
}
