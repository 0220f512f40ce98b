package app

import (
	"errors"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/camruler/internal/i18n"
	"github.com/philipparndt/camruler/internal/measurement"
)

var errorColor = color.RGBA{255, 82, 82, 255}

// referencePrompt is the modal dialog asking for the real-world length of the
// reference pair
type referencePrompt struct {
	window    fyne.Window
	dialog    *dialog.CustomDialog
	entry     *widget.Entry
	errorText *canvas.Text
	confirm   *widget.Button
	open      bool

	submit func(text string) error
}

func newReferencePrompt(window fyne.Window, catalog *i18n.Catalog, submit func(text string) error) *referencePrompt {
	p := &referencePrompt{
		window: window,
		submit: submit,
	}

	invalidText := catalog.T(i18n.PromptInvalid)
	onConfirm := func() {
		if err := p.submit(p.entry.Text); errors.Is(err, measurement.ErrInvalidLength) {
			p.showError(invalidText)
		}
	}

	p.entry = widget.NewEntry()
	p.entry.SetPlaceHolder(catalog.T(i18n.PromptPlaceholder))
	p.entry.OnSubmitted = func(string) { onConfirm() }

	p.errorText = canvas.NewText("", errorColor)
	p.errorText.TextSize = 12

	p.confirm = widget.NewButton(catalog.T(i18n.PromptConfirm), onConfirm)

	content := container.NewVBox(p.entry, p.errorText)
	p.dialog = dialog.NewCustomWithoutButtons(catalog.T(i18n.PromptTitle), content, window)
	p.dialog.SetButtons([]fyne.CanvasObject{p.confirm})
	return p
}

func (p *referencePrompt) showError(text string) {
	p.errorText.Text = text
	p.errorText.Refresh()
}

// Show opens the prompt with an empty field
func (p *referencePrompt) Show() {
	p.entry.SetText("")
	p.showError("")
	p.open = true
	p.dialog.Show()
	p.window.Canvas().Focus(p.entry)
}

// Hide closes the prompt
func (p *referencePrompt) Hide() {
	if !p.open {
		return
	}
	p.open = false
	p.dialog.Hide()
}

// IsOpen reports whether the prompt is showing
func (p *referencePrompt) IsOpen() bool {
	return p.open
}

// ErrorText returns the inline validation message
func (p *referencePrompt) ErrorText() string {
	return p.errorText.Text
}
