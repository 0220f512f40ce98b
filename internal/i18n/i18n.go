// Package i18n localizes the user-visible strings. English and Turkish
// translations are embedded; unknown languages fall back to English.
package i18n

import (
	"embed"
	"encoding/json"
	"path"

	"fyne.io/fyne/v2/lang"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/philipparndt/camruler/internal/measurement"
)

//go:embed translations/*.json
var translations embed.FS

// Message IDs
const (
	WindowTitle       = "window.title"
	StepReference     = "step.reference"
	StepMeasure       = "step.measure"
	ReferenceTooClose = "reference.too_close"
	MeasureResult     = "measure.result"
	PromptTitle       = "prompt.title"
	PromptPlaceholder = "prompt.placeholder"
	PromptConfirm     = "prompt.confirm"
	PromptInvalid     = "prompt.invalid"
	ButtonReset       = "button.reset"
	BackdropText      = "backdrop.placeholder"
)

var fallback = map[string]string{
	WindowTitle:       "camruler",
	StepReference:     measurement.DefaultMessages().ReferencePrompt,
	StepMeasure:       measurement.DefaultMessages().MeasurePrompt,
	ReferenceTooClose: measurement.DefaultMessages().TooClose,
	MeasureResult:     measurement.DefaultMessages().Measured,
	PromptTitle:       "Enter reference length",
	PromptPlaceholder: "Real length (e.g. 8.56 cm)",
	PromptConfirm:     "OK",
	PromptInvalid:     "Enter a valid number",
	ButtonReset:       "Reset",
	BackdropText:      "Camera mode (mobile only)",
}

// Catalog resolves message IDs for one language
type Catalog struct {
	language  string
	localizer *goi18n.Localizer
}

// New creates a catalog for tag. An empty tag selects the system locale.
func New(tag string) (*Catalog, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := translations.ReadDir("translations")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list translations")
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(translations, path.Join("translations", f.Name())); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to load translation %s", f.Name())
		}
	}

	if tag == "" {
		tag = lang.SystemLocale().LanguageString()
	}
	logrus.WithField("language", tag).Debug("localizer ready")

	return &Catalog{
		language:  tag,
		localizer: goi18n.NewLocalizer(bundle, tag, language.English.String()),
	}, nil
}

// Language returns the requested language tag
func (c *Catalog) Language() string {
	return c.language
}

// T returns the localized text for id
func (c *Catalog) T(id string) string {
	text, err := c.localizer.Localize(&goi18n.LocalizeConfig{
		DefaultMessage: &goi18n.Message{ID: id, Other: fallback[id]},
	})
	if err != nil {
		return fallback[id]
	}
	return text
}

// Messages returns the controller strings in the catalog language
func (c *Catalog) Messages() measurement.Messages {
	return measurement.Messages{
		ReferencePrompt: c.T(StepReference),
		MeasurePrompt:   c.T(StepMeasure),
		TooClose:        c.T(ReferenceTooClose),
		Measured:        c.T(MeasureResult),
	}
}
