package app

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/philipparndt/camruler/internal/config"
	"github.com/philipparndt/camruler/internal/i18n"
	"github.com/philipparndt/camruler/internal/measurement"
	"github.com/philipparndt/camruler/internal/overlay"
	"github.com/philipparndt/camruler/pkg/backdrop"
	"github.com/philipparndt/camruler/pkg/watcher"
)

// AppID identifies the application to fyne (preferences, mobile packaging)
const AppID = "com.github.philipparndt.camruler"

const reloadDebounce = 200 * time.Millisecond

// App is a running camruler window
type App struct {
	config *config.File
	ctrl   *measurement.Controller
	ui     *ui
}

// New builds the window content around window. The backdrop is chosen by the
// caller so tests and the main program can differ.
func New(window fyne.Window, cfg *config.File, catalog *i18n.Catalog, bd backdrop.Provider) *App {
	settings := cfg.Settings()

	u := newUI(catalog, bd, styleFrom(settings))
	ctrl := measurement.NewController(u, measurement.Options{
		Unit:               settings.Unit,
		MinReferencePixels: settings.MinReferencePixels,
		Messages:           catalog.Messages(),
		Logger:             logrus.WithField("window", window.Title()),
	})
	u.bind(window, catalog, ctrl)

	window.SetContent(u.content)

	return &App{
		config: cfg,
		ctrl:   ctrl,
		ui:     u,
	}
}

// Controller returns the interaction controller
func (a *App) Controller() *measurement.Controller {
	return a.ctrl
}

// ApplySettings pushes changed settings into the running UI. It must be called
// on the fyne goroutine.
func (a *App) ApplySettings(settings config.Settings) {
	a.ctrl.SetUnit(settings.Unit)
	a.ctrl.SetMinReferencePixels(settings.MinReferencePixels)
	a.ui.overlay.SetStyle(styleFrom(settings))
	logrus.WithFields(settings.LogrusFields()).Info("settings applied")
}

// reload re-reads the config file; it runs on the watcher goroutine
func (a *App) reload(string) {
	if err := a.config.Load(); err != nil {
		logrus.WithError(err).Warn("config reload failed, keeping previous settings")
		return
	}
	settings := a.config.Settings()
	fyne.Do(func() {
		a.ApplySettings(settings)
	})
}

func styleFrom(s config.Settings) overlay.Style {
	return overlay.Style{
		MarkerRadius: s.MarkerRadius,
		LineWidth:    s.LineWidth,
		Color:        s.MarkerColor,
	}
}

// Run opens the main window and blocks until it is closed
func Run(cfg *config.File) error {
	a := fyneapp.NewWithID(AppID)
	a.Settings().SetTheme(theme.DarkTheme())

	settings := cfg.Settings()
	catalog, err := i18n.New(settings.Language)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to load translations")
	}

	w := a.NewWindow(catalog.T(i18n.WindowTitle))
	w.SetPadded(false)

	bd := backdrop.Select(backdrop.Options{
		CameraEnabled:   settings.CameraEnabled,
		CameraDevice:    settings.CameraDevice,
		FrameInterval:   settings.FrameInterval,
		PlaceholderText: catalog.T(i18n.BackdropText),
	})
	defer bd.Close()

	app := New(w, cfg, catalog, bd)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := bd.Start(ctx); err != nil {
		logrus.WithError(err).WithField("backdrop", bd.Name()).Warn("failed to start backdrop")
	}

	if path := cfg.Path(); path != "" {
		fw, err := watcher.NewFileWatcher(reloadDebounce)
		if err != nil {
			logrus.WithError(err).Warn("failed to set up config watching, auto-reload will not be available")
		} else if err := fw.Watch(path, app.reload); err != nil {
			logrus.WithError(err).Warn("failed to watch config file, auto-reload will not be available")
			fw.Close()
		} else {
			defer fw.Close()
			fw.Start(ctx)
		}
	}

	w.Resize(fyne.NewSize(420, 800))
	w.ShowAndRun()
	return nil
}
