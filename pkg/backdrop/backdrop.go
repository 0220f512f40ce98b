// Package backdrop provides the visual layer rendered behind the measurement
// overlay. A Provider is either a live camera feed or a static placeholder;
// callers never need to know which one is active.
package backdrop

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"
)

// ErrCameraUnavailable is returned when no camera can be opened on this
// platform or build
var ErrCameraUnavailable = errors.New("camera unavailable")

// Provider renders a backdrop
type Provider interface {
	// Name identifies the provider in logs
	Name() string
	// CanvasObject is the object to place beneath the overlay
	CanvasObject() fyne.CanvasObject
	// Start begins rendering; it returns once rendering has been set up
	// and stops when ctx is cancelled
	Start(ctx context.Context) error
	// Close releases the underlying resources
	Close() error
}

// Options selects and configures a provider
type Options struct {
	CameraEnabled bool
	CameraDevice  int
	FrameInterval time.Duration
	// PlaceholderText is shown when no camera is used
	PlaceholderText string
}

// Select returns a camera provider when one can be opened, and a placeholder
// otherwise
func Select(opts Options) Provider {
	log := logrus.WithField("component", "backdrop")

	if !opts.CameraEnabled {
		log.Info("camera disabled, using placeholder")
		return NewPlaceholder(opts.PlaceholderText)
	}

	cam, err := NewCamera(opts.CameraDevice, opts.FrameInterval)
	if err != nil {
		log.WithError(err).WithField("device", opts.CameraDevice).Warn("camera not available, using placeholder")
		return NewPlaceholder(opts.PlaceholderText)
	}

	log.WithField("device", opts.CameraDevice).Info("using live camera")
	return cam
}
