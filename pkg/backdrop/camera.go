//go:build gocv

package backdrop

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// DefaultFrameInterval paces the frame loop at roughly 30 FPS
const DefaultFrameInterval = 33 * time.Millisecond

// Camera renders frames from a capture device. Frames are only displayed;
// no pixel data is passed on.
type Camera struct {
	device   int
	interval time.Duration
	webcam   *gocv.VideoCapture
	image    *canvas.Image

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// NewCamera opens the given capture device
func NewCamera(device int, interval time.Duration) (Provider, error) {
	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCameraUnavailable, err)
	}
	if !webcam.IsOpened() {
		webcam.Close()
		return nil, fmt.Errorf("%w: device %d not opened", ErrCameraUnavailable, device)
	}

	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain

	return &Camera{
		device:   device,
		interval: interval,
		webcam:   webcam,
		image:    img,
		done:     make(chan struct{}),
	}, nil
}

// Name returns "camera"
func (c *Camera) Name() string { return "camera" }

// CanvasObject returns the image the frames are drawn into
func (c *Camera) CanvasObject() fyne.CanvasObject { return c.image }

// Start launches the frame loop
func (c *Camera) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return fmt.Errorf("camera %d already started", c.device)
	}
	c.started = true

	go c.loop(ctx)
	return nil
}

func (c *Camera) loop(ctx context.Context) {
	defer close(c.done)

	log := logrus.WithFields(logrus.Fields{"component": "backdrop", "device": c.device})
	mat := gocv.NewMat()
	defer mat.Close()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("frame loop stopped")
			return
		case <-ticker.C:
		}

		if ok := c.webcam.Read(&mat); !ok || mat.Empty() {
			continue
		}

		frame, err := mat.ToImage()
		if err != nil {
			log.WithError(err).Debug("frame conversion failed")
			continue
		}
		c.show(frame)
	}
}

func (c *Camera) show(frame image.Image) {
	// Update fyne thread-safely
	fyne.Do(func() {
		c.image.Image = frame
		c.image.Refresh()
	})
}

// Close stops using the capture device. The frame loop must have been
// stopped through its context first if it was started.
func (c *Camera) Close() error {
	c.mu.Lock()
	started := c.started
	c.mu.Unlock()

	if started {
		<-c.done
	}
	return c.webcam.Close()
}
