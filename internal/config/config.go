// Package config holds the runtime settings of camruler. Settings come from an
// optional JSON file; every field is optional and falls back to a default.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Settings is a fully resolved configuration
type Settings struct {
	Unit               string
	MinReferencePixels float64
	MarkerRadius       float32
	LineWidth          float32
	MarkerColor        color.RGBA
	CameraDevice       int
	CameraEnabled      bool
	FrameInterval      time.Duration
	Language           string
}

// RawFile is the on-disk representation. Nil fields take their default.
type RawFile struct {
	Unit                *string  `json:"unit,omitempty"`
	MinReferencePixels  *float64 `json:"minReferencePixels,omitempty"`
	MarkerRadius        *float32 `json:"markerRadius,omitempty"`
	LineWidth           *float32 `json:"lineWidth,omitempty"`
	MarkerColor         *string  `json:"markerColor,omitempty"`
	CameraDevice        *int     `json:"cameraDevice,omitempty"`
	CameraEnabled       *bool    `json:"cameraEnabled,omitempty"`
	FrameIntervalMillis *int     `json:"frameIntervalMillis,omitempty"`
	Language            *string  `json:"language,omitempty"`
}

// Default returns the built-in settings
func Default() Settings {
	return Settings{
		Unit:               "unit",
		MinReferencePixels: 1,
		MarkerRadius:       5,
		LineWidth:          3,
		MarkerColor:        color.RGBA{255, 255, 0, 255},
		CameraDevice:       0,
		CameraEnabled:      true,
		FrameInterval:      33 * time.Millisecond,
	}
}

// Resolve merges raw over the defaults and validates the result
func (raw *RawFile) Resolve() (Settings, error) {
	s := Default()
	if raw == nil {
		return s, nil
	}

	if raw.Unit != nil {
		s.Unit = strings.TrimSpace(*raw.Unit)
		if s.Unit == "" {
			return s, pkgerrors.New("unit must not be empty")
		}
	}
	if raw.MinReferencePixels != nil {
		if *raw.MinReferencePixels <= 0 {
			return s, pkgerrors.Errorf("minReferencePixels must be positive, got %v", *raw.MinReferencePixels)
		}
		s.MinReferencePixels = *raw.MinReferencePixels
	}
	if raw.MarkerRadius != nil {
		if *raw.MarkerRadius <= 0 {
			return s, pkgerrors.Errorf("markerRadius must be positive, got %v", *raw.MarkerRadius)
		}
		s.MarkerRadius = *raw.MarkerRadius
	}
	if raw.LineWidth != nil {
		if *raw.LineWidth <= 0 {
			return s, pkgerrors.Errorf("lineWidth must be positive, got %v", *raw.LineWidth)
		}
		s.LineWidth = *raw.LineWidth
	}
	if raw.MarkerColor != nil {
		c, err := ParseHexColor(*raw.MarkerColor)
		if err != nil {
			return s, pkgerrors.Wrap(err, "markerColor")
		}
		s.MarkerColor = c
	}
	if raw.CameraDevice != nil {
		if *raw.CameraDevice < 0 {
			return s, pkgerrors.Errorf("cameraDevice must not be negative, got %d", *raw.CameraDevice)
		}
		s.CameraDevice = *raw.CameraDevice
	}
	if raw.CameraEnabled != nil {
		s.CameraEnabled = *raw.CameraEnabled
	}
	if raw.FrameIntervalMillis != nil {
		if *raw.FrameIntervalMillis <= 0 {
			return s, pkgerrors.Errorf("frameIntervalMillis must be positive, got %d", *raw.FrameIntervalMillis)
		}
		s.FrameInterval = time.Duration(*raw.FrameIntervalMillis) * time.Millisecond
	}
	if raw.Language != nil {
		s.Language = strings.TrimSpace(*raw.Language)
	}

	return s, nil
}

// Merge returns a copy of raw with every non-nil field of over applied
func (raw *RawFile) Merge(over *RawFile) *RawFile {
	out := RawFile{}
	if raw != nil {
		out = *raw
	}
	if over == nil {
		return &out
	}

	if over.Unit != nil {
		out.Unit = over.Unit
	}
	if over.MinReferencePixels != nil {
		out.MinReferencePixels = over.MinReferencePixels
	}
	if over.MarkerRadius != nil {
		out.MarkerRadius = over.MarkerRadius
	}
	if over.LineWidth != nil {
		out.LineWidth = over.LineWidth
	}
	if over.MarkerColor != nil {
		out.MarkerColor = over.MarkerColor
	}
	if over.CameraDevice != nil {
		out.CameraDevice = over.CameraDevice
	}
	if over.CameraEnabled != nil {
		out.CameraEnabled = over.CameraEnabled
	}
	if over.FrameIntervalMillis != nil {
		out.FrameIntervalMillis = over.FrameIntervalMillis
	}
	if over.Language != nil {
		out.Language = over.Language
	}
	return &out
}

// LogrusFields returns the settings as log fields
func (s Settings) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"unit":               s.Unit,
		"minReferencePixels": s.MinReferencePixels,
		"markerRadius":       s.MarkerRadius,
		"lineWidth":          s.LineWidth,
		"markerColor":        FormatHexColor(s.MarkerColor),
		"cameraDevice":       s.CameraDevice,
		"cameraEnabled":      s.CameraEnabled,
		"frameInterval":      s.FrameInterval.String(),
		"language":           s.Language,
	}
}

// ParseHexColor parses #RRGGBB or #RRGGBBAA
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB or #RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatHexColor renders c as #RRGGBB, or #RRGGBBAA when not opaque
func FormatHexColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
