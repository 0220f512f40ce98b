//go:build !gocv

package backdrop

import "time"

// NewCamera reports ErrCameraUnavailable in builds without the gocv tag
func NewCamera(device int, interval time.Duration) (Provider, error) {
	return nil, ErrCameraUnavailable
}
