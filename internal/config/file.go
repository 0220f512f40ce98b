package config

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// File is a config backed by a JSON file. It is safe for concurrent use.
type File struct {
	mu        sync.RWMutex
	filepath  string
	overrides *RawFile
	settings  Settings
}

// NewFile loads path. A missing file yields the defaults. Non-nil fields of
// overrides (command-line flags) win over the file on every load.
func NewFile(path string, overrides *RawFile) (*File, error) {
	f := &File{
		filepath:  path,
		overrides: overrides,
		settings:  Default(),
	}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the backing file path
func (f *File) Path() string {
	return f.filepath
}

// Settings returns the current resolved settings
func (f *File) Settings() Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.settings
}

// Load reads and validates the file. On error the previous settings are kept.
func (f *File) Load() error {
	raw, err := f.read()
	if err != nil {
		return err
	}

	settings, err := raw.Merge(f.overrides).Resolve()
	if err != nil {
		return pkgerrors.Wrapf(err, "invalid config %s", f.filepath)
	}

	f.mu.Lock()
	f.settings = settings
	f.mu.Unlock()

	logrus.WithFields(settings.LogrusFields()).Debug("config loaded")
	return nil
}

func (f *File) read() (*RawFile, error) {
	raw := &RawFile{}
	if f.filepath == "" {
		return raw, nil
	}

	b, err := os.ReadFile(f.filepath)
	if errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", f.filepath).Warn("config file does not exist, using default config")
		return raw, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read config file %s", f.filepath)
	}

	if err := json.Unmarshal(b, raw); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to parse config file %s", f.filepath)
	}
	return raw, nil
}
