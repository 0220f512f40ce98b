package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/philipparndt/camruler/pkg/utils/ptr"
)

func TestResolveNilUsesDefaults(t *testing.T) {
	var raw *RawFile
	s, err := raw.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvePartialFile(t *testing.T) {
	raw := &RawFile{
		Unit:                ptr.To(" cm "),
		MarkerColor:         ptr.To("#FF000080"),
		FrameIntervalMillis: ptr.To(50),
		CameraEnabled:       ptr.To(false),
	}
	s, err := raw.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	expected := Default()
	expected.Unit = "cm"
	expected.MarkerColor = color.RGBA{255, 0, 0, 128}
	expected.FrameInterval = 50 * time.Millisecond
	expected.CameraEnabled = false

	if diff := cmp.Diff(expected, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	tests := map[string]*RawFile{
		"empty unit":        {Unit: ptr.To("  ")},
		"zero min pixels":   {MinReferencePixels: ptr.To(0.0)},
		"negative radius":   {MarkerRadius: ptr.To(float32(-1))},
		"zero line width":   {LineWidth: ptr.To(float32(0))},
		"bad color":         {MarkerColor: ptr.To("yellow")},
		"negative device":   {CameraDevice: ptr.To(-1)},
		"zero frame period": {FrameIntervalMillis: ptr.To(0)},
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := raw.Resolve(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestMergeOverrides(t *testing.T) {
	base := &RawFile{Unit: ptr.To("cm"), CameraDevice: ptr.To(1)}
	over := &RawFile{Unit: ptr.To("mm")}

	merged := base.Merge(over)
	if *merged.Unit != "mm" {
		t.Errorf("expected override unit mm, got %s", *merged.Unit)
	}
	if *merged.CameraDevice != 1 {
		t.Errorf("expected base camera device 1, got %d", *merged.CameraDevice)
	}
	if *base.Unit != "cm" {
		t.Error("Merge must not modify the receiver")
	}

	var nilBase *RawFile
	if got := nilBase.Merge(nil); got == nil || got.Unit != nil {
		t.Errorf("expected an empty RawFile, got %+v", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
		valid    bool
	}{
		{"#FFFF00", color.RGBA{255, 255, 0, 255}, true},
		{"00ff00", color.RGBA{0, 255, 0, 255}, true},
		{"#11223344", color.RGBA{0x11, 0x22, 0x33, 0x44}, true},
		{"#FFF", color.RGBA{}, false},
		{"#GGGGGG", color.RGBA{}, false},
	}

	for _, tt := range tests {
		c, err := ParseHexColor(tt.input)
		if tt.valid != (err == nil) {
			t.Errorf("ParseHexColor(%q): unexpected error state %v", tt.input, err)
			continue
		}
		if tt.valid && c != tt.expected {
			t.Errorf("ParseHexColor(%q): expected %v, got %v", tt.input, tt.expected, c)
		}
	}

	if s := FormatHexColor(color.RGBA{255, 255, 0, 255}); s != "#FFFF00" {
		t.Errorf("FormatHexColor failed: expected #FFFF00, got %s", s)
	}
	if s := FormatHexColor(color.RGBA{1, 2, 3, 4}); s != "#01020304" {
		t.Errorf("FormatHexColor failed: expected #01020304, got %s", s)
	}
}

func TestNewFileMissingUsesDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "absent.json"), nil)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if diff := cmp.Diff(Default(), f.Settings()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFileEmptyPath(t *testing.T) {
	f, err := NewFile("", &RawFile{Unit: ptr.To("in")})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if f.Settings().Unit != "in" {
		t.Errorf("expected override unit in, got %s", f.Settings().Unit)
	}
}

func TestFileLoadAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camruler.json")
	if err := os.WriteFile(path, []byte(`{"unit": "cm", "markerRadius": 8}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	f, err := NewFile(path, &RawFile{MarkerRadius: ptr.To(float32(6))})
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if s := f.Settings(); s.Unit != "cm" || s.MarkerRadius != 6 {
		t.Errorf("unexpected settings: unit %s radius %v", s.Unit, s.MarkerRadius)
	}

	os.WriteFile(path, []byte(`{"unit": "mm"}`), 0644)
	if err := f.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s := f.Settings(); s.Unit != "mm" || s.MarkerRadius != 6 {
		t.Errorf("unexpected settings after reload: unit %s radius %v", s.Unit, s.MarkerRadius)
	}

	// Invalid content keeps the previous settings
	os.WriteFile(path, []byte(`{"unit": `), 0644)
	err = f.Load()
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected parse error, got %v", err)
	}
	if f.Settings().Unit != "mm" {
		t.Errorf("expected previous unit mm to survive, got %s", f.Settings().Unit)
	}

	os.WriteFile(path, []byte(`{"lineWidth": -2}`), 0644)
	if err := f.Load(); err == nil {
		t.Error("expected validation error")
	}
}
