package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReportsWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "camruler.json")
	if err := os.WriteFile(file, []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fw, err := NewFileWatcher(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 4)
	if err := fw.Watch(file, func(path string) { changed <- path }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	// Several quick writes collapse into one callback
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte(`{"unit":"cm"}`), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	select {
	case path := <-changed:
		want, _ := filepath.Abs(file)
		if path != want {
			t.Errorf("expected %s, got %s", want, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "camruler.json")
	other := filepath.Join(dir, "other.json")
	os.WriteFile(file, []byte(`{}`), 0644)

	fw, err := NewFileWatcher(10 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 1)
	if err := fw.Watch(file, func(path string) { changed <- path }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	os.WriteFile(other, []byte(`{}`), 0644)

	select {
	case path := <-changed:
		t.Errorf("unexpected notification for %s", path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	defer fw.Close()

	if err := fw.Watch(filepath.Join(t.TempDir(), "missing", "camruler.json"), func(string) {}); err == nil {
		t.Error("expected error for a file in a missing directory")
	}
}
