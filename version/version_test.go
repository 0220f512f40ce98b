package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	if got := GetFullVersion(); got != "dev" {
		t.Errorf("expected dev, got %q", got)
	}

	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-10-01"
	if got, want := GetFullVersion(), "1.2.0 (commit abc123, built 2026-10-01)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
