package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	if err := DefaultLayout().Validate(); err != nil {
		t.Errorf("DefaultLayout().Validate() = %v", err)
	}
}

func TestLoadLayoutOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	raw := []byte("home:\n  picksTarget: 5\nfeed:\n  maxVideos: 3\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	layout := LoadLayout(path)

	if layout.Home.PicksTarget != 5 {
		t.Errorf("picksTarget = %d, want overridden value 5", layout.Home.PicksTarget)
	}
	if layout.Feed.MaxVideos != 3 {
		t.Errorf("maxVideos = %d, want overridden value 3", layout.Feed.MaxVideos)
	}
	if layout.Home.HeroTarget != 1 {
		t.Errorf("heroTarget = %d, want untouched default 1", layout.Home.HeroTarget)
	}
}

func TestLoadLayoutMissingFileFallsBack(t *testing.T) {
	layout := LoadLayout(filepath.Join(t.TempDir(), "absent.yaml"))

	if layout != DefaultLayout() {
		t.Errorf("LoadLayout(missing) = %+v, want defaults", layout)
	}
}

func TestLayoutValidateRejectsBadValues(t *testing.T) {
	layout := DefaultLayout()
	layout.Feed.GroupSize = 0
	if err := layout.Validate(); err == nil {
		t.Error("Validate() accepted groupSize 0")
	}

	layout = DefaultLayout()
	layout.Related.Target = 0
	if err := layout.Validate(); err == nil {
		t.Error("Validate() accepted related target 0")
	}
}
