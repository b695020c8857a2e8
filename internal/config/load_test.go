// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_CreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "motion_config.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default file to be written: %v", err)
	}
	if cfg.Camera.FPS != 20 || cfg.Motion.MinFramesForVideo != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion_config.yml")
	doc := []byte("camera:\n  fps: 10\nmotion_detection:\n  min_area: 500\n")
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	if cfg.Camera.FPS != 10 {
		t.Fatalf("expected fps 10, got %d", cfg.Camera.FPS)
	}
	if cfg.Motion.MinArea != 500 {
		t.Fatalf("expected min_area 500, got %v", cfg.Motion.MinArea)
	}
	if cfg.Camera.Resolution.Width != 640 {
		t.Fatalf("expected default width 640, got %d", cfg.Camera.Resolution.Width)
	}
	if cfg.Alarm.RedPin != "GPIO18" {
		t.Fatalf("expected default red pin, got %q", cfg.Alarm.RedPin)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion_config.yml")
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHOTOTRAP_ALARM_DURATION", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}
	if cfg.Alarm.Duration != 5 {
		t.Fatalf("expected env override 5, got %d", cfg.Alarm.Duration)
	}
}

func TestWriteDefault_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motion_config.yml")
	if err := os.WriteFile(path, []byte("camera:\n  fps: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() err=%v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "camera:\n  fps: 7\n" {
		t.Fatalf("existing file overwritten: %q", got)
	}
}
