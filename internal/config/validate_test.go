// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

// helper to get a valid config quickly
func valid() *Config {
	c := Default()
	return &c
}

// ---- tests ----

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(valid()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsZeroFPS(t *testing.T) {
	cfg := valid()
	cfg.Camera.FPS = 0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected fps error, got nil")
	}
}

func TestValidate_RejectsZeroThreshold(t *testing.T) {
	cfg := valid()
	cfg.Motion.Threshold = 0

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected threshold error, got nil")
	}
}

func TestValidate_PinCollisionDetected(t *testing.T) {
	cfg := valid()
	cfg.NightLight.Pin = cfg.Alarm.RedPin

	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected pin collision error, got nil")
	}
	if !strings.Contains(err.Error(), "pin collision") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_AlarmPinsIgnoredWhenDisabled(t *testing.T) {
	cfg := valid()
	cfg.Alarm.Enabled = false
	cfg.Alarm.SirenPin = ""
	cfg.Alarm.Duration = 0

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RemoteLightModbusNeedsEndpoint(t *testing.T) {
	cfg := valid()
	cfg.RemoteLight.Kind = RemoteLightModbus

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}

	cfg.RemoteLight.Endpoint = "192.168.1.50:502"
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RemoteLightUnknownKind(t *testing.T) {
	cfg := valid()
	cfg.RemoteLight.Kind = "zigbee"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected kind error, got nil")
	}
}

func TestValidate_CodecMustBeFourCC(t *testing.T) {
	cfg := valid()
	cfg.Storage.Codec = "H264X"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected codec error, got nil")
	}
}

func TestValidate_SameStorageDirsRejected(t *testing.T) {
	cfg := valid()
	cfg.Storage.MotionImagesDir = "motion"
	cfg.Storage.MotionVideosDir = "motion"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected storage dir error, got nil")
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := valid()
	cfg.Storage.Codec = "xvid"
	before := *cfg

	_ = Validate(cfg)

	if cfg.Storage.Codec != before.Storage.Codec || cfg.Camera != before.Camera {
		t.Fatalf("Validate mutated config")
	}
}

func TestNormalize_CodecAndContainer(t *testing.T) {
	cfg := valid()
	cfg.Storage.Codec = "xvid"
	cfg.Storage.Container = ".AVI"
	cfg.RemoteLight.Kind = ""

	Normalize(cfg)

	if cfg.Storage.Codec != "XVID" {
		t.Fatalf("expected XVID, got %q", cfg.Storage.Codec)
	}
	if cfg.Storage.Container != "avi" {
		t.Fatalf("expected avi, got %q", cfg.Storage.Container)
	}
	if cfg.RemoteLight.Kind != RemoteLightNone {
		t.Fatalf("expected kind none, got %q", cfg.RemoteLight.Kind)
	}
}

func TestDerivedDurations(t *testing.T) {
	cfg := valid()

	if got := cfg.Interval().Milliseconds(); got != 50 {
		t.Fatalf("expected 50ms interval at 20fps, got %dms", got)
	}
	if got := cfg.Cooldown().Seconds(); got != 2 {
		t.Fatalf("expected 2s cooldown, got %v", got)
	}
	if got := cfg.AlarmDuration().Seconds(); got != 30 {
		t.Fatalf("expected 30s alarm, got %v", got)
	}
}
