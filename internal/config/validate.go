// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// CAMERA
	// ------------------------------------------------------------

	if cfg.Camera.Device == "" {
		return errors.New("camera.device is required")
	}
	if cfg.Camera.Resolution.Width <= 0 || cfg.Camera.Resolution.Height <= 0 {
		return fmt.Errorf(
			"camera.resolution must be positive, got %dx%d",
			cfg.Camera.Resolution.Width,
			cfg.Camera.Resolution.Height,
		)
	}
	if cfg.Camera.FPS <= 0 {
		return fmt.Errorf("camera.fps must be > 0, got %d", cfg.Camera.FPS)
	}

	// ------------------------------------------------------------
	// MOTION
	// ------------------------------------------------------------

	m := cfg.Motion
	if m.MinArea <= 0 {
		return fmt.Errorf("motion_detection.min_area must be > 0, got %v", m.MinArea)
	}
	if m.Threshold < 1 {
		return fmt.Errorf("motion_detection.threshold must be >= 1, got %d", m.Threshold)
	}
	if m.CooldownMs <= 0 {
		return fmt.Errorf("motion_detection.cooldown_ms must be > 0, got %d", m.CooldownMs)
	}
	if m.MinFramesForVideo < 1 {
		return fmt.Errorf("motion_detection.min_frames_for_video must be >= 1, got %d", m.MinFramesForVideo)
	}

	// ------------------------------------------------------------
	// OUTPUT PINS (no two enabled outputs may share a pin)
	// ------------------------------------------------------------

	owner := make(map[string]string)
	claim := func(pin, role string) error {
		if pin == "" {
			return fmt.Errorf("%s: pin is required", role)
		}
		if prev, exists := owner[pin]; exists {
			return fmt.Errorf("pin collision: %s used by %s and %s", pin, prev, role)
		}
		owner[pin] = role
		return nil
	}

	if cfg.Alarm.Enabled {
		if cfg.Alarm.Duration <= 0 {
			return fmt.Errorf("alarm.duration must be > 0, got %d", cfg.Alarm.Duration)
		}
		for _, p := range []struct{ pin, role string }{
			{cfg.Alarm.SirenPin, "alarm.siren_pin"},
			{cfg.Alarm.RedPin, "alarm.red_pin"},
			{cfg.Alarm.GreenPin, "alarm.green_pin"},
			{cfg.Alarm.BluePin, "alarm.blue_pin"},
		} {
			if err := claim(p.pin, p.role); err != nil {
				return err
			}
		}
	}
	if cfg.NightLight.Enabled {
		if err := claim(cfg.NightLight.Pin, "night_light.pin"); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// REMOTE LIGHT
	// ------------------------------------------------------------

	rl := cfg.RemoteLight
	switch rl.Kind {
	case "", RemoteLightNone:
	case RemoteLightModbus:
		if rl.Endpoint == "" {
			return errors.New("remote_light.endpoint is required for kind=modbus")
		}
		if rl.TimeoutMs < 0 {
			return fmt.Errorf("remote_light.timeout_ms must be >= 0, got %d", rl.TimeoutMs)
		}
	case RemoteLightCommand:
		if len(rl.Command) == 0 || rl.Command[0] == "" {
			return errors.New("remote_light.command is required for kind=command")
		}
	default:
		return fmt.Errorf("remote_light.kind %q is not one of none|modbus|command", rl.Kind)
	}

	// ------------------------------------------------------------
	// STORAGE
	// ------------------------------------------------------------

	if cfg.Storage.MotionImagesDir == "" || cfg.Storage.MotionVideosDir == "" {
		return errors.New("storage.motion_images_dir and storage.motion_videos_dir are required")
	}
	if cfg.Storage.MotionImagesDir == cfg.Storage.MotionVideosDir {
		return errors.New("storage.motion_images_dir and storage.motion_videos_dir must differ")
	}
	if cfg.Storage.Container == "" {
		return errors.New("storage.container is required")
	}
	if len(cfg.Storage.Codec) != 4 {
		return fmt.Errorf("storage.codec must be a 4 character fourcc, got %q", cfg.Storage.Codec)
	}

	// ------------------------------------------------------------
	// LIVE VIEW + LOG
	// ------------------------------------------------------------

	if cfg.LiveView.Enabled && cfg.LiveView.Listen == "" {
		return errors.New("live_view.listen is required when live_view is enabled")
	}
	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format %q is not one of console|json", cfg.Log.Format)
	}

	return nil
}
