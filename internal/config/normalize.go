// internal/config/normalize.go
package config

import (
	"path/filepath"
	"strings"
	"time"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.RemoteLight.Kind == "" {
		cfg.RemoteLight.Kind = RemoteLightNone
	}
	if cfg.RemoteLight.TimeoutMs == 0 {
		cfg.RemoteLight.TimeoutMs = 2000
	}

	// fourcc is case sensitive for some backends; XVID is always upper case.
	cfg.Storage.Codec = strings.ToUpper(cfg.Storage.Codec)
	cfg.Storage.Container = strings.TrimPrefix(strings.ToLower(cfg.Storage.Container), ".")

	if cfg.Storage.BaseDir == "" {
		cfg.Storage.BaseDir = "."
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// ---- derived values ----

// ImagesDir is the absolute-or-relative root for image-sequence sessions.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.Storage.BaseDir, c.Storage.MotionImagesDir)
}

// VideosDir is the root for video artifacts.
func (c *Config) VideosDir() string {
	return filepath.Join(c.Storage.BaseDir, c.Storage.MotionVideosDir)
}

// Interval is the tick cadence (1/fps).
func (c *Config) Interval() time.Duration {
	return time.Second / time.Duration(c.Camera.FPS)
}

func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Motion.CooldownMs) * time.Millisecond
}

func (c *Config) AlarmDuration() time.Duration {
	return time.Duration(c.Alarm.Duration) * time.Second
}

func (c *Config) RemoteLightTimeout() time.Duration {
	return time.Duration(c.RemoteLight.TimeoutMs) * time.Millisecond
}
