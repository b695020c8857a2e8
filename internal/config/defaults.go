// internal/config/defaults.go
package config

// Default returns the configuration written on first start.
// Values match the field-tested Raspberry Pi setup (640x360 @ 20fps).
func Default() Config {
	return Config{
		Camera: CameraConfig{
			Device:     "0",
			Resolution: ResolutionConfig{Width: 640, Height: 360},
			FPS:        20,
		},
		Motion: MotionConfig{
			MinArea:           2000,
			MinFramesForVideo: 10,
			Threshold:         3,
			CooldownMs:        2000,
		},
		Alarm: AlarmConfig{
			Enabled:  true,
			Duration: 30,
			SirenPin: "GPIO3",
			RedPin:   "GPIO18",
			GreenPin: "GPIO15",
			BluePin:  "GPIO14",
		},
		NightLight: NightLightConfig{
			Enabled: true,
			Pin:     "GPIO7",
		},
		RemoteLight: RemoteLightConfig{
			Kind:      RemoteLightNone,
			TimeoutMs: 2000,
		},
		Storage: StorageConfig{
			BaseDir:         ".",
			MotionImagesDir: "motion_images",
			MotionVideosDir: "motion_videos",
			Container:       "avi",
			Codec:           "XVID",
		},
		LiveView: LiveViewConfig{
			Enabled: true,
			Listen:  ":8087",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Dir:    "logs",
		},
	}
}
