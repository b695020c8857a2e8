// internal/config/config.go
package config

type Config struct {
	Camera      CameraConfig      `yaml:"camera" mapstructure:"camera"`
	Motion      MotionConfig      `yaml:"motion_detection" mapstructure:"motion_detection"`
	Alarm       AlarmConfig       `yaml:"alarm" mapstructure:"alarm"`
	NightLight  NightLightConfig  `yaml:"night_light" mapstructure:"night_light"`
	RemoteLight RemoteLightConfig `yaml:"remote_light" mapstructure:"remote_light"`
	Storage     StorageConfig     `yaml:"storage" mapstructure:"storage"`
	LiveView    LiveViewConfig    `yaml:"live_view" mapstructure:"live_view"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ---- CAMERA ----

type CameraConfig struct {
	Device     string           `yaml:"device" mapstructure:"device"` // index ("0") or file/URL
	Resolution ResolutionConfig `yaml:"resolution" mapstructure:"resolution"`
	FPS        int              `yaml:"fps" mapstructure:"fps"`
}

type ResolutionConfig struct {
	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`
}

// ---- MOTION ----

type MotionConfig struct {
	MinArea           float64 `yaml:"min_area" mapstructure:"min_area"` // absolute pixels, resolution dependent
	MinFramesForVideo int     `yaml:"min_frames_for_video" mapstructure:"min_frames_for_video"`
	Threshold         int     `yaml:"threshold" mapstructure:"threshold"`
	CooldownMs        int     `yaml:"cooldown_ms" mapstructure:"cooldown_ms"`
}

// ---- ALARM ----

type AlarmConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Duration int    `yaml:"duration" mapstructure:"duration"` // seconds
	SirenPin string `yaml:"siren_pin" mapstructure:"siren_pin"`
	RedPin   string `yaml:"red_pin" mapstructure:"red_pin"`
	GreenPin string `yaml:"green_pin" mapstructure:"green_pin"`
	BluePin  string `yaml:"blue_pin" mapstructure:"blue_pin"`
}

type NightLightConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Pin     string `yaml:"pin" mapstructure:"pin"`
}

// ---- REMOTE LIGHT ----

const (
	RemoteLightNone    = "none"
	RemoteLightModbus  = "modbus"
	RemoteLightCommand = "command"
)

type RemoteLightConfig struct {
	Kind      string   `yaml:"kind" mapstructure:"kind"`
	Endpoint  string   `yaml:"endpoint" mapstructure:"endpoint"`
	UnitID    uint8    `yaml:"unit_id" mapstructure:"unit_id"`
	Coil      uint16   `yaml:"coil" mapstructure:"coil"`
	TimeoutMs int      `yaml:"timeout_ms" mapstructure:"timeout_ms"`
	Command   []string `yaml:"command" mapstructure:"command"`
}

// ---- STORAGE ----

type StorageConfig struct {
	BaseDir         string `yaml:"base_dir" mapstructure:"base_dir"`
	MotionImagesDir string `yaml:"motion_images_dir" mapstructure:"motion_images_dir"`
	MotionVideosDir string `yaml:"motion_videos_dir" mapstructure:"motion_videos_dir"`
	Container       string `yaml:"container" mapstructure:"container"`
	Codec           string `yaml:"codec" mapstructure:"codec"`
	AsyncFlush      bool   `yaml:"async_flush" mapstructure:"async_flush"`
	IndexDB         string `yaml:"index_db" mapstructure:"index_db"` // empty disables the index
}

// ---- LIVE VIEW ----

type LiveViewConfig struct {
	Enabled     bool     `yaml:"enabled" mapstructure:"enabled"`
	Listen      string   `yaml:"listen" mapstructure:"listen"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console | json
	Dir    string `yaml:"dir" mapstructure:"dir"`
}
