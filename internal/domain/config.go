package domain

import "time"

// Config represents the application configuration
type Config struct {
	Output       OutputConfig       `mapstructure:"output"`
	Fetch        FetchConfig        `mapstructure:"fetch"`
	Transcode    TranscodeConfig    `mapstructure:"transcode"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// OutputConfig contains output placement configuration
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	TempDir string `mapstructure:"temp_dir"` // defaults to Dir when empty
}

// FetchConfig contains metadata fetch configuration
type FetchConfig struct {
	RetryAttempts     int           `mapstructure:"retry_attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	Timeout           time.Duration `mapstructure:"timeout"`
	DefaultResolution string        `mapstructure:"default_resolution"` // empty means best available
}

// TranscodeConfig contains external transcoder configuration
type TranscodeConfig struct {
	FFmpegBinary    string        `mapstructure:"ffmpeg_binary"`
	StdoutLog       string        `mapstructure:"stdout_log"`
	StderrLog       string        `mapstructure:"stderr_log"`
	MinClipDuration time.Duration `mapstructure:"min_clip_duration"`
}

// HistoryConfig contains grab history configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level    string `mapstructure:"level"`     // debug, info, warn, error
	Format   string `mapstructure:"format"`    // json, console
	FilePath string `mapstructure:"file_path"` // empty disables the file log
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "$HOME/Downloads",
		},
		Fetch: FetchConfig{
			RetryAttempts:     3,
			RetryDelay:        2 * time.Second,
			Timeout:           30 * time.Second,
			DefaultResolution: "",
		},
		Transcode: TranscodeConfig{
			FFmpegBinary:    "ffmpeg",
			StdoutLog:       "$HOME/Downloads/yt-grab-out.log",
			StderrLog:       "$HOME/Downloads/yt-grab-err.log",
			MinClipDuration: time.Second,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.config/yt-grab/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "osascript",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			FilePath: "$HOME/.yt-grab.log",
		},
	}
}
