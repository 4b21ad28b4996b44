package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/yt-grab-go/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	// Start with default config
	config := domain.DefaultConfig()

	// Set up viper
	v := viper.New()
	v.SetConfigType("yaml")

	// If config path is provided, use it
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.config/yt-grab")
		v.AddConfigPath("/etc/yt-grab")
	}

	// Read environment variables
	v.SetEnvPrefix("YTGRAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand environment variables in paths
	config = expandPaths(config)

	// Temp files live next to the output unless placed elsewhere
	if config.Output.TempDir == "" {
		config.Output.TempDir = config.Output.Dir
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Output.Dir = expandPath(config.Output.Dir)
	config.Output.TempDir = expandPath(config.Output.TempDir)
	config.Transcode.StdoutLog = expandPath(config.Transcode.StdoutLog)
	config.Transcode.StderrLog = expandPath(config.Transcode.StderrLog)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)

	if config.Logging.FilePath != "" {
		config.Logging.FilePath = expandPath(config.Logging.FilePath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	// Expand environment variables
	path = os.ExpandEnv(path)

	// Expand home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	// Replace $HOME
	if strings.Contains(path, "$HOME") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = strings.ReplaceAll(path, "$HOME", home)
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Output.Dir == "" {
		return fmt.Errorf("output directory not configured")
	}

	if config.Fetch.RetryAttempts < 1 {
		return fmt.Errorf("fetch retry attempts must be at least 1")
	}

	if config.Fetch.RetryDelay < 0 {
		return fmt.Errorf("fetch retry delay cannot be negative")
	}

	if config.Transcode.FFmpegBinary == "" {
		return fmt.Errorf("ffmpeg binary not configured")
	}

	if config.Transcode.MinClipDuration <= 0 {
		return fmt.Errorf("minimum clip duration must be positive")
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	// Durations are written in their string form so the file stays editable
	v.Set("output", map[string]any{
		"dir":      config.Output.Dir,
		"temp_dir": config.Output.TempDir,
	})
	v.Set("fetch", map[string]any{
		"retry_attempts":     config.Fetch.RetryAttempts,
		"retry_delay":        config.Fetch.RetryDelay.String(),
		"timeout":            config.Fetch.Timeout.String(),
		"default_resolution": config.Fetch.DefaultResolution,
	})
	v.Set("transcode", map[string]any{
		"ffmpeg_binary":     config.Transcode.FFmpegBinary,
		"stdout_log":        config.Transcode.StdoutLog,
		"stderr_log":        config.Transcode.StderrLog,
		"min_clip_duration": config.Transcode.MinClipDuration.String(),
	})
	v.Set("history", map[string]any{
		"enabled":       config.History.Enabled,
		"database_path": config.History.DatabasePath,
	})
	v.Set("notification", map[string]any{
		"enabled": config.Notification.Enabled,
		"method":  config.Notification.Method,
	})
	v.Set("logging", map[string]any{
		"level":     config.Logging.Level,
		"format":    config.Logging.Format,
		"file_path": config.Logging.FilePath,
	})

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config file
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
