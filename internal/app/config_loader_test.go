package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_DefaultsWhenFileEmpty(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	config, err := LoadConfig(writeConfigFile(t, ""))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Downloads"), config.Output.Dir)
	assert.Equal(t, config.Output.Dir, config.Output.TempDir)
	assert.Equal(t, 3, config.Fetch.RetryAttempts)
	assert.Equal(t, 2*time.Second, config.Fetch.RetryDelay)
	assert.Equal(t, "ffmpeg", config.Transcode.FFmpegBinary)
	assert.Equal(t, time.Second, config.Transcode.MinClipDuration)
	assert.True(t, config.History.Enabled)
	assert.Equal(t, filepath.Join(home, ".config", "yt-grab", "history.db"), config.History.DatabasePath)
	assert.False(t, config.Notification.Enabled)
}

func TestLoadConfig_ReadsYAMLOverrides(t *testing.T) {
	path := writeConfigFile(t, `
output:
  dir: /data/media
fetch:
  retry_attempts: 5
  retry_delay: 10s
  default_resolution: 720p
transcode:
  min_clip_duration: 2s
history:
  enabled: false
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/media", config.Output.Dir)
	assert.Equal(t, "/data/media", config.Output.TempDir, "temp dir falls back to output dir")
	assert.Equal(t, 5, config.Fetch.RetryAttempts)
	assert.Equal(t, 10*time.Second, config.Fetch.RetryDelay)
	assert.Equal(t, "720p", config.Fetch.DefaultResolution)
	assert.Equal(t, 2*time.Second, config.Transcode.MinClipDuration)
	assert.False(t, config.History.Enabled)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
fetch:
  retry_attempts: 5
`)
	t.Setenv("YTGRAB_FETCH_RETRY_ATTEMPTS", "7")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7, config.Fetch.RetryAttempts)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "zero retry attempts",
			yaml:    "fetch:\n  retry_attempts: 0\n",
			wantErr: "retry attempts",
		},
		{
			name:    "zero minimum clip duration",
			yaml:    "transcode:\n  min_clip_duration: 0\n",
			wantErr: "minimum clip duration",
		},
		{
			name:    "empty ffmpeg binary",
			yaml:    "transcode:\n  ffmpeg_binary: \"\"\n",
			wantErr: "ffmpeg binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "Downloads"), expandPath("~/Downloads"))
	assert.Equal(t, filepath.Join(home, "Downloads"), expandPath("$HOME/Downloads"))
	assert.Equal(t, "/var/log/yt-grab.log", expandPath("/var/log/yt-grab.log"))
}

func TestSaveConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := domain.DefaultConfig()
	original.Output.Dir = "/data/media"
	original.Output.TempDir = "/data/tmp"
	original.Fetch.RetryAttempts = 4
	original.Fetch.RetryDelay = 5 * time.Second
	original.Transcode.StdoutLog = "/data/logs/out.log"
	original.Transcode.StderrLog = "/data/logs/err.log"
	original.History.DatabasePath = "/data/history.db"
	original.Logging.FilePath = ""

	require.NoError(t, SaveConfig(original, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/media", loaded.Output.Dir)
	assert.Equal(t, "/data/tmp", loaded.Output.TempDir)
	assert.Equal(t, 4, loaded.Fetch.RetryAttempts)
	assert.Equal(t, 5*time.Second, loaded.Fetch.RetryDelay)
	assert.Equal(t, "/data/logs/err.log", loaded.Transcode.StderrLog)
}
