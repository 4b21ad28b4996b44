package domain

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOutputTarget(t *testing.T) {
	now := time.Date(2025, 8, 25, 10, 30, 0, 0, time.UTC)

	target := NewOutputTarget("/downloads", "A Good Talk", now)

	assert.Equal(t, "/downloads", target.Dir)
	assert.Equal(t, "2508_251030 - A Good Talk", target.BaseName)
}

func TestNewOutputTarget_SanitizesTitle(t *testing.T) {
	now := time.Date(2025, 8, 25, 10, 30, 0, 0, time.UTC)

	target := NewOutputTarget("/downloads", `What? "A/B" <Test>`, now)

	assert.Equal(t, "2508_251030 - What- -A-B- -Test-", target.BaseName)
}

func TestOutputTarget_Paths(t *testing.T) {
	target := OutputTarget{Dir: "/downloads", BaseName: "2508_251030 - Talk"}

	assert.Equal(t, filepath.Join("/downloads", "2508_251030 - Talk.mkv"), target.MuxedPath())
	assert.Equal(t, filepath.Join("/downloads", "2508_251030 - Talk.mp4"), target.ClipPath())
	assert.Equal(t, filepath.Join("/downloads", "2508_251030 - Talk.mp3"), target.AudioPath())
	assert.Equal(t, filepath.Join("/downloads", "2508_251030 - Talk.md"), target.NotePath())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"plain title", "plain title"},
		{`a/b\c`, "a-b-c"},
		{"ends with space ", "ends with space"},
		{"tabs\tand\x00nulls", "tabs-and-nulls"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.name))
		})
	}
}

func TestNewTempSet(t *testing.T) {
	set := NewTempSet("/tmp/grab", "run-1234")

	assert.Equal(t, filepath.Join("/tmp/grab", "video-run-1234.mp4"), set.VideoPath)
	assert.Equal(t, filepath.Join("/tmp/grab", "audio-run-1234.mp4"), set.AudioPath)
	assert.Equal(t, []string{set.VideoPath, set.AudioPath}, set.Paths())
}

func TestNewTempSet_UniquePerRun(t *testing.T) {
	a := NewTempSet("/tmp/grab", "run-a")
	b := NewTempSet("/tmp/grab", "run-b")

	assert.NotEqual(t, a.VideoPath, b.VideoPath)
	assert.NotEqual(t, a.AudioPath, b.AudioPath)
}
