package infrastructure

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

func testTranscodeConfig(t *testing.T, binary string) *domain.TranscodeConfig {
	t.Helper()
	dir := t.TempDir()
	return &domain.TranscodeConfig{
		FFmpegBinary: binary,
		StdoutLog:    filepath.Join(dir, "out.log"),
		StderrLog:    filepath.Join(dir, "err.log"),
	}
}

func TestMuxArgs_ExactVector(t *testing.T) {
	args := muxArgs(domain.MuxJob{
		AudioPath:  "/tmp/audio-1.mp4",
		VideoPath:  "/tmp/video-1.mp4",
		OutputPath: "/downloads/out.mkv",
	})

	assert.Equal(t, []string{
		"-y",
		"-i", "/tmp/audio-1.mp4",
		"-i", "/tmp/video-1.mp4",
		"-shortest",
		"/downloads/out.mkv",
	}, args)
}

func TestClipArgs_TrimsBothInputs(t *testing.T) {
	args := clipArgs(domain.ClipJob{
		AudioPath:  "/tmp/audio-1.mp4",
		VideoPath:  "/tmp/video-1.mp4",
		Range:      domain.ClipRange{Start: 2*time.Minute + 5*time.Second, End: 2*time.Minute + 34*time.Second},
		OutputPath: "/downloads/clip.mp4",
	})

	assert.Equal(t, []string{
		"-y",
		"-ss", "125", "-to", "154", "-i", "/tmp/video-1.mp4",
		"-ss", "125", "-to", "154", "-i", "/tmp/audio-1.mp4",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"/downloads/clip.mp4",
	}, args)
}

func TestClipArgs_AudioOnlyEncodesMP3(t *testing.T) {
	args := clipArgs(domain.ClipJob{
		AudioPath:  "/tmp/audio-1.mp4",
		Range:      domain.ClipRange{Start: 10 * time.Second, End: 25 * time.Second},
		OutputPath: "/downloads/clip.mp3",
	})

	assert.Equal(t, []string{"-y", "-ss", "10", "-to", "25", "-i", "/tmp/audio-1.mp4"}, args[:7])
	assert.Contains(t, args, "libmp3lame")
	assert.NotContains(t, args, "-map")
	assert.Equal(t, "/downloads/clip.mp3", args[len(args)-1])
}

func TestClipArgs_SingleInputTrimsLocalFile(t *testing.T) {
	args := clipArgs(domain.ClipJob{
		VideoPath:  "/media/talk.webm",
		Range:      domain.ClipRange{Start: 95 * time.Second, End: 2*time.Minute + 10*time.Second},
		OutputPath: "/media/talk.mp4",
	})

	assert.Equal(t, []string{
		"-y",
		"-ss", "95", "-to", "130", "-i", "/media/talk.webm",
		"/media/talk.mp4",
	}, args)
}

func TestEncodeAudioArgs_UsesLameDefaults(t *testing.T) {
	args := encodeAudioArgs(domain.EncodeJob{
		AudioPath:  "/tmp/audio-1.mp4",
		OutputPath: "/downloads/talk.mp3",
	})

	assert.Contains(t, args, "libmp3lame")
	assert.Contains(t, args, "44100")
	assert.Contains(t, args, "192k")
	assert.Equal(t, "/downloads/talk.mp3", args[len(args)-1])
}

func TestFFmpegTranscoder_Mux_WritesCommandLog(t *testing.T) {
	cfg := testTranscodeConfig(t, "true")
	tr := NewFFmpegTranscoder(cfg, zap.NewNop())

	err := tr.Mux(context.Background(), domain.MuxJob{
		AudioPath:  "a.mp4",
		VideoPath:  "v.mp4",
		OutputPath: "out.mkv",
	})
	require.NoError(t, err)

	out, err := os.ReadFile(cfg.StdoutLog)
	require.NoError(t, err)
	assert.Contains(t, string(out), "$ true -y -i a.mp4 -i v.mp4 -shortest out.mkv")
	assert.Contains(t, string(out), "SUCCESS")
}

func TestFFmpegTranscoder_Mux_SurfacesStderrLogOnFailure(t *testing.T) {
	cfg := testTranscodeConfig(t, filepath.Join(t.TempDir(), "missing-ffmpeg"))
	tr := NewFFmpegTranscoder(cfg, zap.NewNop())

	err := tr.Mux(context.Background(), domain.MuxJob{
		AudioPath:  "a.mp4",
		VideoPath:  "v.mp4",
		OutputPath: "out.mkv",
	})
	require.Error(t, err)

	var muxErr *domain.MuxError
	require.True(t, errors.As(err, &muxErr))
	assert.Equal(t, cfg.StderrLog, muxErr.StderrLog)

	errLog, readErr := os.ReadFile(cfg.StderrLog)
	require.NoError(t, readErr)
	assert.Contains(t, string(errLog), "FAILED")
}

func TestFFmpegTranscoder_Clip_ErrorNamesStderrLog(t *testing.T) {
	cfg := testTranscodeConfig(t, filepath.Join(t.TempDir(), "missing-ffmpeg"))
	tr := NewFFmpegTranscoder(cfg, zap.NewNop())

	err := tr.Clip(context.Background(), domain.ClipJob{
		AudioPath:  "a.mp4",
		VideoPath:  "v.mp4",
		Range:      domain.ClipRange{Start: 0, End: 5 * time.Second},
		OutputPath: "clip.mp4",
	})
	require.Error(t, err)

	// clip failures are ordinary errors, not mux errors
	var muxErr *domain.MuxError
	assert.False(t, errors.As(err, &muxErr))
	assert.Contains(t, err.Error(), cfg.StderrLog)
}
