package infrastructure

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// FFmpegTranscoder implements Transcoder by spawning an external ffmpeg
// binary. Subprocess stdout/stderr are redirected to the configured log files
// for postmortem inspection; the exit status of every invocation is checked.
type FFmpegTranscoder struct {
	config *domain.TranscodeConfig
	logger *zap.Logger
}

// NewFFmpegTranscoder creates a new ffmpeg-backed transcoder
func NewFFmpegTranscoder(config *domain.TranscodeConfig, logger *zap.Logger) *FFmpegTranscoder {
	return &FFmpegTranscoder{
		config: config,
		logger: logger,
	}
}

// Mux combines separately downloaded audio and video temp files into
// job.OutputPath without re-encoding, bounded by the shorter stream.
// A non-zero exit is surfaced as a MuxError carrying the stderr log path.
func (t *FFmpegTranscoder) Mux(ctx context.Context, job domain.MuxJob) error {
	if err := t.run(ctx, "mux", muxArgs(job)); err != nil {
		return &domain.MuxError{Err: err, StderrLog: t.config.StderrLog}
	}
	return nil
}

// Clip produces a time-trimmed re-encode. With both tracks present the
// trimmed audio replaces the video's own audio track; in audio-only mode the
// output is an mp3; with only a video path a single muxed file is trimmed in
// place of the download pair. This is the CPU-intensive stage.
func (t *FFmpegTranscoder) Clip(ctx context.Context, job domain.ClipJob) error {
	if err := t.run(ctx, "clip", clipArgs(job)); err != nil {
		return fmt.Errorf("clip encode failed: %w (stderr log: %s)", err, t.config.StderrLog)
	}
	return nil
}

// EncodeAudio re-encodes a downloaded audio temp file to mp3 at
// job.OutputPath, for audio-only grabs without a clip range
func (t *FFmpegTranscoder) EncodeAudio(ctx context.Context, job domain.EncodeJob) error {
	if err := t.run(ctx, "encode-audio", encodeAudioArgs(job)); err != nil {
		return fmt.Errorf("audio encode failed: %w (stderr log: %s)", err, t.config.StderrLog)
	}
	return nil
}

// muxArgs builds the lossless container-combine argument vector
func muxArgs(job domain.MuxJob) []string {
	return []string{
		"-y",
		"-i", job.AudioPath,
		"-i", job.VideoPath,
		"-shortest",
		job.OutputPath,
	}
}

// clipArgs builds the trim-and-re-encode argument vector. With two inputs
// both are trimmed to the same window and the output maps the video track of
// the first and the audio track of the second. A job with only a video path
// trims a single already-muxed file, keeping its own audio.
func clipArgs(job domain.ClipJob) []string {
	start := formatSeconds(job.Range.Start)
	end := formatSeconds(job.Range.End)

	if job.VideoPath == "" {
		return []string{
			"-y",
			"-ss", start, "-to", end, "-i", job.AudioPath,
			"-vn", "-acodec", "libmp3lame", "-ar", "44100", "-b:a", "192k",
			job.OutputPath,
		}
	}

	if job.AudioPath == "" {
		return []string{
			"-y",
			"-ss", start, "-to", end, "-i", job.VideoPath,
			job.OutputPath,
		}
	}

	return []string{
		"-y",
		"-ss", start, "-to", end, "-i", job.VideoPath,
		"-ss", start, "-to", end, "-i", job.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		job.OutputPath,
	}
}

// encodeAudioArgs builds the full-length mp3 encode argument vector
func encodeAudioArgs(job domain.EncodeJob) []string {
	return []string{
		"-y", "-loglevel", "error", "-nostdin",
		"-i", job.AudioPath,
		"-vn", "-acodec", "libmp3lame", "-ar", "44100", "-b:a", "192k",
		job.OutputPath,
	}
}

// formatSeconds renders a duration as whole seconds for ffmpeg
func formatSeconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

// run executes ffmpeg with stdout/stderr redirected to the configured log
// files and returns the checked exit result
func (t *FFmpegTranscoder) run(ctx context.Context, op string, args []string) error {
	stdout, err := openLogFile(t.config.StdoutLog)
	if err != nil {
		return fmt.Errorf("failed to open stdout log: %w", err)
	}
	defer stdout.Close()

	stderr, err := openLogFile(t.config.StderrLog)
	if err != nil {
		return fmt.Errorf("failed to open stderr log: %w", err)
	}
	defer stderr.Close()

	// Log the full command line; exec passes args directly, the quoting is
	// for display only
	cmdLine := CommandLine(t.config.FFmpegBinary, args...)
	t.logger.Debug("Running transcoder", zap.String("op", op), zap.String("cmd", cmdLine))
	writeLogHeader(stdout, op, cmdLine)
	writeLogHeader(stderr, op, cmdLine)

	cmd := exec.CommandContext(ctx, t.config.FFmpegBinary, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		writeLogFooter(stderr, false, err.Error())
		return fmt.Errorf("%s %s: %w", t.config.FFmpegBinary, op, err)
	}

	writeLogFooter(stdout, true, op+" finished")
	return nil
}

// openLogFile opens a transcoder log file for appending, creating its
// directory if needed
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// writeLogHeader writes the operation start marker
func writeLogHeader(file *os.File, op, cmdLine string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	file.WriteString(fmt.Sprintf("\n=== [%s] %s ===\n", timestamp, op))
	file.WriteString(fmt.Sprintf("$ %s\n", cmdLine))
}

// writeLogFooter writes the operation end marker
func writeLogFooter(file *os.File, success bool, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	file.WriteString(fmt.Sprintf("[%s] %s: %s\n", timestamp, status, message))
	file.WriteString("=== END ===\n\n")
}
