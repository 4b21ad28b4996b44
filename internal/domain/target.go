package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// zettelLayout is the timestamp prefix for output base names, YYMM_DDHHMM
const zettelLayout = "0601_021504"

// unsafeFilenameChars matches characters stripped from titles before use as
// file names
var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// OutputTarget represents the final destination of one grab: a directory and
// a shared base name, differentiated by extension per output kind
type OutputTarget struct {
	Dir      string
	BaseName string
}

// NewOutputTarget builds the destination for a title, prefixing the base name
// with a zettel timestamp and sanitizing it for the filesystem
func NewOutputTarget(dir, title string, now time.Time) OutputTarget {
	return OutputTarget{
		Dir:      dir,
		BaseName: now.Format(zettelLayout) + " - " + SanitizeFilename(title),
	}
}

// SanitizeFilename replaces characters that are unsafe in file names
func SanitizeFilename(name string) string {
	return strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(name, "-"))
}

// MuxedPath returns the .mkv path for a full-length muxed output
func (t OutputTarget) MuxedPath() string {
	return t.withExt(".mkv")
}

// ClipPath returns the .mp4 path for a clipped output
func (t OutputTarget) ClipPath() string {
	return t.withExt(".mp4")
}

// AudioPath returns the .mp3 path for an audio-only output
func (t OutputTarget) AudioPath() string {
	return t.withExt(".mp3")
}

// NotePath returns the .md path of the sidecar note
func (t OutputTarget) NotePath() string {
	return t.withExt(".md")
}

func (t OutputTarget) withExt(ext string) string {
	return filepath.Join(t.Dir, t.BaseName+ext)
}

// TempSet represents the temporary artifact paths of one invocation. Names
// embed the run ID so concurrent invocations never share temp paths.
type TempSet struct {
	VideoPath string
	AudioPath string
}

// NewTempSet derives temp file paths unique to one run
func NewTempSet(dir, runID string) TempSet {
	return TempSet{
		VideoPath: filepath.Join(dir, "video-"+runID+".mp4"),
		AudioPath: filepath.Join(dir, "audio-"+runID+".mp4"),
	}
}

// Paths returns every path in the set, for cleanup
func (t TempSet) Paths() []string {
	return []string{t.VideoPath, t.AudioPath}
}
