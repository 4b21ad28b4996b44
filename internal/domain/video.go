package domain

import "time"

// StreamKind classifies a downloadable track
type StreamKind string

const (
	StreamVideo    StreamKind = "video"    // video track only (adaptive)
	StreamAudio    StreamKind = "audio"    // audio track only (adaptive)
	StreamCombined StreamKind = "combined" // progressive video with embedded audio
)

// StreamDescriptor represents one downloadable track of a remote video
type StreamDescriptor struct {
	Itag       int        // provider-native stream id
	Kind       StreamKind
	Container  string // e.g. "mp4"
	MimeType   string
	Resolution string // e.g. "1080p", video streams only
	Height     int
	Bitrate    int
	Adaptive   bool
}

// RemoteVideo represents one fetched remote resource and its stream inventory.
// Instances are created by a successful metadata fetch and not mutated after.
type RemoteVideo struct {
	ID          string
	Title       string
	Author      string
	PublishDate time.Time
	Duration    time.Duration
	Streams     []StreamDescriptor
}

// HasStreams reports whether the resource offers any downloadable stream
func (v *RemoteVideo) HasStreams() bool {
	return len(v.Streams) > 0
}
