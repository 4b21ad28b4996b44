package domain

import "context"

// MuxJob describes a lossless container-combine of separately downloaded
// audio and video temp files into one finished output
type MuxJob struct {
	AudioPath  string
	VideoPath  string
	OutputPath string
}

// ClipJob describes a decode-trim-re-encode. VideoPath is empty in
// audio-only mode, in which case the output is an audio file; AudioPath is
// empty when trimming a single already-muxed local file.
type ClipJob struct {
	AudioPath  string
	VideoPath  string
	Range      ClipRange
	OutputPath string
}

// EncodeJob describes a plain audio re-encode of a downloaded temp file,
// used for audio-only grabs without a clip range
type EncodeJob struct {
	AudioPath  string
	OutputPath string
}

// Transcoder drives the external transcoding tool
type Transcoder interface {
	// Mux combines audio and video temp files into OutputPath without
	// re-encoding, bounded by the shorter stream
	Mux(ctx context.Context, job MuxJob) error

	// Clip produces a time-trimmed re-encode of the downloaded media
	Clip(ctx context.Context, job ClipJob) error

	// EncodeAudio re-encodes a downloaded audio temp file to OutputPath
	EncodeAudio(ctx context.Context, job EncodeJob) error
}
