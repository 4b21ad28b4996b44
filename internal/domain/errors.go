package domain

import (
	"errors"
	"fmt"
)

// Pipeline stage errors, matched by callers with errors.Is.
var (
	// ErrInvalidURL indicates the input failed pre-flight URL validation
	ErrInvalidURL = errors.New("invalid url")

	// ErrUnreachable indicates every fetch attempt failed or the resource
	// offered no usable streams
	ErrUnreachable = errors.New("resource unreachable")

	// ErrResolutionUnavailable indicates the requested resolution is not offered
	ErrResolutionUnavailable = errors.New("requested resolution unavailable")

	// ErrNoVideoStream indicates the resource offers no adaptive video stream
	ErrNoVideoStream = errors.New("no adaptive video stream available")

	// ErrNoAudioStream indicates the resource offers no dedicated audio stream
	ErrNoAudioStream = errors.New("no audio stream available")

	// ErrClipRangeInvalid indicates a clip range whose end is not after its start
	ErrClipRangeInvalid = errors.New("clip end must be after start")

	// ErrClipTooShort indicates a clip range below the minimum duration
	ErrClipTooShort = errors.New("clip shorter than minimum duration")

	// ErrClipRangeExceedsSource indicates a clip end beyond the source duration
	ErrClipRangeExceedsSource = errors.New("clip range exceeds source duration")
)

// MuxError reports a failed mux subprocess along with the stderr log captured
// from it, so the underlying transcoder output can be inspected
type MuxError struct {
	Err       error
	StderrLog string
}

func (e *MuxError) Error() string {
	return fmt.Sprintf("mux failed: %v (stderr log: %s)", e.Err, e.StderrLog)
}

func (e *MuxError) Unwrap() error {
	return e.Err
}
