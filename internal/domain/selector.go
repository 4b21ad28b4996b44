package domain

import "fmt"

// containerMP4 is the container required for both selected tracks; adaptive
// mp4 video pairs with audio/mp4 when muxing.
const containerMP4 = "mp4"

// SelectVideoStream picks the adaptive video stream to download. When a
// resolution is requested only an exact match is accepted; the selector
// never substitutes a different resolution. When none is requested the
// highest available resolution wins. Ties go to the later-declared stream.
func SelectVideoStream(streams []StreamDescriptor, resolution string) (StreamDescriptor, error) {
	var picked *StreamDescriptor
	for i := range streams {
		s := &streams[i]
		if s.Kind != StreamVideo || !s.Adaptive || s.Container != containerMP4 {
			continue
		}
		if resolution != "" {
			if s.Resolution == resolution {
				picked = s
			}
			continue
		}
		if picked == nil || s.Height >= picked.Height {
			picked = s
		}
	}
	if picked == nil {
		if resolution != "" {
			return StreamDescriptor{}, fmt.Errorf("%w: %s", ErrResolutionUnavailable, resolution)
		}
		return StreamDescriptor{}, ErrNoVideoStream
	}
	return *picked, nil
}

// SelectAudioStream picks the best dedicated audio stream by bitrate.
// Ties go to the later-declared stream.
func SelectAudioStream(streams []StreamDescriptor) (StreamDescriptor, error) {
	var picked *StreamDescriptor
	for i := range streams {
		s := &streams[i]
		if s.Kind != StreamAudio || s.Container != containerMP4 {
			continue
		}
		if picked == nil || s.Bitrate >= picked.Bitrate {
			picked = s
		}
	}
	if picked == nil {
		return StreamDescriptor{}, ErrNoAudioStream
	}
	return *picked, nil
}
