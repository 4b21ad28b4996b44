package domain

import "time"

// SourceNote carries everything the sidecar note needs: where the media went,
// where it came from, and what the grab looked like
type SourceNote struct {
	Path        string // destination .md path
	Stem        string // heading, usually the output base name
	URL         string
	Author      string
	Title       string
	PublishDate time.Time
	ClipRange   string // empty when the full video was kept
	Comment     string
	Tags        []string
}

// NoteWriter serializes a SourceNote into a markdown file with YAML front
// matter next to the downloaded media
type NoteWriter interface {
	// Write persists the note; the media output is kept even if this fails
	Write(note SourceNote) error
}
