package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// noteFrontMatter is the YAML header of a sidecar note
type noteFrontMatter struct {
	Author      string   `yaml:"author"`
	Title       string   `yaml:"title"`
	PublishDate string   `yaml:"publish date"`
	Tags        []string `yaml:"tags,omitempty"`
}

// MarkdownNoteWriter writes sidecar notes as markdown files with a YAML
// front matter block
type MarkdownNoteWriter struct {
	logger *zap.Logger
}

// NewMarkdownNoteWriter creates a new markdown note writer
func NewMarkdownNoteWriter(logger *zap.Logger) *MarkdownNoteWriter {
	return &MarkdownNoteWriter{logger: logger}
}

// Write renders the note and persists it at note.Path, overwriting any
// existing file
func (w *MarkdownNoteWriter) Write(note domain.SourceNote) error {
	front := noteFrontMatter{
		Author: note.Author,
		Title:  note.Title,
		Tags:   note.Tags,
	}
	if !note.PublishDate.IsZero() {
		front.PublishDate = note.PublishDate.Format("2006-01-02")
	}

	header, err := yaml.Marshal(&front)
	if err != nil {
		return fmt.Errorf("failed to marshal note front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString("# " + note.Stem + "\n")

	if len(note.Tags) > 0 {
		hashed := make([]string, len(note.Tags))
		for i, tag := range note.Tags {
			hashed[i] = "#" + tag
		}
		b.WriteString("\nTags: " + strings.Join(hashed, ", ") + "\n")
	}

	b.WriteString("\n[Source](" + note.URL + ")\n")
	b.WriteString("\nVideo downloaded from YouTube\n")
	if note.ClipRange != "" {
		b.WriteString("Clipped: " + note.ClipRange + "\n")
	}
	if note.Comment != "" {
		b.WriteString("\n" + note.Comment + "\n")
	}

	if dir := filepath.Dir(note.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create note directory: %w", err)
		}
	}

	if err := os.WriteFile(note.Path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}

	w.logger.Info("Wrote source note", zap.String("path", note.Path))
	return nil
}
