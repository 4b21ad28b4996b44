package domain

import (
	"time"

	"github.com/google/uuid"
)

// GrabStatus represents the current status of a grab run
type GrabStatus string

const (
	StatusRunning   GrabStatus = "running"
	StatusCompleted GrabStatus = "completed"
	StatusFailed    GrabStatus = "failed"
)

// GrabRecord represents one pipeline invocation in the history database
type GrabRecord struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	URL          string     `json:"url" gorm:"not null"`
	Title        string     `json:"title,omitempty"`
	Author       string     `json:"author,omitempty"`
	Resolution   string     `json:"resolution,omitempty"` // empty means best available
	ClipRange    string     `json:"clip_range,omitempty"`
	AudioOnly    bool       `json:"audio_only"`
	Status       GrabStatus `json:"status" gorm:"not null;index"`
	ErrorMessage string     `json:"error_message,omitempty"`
	OutputPath   string     `json:"output_path,omitempty"`
	NotePath     string     `json:"note_path,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// NewGrabRecord creates a history record for a starting run. The record ID
// doubles as the run ID used for temp file naming.
func NewGrabRecord(url string) *GrabRecord {
	return &GrabRecord{
		ID:        uuid.New().String(),
		URL:       url,
		Status:    StatusRunning,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkCompleted marks the run as completed with its final outputs
func (r *GrabRecord) MarkCompleted(outputPath, notePath string) {
	r.Status = StatusCompleted
	r.OutputPath = outputPath
	r.NotePath = notePath
	now := time.Now()
	r.CompletedAt = &now
	r.UpdatedAt = now
}

// MarkFailed marks the run as failed
func (r *GrabRecord) MarkFailed(err error) {
	r.Status = StatusFailed
	r.ErrorMessage = err.Error()
	r.UpdatedAt = time.Now()
}

// SetVideo fills in metadata once the fetch stage has resolved the resource
func (r *GrabRecord) SetVideo(video *RemoteVideo) {
	r.Title = video.Title
	r.Author = video.Author
	r.UpdatedAt = time.Now()
}

// IsTerminal checks if the run reached a terminal state
func (r *GrabRecord) IsTerminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// ValidateStatus checks if a status string names a known grab status
func ValidateStatus(status GrabStatus) bool {
	return status == StatusRunning || status == StatusCompleted || status == StatusFailed
}
