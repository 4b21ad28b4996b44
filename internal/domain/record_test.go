package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGrabRecord(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc123"

	record := NewGrabRecord(url)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, url, record.URL)
	assert.Equal(t, StatusRunning, record.Status)
	assert.Empty(t, record.ErrorMessage)
	assert.Nil(t, record.CompletedAt)
}

func TestGrabRecord_MarkCompleted(t *testing.T) {
	record := NewGrabRecord("https://www.youtube.com/watch?v=abc123")

	record.MarkCompleted("/downloads/2508_251030 - Talk.mkv", "/downloads/2508_251030 - Talk.md")

	assert.Equal(t, StatusCompleted, record.Status)
	assert.Equal(t, "/downloads/2508_251030 - Talk.mkv", record.OutputPath)
	assert.Equal(t, "/downloads/2508_251030 - Talk.md", record.NotePath)
	assert.NotNil(t, record.CompletedAt)
}

func TestGrabRecord_MarkFailed(t *testing.T) {
	record := NewGrabRecord("https://www.youtube.com/watch?v=abc123")

	record.MarkFailed(errors.New("fetch failed"))

	assert.Equal(t, StatusFailed, record.Status)
	assert.Equal(t, "fetch failed", record.ErrorMessage)
	assert.Nil(t, record.CompletedAt)
}

func TestGrabRecord_SetVideo(t *testing.T) {
	record := NewGrabRecord("https://www.youtube.com/watch?v=abc123")

	record.SetVideo(&RemoteVideo{Title: "A Talk", Author: "Someone"})

	assert.Equal(t, "A Talk", record.Title)
	assert.Equal(t, "Someone", record.Author)
}

func TestGrabRecord_IsTerminal(t *testing.T) {
	record := NewGrabRecord("https://www.youtube.com/watch?v=abc123")

	assert.False(t, record.IsTerminal())

	record.Status = StatusCompleted
	assert.True(t, record.IsTerminal())

	record.Status = StatusFailed
	assert.True(t, record.IsTerminal())
}

func TestValidateStatus(t *testing.T) {
	assert.True(t, ValidateStatus(StatusRunning))
	assert.True(t, ValidateStatus(StatusCompleted))
	assert.True(t, ValidateStatus(StatusFailed))
	assert.False(t, ValidateStatus("invalid"))
}
