package infrastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTempFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestRemoveTempFiles_RemovesExisting(t *testing.T) {
	dir := t.TempDir()
	video := writeTempFile(t, dir, "video-abc.mp4")
	audio := writeTempFile(t, dir, "audio-abc.mp4")

	err := RemoveTempFiles(zap.NewNop(), video, audio)
	require.NoError(t, err)

	assert.NoFileExists(t, video)
	assert.NoFileExists(t, audio)
}

func TestRemoveTempFiles_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	video := writeTempFile(t, dir, "video-abc.mp4")

	require.NoError(t, RemoveTempFiles(zap.NewNop(), video))
	// second pass finds nothing to remove and still succeeds
	assert.NoError(t, RemoveTempFiles(zap.NewNop(), video))
}

func TestRemoveTempFiles_SkipsMissingAndEmptyPaths(t *testing.T) {
	err := RemoveTempFiles(zap.NewNop(), "", filepath.Join(t.TempDir(), "never-existed.mp4"))
	assert.NoError(t, err)
}

func TestRemoveTempFiles_AggregatesFailuresButKeepsGoing(t *testing.T) {
	dir := t.TempDir()

	// a non-empty directory cannot be removed with os.Remove
	stubborn := filepath.Join(dir, "stubborn")
	require.NoError(t, os.MkdirAll(stubborn, 0755))
	writeTempFile(t, stubborn, "child.mp4")

	removable := writeTempFile(t, dir, "audio-abc.mp4")

	err := RemoveTempFiles(zap.NewNop(), stubborn, removable)
	assert.Error(t, err)
	assert.NoFileExists(t, removable, "later paths are still attempted after a failure")
}
