package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/domain"
)

// YouTubeClient fetches video metadata and downloads raw streams from
// YouTube. It implements both MetadataFetcher and StreamDownloader so the
// format table produced by a fetch can serve the downloads that follow.
type YouTubeClient struct {
	client  youtube.Client
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	videos map[string]*youtube.Video
}

// NewYouTubeClient creates a new YouTube client. The timeout bounds metadata
// fetches only; stream downloads run until done or cancelled.
func NewYouTubeClient(timeout time.Duration, logger *zap.Logger) *YouTubeClient {
	return &YouTubeClient{
		client:  youtube.Client{},
		timeout: timeout,
		logger:  logger,
		videos:  make(map[string]*youtube.Video),
	}
}

// Fetch retrieves metadata and the available stream formats for a video URL.
// A single call makes one attempt; retrying is the caller's concern.
func (c *YouTubeClient) Fetch(ctx context.Context, url string) (*domain.RemoteVideo, error) {
	c.logger.Debug("Fetching video metadata", zap.String("url", url))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata: %w", err)
	}
	if len(video.Formats) == 0 {
		return nil, fmt.Errorf("%w: %q offers no downloadable streams", domain.ErrUnreachable, video.Title)
	}

	streams := make([]domain.StreamDescriptor, 0, len(video.Formats))
	for i := range video.Formats {
		streams = append(streams, mapFormat(&video.Formats[i]))
	}

	c.mu.Lock()
	c.videos[video.ID] = video
	c.mu.Unlock()

	c.logger.Info("Fetched video metadata",
		zap.String("id", video.ID),
		zap.String("title", video.Title),
		zap.Duration("duration", video.Duration),
		zap.Int("formats", len(video.Formats)))

	return &domain.RemoteVideo{
		ID:          video.ID,
		Title:       video.Title,
		Author:      video.Author,
		PublishDate: video.PublishDate,
		Duration:    video.Duration,
		Streams:     streams,
	}, nil
}

// Download streams the given format to destPath, overwriting any existing
// file. Progress is rendered to stderr as the transfer advances.
func (c *YouTubeClient) Download(ctx context.Context, video *domain.RemoteVideo, stream domain.StreamDescriptor, destPath string) error {
	c.mu.Lock()
	cached, ok := c.videos[video.ID]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("no cached metadata for video %s", video.ID)
	}

	var format *youtube.Format
	for i := range cached.Formats {
		if cached.Formats[i].ItagNo == stream.Itag {
			format = &cached.Formats[i]
			break
		}
	}
	if format == nil {
		return fmt.Errorf("itag %d not found for video %s", stream.Itag, video.ID)
	}

	body, size, err := c.client.GetStreamContext(ctx, cached, format)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer body.Close()

	if dir := filepath.Dir(destPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create download directory: %w", err)
		}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create download file: %w", err)
	}
	defer out.Close()

	c.logger.Info("Downloading stream",
		zap.String("id", video.ID),
		zap.Int("itag", stream.Itag),
		zap.String("kind", string(stream.Kind)),
		zap.Int64("bytes", size))

	if size <= 0 {
		size = -1 // spinner mode
	}
	bar := progressbar.DefaultBytes(size, filepath.Base(destPath))

	written, err := io.Copy(io.MultiWriter(out, bar), body)
	if err != nil {
		return fmt.Errorf("stream download failed: %w", err)
	}

	c.logger.Debug("Stream download complete",
		zap.String("path", destPath),
		zap.Int64("written", written))
	return nil
}

// mapFormat converts a raw YouTube format into a provider-neutral descriptor
func mapFormat(f *youtube.Format) domain.StreamDescriptor {
	kind := domain.StreamVideo
	if strings.HasPrefix(f.MimeType, "audio/") {
		kind = domain.StreamAudio
	} else if f.AudioChannels > 0 {
		kind = domain.StreamCombined
	}

	bitrate := f.AverageBitrate
	if bitrate == 0 {
		bitrate = f.Bitrate
	}

	resolution := ""
	if kind != domain.StreamAudio && f.Height > 0 {
		resolution = fmt.Sprintf("%dp", f.Height)
	}

	return domain.StreamDescriptor{
		Itag:       f.ItagNo,
		Kind:       kind,
		Container:  containerFromMime(f.MimeType),
		MimeType:   f.MimeType,
		Resolution: resolution,
		Height:     f.Height,
		Bitrate:    bitrate,
		Adaptive:   kind != domain.StreamCombined,
	}
}

// containerFromMime extracts the container name from a mime type such as
// `video/mp4; codecs="avc1.640028"`
func containerFromMime(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	if i := strings.Index(mimeType, "/"); i >= 0 {
		return strings.TrimSpace(mimeType[i+1:])
	}
	return ""
}
