package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/yt-grab-go/internal/domain"
	"github.com/yourusername/yt-grab-go/internal/infrastructure"
)

// Stage identifies a pipeline stage for logging and error reporting
type Stage string

const (
	StageValidating  Stage = "validating"  // URL shape check
	StageFetching    Stage = "fetching"    // metadata fetch, with retries
	StageSelecting   Stage = "selecting"   // stream selection
	StageDownloading Stage = "downloading" // raw stream downloads
	StageClipping    Stage = "clipping"    // trim + re-encode
	StageMuxing      Stage = "muxing"      // lossless container combine
	StageEncoding    Stage = "encoding"    // audio-only mp3 encode
	StageCleanup     Stage = "cleanup"     // temp file removal
)

// Request describes one grab: what to fetch and how to shape the output
type Request struct {
	URL        string
	Resolution string            // empty means best available
	Clip       *domain.ClipRange // nil means keep the full video
	ClipSpec   string            // original MM:SS,MM:SS text, kept for history
	AudioOnly  bool
	Comment    string
	Tags       []string
}

// Result reports where a finished grab landed
type Result struct {
	Video      *domain.RemoteVideo
	OutputPath string
	NotePath   string
}

// Pipeline runs one grab end to end: validate, fetch, select, download,
// clip or mux, clean up, write the sidecar note
type Pipeline struct {
	fetcher    domain.MetadataFetcher
	downloader domain.StreamDownloader
	transcoder domain.Transcoder
	notes      domain.NoteWriter
	repo       domain.GrabRepository
	notifier   *infrastructure.NotificationService
	config     *domain.Config
	logger     *zap.Logger
}

// NewPipeline creates a new grab pipeline. A nil repo disables history.
func NewPipeline(
	fetcher domain.MetadataFetcher,
	downloader domain.StreamDownloader,
	transcoder domain.Transcoder,
	notes domain.NoteWriter,
	repo domain.GrabRepository,
	notifier *infrastructure.NotificationService,
	config *domain.Config,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		downloader: downloader,
		transcoder: transcoder,
		notes:      notes,
		repo:       repo,
		notifier:   notifier,
		config:     config,
		logger:     logger,
	}
}

// Run processes a single grab request. The history record is created before
// the first stage and always reaches a terminal state.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	record := domain.NewGrabRecord(req.URL)
	record.Resolution = req.Resolution
	record.ClipRange = req.ClipSpec
	record.AudioOnly = req.AudioOnly
	p.recordCreate(record)

	result, err := p.run(ctx, req, record)
	if err != nil {
		record.MarkFailed(err)
		p.recordUpdate(record)
		p.notifier.NotifyGrabFailed(req.URL, err)
		return nil, err
	}

	record.MarkCompleted(result.OutputPath, result.NotePath)
	p.recordUpdate(record)
	p.notifier.NotifyGrabCompleted(record.Title, result.OutputPath)
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, req Request, record *domain.GrabRecord) (*Result, error) {
	logger := p.logger.With(zap.String("run_id", record.ID))

	logger.Info("Validating URL",
		zap.String("stage", string(StageValidating)),
		zap.String("url", req.URL))
	if !domain.ValidateURL(req.URL) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, req.URL)
	}

	logger.Info("Fetching metadata", zap.String("stage", string(StageFetching)))
	video, err := p.fetchWithRetry(ctx, logger, req.URL)
	if err != nil {
		return nil, err
	}
	record.SetVideo(video)
	p.recordUpdate(record)

	// Clip bounds are checked before any download or decode work
	if req.Clip != nil {
		if err := req.Clip.Validate(p.config.Transcode.MinClipDuration, video.Duration); err != nil {
			return nil, err
		}
	}

	resolution := req.Resolution
	if resolution == "" {
		resolution = p.config.Fetch.DefaultResolution
	}

	logger.Info("Selecting streams",
		zap.String("stage", string(StageSelecting)),
		zap.String("resolution", resolution),
		zap.Bool("audio_only", req.AudioOnly))

	var videoStream domain.StreamDescriptor
	if !req.AudioOnly {
		videoStream, err = domain.SelectVideoStream(video.Streams, resolution)
		if err != nil {
			return nil, err
		}
		record.Resolution = videoStream.Resolution
	}

	audioStream, err := domain.SelectAudioStream(video.Streams)
	if err != nil {
		return nil, err
	}

	target := domain.NewOutputTarget(p.config.Output.Dir, video.Title, time.Now())
	temps := domain.NewTempSet(p.config.Output.TempDir, record.ID)

	// Cleanup runs from here on, whatever happens downstream
	defer func() {
		logger.Info("Cleaning up temp files", zap.String("stage", string(StageCleanup)))
		if err := infrastructure.RemoveTempFiles(logger, temps.Paths()...); err != nil {
			logger.Warn("Temp cleanup incomplete", zap.Error(err))
		}
	}()

	logger.Info("Downloading streams", zap.String("stage", string(StageDownloading)))
	if !req.AudioOnly {
		if err := p.downloader.Download(ctx, video, videoStream, temps.VideoPath); err != nil {
			return nil, fmt.Errorf("video download failed: %w", err)
		}
	}
	if err := p.downloader.Download(ctx, video, audioStream, temps.AudioPath); err != nil {
		return nil, fmt.Errorf("audio download failed: %w", err)
	}

	var outputPath string
	switch {
	case req.Clip != nil && req.AudioOnly:
		outputPath = target.AudioPath()
		logger.Info("Clipping audio",
			zap.String("stage", string(StageClipping)),
			zap.String("range", req.Clip.String()))
		err = p.transcoder.Clip(ctx, domain.ClipJob{
			AudioPath:  temps.AudioPath,
			Range:      *req.Clip,
			OutputPath: outputPath,
		})
	case req.Clip != nil:
		outputPath = target.ClipPath()
		logger.Info("Clipping video",
			zap.String("stage", string(StageClipping)),
			zap.String("range", req.Clip.String()))
		err = p.transcoder.Clip(ctx, domain.ClipJob{
			AudioPath:  temps.AudioPath,
			VideoPath:  temps.VideoPath,
			Range:      *req.Clip,
			OutputPath: outputPath,
		})
	case req.AudioOnly:
		outputPath = target.AudioPath()
		logger.Info("Encoding audio", zap.String("stage", string(StageEncoding)))
		err = p.transcoder.EncodeAudio(ctx, domain.EncodeJob{
			AudioPath:  temps.AudioPath,
			OutputPath: outputPath,
		})
	default:
		outputPath = target.MuxedPath()
		logger.Info("Muxing streams", zap.String("stage", string(StageMuxing)))
		err = p.transcoder.Mux(ctx, domain.MuxJob{
			AudioPath:  temps.AudioPath,
			VideoPath:  temps.VideoPath,
			OutputPath: outputPath,
		})
	}
	if err != nil {
		return nil, err
	}

	note := domain.SourceNote{
		Path:        target.NotePath(),
		Stem:        target.BaseName,
		URL:         req.URL,
		Author:      video.Author,
		Title:       video.Title,
		PublishDate: video.PublishDate,
		Comment:     req.Comment,
		Tags:        req.Tags,
	}
	if req.Clip != nil {
		note.ClipRange = req.Clip.String()
	}
	if err := p.notes.Write(note); err != nil {
		// The media output stays on disk; only the note is missing
		return nil, fmt.Errorf("failed to write note: %w", err)
	}

	logger.Info("Grab completed",
		zap.String("output", outputPath),
		zap.String("note", note.Path))

	return &Result{
		Video:      video,
		OutputPath: outputPath,
		NotePath:   note.Path,
	}, nil
}

// fetchWithRetry makes up to RetryAttempts metadata fetches with a fixed
// delay between attempts. All fetch errors are treated as transient.
func (p *Pipeline) fetchWithRetry(ctx context.Context, logger *zap.Logger, url string) (*domain.RemoteVideo, error) {
	attempts := p.config.Fetch.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			logger.Info("Retrying metadata fetch",
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts))

			select {
			case <-time.After(p.config.Fetch.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		video, err := p.fetcher.Fetch(ctx, url)
		if err == nil {
			return video, nil
		}

		lastErr = err
		logger.Warn("Metadata fetch attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return nil, fmt.Errorf("%w: all %d fetch attempts failed: %v", domain.ErrUnreachable, attempts, lastErr)
}

func (p *Pipeline) recordCreate(record *domain.GrabRecord) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Create(record); err != nil {
		p.logger.Warn("Failed to create history record", zap.Error(err))
	}
}

func (p *Pipeline) recordUpdate(record *domain.GrabRecord) {
	if p.repo == nil {
		return
	}
	if err := p.repo.Update(record); err != nil {
		p.logger.Warn("Failed to update history record", zap.Error(err))
	}
}
