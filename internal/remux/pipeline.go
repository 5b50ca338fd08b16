package remux

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/fetch"
)

// Downloader retrieves a remote stream to a local file.
type Downloader interface {
	DownloadFile(ctx context.Context, rawURL, dest string) (int64, error)
}

// Pipeline downloads a video stream and an audio stream into a request-scoped
// scratch directory, merges them, and hands the caller the merged file plus a
// cleanup function. The scratch directory is removed on every exit path; on
// success the caller invokes cleanup after the response body has been sent.
type Pipeline struct {
	downloader Downloader
	remuxer    Remuxer
	cfg        config.RemuxConfig
	logger     *slog.Logger
}

// NewPipeline creates a merge pipeline.
func NewPipeline(downloader Downloader, remuxer Remuxer, cfg config.RemuxConfig, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		downloader: downloader,
		remuxer:    remuxer,
		cfg:        cfg,
		logger:     logger,
	}
}

// Merge validates both URLs, downloads them, and remuxes the pair. The remux
// subprocess does not start until both downloads have completed. On success
// the returned cleanup removes the scratch directory; it is never nil.
func (p *Pipeline) Merge(ctx context.Context, videoURL, audioURL string) (string, func(), error) {
	noop := func() {}

	if err := validateStreamURL(videoURL); err != nil {
		return "", noop, fmt.Errorf("%w: videoUrl: %v", domain.ErrInvalidInput, err)
	}
	if err := validateStreamURL(audioURL); err != nil {
		return "", noop, fmt.Errorf("%w: audioUrl: %v", domain.ErrInvalidInput, err)
	}

	dir := filepath.Join(p.cfg.ScratchDir, "merge-"+uuid.NewString()[:8])
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", noop, fmt.Errorf("create scratch dir: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			p.logger.Error("scratch cleanup failed", "dir", dir, "error", err)
		}
	}

	videoPath := filepath.Join(dir, "video.bin")
	audioPath := filepath.Join(dir, "audio.bin")
	outPath := filepath.Join(dir, "merged.mp4")

	if _, err := p.downloader.DownloadFile(ctx, videoURL, videoPath); err != nil {
		cleanup()
		return "", noop, &domain.DownloadError{Stream: "video", LastStatus: fetch.LastStatus(err), Err: err}
	}
	if _, err := p.downloader.DownloadFile(ctx, audioURL, audioPath); err != nil {
		cleanup()
		return "", noop, &domain.DownloadError{Stream: "audio", LastStatus: fetch.LastStatus(err), Err: err}
	}

	remuxCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	if err := p.remuxer.Merge(remuxCtx, videoPath, audioPath, outPath); err != nil {
		cleanup()
		return "", noop, err
	}

	p.logger.Info("streams merged", "out", outPath)
	return outPath, cleanup, nil
}

func validateStreamURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("missing URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("malformed URL")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("URL must be http(s)")
	}
	return nil
}
