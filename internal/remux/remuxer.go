// Package remux combines a video stream and an audio stream, both addressed
// by URL, into one playable container without re-encoding the video track.
// The actual container work is delegated to an external tool behind the
// Remuxer interface so it can be faked in tests.
package remux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
)

// Remuxer merges a local video file and a local audio file into outPath.
type Remuxer interface {
	Merge(ctx context.Context, videoPath, audioPath, outPath string) error
}

// FFmpegRemuxer merges streams with the ffmpeg binary. The video track is
// stream-copied; audio is re-encoded to AAC at the configured bitrate so any
// input codec pair yields a playable mp4. The faststart flag moves the moov
// atom up front so the output streams immediately.
type FFmpegRemuxer struct {
	ffmpegPath   string
	audioBitrate string
}

// NewFFmpegRemuxer resolves the ffmpeg binary and returns a remuxer.
func NewFFmpegRemuxer(cfg config.RemuxConfig) (*FFmpegRemuxer, error) {
	path, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	bitrate := cfg.AudioBitrate
	if bitrate == "" {
		bitrate = "192k"
	}
	return &FFmpegRemuxer{ffmpegPath: path, audioBitrate: bitrate}, nil
}

// Merge runs the ffmpeg subprocess. The caller bounds it via ctx.
func (r *FFmpegRemuxer) Merge(ctx context.Context, videoPath, audioPath, outPath string) error {
	cmd := exec.CommandContext(ctx, r.ffmpegPath,
		"-y",
		"-loglevel", "error",
		"-nostdin",
		"-i", videoPath,
		"-i", audioPath,
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", r.audioBitrate,
		"-movflags", "+faststart",
		outPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return domain.ErrRemuxTimeout
		}
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &domain.RemuxError{
			ExitCode: exitCode,
			Stderr:   stderrExcerpt(stderr.String()),
		}
	}
	return nil
}

func stderrExcerpt(s string) string {
	s = strings.TrimSpace(s)
	const max = 400
	if len(s) > max {
		return s[len(s)-max:]
	}
	return s
}
