// Package extractor obtains media metadata and raw stream descriptors for a
// canonical URL by driving an external stream-extraction tool (yt-dlp). It
// isolates the rest of the service from extractor flakiness with an
// escalating list of fallback invocations.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/cookies"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/fetch"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

const (
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	mobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Mobile/15E148 Safari/604.1"
)

// attempt is one extractor invocation variant. Later variants relax the
// configuration: a different request identity, a pinned geo region, no
// stored cookies.
type attempt struct {
	userAgent  string
	geoCountry string
	useCookies bool
}

// Extractor drives the external extraction tool.
type Extractor struct {
	runner  Runner
	cookies cookies.Store
	cfg     config.ExtractConfig
	logger  *slog.Logger
}

// New creates an Extractor.
func New(runner Runner, store cookies.Store, cfg config.ExtractConfig, logger *slog.Logger) *Extractor {
	return &Extractor{
		runner:  runner,
		cookies: store,
		cfg:     cfg,
		logger:  logger,
	}
}

// Extract resolves metadata and the raw descriptor list for the canonical
// URL, running up to the configured number of attempts with escalating
// fallback configurations. It fails only after every attempt is exhausted.
func (e *Extractor) Extract(ctx context.Context, p platform.Platform, canonicalURL string) (domain.MediaMetadata, []domain.StreamDescriptor, error) {
	variants := e.attempts()

	retry := fetch.RetryConfig{
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}

	info, err := fetch.Fallback(ctx, retry, variants, func(ctx context.Context, a attempt) (rawInfo, error) {
		return e.extractOnce(ctx, p, canonicalURL, a)
	})
	if err != nil {
		return domain.MediaMetadata{}, nil, &domain.ExtractionError{Platform: p.String(), LastErr: err}
	}

	return info.metadata(), descriptors(info), nil
}

// attempts builds the escalating fallback list, sized by the configured
// attempt count.
func (e *Extractor) attempts() []attempt {
	base := []attempt{
		{userAgent: desktopUA, useCookies: true},
		{userAgent: mobileUA, useCookies: true},
		{userAgent: desktopUA, geoCountry: "US", useCookies: false},
	}

	variants := make([]attempt, 0, e.cfg.Attempts)
	for i := 0; i < e.cfg.Attempts; i++ {
		variants = append(variants, base[i%len(base)])
	}
	return variants
}

func (e *Extractor) extractOnce(ctx context.Context, p platform.Platform, url string, a attempt) (rawInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	args := []string{
		"-J",
		"--no-warnings",
		"--skip-download",
		"--no-playlist",
		"--geo-bypass",
		"--user-agent", a.userAgent,
	}
	if a.geoCountry != "" {
		args = append(args, "--geo-bypass-country", a.geoCountry)
	}
	if a.useCookies {
		if path, ok := e.cookies.Path(p); ok {
			args = append(args, "--cookies", path)
		}
	}
	args = append(args, url)

	out, err := e.runner.Run(ctx, args)
	if err != nil {
		e.logger.Warn("extraction attempt failed", "platform", p, "url", url, "error", err)
		return rawInfo{}, err
	}

	var info rawInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return rawInfo{}, fmt.Errorf("parse extractor output: %w", err)
	}

	// A playlist/carousel container reduces to its first entry.
	if len(info.Entries) > 0 {
		info = info.Entries[0]
	}
	if len(info.Formats) == 0 {
		return rawInfo{}, fmt.Errorf("extractor returned no formats")
	}
	return info, nil
}

func descriptors(info rawInfo) []domain.StreamDescriptor {
	out := make([]domain.StreamDescriptor, 0, len(info.Formats))
	for _, f := range info.Formats {
		out = append(out, f.descriptor())
	}
	return out
}
