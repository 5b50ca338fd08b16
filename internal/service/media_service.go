// Package service orchestrates the resolve flow: classify the URL, extract
// raw descriptors, and reduce them to a UI-ready selection.
package service

import (
	"context"
	"log/slog"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/selector"
)

// Extractor resolves metadata and raw stream descriptors for a canonical URL.
type Extractor interface {
	Extract(ctx context.Context, p platform.Platform, canonicalURL string) (domain.MediaMetadata, []domain.StreamDescriptor, error)
}

// InfoResult is the resolved view of one media URL.
type InfoResult struct {
	Platform  platform.Platform
	Meta      domain.MediaMetadata
	Selection domain.Selection
}

// MediaService resolves a raw input URL into ranked downloadable streams.
type MediaService struct {
	extractor Extractor
	logger    *slog.Logger
}

// NewMediaService creates a MediaService.
func NewMediaService(extractor Extractor, logger *slog.Logger) *MediaService {
	return &MediaService{
		extractor: extractor,
		logger:    logger,
	}
}

// GetInfo classifies the URL, extracts its streams, and selects the
// UI-facing format set.
func (s *MediaService) GetInfo(ctx context.Context, rawURL string) (*InfoResult, error) {
	p, canonical := platform.Classify(rawURL)
	s.logger.Info("resolving media", "platform", p, "url", canonical)

	meta, formats, err := s.extractor.Extract(ctx, p, canonical)
	if err != nil {
		return nil, err
	}

	sel := selector.Select(p, &meta, formats)
	return &InfoResult{
		Platform:  p,
		Meta:      meta,
		Selection: sel,
	}, nil
}
