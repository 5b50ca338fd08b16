package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/fetch"
)

// Fetcher retrieves a remote stream with the shared retry strategy. The
// caller owns the response body.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, extra http.Header) (*http.Response, error)
}

// RelayHandler forwards single remote media streams to the caller without
// local persistence.
type RelayHandler struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewRelayHandler creates a relay handler.
func NewRelayHandler(fetcher Fetcher, logger *slog.Logger) *RelayHandler {
	return &RelayHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Stream handles GET /stream_media and GET /proxy_media (inline playback).
func (h *RelayHandler) Stream(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, "inline")
}

// Download handles GET /proxy_download (attachment).
func (h *RelayHandler) Download(w http.ResponseWriter, r *http.Request) {
	h.relay(w, r, `attachment; filename="media"`)
}

func (h *RelayHandler) relay(w http.ResponseWriter, r *http.Request, disposition string) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	// Forward a Range request so partial content passes through untouched.
	extra := http.Header{}
	if rng := r.Header.Get("Range"); rng != "" {
		extra.Set("Range", rng)
	}

	resp, err := h.fetcher.Fetch(r.Context(), rawURL, extra)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrUpstreamRelay, err)
		status := fetch.LastStatus(err)
		if status == 0 {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("relay failed", "url", rawURL, "status", status, "error", err)
		writeError(w, status, "upstream fetch failed")
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", disposition)
	for _, key := range []string{"Content-Length", "Content-Range", "Accept-Ranges"} {
		if v := resp.Header.Get(key); v != "" {
			w.Header().Set(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("relay interrupted", "url", rawURL, "error", err)
	}
}
