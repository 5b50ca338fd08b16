package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/service"
)

// InfoService resolves a raw URL into ranked downloadable streams.
type InfoService interface {
	GetInfo(ctx context.Context, rawURL string) (*service.InfoResult, error)
}

// InfoHandler handles media resolution requests.
type InfoHandler struct {
	svc    InfoService
	logger *slog.Logger
}

// NewInfoHandler creates an info handler.
func NewInfoHandler(svc InfoService, logger *slog.Logger) *InfoHandler {
	return &InfoHandler{
		svc:    svc,
		logger: logger,
	}
}

// InfoRequest is the JSON request body for media resolution.
type InfoRequest struct {
	URL string `json:"url"`
}

// InfoResponse is the resolved media item. Many-track platforms carry the
// full format lists; sparse-track platforms carry the best-of trio.
type InfoResponse struct {
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail"`
	Duration    int    `json:"duration"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
	Platform    string `json:"platform"`

	VideoFormats []domain.FormatView `json:"videoFormats,omitempty"`
	AudioFormats []domain.FormatView `json:"audioFormats,omitempty"`

	Muxed     *domain.FormatView `json:"muxed,omitempty"`
	VideoOnly *domain.FormatView `json:"videoOnly,omitempty"`
	Audio     *domain.FormatView `json:"audio,omitempty"`
}

// GetInfo handles POST /get_info
func (h *InfoHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "no URL provided")
		return
	}

	res, err := h.svc.GetInfo(r.Context(), req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrExtractionFailed) {
			h.logger.Warn("extraction failed", "url", req.URL, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("get_info failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to resolve media")
		return
	}

	resp := InfoResponse{
		Title:        res.Meta.Title,
		Thumbnail:    res.Meta.ThumbnailURL,
		Duration:     res.Meta.DurationSeconds,
		Width:        res.Meta.Width,
		Height:       res.Meta.Height,
		AspectRatio:  res.Meta.AspectRatio,
		Platform:     res.Platform.String(),
		VideoFormats: res.Selection.VideoFormats,
		AudioFormats: res.Selection.AudioFormats,
		Muxed:        res.Selection.Muxed,
		VideoOnly:    res.Selection.VideoOnly,
		Audio:        res.Selection.Audio,
	}

	writeJSON(w, http.StatusOK, resp)
}
