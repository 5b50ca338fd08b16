package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
)

// Merger combines a remote video stream and audio stream into one local file.
// The returned cleanup releases the file's scratch storage and must be called
// after the response body has been sent.
type Merger interface {
	Merge(ctx context.Context, videoURL, audioURL string) (outPath string, cleanup func(), err error)
}

// MergeHandler handles merge requests.
type MergeHandler struct {
	pipeline Merger
	logger   *slog.Logger
}

// NewMergeHandler creates a merge handler.
func NewMergeHandler(pipeline Merger, logger *slog.Logger) *MergeHandler {
	return &MergeHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// MergeRequest is the JSON request body for stream merging.
type MergeRequest struct {
	VideoURL string `json:"videoUrl"`
	AudioURL string `json:"audioUrl"`
}

// Merge handles POST /merge
func (h *MergeHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outPath, cleanup, err := h.pipeline.Merge(r.Context(), req.VideoURL, req.AudioURL)
	if err != nil {
		h.writeMergeError(w, req, err)
		return
	}
	// Scratch storage lives until the response body has been fully sent.
	defer cleanup()

	f, err := os.Open(outPath)
	if err != nil {
		h.logger.Error("open merged file", "path", outPath, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read merged file")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="merged.mp4"`)
	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	}

	if _, err := io.Copy(w, f); err != nil {
		// Headers are already out; nothing to do but log.
		h.logger.Warn("merge response interrupted", "error", err)
	}
}

func (h *MergeHandler) writeMergeError(w http.ResponseWriter, req MergeRequest, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDownloadFailed):
		h.logger.Warn("merge download failed", "video", req.VideoURL, "audio", req.AudioURL, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRemuxTimeout):
		h.logger.Error("remux timed out", "error", err)
		writeError(w, http.StatusRequestTimeout, err.Error())
	default:
		h.logger.Error("merge failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
