package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/cookies"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

const maxCookieBody = 1 << 20

// CookieHandler accepts Netscape cookie files for a platform.
type CookieHandler struct {
	store  cookies.Store
	logger *slog.Logger
}

// NewCookieHandler creates a cookie handler.
func NewCookieHandler(store cookies.Store, logger *slog.Logger) *CookieHandler {
	return &CookieHandler{
		store:  store,
		logger: logger,
	}
}

// Update handles POST /update_cookies/{platform}. The body is the raw cookie
// file content.
func (h *CookieHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := platform.Parse(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCookieBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if strings.TrimSpace(string(body)) == "" {
		writeError(w, http.StatusBadRequest, "empty cookie content")
		return
	}

	if err := h.store.Write(p, body); err != nil {
		h.logger.Error("cookie update failed", "platform", p, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store cookies")
		return
	}

	h.logger.Info("cookies updated", "platform", p, "bytes", len(body))
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "cookies updated for " + p.String(),
	})
}
