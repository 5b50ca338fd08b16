package handler

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
)

// HealthHandler reports process liveness and dependency readiness.
type HealthHandler struct {
	extractorBin string
	ffmpegBin    string
	scratchDir   string
}

// NewHealthHandler creates a health handler checking the given external
// binaries and the scratch directory.
func NewHealthHandler(extractorBin, ffmpegBin, scratchDir string) *HealthHandler {
	return &HealthHandler{
		extractorBin: extractorBin,
		ffmpegBin:    ffmpegBin,
		scratchDir:   scratchDir,
	}
}

// Live handles GET /health.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready. It verifies the extractor and ffmpeg binaries
// resolve and that the scratch directory is writable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	healthy := true

	if _, err := exec.LookPath(h.extractorBin); err != nil {
		checks["extractor"] = err.Error()
		healthy = false
	} else {
		checks["extractor"] = "ok"
	}

	if _, err := exec.LookPath(h.ffmpegBin); err != nil {
		checks["ffmpeg"] = err.Error()
		healthy = false
	} else {
		checks["ffmpeg"] = "ok"
	}

	probe := filepath.Join(h.scratchDir, ".probe-"+uuid.NewString()[:8])
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err != nil {
		checks["scratch"] = err.Error()
		healthy = false
	} else {
		os.Remove(probe)
		checks["scratch"] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, checks)
}
