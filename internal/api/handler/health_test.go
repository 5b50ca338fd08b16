package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler("true", "true", t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestHealthReady(t *testing.T) {
	// "true" is always on PATH, so both binary checks pass.
	h := NewHealthHandler("true", "true", t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var checks map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&checks); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"extractor", "ffmpeg", "scratch"} {
		if checks[key] != "ok" {
			t.Errorf("%s = %q, want ok", key, checks[key])
		}
	}
}

func TestHealthReadyMissingBinary(t *testing.T) {
	h := NewHealthHandler("definitely-not-a-real-binary-xyz", "true", t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var checks map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&checks); err != nil {
		t.Fatal(err)
	}
	if checks["extractor"] == "ok" {
		t.Errorf("extractor check should report the failure")
	}
	if checks["ffmpeg"] != "ok" {
		t.Errorf("ffmpeg check should still pass")
	}
}

func TestHealthReadyUnwritableScratch(t *testing.T) {
	h := NewHealthHandler("true", "true", "/proc/definitely/not/writable")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
