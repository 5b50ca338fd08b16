package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/cookies"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

func cookieRouter(t *testing.T) (*chi.Mux, *cookies.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := cookies.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	h := NewCookieHandler(store, discardLogger())

	r := chi.NewRouter()
	r.Post("/update_cookies/{platform}", h.Update)
	return r, store, dir
}

func TestUpdateCookies(t *testing.T) {
	r, store, _ := cookieRouter(t)

	body := "# Netscape HTTP Cookie File\n.youtube.com\tTRUE\t/\tTRUE\t0\tSID\tabc\n"
	req := httptest.NewRequest(http.MethodPost, "/update_cookies/youtube", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp["status"], "youtube") {
		t.Errorf("status message = %q", resp["status"])
	}

	path, ok := store.Path(platform.YouTube)
	if !ok {
		t.Fatalf("cookie file not created")
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != body {
		t.Errorf("stored content mismatch")
	}
}

func TestUpdateCookiesPlatformAlias(t *testing.T) {
	r, store, _ := cookieRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/update_cookies/insta", strings.NewReader("cookie data"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if _, ok := store.Path(platform.Instagram); !ok {
		t.Errorf("insta alias should store under instagram")
	}
}

func TestUpdateCookiesRejections(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"unknown platform", "/update_cookies/myspace", "cookie data"},
		{"empty body", "/update_cookies/youtube", ""},
		{"whitespace body", "/update_cookies/youtube", "  \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store, _ := cookieRouter(t)

			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if _, ok := store.Path(platform.YouTube); ok {
				t.Errorf("rejected request must not create a cookie file")
			}
		})
	}
}
