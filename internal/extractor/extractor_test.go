package extractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/config"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/cookies"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

type fakeRunner struct {
	calls   [][]string
	outputs [][]byte
	errs    []error
}

func (f *fakeRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	i := len(f.calls)
	f.calls = append(f.calls, args)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.outputs) {
		return f.outputs[i], nil
	}
	return nil, errors.New("unexpected call")
}

func testExtractor(t *testing.T, runner Runner) *Extractor {
	t.Helper()
	store, err := cookies.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(runner, store, config.ExtractConfig{
		BinPath:  "yt-dlp",
		Attempts: 3,
		Timeout:  5 * time.Second,
	}, logger)
}

const sampleJSON = `{
	"title": "Test Clip",
	"thumbnail": "https://i.example.com/t.jpg",
	"duration": 123.7,
	"width": 1920,
	"height": 1080,
	"formats": [
		{"format_id": "137", "ext": "mp4", "vcodec": "avc1", "acodec": "none",
		 "width": 1920, "height": 1080, "fps": 30, "vbr": 4000, "filesize": 1048576,
		 "format_note": "1080p", "url": "https://cdn.example.com/v137"},
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "acodec": "mp4a",
		 "abr": 128, "url": "https://cdn.example.com/a140"},
		{"format_id": "dead", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a"}
	]
}`

func TestExtract_Success(t *testing.T) {
	runner := &fakeRunner{outputs: [][]byte{[]byte(sampleJSON)}}
	ext := testExtractor(t, runner)

	meta, formats, err := ext.Extract(context.Background(), platform.YouTube, "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if meta.Title != "Test Clip" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.DurationSeconds != 123 {
		t.Errorf("DurationSeconds = %d, want 123", meta.DurationSeconds)
	}
	if len(formats) != 3 {
		t.Fatalf("formats = %d, want 3", len(formats))
	}

	f := formats[0]
	if f.FormatID != "137" || f.Height != 1080 || f.SizeBytes != 1048576 || f.FrameRate != 30 {
		t.Errorf("descriptor mapping wrong: %+v", f)
	}
	if !formats[0].IsVideoOnly() || !formats[1].IsAudioOnly() {
		t.Error("codec classification wrong")
	}
	// Descriptor without URL maps through; the selector discards it later.
	if formats[2].Usable() {
		t.Error("descriptor without URL should be unusable")
	}
}

func TestExtract_BuildsBaseArgs(t *testing.T) {
	runner := &fakeRunner{outputs: [][]byte{[]byte(sampleJSON)}}
	ext := testExtractor(t, runner)

	_, _, err := ext.Extract(context.Background(), platform.YouTube, "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatal(err)
	}

	args := runner.calls[0]
	for _, want := range []string{"-J", "--no-warnings", "--skip-download", "--no-playlist", "--geo-bypass"} {
		if !slices.Contains(args, want) {
			t.Errorf("args missing %q: %v", want, args)
		}
	}
	if args[len(args)-1] != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("URL should be the final argument: %v", args)
	}
	// No cookie file on disk yet, so no --cookies flag.
	if slices.Contains(args, "--cookies") {
		t.Error("--cookies should be omitted when no cookie file exists")
	}
}

func TestExtract_AttachesCookieFile(t *testing.T) {
	store, err := cookies.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Write(platform.Instagram, []byte("cookie data")); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{outputs: [][]byte{[]byte(sampleJSON)}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ext := New(runner, store, config.ExtractConfig{Attempts: 3, Timeout: 5 * time.Second}, logger)

	_, _, err = ext.Extract(context.Background(), platform.Instagram, "https://www.instagram.com/reel/x/")
	if err != nil {
		t.Fatal(err)
	}

	args := runner.calls[0]
	idx := slices.Index(args, "--cookies")
	if idx < 0 || idx+1 >= len(args) {
		t.Fatalf("--cookies flag missing: %v", args)
	}
	path, _ := store.Path(platform.Instagram)
	if args[idx+1] != path {
		t.Errorf("cookie path = %q, want %q", args[idx+1], path)
	}
}

func TestExtract_FallbackEscalates(t *testing.T) {
	runner := &fakeRunner{
		errs:    []error{errors.New("blocked"), errors.New("blocked again"), nil},
		outputs: [][]byte{nil, nil, []byte(sampleJSON)},
	}
	ext := testExtractor(t, runner)

	_, _, err := ext.Extract(context.Background(), platform.YouTube, "https://www.youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Extract should succeed on third attempt: %v", err)
	}
	if len(runner.calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(runner.calls))
	}

	// Second attempt switches identity; third pins a geo region.
	ua1 := argValue(runner.calls[0], "--user-agent")
	ua2 := argValue(runner.calls[1], "--user-agent")
	if ua1 == ua2 {
		t.Error("fallback should switch user agent")
	}
	if argValue(runner.calls[2], "--geo-bypass-country") != "US" {
		t.Errorf("third attempt should pin geo region: %v", runner.calls[2])
	}
}

func TestExtract_AllAttemptsExhausted(t *testing.T) {
	lastErr := errors.New("HTTP Error 429")
	runner := &fakeRunner{errs: []error{errors.New("e1"), errors.New("e2"), lastErr}}
	ext := testExtractor(t, runner)

	_, _, err := ext.Extract(context.Background(), platform.YouTube, "https://www.youtube.com/watch?v=abc")
	if err == nil {
		t.Fatal("expected error after all attempts")
	}
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Errorf("err = %v, want ErrExtractionFailed", err)
	}

	var exErr *domain.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatal("expected *domain.ExtractionError")
	}
	if exErr.Platform != "youtube" {
		t.Errorf("Platform = %q", exErr.Platform)
	}
	if !errors.Is(exErr.LastErr, lastErr) {
		t.Errorf("LastErr = %v, want the final attempt's error", exErr.LastErr)
	}
	if len(runner.calls) != 3 {
		t.Errorf("calls = %d, want 3", len(runner.calls))
	}
}

func TestExtract_PlaylistReducesToFirstEntry(t *testing.T) {
	playlistJSON := `{
		"title": "Carousel",
		"entries": [
			{"title": "First", "duration": 10,
			 "formats": [{"format_id": "0", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "url": "https://cdn/x"}]},
			{"title": "Second", "duration": 20,
			 "formats": [{"format_id": "1", "ext": "mp4", "vcodec": "avc1", "acodec": "mp4a", "url": "https://cdn/y"}]}
		]
	}`
	runner := &fakeRunner{outputs: [][]byte{[]byte(playlistJSON)}}
	ext := testExtractor(t, runner)

	meta, formats, err := ext.Extract(context.Background(), platform.Instagram, "https://www.instagram.com/p/x/")
	if err != nil {
		t.Fatal(err)
	}
	if meta.Title != "First" {
		t.Errorf("Title = %q, want First", meta.Title)
	}
	if len(formats) != 1 || formats[0].FormatID != "0" {
		t.Errorf("formats = %+v, want entry 0's format", formats)
	}
}

func TestExtract_EmptyResultIsFailure(t *testing.T) {
	empty := `{"title": "x", "entries": []}`
	runner := &fakeRunner{outputs: [][]byte{[]byte(empty), []byte(empty), []byte(empty)}}
	ext := testExtractor(t, runner)

	_, _, err := ext.Extract(context.Background(), platform.Facebook, "https://www.facebook.com/watch/?v=1")
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Errorf("err = %v, want ErrExtractionFailed", err)
	}
}

func argValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}
