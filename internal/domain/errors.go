package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	// ErrInvalidInput is returned for missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrExtractionFailed is returned when the extractor exhausted all
	// fallback attempts without a usable result.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrDownloadFailed is returned when one of the merge inputs could not
	// be retrieved after all retry attempts.
	ErrDownloadFailed = errors.New("stream download failed")

	// ErrRemuxFailed is returned when the remux subprocess exits non-zero.
	ErrRemuxFailed = errors.New("remux failed")

	// ErrRemuxTimeout is returned when the remux subprocess exceeds its
	// configured deadline.
	ErrRemuxTimeout = errors.New("remux timed out")

	// ErrUpstreamRelay is returned when a relayed upstream exhausted all
	// retry attempts.
	ErrUpstreamRelay = errors.New("upstream relay failed")

	// ErrCookieWrite is returned on a disk I/O failure while updating a
	// platform cookie file.
	ErrCookieWrite = errors.New("cookie write failed")
)

// ExtractionError carries the platform and the last upstream error after all
// extraction attempts were exhausted.
type ExtractionError struct {
	Platform string
	LastErr  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed [%s]: %v", e.Platform, e.LastErr)
}

func (e *ExtractionError) Unwrap() error {
	return ErrExtractionFailed
}

// DownloadError identifies which merge input failed and the last upstream
// HTTP status seen (0 for transport errors).
type DownloadError struct {
	Stream     string // "video" or "audio"
	LastStatus int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.LastStatus > 0 {
		return fmt.Sprintf("download failed [stream=%s, status=%d]: %v", e.Stream, e.LastStatus, e.Err)
	}
	return fmt.Sprintf("download failed [stream=%s]: %v", e.Stream, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return ErrDownloadFailed
}

// RemuxError carries the subprocess exit code and a stderr excerpt.
type RemuxError struct {
	ExitCode int
	Stderr   string
}

func (e *RemuxError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("remux failed [exit=%d]: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("remux failed [exit=%d]", e.ExitCode)
}

func (e *RemuxError) Unwrap() error {
	return ErrRemuxFailed
}
