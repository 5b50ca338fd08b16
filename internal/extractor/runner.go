package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one extractor invocation and returns its stdout. It exists
// so tests can fake the external tool.
type Runner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// ExecRunner runs the real yt-dlp binary.
type ExecRunner struct {
	binPath string
}

// NewExecRunner creates a runner for the given extractor binary.
func NewExecRunner(binPath string) *ExecRunner {
	return &ExecRunner{binPath: binPath}
}

// Run invokes the extractor, returning stdout on success and a stderr-backed
// error on failure.
func (r *ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("extractor: %w", err)
		}
		return nil, fmt.Errorf("extractor: %w: %s", err, excerpt(msg, 500))
	}
	return stdout.Bytes(), nil
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[len(s)-max:]
}
