// Package filesystem implements the FailureRecorder port on the local disk.
package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.FailureRecorder = (*ScreenshotRecorder)(nil)

// DefaultDir is where screenshots land when no directory is configured.
const DefaultDir = "error_screenshots"

// ScreenshotRecorder writes failure screenshots as <kind>_<unix seconds>.png
// into a single directory, creating it on first use.
type ScreenshotRecorder struct {
	dir string
}

// NewScreenshotRecorder creates a ScreenshotRecorder rooted at dir.
func NewScreenshotRecorder(dir string) *ScreenshotRecorder {
	if dir == "" {
		dir = DefaultDir
	}
	return &ScreenshotRecorder{dir: dir}
}

// Record writes image atomically so a crash never leaves a truncated PNG behind.
func (r *ScreenshotRecorder) Record(_ context.Context, kind model.FailureKind, step model.Step, image []byte, at time.Time) (model.FailureRecord, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return model.FailureRecord{}, fmt.Errorf("create screenshot dir %q: %w", r.dir, err)
	}

	path := filepath.Join(r.dir, FileName(kind, at))
	if err := atomic.WriteFile(path, bytes.NewReader(image)); err != nil {
		return model.FailureRecord{}, fmt.Errorf("write screenshot %q: %w", path, err)
	}

	return model.FailureRecord{
		Kind: kind,
		Step: step,
		Path: path,
		At:   at,
	}, nil
}

// FileName returns the artifact name for a failure of kind at the given time.
func FileName(kind model.FailureKind, at time.Time) string {
	return fmt.Sprintf("%s_%d.png", kind, at.Unix())
}
