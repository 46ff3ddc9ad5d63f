package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
)

func TestScreenshotRecorder_Record(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	rec := NewScreenshotRecorder(dir)
	at := time.Unix(1700000000, 0)
	image := []byte("\x89PNG\r\n\x1a\npixels")

	got, err := rec.Record(context.Background(), model.FailureKindTimeout, model.StepCodeEntry, image, at)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "timeout_error_1700000000.png"), got.Path)
	assert.Equal(t, model.FailureKindTimeout, got.Kind)
	assert.Equal(t, model.StepCodeEntry, got.Step)
	assert.Equal(t, at, got.At)

	data, err := os.ReadFile(got.Path)
	require.NoError(t, err)
	assert.Equal(t, image, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestScreenshotRecorder_DirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := NewScreenshotRecorder(blocker).Record(context.Background(), model.FailureKindUnexpected, model.StepInit, []byte("png"), time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create screenshot dir")
}

func TestFileName(t *testing.T) {
	at := time.Unix(42, 0)

	assert.Equal(t, "timeout_error_42.png", FileName(model.FailureKindTimeout, at))
	assert.Equal(t, "general_error_42.png", FileName(model.FailureKindUnexpected, at))
}

func TestNewScreenshotRecorder_DefaultDir(t *testing.T) {
	assert.Equal(t, DefaultDir, NewScreenshotRecorder("").dir)
}
