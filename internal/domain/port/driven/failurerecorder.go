package driven

import (
	"context"
	"time"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
)

// FailureRecorder persists the page screenshot taken when a run fails.
type FailureRecorder interface {
	// Record stores image and returns where it was written. The artifact name
	// is derived from kind and at.
	Record(ctx context.Context, kind model.FailureKind, step model.Step, image []byte, at time.Time) (model.FailureRecord, error)
}
