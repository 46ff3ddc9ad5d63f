package model

import "time"

// FailureRecord points at the screenshot captured when a run failed.
type FailureRecord struct {
	Kind FailureKind
	Step Step
	Path string
	At   time.Time
}
