package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

var (
	// ErrInvalidPhoneNumber is returned for phone numbers not of the form +<digits>.
	ErrInvalidPhoneNumber = errors.New("phone number must start with '+' followed by digits only")

	// ErrEmptyConfirmationCode is returned when the user submits a blank code.
	ErrEmptyConfirmationCode = errors.New("confirmation code is empty")

	// ErrEmptyCredentials is returned when the credentials page shows blank fields.
	ErrEmptyCredentials = errors.New("credentials page returned empty api_id or api_hash")
)

// RunError describes why a credential run was aborted and at which step.
type RunError struct {
	Kind model.FailureKind
	Step model.Step
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s at %s: %v", e.Kind, e.Step, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func invalidInput(step model.Step, err error) error {
	return &RunError{Kind: model.FailureKindInvalidInput, Step: step, Err: err}
}

func timedOut(step model.Step, format string, args ...any) error {
	return &RunError{Kind: model.FailureKindTimeout, Step: step, Err: fmt.Errorf(format, args...)}
}

func unexpected(step model.Step, err error) error {
	return &RunError{Kind: model.FailureKindUnexpected, Step: step, Err: err}
}

// actionFailed classifies an error from a required Session action. An element
// that never showed up is a timeout; anything else is unexpected.
func actionFailed(step model.Step, what string, err error) error {
	if errors.Is(err, driven.ErrElementNotFound) {
		return &RunError{Kind: model.FailureKindTimeout, Step: step, Err: fmt.Errorf("%s: %w", what, err)}
	}
	return unexpected(step, fmt.Errorf("%s: %w", what, err))
}

// asRunError normalizes any error escaping the flow into a *RunError.
func asRunError(err error) *RunError {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &RunError{Kind: model.FailureKindUnexpected, Step: model.StepInit, Err: fmt.Errorf("run interrupted: %w", err)}
	}
	return &RunError{Kind: model.FailureKindUnexpected, Step: model.StepInit, Err: err}
}
