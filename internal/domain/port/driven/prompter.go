package driven

import (
	"context"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
)

// Prompter supplies the interactive values a credential run suspends on
// (phone number, confirmation code). Implementations block until the value is
// available or ctx is done.
type Prompter interface {
	Ask(ctx context.Context, req model.InputRequest) (string, error)
}
