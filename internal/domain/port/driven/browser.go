package driven

import (
	"context"
	"errors"
	"time"
)

// ErrElementNotFound is wrapped by Session actions when the target element did
// not appear within the action's wait.
var ErrElementNotFound = errors.New("element not found")

// Locator addresses a page element. CSS selects candidates; when Text is set,
// only candidates whose text matches the Text regular expression qualify.
type Locator struct {
	CSS  string
	Text string
}

// String renders the locator for logs and error messages.
func (l Locator) String() string {
	if l.Text == "" {
		return l.CSS
	}
	return l.CSS + " /" + l.Text + "/"
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	UserAgent string
	// DefaultTimeout bounds every action that has no explicit timeout.
	DefaultTimeout time.Duration
}

// Browser defines the driven port that launches browser sessions.
type Browser interface {
	// Open launches a fresh, isolated session with a single page. The caller
	// owns the returned Session and must Close it.
	Open(ctx context.Context, opts SessionOptions) (Session, error)
}

// Session is one browser context with one page.
type Session interface {
	Navigate(ctx context.Context, url string) error

	// WaitVisible reports whether the element became visible within timeout.
	// A missing element is a false result, not an error; the error is reserved
	// for failures of the browser itself.
	WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) (bool, error)

	// Fill replaces the text of an input field.
	Fill(ctx context.Context, loc Locator, value string) error
	Click(ctx context.Context, loc Locator, timeout time.Duration) error
	// ReadValue returns the current value of an input field.
	ReadValue(ctx context.Context, loc Locator) (string, error)

	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)

	Close() error
}
