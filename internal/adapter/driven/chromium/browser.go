// Package chromium implements the Browser port with go-rod driving Chromium
// over the DevTools protocol.
package chromium

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// Compile-time interface satisfaction checks.
var (
	_ driven.Browser = (*Browser)(nil)
	_ driven.Session = (*Session)(nil)
)

// Options configures how Chromium is launched.
type Options struct {
	Headless bool
	// BinPath points at a Chromium/Chrome binary. Empty lets the launcher find
	// a local install or download one.
	BinPath string
}

// Browser launches one Chromium process per session.
type Browser struct {
	opts Options
}

// NewBrowser creates a Browser with the given launch options.
func NewBrowser(opts Options) *Browser {
	return &Browser{opts: opts}
}

// Open launches Chromium, connects to it, and opens a single page inside a
// fresh incognito context carrying the requested user agent.
func (b *Browser) Open(ctx context.Context, opts driven.SessionOptions) (driven.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	// Neither the launcher nor the connection is bound to ctx: a canceled run
	// still needs its page for the failure screenshot and a graceful Close.
	l := launcher.New().Headless(b.opts.Headless)
	if b.opts.BinPath != "" {
		l = l.Bin(b.opts.BinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s := &Session{launcher: l, browser: browser, defaultTimeout: opts.DefaultTimeout}

	incognito, err := browser.Incognito()
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("create browser context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	if opts.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: opts.UserAgent}); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	s.page = page
	return s, nil
}

// Session is a single page of a launched Chromium process.
type Session struct {
	launcher       *launcher.Launcher
	browser        *rod.Browser
	page           *rod.Page
	defaultTimeout time.Duration
}

// Navigate loads url and waits for the load event.
func (s *Session) Navigate(ctx context.Context, url string) error {
	p := s.scoped(ctx, s.defaultTimeout)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("wait load %s: %w", url, err)
	}
	return nil
}

// WaitVisible polls for loc until it exists and is visible, or timeout elapses.
func (s *Session) WaitVisible(ctx context.Context, loc driven.Locator, timeout time.Duration) (bool, error) {
	el, err := s.find(s.scoped(ctx, timeout), loc)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find %s: %w", loc, err)
	}

	err = el.WaitVisible()
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("wait visible %s: %w", loc, err)
	}
	return true, nil
}

// Fill selects the field's current text and types value over it.
func (s *Session) Fill(ctx context.Context, loc driven.Locator, value string) error {
	el, err := s.element(ctx, loc, s.defaultTimeout)
	if err != nil {
		return err
	}
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text %s: %w", loc, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("input %s: %w", loc, err)
	}
	return nil
}

// Click waits up to timeout for loc and left-clicks it once.
func (s *Session) Click(ctx context.Context, loc driven.Locator, timeout time.Duration) error {
	el, err := s.element(ctx, loc, timeout)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", loc, err)
	}
	return nil
}

// ReadValue returns the live value property of an input element.
func (s *Session) ReadValue(ctx context.Context, loc driven.Locator) (string, error) {
	el, err := s.element(ctx, loc, s.defaultTimeout)
	if err != nil {
		return "", err
	}
	value, err := el.Property("value")
	if err != nil {
		return "", fmt.Errorf("read value %s: %w", loc, err)
	}
	return value.String(), nil
}

// Screenshot captures the full scrollable page as PNG.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	if s.page == nil {
		return nil, errors.New("screenshot: no page open")
	}
	data, err := s.scoped(ctx, s.defaultTimeout).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}
	return data, nil
}

// Close shuts down the browser and removes its temporary profile directory.
// The process is killed if a graceful close fails.
func (s *Session) Close() error {
	err := s.browser.Close()
	if err != nil {
		s.launcher.Kill()
		err = fmt.Errorf("close browser: %w", err)
	}
	s.launcher.Cleanup()
	return err
}

// scoped returns the page bound to ctx with its own deadline, leaving the
// session's page untouched.
func (s *Session) scoped(ctx context.Context, timeout time.Duration) *rod.Page {
	p := s.page.Context(ctx)
	if timeout > 0 {
		p = p.Timeout(timeout)
	}
	return p
}

// element finds loc within timeout, mapping absence to driven.ErrElementNotFound.
func (s *Session) element(ctx context.Context, loc driven.Locator, timeout time.Duration) (*rod.Element, error) {
	el, err := s.find(s.scoped(ctx, timeout), loc)
	if isNotFound(err) {
		return nil, fmt.Errorf("%w: %s (waited %s)", driven.ErrElementNotFound, loc, timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, err)
	}
	return el, nil
}

func (s *Session) find(p *rod.Page, loc driven.Locator) (*rod.Element, error) {
	if loc.Text != "" {
		return p.ElementR(loc.CSS, loc.Text)
	}
	return p.Element(loc.CSS)
}

// isNotFound reports whether err means the element did not show up in time,
// as opposed to a browser or protocol failure.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var notFound *rod.ElementNotFoundError
	return errors.Is(err, context.DeadlineExceeded) || errors.As(err, &notFound)
}
