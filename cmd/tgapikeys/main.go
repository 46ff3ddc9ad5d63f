package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // CA roots for the Chromium download in a scratch container

	"github.com/ericfisherdev/tgapikeys/internal/adapter/driven/chromium"
	"github.com/ericfisherdev/tgapikeys/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/tgapikeys/internal/adapter/driving/terminal"
	"github.com/ericfisherdev/tgapikeys/internal/application"
	"github.com/ericfisherdev/tgapikeys/internal/config"
)

// errNoCredentials signals a finished run that produced no credentials. The
// cause has already been logged by the service.
var errNoCredentials = errors.New("no api credentials obtained")

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on malformed env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"site_url", cfg.SiteURL,
		"headless", cfg.Headless,
		"page_timeout", cfg.PageTimeout,
		"screenshot_dir", cfg.ScreenshotDir,
		"human_pacing", cfg.HumanPacing,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM). Cancellation aborts the
	// current step; the browser session is still closed on the way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Wire adapters.
	browser := chromium.NewBrowser(chromium.Options{
		Headless: cfg.Headless,
		BinPath:  cfg.BrowserBin,
	})
	recorder := filesystem.NewScreenshotRecorder(cfg.ScreenshotDir)
	prompter := terminal.NewPrompter(os.Stdin, os.Stdout)

	// 4. Create the credential service.
	timeouts := application.DefaultTimeouts()
	timeouts.Page = cfg.PageTimeout
	svc := application.NewCredentialService(browser, prompter, recorder, application.ServiceConfig{
		SiteURL:     cfg.SiteURL,
		Timeouts:    &timeouts,
		HumanPacing: cfg.HumanPacing,
	}, logger)

	// 5. Run once and report.
	outcome := svc.Run(ctx, cfg.AppProfile())
	if !outcome.OK() {
		return errNoCredentials
	}

	return terminal.PrintCredentials(os.Stdout, outcome.Credentials)
}

// newLogger builds the process logger on stderr so it never interleaves with
// the prompts and the result on stdout.
func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
