// Package application contains use-case orchestration services.
package application

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// ServiceConfig tunes a CredentialService. Zero fields fall back to defaults.
type ServiceConfig struct {
	SiteURL    string
	Layout     *Layout
	Timeouts   *Timeouts
	UserAgents []string
	// HumanPacing inserts short random pauses between portal interactions.
	HumanPacing bool
}

// Outcome is the result of one credential run. On failure Credentials is the
// zero pair and Err describes the aborted step; Failure is set when a
// screenshot was captured.
type Outcome struct {
	RunID       string
	Credentials model.Credentials
	Failure     *model.FailureRecord
	Err         *RunError
}

// OK reports whether the run produced a usable credential pair.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Credentials.Valid()
}

// CredentialService drives one browser session through the portal login and
// the API development tools page. It depends only on port interfaces.
type CredentialService struct {
	browser  driven.Browser
	prompter driven.Prompter
	recorder driven.FailureRecorder
	logger   *slog.Logger

	siteURL     string
	layout      Layout
	timeouts    Timeouts
	userAgents  []string
	humanPacing bool

	now   func() time.Time
	pick  func(n int) int
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCredentialService creates a new CredentialService with the required dependencies.
func NewCredentialService(
	browser driven.Browser,
	prompter driven.Prompter,
	recorder driven.FailureRecorder,
	cfg ServiceConfig,
	logger *slog.Logger,
) *CredentialService {
	s := &CredentialService{
		browser:     browser,
		prompter:    prompter,
		recorder:    recorder,
		logger:      logger,
		siteURL:     cfg.SiteURL,
		layout:      DefaultLayout(),
		timeouts:    DefaultTimeouts(),
		userAgents:  cfg.UserAgents,
		humanPacing: cfg.HumanPacing,
		now:         time.Now,
		pick:        rand.IntN,
		sleep:       sleepContext,
	}
	if s.siteURL == "" {
		s.siteURL = DefaultSiteURL
	}
	if cfg.Layout != nil {
		s.layout = *cfg.Layout
	}
	if cfg.Timeouts != nil {
		s.timeouts = *cfg.Timeouts
	}
	if len(s.userAgents) == 0 {
		s.userAgents = DefaultUserAgents
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run performs one end-to-end attempt: open a session, sign in, then read or
// create the API credentials. The session is closed before Run returns on
// every path. Failures are reported through the Outcome, never panics or
// returned errors.
func (s *CredentialService) Run(ctx context.Context, profile model.AppProfile) Outcome {
	runID := uuid.NewString()
	log := s.logger.With("run_id", runID)
	out := Outcome{RunID: runID}

	userAgent := s.userAgents[s.pick(len(s.userAgents))]
	log.Info("launching browser session", "step", model.StepInit, "user_agent", userAgent)

	session, err := s.browser.Open(ctx, driven.SessionOptions{
		UserAgent:      userAgent,
		DefaultTimeout: s.timeouts.Page,
	})
	if err != nil {
		out.Err = &RunError{Kind: model.FailureKindUnexpected, Step: model.StepInit, Err: err}
		log.Error("browser session launch failed", "step", model.StepInit, "error", err)
		return out
	}
	defer func() {
		log.Info("closing browser session", "step", model.StepTeardown)
		if closeErr := session.Close(); closeErr != nil {
			log.Error("error closing browser session", "error", closeErr)
		}
	}()

	r := &credentialRun{
		svc:     s,
		session: session,
		log:     log,
		profile: profile.WithDefaults(),
	}

	creds, err := r.execute(ctx)
	if err != nil {
		return s.fail(ctx, log, session, out, err)
	}

	out.Credentials = creds
	log.Info("api credentials obtained", "step", model.StepSuccess, "api_id", creds.ID)
	return out
}

// fail logs err and captures a screenshot for every kind but invalid input.
func (s *CredentialService) fail(ctx context.Context, log *slog.Logger, session driven.Session, out Outcome, err error) Outcome {
	runErr := asRunError(err)
	out.Err = runErr

	switch runErr.Kind {
	case model.FailureKindInvalidInput:
		log.Error("input error", "step", runErr.Step, "error", runErr.Err)
		return out
	case model.FailureKindTimeout:
		log.Error("timeout error", "step", runErr.Step, "error", runErr.Err)
	default:
		log.Error("unexpected error", "step", runErr.Step, "error", runErr.Err)
	}

	// The run context may already be canceled; the page state is still worth keeping.
	captureCtx := context.WithoutCancel(ctx)

	image, shotErr := session.Screenshot(captureCtx)
	if shotErr != nil {
		log.Error("error screenshot failed", "error", shotErr)
		return out
	}

	record, recErr := s.recorder.Record(captureCtx, runErr.Kind, runErr.Step, image, s.now())
	if recErr != nil {
		log.Error("error screenshot not saved", "error", recErr)
		return out
	}
	out.Failure = &record
	log.Error("error screenshot saved", "path", record.Path)
	return out
}

// pause waits for a random duration in p when human pacing is enabled.
func (s *CredentialService) pause(ctx context.Context, p pace) error {
	if !s.humanPacing {
		return nil
	}
	return s.sleep(ctx, p.duration())
}
