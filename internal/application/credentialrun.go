package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// credentialRun carries the state of a single Run through its steps.
type credentialRun struct {
	svc     *CredentialService
	session driven.Session
	log     *slog.Logger
	profile model.AppProfile
}

func (r *credentialRun) execute(ctx context.Context) (model.Credentials, error) {
	if err := r.enterPhone(ctx); err != nil {
		return model.Credentials{}, err
	}
	if err := r.enterCode(ctx); err != nil {
		return model.Credentials{}, err
	}
	if err := r.openTools(ctx); err != nil {
		return model.Credentials{}, err
	}
	return r.resolveCredentials(ctx)
}

// enterPhone asks for the phone number, validates it before touching the
// network, and submits it on the login page.
func (r *credentialRun) enterPhone(ctx context.Context) error {
	const step = model.StepPhoneEntry
	l := r.svc.layout

	phone, err := r.svc.prompter.Ask(ctx, model.InputRequest{
		Kind:        model.InputPhoneNumber,
		Prompt:      "Phone number (international format)",
		Placeholder: "+1234567890",
	})
	if err != nil {
		return unexpected(step, fmt.Errorf("read phone number: %w", err))
	}
	phone = strings.TrimSpace(phone)
	if err := ValidatePhoneNumber(phone); err != nil {
		return invalidInput(step, err)
	}

	r.log.Info("navigating to portal", "step", step, "url", r.svc.siteURL)
	if err := r.session.Navigate(ctx, r.svc.siteURL); err != nil {
		return unexpected(step, fmt.Errorf("navigate to %s: %w", r.svc.siteURL, err))
	}
	if err := r.pause(ctx, step, paceAfterAction); err != nil {
		return err
	}

	if err := r.require(ctx, step, l.PhoneField, r.svc.timeouts.PhoneField, "phone input field not found"); err != nil {
		return err
	}
	r.log.Info("phone input found", "step", step, "selector", l.PhoneField.String())

	if err := r.session.Fill(ctx, l.PhoneField, phone); err != nil {
		return actionFailed(step, "fill phone number", err)
	}
	if err := r.pause(ctx, step, paceAfterAction); err != nil {
		return err
	}

	err = r.session.Click(ctx, l.PhoneSubmit, r.svc.timeouts.Click)
	if errors.Is(err, driven.ErrElementNotFound) {
		r.log.Debug("submit button not found, trying fallback", "step", step, "selector", l.PhoneSubmitFallback.String())
		err = r.session.Click(ctx, l.PhoneSubmitFallback, r.svc.timeouts.Click)
	}
	if err != nil {
		return actionFailed(step, "submit phone number", err)
	}

	r.log.Info("phone number submitted, waiting for code field", "step", step)
	return nil
}

// enterCode waits for the confirmation code field, which only appears once the
// portal accepted the phone number, then asks for the code and signs in.
func (r *credentialRun) enterCode(ctx context.Context) error {
	const step = model.StepCodeEntry
	l := r.svc.layout

	if err := r.pause(ctx, step, paceAfterPhone); err != nil {
		return err
	}
	if err := r.require(ctx, step, l.CodeField, r.svc.timeouts.CodeField, "code input field not found after phone submission"); err != nil {
		return err
	}
	r.log.Info("code input found", "step", step, "selector", l.CodeField.String())

	code, err := r.svc.prompter.Ask(ctx, model.InputRequest{
		Kind:   model.InputConfirmationCode,
		Prompt: "Confirmation code sent to your Telegram app",
	})
	if err != nil {
		return unexpected(step, fmt.Errorf("read confirmation code: %w", err))
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return invalidInput(step, ErrEmptyConfirmationCode)
	}

	r.log.Info("code received, submitting", "step", step)
	if err := r.session.Fill(ctx, l.CodeField, code); err != nil {
		return actionFailed(step, "fill confirmation code", err)
	}
	if err := r.pause(ctx, step, paceAfterAction); err != nil {
		return err
	}
	if err := r.session.Click(ctx, l.SignInButton, r.svc.timeouts.Click); err != nil {
		return actionFailed(step, "click sign in after code input", err)
	}

	r.log.Info("code submitted, waiting for api development tools", "step", step)
	return nil
}

// openTools follows the navigation link to the credentials page. The link is
// optional: the portal may already show the target page.
func (r *credentialRun) openTools(ctx context.Context) error {
	const step = model.StepToolsNavigation
	l := r.svc.layout

	found, err := r.session.WaitVisible(ctx, l.ToolsLink, r.svc.timeouts.ToolsLink)
	if err != nil {
		return unexpected(step, fmt.Errorf("wait for %s: %w", l.ToolsLink, err))
	}
	if !found {
		r.log.Warn("api development tools link not found, trying to continue", "step", step)
		return nil
	}

	err = r.session.Click(ctx, l.ToolsLink, r.svc.timeouts.Click)
	switch {
	case errors.Is(err, driven.ErrElementNotFound):
		r.log.Warn("api development tools link disappeared, trying to continue", "step", step)
		return nil
	case err != nil:
		return unexpected(step, fmt.Errorf("click %s: %w", l.ToolsLink, err))
	}

	r.log.Info("clicked api development tools link", "step", step)
	return r.pause(ctx, step, paceAfterTools)
}

// resolveCredentials is the branch point: a blank creation form, an existing
// app with visible credentials, or a page offering to create one.
func (r *credentialRun) resolveCredentials(ctx context.Context) (model.Credentials, error) {
	const step = model.StepBranchPoint
	l := r.svc.layout

	onCreateForm, err := r.anyVisible(ctx, step, l.CreateHeading, l.TitleField)
	if err != nil {
		return model.Credentials{}, err
	}
	if onCreateForm {
		r.log.Info("on new app creation page, filling form", "step", step)
		return r.createApp(ctx)
	}

	r.log.Info("on api development tools page, looking for existing keys", "step", step)
	hasID, err := r.visible(ctx, step, l.AppIDField)
	if err != nil {
		return model.Credentials{}, err
	}
	hasHash := false
	if hasID {
		if hasHash, err = r.visible(ctx, step, l.AppHashField); err != nil {
			return model.Credentials{}, err
		}
	}
	if hasID && hasHash {
		creds, err := r.readCredentials(ctx, model.StepReadExisting)
		if err != nil {
			return model.Credentials{}, err
		}
		r.log.Info("existing api keys found", "step", model.StepReadExisting, "api_id", creds.ID)
		return creds, nil
	}

	r.log.Info("no existing app found, clicking create new application", "step", step)
	if err := r.require(ctx, step, l.CreateButton, r.svc.timeouts.CreateButton, "create new application button not found"); err != nil {
		return model.Credentials{}, err
	}
	if err := r.session.Click(ctx, l.CreateButton, r.svc.timeouts.Click); err != nil {
		return model.Credentials{}, actionFailed(step, "click create new application", err)
	}

	r.log.Info("waiting for new app creation form", "step", step)
	if err := r.require(ctx, step, l.TitleField, r.svc.timeouts.CreateForm, "new app creation form not shown"); err != nil {
		return model.Credentials{}, err
	}
	if err := r.pause(ctx, step, paceBeforeForm); err != nil {
		return model.Credentials{}, err
	}
	return r.createApp(ctx)
}

// createApp fills the creation form from the profile, submits it, and reads
// the credentials the portal issues.
func (r *credentialRun) createApp(ctx context.Context) (model.Credentials, error) {
	const step = model.StepCreateApp
	l := r.svc.layout
	p := r.profile

	r.log.Info("filling new app form", "step", step,
		"app_title", p.Title,
		"short_name", p.ShortName,
		"platform", p.Platform,
	)

	if err := r.session.Fill(ctx, l.TitleField, p.Title); err != nil {
		return model.Credentials{}, actionFailed(step, "fill app title", err)
	}
	if err := r.session.Fill(ctx, l.ShortNameField, p.ShortName); err != nil {
		return model.Credentials{}, actionFailed(step, "fill short name", err)
	}
	if err := r.session.Click(ctx, l.PlatformLocator(p.Platform), r.svc.timeouts.Click); err != nil {
		return model.Credentials{}, actionFailed(step, fmt.Sprintf("select platform %q", p.Platform), err)
	}
	if err := r.session.Fill(ctx, l.DescriptionField, p.Description); err != nil {
		return model.Credentials{}, actionFailed(step, "fill description", err)
	}
	if err := r.pause(ctx, step, paceBeforeSave); err != nil {
		return model.Credentials{}, err
	}

	if err := r.session.Click(ctx, l.SaveButton, r.svc.timeouts.Click); err != nil {
		return model.Credentials{}, actionFailed(step, "submit app creation form", err)
	}
	r.log.Info("app creation form submitted", "step", step)
	if err := r.pause(ctx, step, paceAfterSave); err != nil {
		return model.Credentials{}, err
	}

	r.dismissConfirmation(ctx)

	r.log.Info("waiting for api id and api hash", "step", step)
	if err := r.require(ctx, step, l.AppIDField, r.svc.timeouts.Credentials, "api credentials not shown after app creation"); err != nil {
		return model.Credentials{}, err
	}

	creds, err := r.readCredentials(ctx, step)
	if err != nil {
		return model.Credentials{}, err
	}
	r.log.Info("new app created", "step", step, "api_id", creds.ID)
	return creds, nil
}

// dismissConfirmation clicks the post-save confirmation dialog when one shows
// up. Any failure here is logged and ignored.
func (r *credentialRun) dismissConfirmation(ctx context.Context) {
	l := r.svc.layout

	found, err := r.session.WaitVisible(ctx, l.ConfirmButton, r.svc.timeouts.Confirmation)
	if err != nil || !found {
		r.log.Info("confirmation dialog not found, continuing", "step", model.StepCreateApp)
		return
	}
	if err := r.session.Click(ctx, l.ConfirmButton, r.svc.timeouts.Confirmation); err != nil {
		r.log.Warn("confirmation dialog click failed, continuing", "step", model.StepCreateApp, "error", err)
		return
	}
	r.log.Info("confirmation button clicked", "step", model.StepCreateApp)
}

func (r *credentialRun) readCredentials(ctx context.Context, step model.Step) (model.Credentials, error) {
	l := r.svc.layout

	id, err := r.session.ReadValue(ctx, l.AppIDField)
	if err != nil {
		return model.Credentials{}, actionFailed(step, "read api_id", err)
	}
	hash, err := r.session.ReadValue(ctx, l.AppHashField)
	if err != nil {
		return model.Credentials{}, actionFailed(step, "read api_hash", err)
	}

	creds := model.Credentials{ID: strings.TrimSpace(id), Hash: strings.TrimSpace(hash)}
	if !creds.Valid() {
		return model.Credentials{}, unexpected(step, ErrEmptyCredentials)
	}
	return creds, nil
}

// require waits for loc and turns its absence into a timeout error.
func (r *credentialRun) require(ctx context.Context, step model.Step, loc driven.Locator, timeout time.Duration, missing string) error {
	found, err := r.session.WaitVisible(ctx, loc, timeout)
	if err != nil {
		return unexpected(step, fmt.Errorf("wait for %s: %w", loc, err))
	}
	if !found {
		return timedOut(step, "%s (%s, waited %s)", missing, loc, timeout)
	}
	return nil
}

func (r *credentialRun) visible(ctx context.Context, step model.Step, loc driven.Locator) (bool, error) {
	found, err := r.session.WaitVisible(ctx, loc, r.svc.timeouts.Probe)
	if err != nil {
		return false, unexpected(step, fmt.Errorf("probe %s: %w", loc, err))
	}
	return found, nil
}

func (r *credentialRun) anyVisible(ctx context.Context, step model.Step, locs ...driven.Locator) (bool, error) {
	for _, loc := range locs {
		found, err := r.visible(ctx, step, loc)
		if err != nil || found {
			return found, err
		}
	}
	return false, nil
}

func (r *credentialRun) pause(ctx context.Context, step model.Step, p pace) error {
	if err := r.svc.pause(ctx, p); err != nil {
		return unexpected(step, fmt.Errorf("run interrupted: %w", err))
	}
	return nil
}
