package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"time"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// --- Fake page: a map of visible locators and field values keyed by Locator.String() ---

type fakeSession struct {
	visible map[string]bool
	values  map[string]string
	onClick map[string]func(s *fakeSession)

	navigateErr   error
	fillErr       error
	screenshotErr error

	navigations []string
	fills       map[string]string
	clicks      []string
	waits       []string
	screenshots int
	closed      int

	// fieldsAtSave is a copy of fills taken when the save button is clicked.
	fieldsAtSave map[string]string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		visible: map[string]bool{},
		values:  map[string]string{},
		onClick: map[string]func(s *fakeSession){},
		fills:   map[string]string{},
	}
}

func (s *fakeSession) show(locs ...driven.Locator) {
	for _, loc := range locs {
		s.visible[loc.String()] = true
	}
}

func (s *fakeSession) hide(locs ...driven.Locator) {
	for _, loc := range locs {
		delete(s.visible, loc.String())
	}
}

func (s *fakeSession) Navigate(_ context.Context, url string) error {
	s.navigations = append(s.navigations, url)
	return s.navigateErr
}

func (s *fakeSession) WaitVisible(_ context.Context, loc driven.Locator, _ time.Duration) (bool, error) {
	s.waits = append(s.waits, loc.String())
	return s.visible[loc.String()], nil
}

func (s *fakeSession) Fill(_ context.Context, loc driven.Locator, value string) error {
	if s.fillErr != nil {
		return s.fillErr
	}
	if !s.visible[loc.String()] {
		return fmt.Errorf("%w: %s", driven.ErrElementNotFound, loc)
	}
	s.fills[loc.String()] = value
	return nil
}

func (s *fakeSession) Click(_ context.Context, loc driven.Locator, _ time.Duration) error {
	if !s.visible[loc.String()] {
		return fmt.Errorf("%w: %s", driven.ErrElementNotFound, loc)
	}
	s.clicks = append(s.clicks, loc.String())
	if fn, ok := s.onClick[loc.String()]; ok {
		fn(s)
	}
	return nil
}

func (s *fakeSession) ReadValue(_ context.Context, loc driven.Locator) (string, error) {
	if !s.visible[loc.String()] {
		return "", fmt.Errorf("%w: %s", driven.ErrElementNotFound, loc)
	}
	return s.values[loc.String()], nil
}

func (s *fakeSession) Screenshot(_ context.Context) ([]byte, error) {
	s.screenshots++
	if s.screenshotErr != nil {
		return nil, s.screenshotErr
	}
	return []byte("\x89PNG fake"), nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func (s *fakeSession) clicked(loc driven.Locator) bool {
	for _, c := range s.clicks {
		if c == loc.String() {
			return true
		}
	}
	return false
}

type fakeBrowser struct {
	session *fakeSession
	openErr error
	opens   []driven.SessionOptions
}

func (b *fakeBrowser) Open(_ context.Context, opts driven.SessionOptions) (driven.Session, error) {
	b.opens = append(b.opens, opts)
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.session, nil
}

type fakePrompter struct {
	answers map[model.InputKind]string
	err     error
	asked   []model.InputKind
}

func (p *fakePrompter) Ask(_ context.Context, req model.InputRequest) (string, error) {
	p.asked = append(p.asked, req.Kind)
	if p.err != nil {
		return "", p.err
	}
	return p.answers[req.Kind], nil
}

type fakeRecorder struct {
	records []model.FailureRecord
	images  [][]byte
}

func (r *fakeRecorder) Record(_ context.Context, kind model.FailureKind, step model.Step, image []byte, at time.Time) (model.FailureRecord, error) {
	rec := model.FailureRecord{
		Kind: kind,
		Step: step,
		Path: fmt.Sprintf("shots/%s_%d.png", kind, at.Unix()),
		At:   at,
	}
	r.records = append(r.records, rec)
	r.images = append(r.images, image)
	return rec, nil
}

// --- Page builders ---

// loggedInPage returns a session where the login steps all succeed and the
// tools link leads nowhere in particular; callers add the apps page state.
func loggedInPage() *fakeSession {
	l := DefaultLayout()
	s := newFakeSession()
	s.show(l.PhoneField, l.PhoneSubmit, l.CodeField, l.SignInButton, l.ToolsLink)
	return s
}

// withCreationForm shows a blank creation form whose save button reveals the
// given credentials and snapshots the filled fields.
func withCreationForm(s *fakeSession, id, hash string) {
	l := DefaultLayout()
	s.show(l.TitleField, l.ShortNameField, l.DescriptionField, l.SaveButton)
	for _, platform := range []string{"android", "ios", "desktop", "web", "other"} {
		s.show(l.PlatformLocator(platform))
	}
	s.onClick[l.SaveButton.String()] = func(s *fakeSession) {
		s.fieldsAtSave = maps.Clone(s.fills)
		s.show(l.AppIDField, l.AppHashField)
		s.values[l.AppIDField.String()] = id
		s.values[l.AppHashField.String()] = hash
	}
}

func validAnswers() *fakePrompter {
	return &fakePrompter{answers: map[model.InputKind]string{
		model.InputPhoneNumber:      "+15551234567",
		model.InputConfirmationCode: "12345",
	}}
}

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestService(browser driven.Browser, prompter driven.Prompter, recorder driven.FailureRecorder) *CredentialService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewCredentialService(browser, prompter, recorder, ServiceConfig{}, logger)
	svc.now = func() time.Time { return fixedNow }
	return svc
}
