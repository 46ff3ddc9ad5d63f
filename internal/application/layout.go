package application

import (
	"fmt"
	"time"

	"github.com/ericfisherdev/tgapikeys/internal/domain/port/driven"
)

// DefaultSiteURL is the login page of the Telegram developer portal.
const DefaultSiteURL = "https://my.telegram.org"

// DefaultUserAgents is the fixed set a session's user agent is drawn from.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:126.0) Gecko/20100101 Firefox/126.0",
}

// Layout holds the element locators of the portal pages. The portal is not
// versioned, so these are the only place markup assumptions live.
type Layout struct {
	PhoneField          driven.Locator
	PhoneSubmit         driven.Locator
	PhoneSubmitFallback driven.Locator
	CodeField           driven.Locator
	SignInButton        driven.Locator
	ToolsLink           driven.Locator
	CreateHeading       driven.Locator
	CreateButton        driven.Locator
	TitleField          driven.Locator
	ShortNameField      driven.Locator
	DescriptionField    driven.Locator
	SaveButton          driven.Locator
	ConfirmButton       driven.Locator
	AppIDField          driven.Locator
	AppHashField        driven.Locator

	// PlatformRadio is a CSS format string with one %s for the platform value.
	PlatformRadio string
}

// DefaultLayout returns the locators for my.telegram.org.
func DefaultLayout() Layout {
	return Layout{
		PhoneField:          driven.Locator{CSS: "#my_login_phone"},
		PhoneSubmit:         driven.Locator{CSS: "button[type='submit']"},
		PhoneSubmitFallback: driven.Locator{CSS: "button", Text: "Next|Continue"},
		CodeField:           driven.Locator{CSS: "#my_password"},
		SignInButton:        driven.Locator{CSS: "button[type='submit']", Text: "Sign In"},
		ToolsLink:           driven.Locator{CSS: "a[href='/apps']", Text: "API development tools"},
		CreateHeading:       driven.Locator{CSS: "h2", Text: "Create new application"},
		CreateButton:        driven.Locator{CSS: "button", Text: "Create new application"},
		TitleField:          driven.Locator{CSS: "#app_title"},
		ShortNameField:      driven.Locator{CSS: "#app_shortname"},
		DescriptionField:    driven.Locator{CSS: "#app_desc"},
		SaveButton:          driven.Locator{CSS: "#app_save_btn"},
		ConfirmButton:       driven.Locator{CSS: "button", Text: "[Пп]одтвердить|[Oo][Kk]"},
		AppIDField:          driven.Locator{CSS: "input[name='app_id']"},
		AppHashField:        driven.Locator{CSS: "input[name='app_hash']"},
		PlatformRadio:       "input[type='radio'][name='app_platform'][value='%s']",
	}
}

// PlatformLocator returns the radio button for the given platform value.
func (l Layout) PlatformLocator(platform string) driven.Locator {
	return driven.Locator{CSS: fmt.Sprintf(l.PlatformRadio, platform)}
}

// Timeouts bounds every wait of the run.
type Timeouts struct {
	Page         time.Duration // Default for actions without their own bound.
	PhoneField   time.Duration
	CodeField    time.Duration
	ToolsLink    time.Duration
	Click        time.Duration
	Probe        time.Duration // Branch point visibility checks.
	CreateButton time.Duration
	CreateForm   time.Duration
	Confirmation time.Duration
	Credentials  time.Duration
}

// DefaultTimeouts returns the bounds used against the live portal.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Page:         60 * time.Second,
		PhoneField:   15 * time.Second,
		CodeField:    20 * time.Second,
		ToolsLink:    20 * time.Second,
		Click:        10 * time.Second,
		Probe:        5 * time.Second,
		CreateButton: 10 * time.Second,
		CreateForm:   20 * time.Second,
		Confirmation: 5 * time.Second,
		Credentials:  20 * time.Second,
	}
}
