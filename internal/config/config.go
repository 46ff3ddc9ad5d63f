// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/tgapikeys/internal/domain/model"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	SiteURL string

	AppTitle       string
	AppShortName   string
	AppPlatform    string
	AppDescription string

	Headless      bool
	BrowserBin    string
	PageTimeout   time.Duration
	ScreenshotDir string
	HumanPacing   bool

	LogLevel  slog.Level
	LogFormat string
}

// AppProfile returns the configured application profile with defaults
// applied to every field left empty.
func (c *Config) AppProfile() model.AppProfile {
	return model.AppProfile{
		Title:       c.AppTitle,
		ShortName:   c.AppShortName,
		Platform:    c.AppPlatform,
		Description: c.AppDescription,
	}.WithDefaults()
}

// Load reads configuration from environment variables and returns a validated Config.
// Every variable is optional:
// TGAPIKEYS_SITE_URL (https://my.telegram.org), TGAPIKEYS_APP_TITLE,
// TGAPIKEYS_APP_SHORT_NAME, TGAPIKEYS_APP_PLATFORM, TGAPIKEYS_APP_DESCRIPTION
// (model.DefaultAppProfile), TGAPIKEYS_HEADLESS (false), TGAPIKEYS_BROWSER_BIN,
// TGAPIKEYS_PAGE_TIMEOUT (60s), TGAPIKEYS_SCREENSHOT_DIR (error_screenshots),
// TGAPIKEYS_HUMAN_PACING (true), TGAPIKEYS_LOG_LEVEL (info),
// TGAPIKEYS_LOG_FORMAT (text).
func Load() (*Config, error) {
	cfg := &Config{
		SiteURL:        "https://my.telegram.org",
		AppTitle:       os.Getenv("TGAPIKEYS_APP_TITLE"),
		AppShortName:   os.Getenv("TGAPIKEYS_APP_SHORT_NAME"),
		AppPlatform:    os.Getenv("TGAPIKEYS_APP_PLATFORM"),
		AppDescription: os.Getenv("TGAPIKEYS_APP_DESCRIPTION"),
		BrowserBin:     os.Getenv("TGAPIKEYS_BROWSER_BIN"),
		PageTimeout:    60 * time.Second,
		ScreenshotDir:  "error_screenshots",
		HumanPacing:    true,
		LogLevel:       slog.LevelInfo,
		LogFormat:      "text",
	}

	if v, ok := os.LookupEnv("TGAPIKEYS_SITE_URL"); ok && v != "" {
		cfg.SiteURL = strings.TrimRight(v, "/")
	}

	if v, ok := os.LookupEnv("TGAPIKEYS_SCREENSHOT_DIR"); ok && v != "" {
		cfg.ScreenshotDir = v
	}

	var err error
	if cfg.Headless, err = lookupBool("TGAPIKEYS_HEADLESS", false); err != nil {
		return nil, err
	}
	if cfg.HumanPacing, err = lookupBool("TGAPIKEYS_HUMAN_PACING", true); err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv("TGAPIKEYS_PAGE_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TGAPIKEYS_PAGE_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("TGAPIKEYS_PAGE_TIMEOUT must be positive, got %q", v)
		}
		cfg.PageTimeout = parsed
	}

	if v, ok := os.LookupEnv("TGAPIKEYS_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("TGAPIKEYS_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	if v, ok := os.LookupEnv("TGAPIKEYS_LOG_FORMAT"); ok && v != "" {
		v = strings.ToLower(v)
		if v != "text" && v != "json" {
			return nil, fmt.Errorf("TGAPIKEYS_LOG_FORMAT must be text or json, got %q", v)
		}
		cfg.LogFormat = v
	}

	return cfg, nil
}

func lookupBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", key, v, err)
	}
	return b, nil
}
