package model

// AppProfile describes the application registered when the account has no
// API credentials yet. Platform is the value of the app_platform radio button
// ("desktop", "web", "android", ...).
type AppProfile struct {
	Title       string
	ShortName   string
	Platform    string
	Description string
}

// DefaultAppProfile returns the profile used for any field the caller leaves empty.
func DefaultAppProfile() AppProfile {
	return AppProfile{
		Title:       "ZeniApp",
		ShortName:   "zeni",
		Platform:    "desktop",
		Description: "Test app created via automation.",
	}
}

// WithDefaults returns a copy of p with every empty field taken from DefaultAppProfile.
func (p AppProfile) WithDefaults() AppProfile {
	d := DefaultAppProfile()
	if p.Title == "" {
		p.Title = d.Title
	}
	if p.ShortName == "" {
		p.ShortName = d.ShortName
	}
	if p.Platform == "" {
		p.Platform = d.Platform
	}
	if p.Description == "" {
		p.Description = d.Description
	}
	return p
}
