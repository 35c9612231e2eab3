// Package fingerprint picks plausible desktop browser identities for page
// fetches.
package fingerprint

import (
	"math/rand"
)

// RandomKeyword selects a random entry of UserAgents in UserAgent.
const RandomKeyword = "random"

type Viewport struct {
	Width  int
	Height int
}

// Profile is what the headless browser presents to the page.
type Profile struct {
	UserAgent  string
	Viewport   Viewport
	Locale     string
	TimezoneID string
}

var (
	UserAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	}

	profileTemplates = []struct {
		Viewport   Viewport
		Locale     string
		TimezoneID string
	}{
		{Viewport{1920, 1080}, "en-US", "America/New_York"},
		{Viewport{1366, 768}, "en-US", "America/Los_Angeles"},
		{Viewport{1536, 864}, "en-GB", "Europe/London"},
		{Viewport{1440, 900}, "ru-RU", "Europe/Moscow"},
		{Viewport{1680, 1050}, "de-DE", "Europe/Berlin"},
	}
)

// UserAgent resolves a configured value: empty stays empty (no header),
// RandomKeyword picks from UserAgents, anything else is used as is.
func UserAgent(configured string) string {
	if configured == RandomKeyword {
		return UserAgents[rand.Intn(len(UserAgents))]
	}
	return configured
}

// RandomProfile returns a random profile. A non-empty userAgent replaces
// the random one.
func RandomProfile(userAgent string) Profile {
	template := profileTemplates[rand.Intn(len(profileTemplates))]
	ua := UserAgent(userAgent)
	if ua == "" {
		ua = UserAgents[rand.Intn(len(UserAgents))]
	}
	return Profile{
		UserAgent:  ua,
		Viewport:   template.Viewport,
		Locale:     template.Locale,
		TimezoneID: template.TimezoneID,
	}
}
