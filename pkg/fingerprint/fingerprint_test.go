package fingerprint

import "testing"

func TestUserAgent(t *testing.T) {
	if got := UserAgent(""); got != "" {
		t.Errorf("Expected no user agent, got %q", got)
	}
	if got := UserAgent("ovpn-proxy/1.0"); got != "ovpn-proxy/1.0" {
		t.Errorf("Expected configured value, got %q", got)
	}

	got := UserAgent(RandomKeyword)
	found := false
	for _, ua := range UserAgents {
		if ua == got {
			found = true
		}
	}
	if !found {
		t.Errorf("Random user agent %q not in pool", got)
	}
}

func TestRandomProfile(t *testing.T) {
	p := RandomProfile("custom")
	if p.UserAgent != "custom" {
		t.Errorf("Expected custom user agent, got %q", p.UserAgent)
	}
	if p.Viewport.Width == 0 || p.Locale == "" || p.TimezoneID == "" {
		t.Errorf("Incomplete profile %+v", p)
	}

	if p := RandomProfile(""); p.UserAgent == "" {
		t.Error("Expected a user agent from the pool")
	}
}
