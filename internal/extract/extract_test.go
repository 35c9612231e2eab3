package extract

import (
	"reflect"
	"testing"

	"github.com/Davis1233798/ovpn-proxy-go/internal/config"
)

const page = `<ul>
<li><span class="mr-2">al9.nordvpn.com</span><a href="#">UDP</a></li>
<li><span class="mr-2">ar17.nordvpn.com</span><a href="#">UDP</a></li>
<li><span class="ml-2">ignored.nordvpn.com</span></li>
<li><span class="mr-2">al9.nordvpn.com</span></li>
</ul>`

func TestExtractDefaultPattern(t *testing.T) {
	e, err := New(config.DefaultHostPattern)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := e.Extract(page)
	want := []string{"al9.nordvpn.com", "ar17.nordvpn.com", "al9.nordvpn.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractNoMatches(t *testing.T) {
	e, err := New(config.DefaultHostPattern)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := e.Extract("<html><body>maintenance</body></html>"); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}

func TestNewRejectsBadPatterns(t *testing.T) {
	for _, p := range []string{`(unclosed`, `<span>\S*</span>`, `(a)(b)`} {
		if _, err := New(p); err == nil {
			t.Errorf("Expected error for pattern %q", p)
		}
	}
}

func TestParseList(t *testing.T) {
	text := "# servers\nal9.nordvpn.com\n\n  - ar17.nordvpn.com  \nbe5.nordvpn.com UDP 2024-01-01\r\n"

	got := ParseList(text)
	want := []string{"al9.nordvpn.com", "ar17.nordvpn.com", "be5.nordvpn.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseList() = %v, want %v", got, want)
	}

	if got := ParseList("\n# nothing\n"); len(got) != 0 {
		t.Errorf("Expected no hosts, got %v", got)
	}
}
