package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"

	"github.com/Davis1233798/ovpn-proxy-go/internal/config"
	"github.com/Davis1233798/ovpn-proxy-go/pkg/fingerprint"
)

const (
	ModeHTTP    = "http"
	ModeBrowser = "browser"
)

// Fetcher loads the page that lists the servers.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// New picks the fetcher for cfg.FetchMode.
func New(cfg *config.Config) (Fetcher, error) {
	switch cfg.FetchMode {
	case "", ModeHTTP:
		return NewHTTPFetcher(cfg.FetchTimeout, fingerprint.UserAgent(cfg.UserAgent)), nil
	case ModeBrowser:
		return &BrowserFetcher{
			Headless:  cfg.Headless,
			Timeout:   cfg.FetchTimeout,
			UserAgent: cfg.UserAgent,
		}, nil
	}
	return nil, fmt.Errorf("unknown fetch mode %q (want %s or %s)", cfg.FetchMode, ModeHTTP, ModeBrowser)
}

// HTTPFetcher issues a single plain GET. Non-2xx answers are errors.
type HTTPFetcher struct {
	Client *http.Client
	// UserAgent is sent only when set.
	UserAgent string
}

func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string
	rb := requests.
		URL(url).
		Client(f.Client).
		ToString(&body)
	if f.UserAgent != "" {
		rb = rb.UserAgent(f.UserAgent)
	}

	if err := rb.Fetch(ctx); err != nil {
		return "", err
	}
	return body, nil
}
