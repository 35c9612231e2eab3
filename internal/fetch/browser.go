package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Davis1233798/ovpn-proxy-go/pkg/fingerprint"
)

// BrowserFetcher renders the page in headless Chromium and returns the
// resulting DOM. Use it when the server list is built client side.
type BrowserFetcher struct {
	Headless bool
	Timeout  time.Duration
	// UserAgent follows fingerprint.UserAgent; empty means a random one.
	UserAgent string
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pw, err := playwright.Run()
	if err != nil {
		return "", fmt.Errorf("could not start playwright: %w", err)
	}
	defer pw.Stop()
	log.Printf("Playwright driver started (Headless config: %v)", f.Headless)

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(f.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
			"--disable-setuid-sandbox",
		},
	})
	if err != nil {
		return "", fmt.Errorf("could not launch browser: %w", err)
	}
	defer browser.Close()

	fp := fingerprint.RandomProfile(f.UserAgent)
	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(fp.UserAgent),
		Viewport: &playwright.Size{
			Width:  fp.Viewport.Width,
			Height: fp.Viewport.Height,
		},
		Locale:     playwright.String(fp.Locale),
		TimezoneId: playwright.String(fp.TimezoneID),
	})
	if err != nil {
		return "", err
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return "", fmt.Errorf("could not create page: %w", err)
	}

	opts := playwright.PageGotoOptions{WaitUntil: playwright.WaitUntilStateDomcontentloaded}
	if f.Timeout > 0 {
		opts.Timeout = playwright.Float(float64(f.Timeout.Milliseconds()))
	}
	if _, err := page.Goto(url, opts); err != nil {
		return "", fmt.Errorf("navigation failed for %s: %w", url, err)
	}
	return page.Content()
}
