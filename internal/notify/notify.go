package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"time"
)

// Notifier posts run summaries to a Discord webhook. A zero URL disables it.
type Notifier struct {
	URL    string
	Client *http.Client
}

func New(url string) *Notifier {
	return &Notifier{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.URL != ""
}

// Send blocks until Discord answered; the process may exit right after.
func (n *Notifier) Send(ctx context.Context, msg string) error {
	if !n.Enabled() {
		return nil
	}

	payload := map[string]string{
		"content": msg,
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("discord webhook returned status: %d", resp.StatusCode)
	}
	return nil
}

// Summary formats the message sent after the inventory is written.
func Summary(source string, reachable, unreachable int, inventory string) string {
	return fmt.Sprintf("🛰️ **VPN Proxy Scan**\n🌐 Source: `%s`\n✅ Reachable: `%d`\n❌ Unreachable: `%d`\n📄 Inventory: `%s`",
		source, reachable, unreachable, filepath.Base(inventory))
}
