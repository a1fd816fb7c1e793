package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// WebhookNotifier posts the rendered message to a generic HTTP endpoint.
type WebhookNotifier struct {
	url        string
	httpClient *http.Client
}

// NewWebhookNotifier builds a notifier targeting the supplied endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Name identifies the channel in logs and metrics.
func (w *WebhookNotifier) Name() string { return "webhook" }

// Notify posts a JSON body with a single text field. There is no retry.
func (w *WebhookNotifier) Notify(ctx context.Context, event ChangeEvent) error {
	raw, err := json.Marshal(map[string]string{"text": RenderMessage(event)})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.ID != "" {
		req.Header.Set("X-Event-ID", event.ID)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %s", resp.Status)
	}

	return nil
}
