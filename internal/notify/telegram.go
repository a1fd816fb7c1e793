package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const telegramAPI = "https://api.telegram.org"

// TelegramNotifier delivers updates through a Telegram bot.
type TelegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier builds a Telegram notifier with the supplied credentials.
func NewTelegramNotifier(botToken, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:   botToken,
		chatID:     chatID,
		baseURL:    telegramAPI,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Name identifies the channel in logs and metrics.
func (t *TelegramNotifier) Name() string { return "telegram" }

// Notify sends the rendered message to the configured chat.
func (t *TelegramNotifier) Notify(ctx context.Context, event ChangeEvent) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", RenderMessage(event))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		// the bot token is part of the URL; keep it out of logs
		return fmt.Errorf("send telegram request: %s", strings.ReplaceAll(err.Error(), t.botToken, "<redacted>"))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram returned status %s", resp.Status)
	}

	return nil
}
