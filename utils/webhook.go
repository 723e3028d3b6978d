package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"festa-pos/dtos"
)

var ErrWebhookDisabled = errors.New("report webhook is not configured")

// WebhookNotifier posts plain-text messages to a chat webhook.
type WebhookNotifier struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewWebhookNotifier(url, token string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *WebhookNotifier) Send(ctx context.Context, message string) error {
	if n == nil || n.URL == "" {
		return ErrWebhookDisabled
	}

	jsonData, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.Token != "" {
		req.Header.Set("Authorization", n.Token)
	}

	resp, err := n.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// FormatDailyReportMessage renders the daily summary for chat.
func FormatDailyReportMessage(s dtos.DailySummary) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "DAILY SALES %s\n\n", s.Date)
	fmt.Fprintf(&b, "Total: ¥%d\n", s.TotalSales)
	fmt.Fprintf(&b, "Orders: %d (pending %d, cancelled %d)\n\n", s.OrderCount, s.PendingCount, s.CancelledCount)
	b.WriteString("*Items:*\n")
	for i, item := range s.Items {
		fmt.Fprintf(&b, "%d. %s x%d (¥%d)\n", i+1, item.Name, item.Quantity, item.Amount)
	}
	if len(s.CustomTiers) > 0 {
		b.WriteString("\n*Custom:*\n")
		for _, tier := range s.CustomTiers {
			fmt.Fprintf(&b, "¥%d x%d (¥%d)\n", tier.Price, tier.Quantity, tier.Amount)
		}
	}
	return b.String()
}
