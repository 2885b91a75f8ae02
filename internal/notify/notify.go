// Package notify provides notification delivery for alert messages.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pricewatch/internal/errors"
)

// Notifier delivers a text message to a fixed destination.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// WebhookNotifier delivers messages via an HTTP webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier posting to the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send posts the message as JSON to the webhook. It fails when no URL is
// configured or the endpoint responds with a non-2xx status. Delivery is a
// single attempt; a failed notification is reported, not retried.
func (w *WebhookNotifier) Send(ctx context.Context, message string) error {
	if w.url == "" {
		return &errors.DeliveryError{Reason: "webhook URL is not configured"}
	}

	payload := map[string]string{"text": message}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "pricewatch/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &errors.DeliveryError{Reason: string(b), Status: resp.StatusCode}
	}

	return nil
}

// NoOpNotifier is a notifier that does nothing (for tests and dry runs).
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Send does nothing.
func (n *NoOpNotifier) Send(ctx context.Context, message string) error {
	return nil
}
