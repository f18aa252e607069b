// Package notify implements the SMS notifier collaborator. Delivery is
// best-effort: callers fire and forget, and a failed send never affects
// the transition that triggered it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/naandi/platform/internal/domain"
)

// Compile-time checks.
var (
	_ domain.Notifier = (*GatewayNotifier)(nil)
	_ domain.Notifier = (*LogNotifier)(nil)
)

// GatewayNotifier posts messages to an HTTP SMS gateway.
type GatewayNotifier struct {
	url    string
	client *http.Client
}

// NewGateway creates a notifier for the given gateway URL.
func NewGateway(url string) *GatewayNotifier {
	return &GatewayNotifier{
		url: url,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type gatewayPayload struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send posts the message to the gateway. Any non-2xx response is an error.
func (n *GatewayNotifier) Send(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(gatewayPayload{To: mobile, Message: message})
	if err != nil {
		return fmt.Errorf("encoding sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier logs messages instead of sending them. Used when no
// gateway is configured (development, tests).
type LogNotifier struct{}

// NewLog creates a log-only notifier.
func NewLog() *LogNotifier {
	return &LogNotifier{}
}

// Send logs the message and always succeeds.
func (n *LogNotifier) Send(ctx context.Context, mobile, message string) error {
	slog.InfoContext(ctx, "sms (not sent, no gateway configured)",
		"mobile", mobile,
		"message", message,
	)
	return nil
}
