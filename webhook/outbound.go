package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"content-coach/coach"
)

// Notifier posts newly created coaches to an external automation endpoint.
type Notifier struct {
	endpoint   string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
}

func NewNotifier(endpoint string) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// coachCreatedPayload mirrors the coach wire shape plus the owner's email,
// which the automation flow keys on.
type coachCreatedPayload struct {
	coach.Coach
	UserEmail string `json:"userEmail"`
}

// CoachCreated sends the notification, retrying on network errors, 429 and
// 5xx with a growing pause between attempts. 4xx responses other than 429
// are not retried; the payload will not get better.
func (n *Notifier) CoachCreated(ctx context.Context, c coach.Coach, ownerEmail string) error {
	if n.endpoint == "" {
		return nil
	}

	body, err := json.Marshal(coachCreatedPayload{Coach: c, UserEmail: ownerEmail})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(n.backoff * time.Duration(attempt-1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retryable, err := n.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return fmt.Errorf("webhook failed after %d attempts: %w", n.maxRetries, lastErr)
}

func (n *Notifier) post(ctx context.Context, body []byte) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("webhook returned %d: %s", resp.StatusCode, msg)
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return true, err
	}
	return false, err
}
