// Package notifications delivers best-effort signals to external
// collaborators after a sub-resource is created. Delivery is decoupled from
// the primary write: there is no outbox and no retry, and a failure never
// changes the response already owed to the client.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"tasteboard/internal/observability"
)

// ReviewWebhook posts review-created events to a fixed external endpoint.
type ReviewWebhook struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewReviewWebhook creates a webhook dispatcher for the given endpoint.
// An empty URL disables dispatch entirely.
func NewReviewWebhook(url string, logger *slog.Logger) *ReviewWebhook {
	return &ReviewWebhook{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

// Notify POSTs the review payload to the notification endpoint. It runs
// synchronously inside the request that created the review; any failure is
// logged and counted, nothing more.
func (w *ReviewWebhook) Notify(ctx context.Context, itemID uint, review string, rating int) {
	if w.url == "" {
		return
	}

	payload := map[string]any{
		"item_id": itemID,
		"review":  review,
		"rating":  rating,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		w.fail(ctx, itemID, err.Error())
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		w.fail(ctx, itemID, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.fail(ctx, itemID, err.Error())
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		w.fail(ctx, itemID, "unexpected status "+resp.Status)
		return
	}

	observability.NotificationsSent.WithLabelValues("review_webhook").Inc()
	w.logger.InfoContext(ctx, "review notification sent",
		slog.Uint64("item_id", uint64(itemID)),
		slog.String("url", w.url),
	)
}

func (w *ReviewWebhook) fail(ctx context.Context, itemID uint, reason string) {
	observability.NotificationsFailed.WithLabelValues("review_webhook").Inc()
	w.logger.WarnContext(ctx, "review notification failed",
		slog.Uint64("item_id", uint64(itemID)),
		slog.String("url", w.url),
		slog.String("error", reason),
	)
}
