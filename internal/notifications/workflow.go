package notifications

import (
	"context"
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"time"

	"tasteboard/internal/observability"

	"github.com/redis/go-redis/v9"
)

// publishTimeout bounds the workflow publish; the goroutine outlives the
// originating request, so it cannot borrow the request context.
const publishTimeout = 5 * time.Second

// WorkflowTrigger starts an external workflow execution by publishing the
// new user's identity onto a Redis channel consumed by the workflow service.
type WorkflowTrigger struct {
	rdb     *redis.Client
	channel string
	logger  *slog.Logger
}

// NewWorkflowTrigger creates a trigger publishing to the given channel.
// A nil Redis client disables dispatch.
func NewWorkflowTrigger(rdb *redis.Client, channel string, logger *slog.Logger) *WorkflowTrigger {
	return &WorkflowTrigger{rdb: rdb, channel: channel, logger: logger}
}

// UserCreated fires the user-created workflow from a background goroutine and
// returns immediately. Failures, including panics inside the publish path,
// are logged and counted; the signup response never waits on this.
func (t *WorkflowTrigger) UserCreated(userID uint, username, email string) {
	if t.rdb == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				observability.NotificationsFailed.WithLabelValues("user_workflow").Inc()
				t.logger.Error("panic in workflow trigger",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		payload, err := json.Marshal(map[string]any{
			"user_id":  userID,
			"username": username,
			"email":    email,
		})
		if err != nil {
			observability.NotificationsFailed.WithLabelValues("user_workflow").Inc()
			t.logger.Error("workflow payload marshal failed", slog.String("error", err.Error()))
			return
		}

		if err := t.rdb.Publish(ctx, t.channel, payload).Err(); err != nil {
			observability.NotificationsFailed.WithLabelValues("user_workflow").Inc()
			t.logger.Warn("workflow trigger failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("channel", t.channel),
				slog.String("error", err.Error()),
			)
			return
		}

		observability.NotificationsSent.WithLabelValues("user_workflow").Inc()
		t.logger.Info("user workflow triggered",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("channel", t.channel),
		)
	}()
}
